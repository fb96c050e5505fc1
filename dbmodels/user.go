package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ExternalID       string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"externalId"`
	Username         string         `gorm:"type:varchar(64);uniqueIndex" json:"username"`
	Email            string         `gorm:"type:varchar(255);index" json:"email"`
	Phone            string         `gorm:"type:varchar(32);index" json:"phone"`
	EmailVerified    bool           `gorm:"default:false;not null" json:"emailVerified"`
	PhoneVerified    bool           `gorm:"default:false;not null" json:"phoneVerified"`
	EngagementPoints int            `gorm:"default:0;not null" json:"engagementPoints"`
	AgentSettings    datatypes.JSON `gorm:"type:jsonb" json:"agentSettings"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}
