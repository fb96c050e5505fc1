package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Collection struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null;constraint:OnDelete:CASCADE" json:"userId"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Icon      string    `gorm:"type:varchar(16)" json:"icon"`
	Position  int       `gorm:"default:0;not null" json:"position"`
	IsDefault bool      `gorm:"default:false;not null" json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Collection) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
