package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ConnectionStatusPending  = "pending"
	ConnectionStatusVerified = "verified"
)

type Connection struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null;constraint:OnDelete:CASCADE" json:"userId"`
	PeerID    uuid.UUID `gorm:"type:uuid;index;not null;constraint:OnDelete:CASCADE" json:"peerId"`
	Status    string    `gorm:"type:varchar(16);index;default:pending;not null" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Peer User `gorm:"foreignKey:PeerID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Connection) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
