package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReminderStatusPending = "pending"
	ReminderStatusSent    = "sent"
)

type Reminder struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null;constraint:OnDelete:CASCADE" json:"userId"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	RemindAt  time.Time  `gorm:"index;not null" json:"remindAt"`
	Status    string     `gorm:"type:varchar(16);index;default:pending;not null" json:"status"`
	SentAt    *time.Time `json:"sentAt"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (r *Reminder) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
