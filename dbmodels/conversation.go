package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation is the per-(user, channel) log head. Messages live in
// ConversationMessage rows so an append is a single INSERT; two concurrent
// exchanges on the same conversation cannot clobber each other.
type Conversation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_conversation_user_channel;not null;constraint:OnDelete:CASCADE" json:"userId"`
	Channel   string    `gorm:"type:varchar(16);uniqueIndex:idx_conversation_user_channel;not null" json:"channel"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

type ConversationMessage struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID uuid.UUID `gorm:"type:uuid;index;not null;constraint:OnDelete:CASCADE" json:"conversationId"`
	Role           string    `gorm:"type:varchar(16);not null" json:"role"` // "user" or "assistant"
	Content        string    `gorm:"type:text;not null" json:"content"`
	CreatedAt      time.Time `gorm:"index" json:"createdAt"`

	Conversation Conversation `gorm:"foreignKey:ConversationID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (m *ConversationMessage) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}
