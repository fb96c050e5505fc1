package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SavedItem struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;index;not null;constraint:OnDelete:CASCADE" json:"userId"`
	CollectionID *uuid.UUID `gorm:"type:uuid;index" json:"collectionId"`
	URL          string     `gorm:"type:text;not null" json:"url"`
	Title        string     `gorm:"type:text" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	ImageURL     string     `gorm:"type:text" json:"imageUrl"`
	AISummary    string     `gorm:"type:text" json:"aiSummary"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`

	User       User        `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Collection *Collection `gorm:"foreignKey:CollectionID;references:ID" json:"collection,omitempty"`
}

func (s *SavedItem) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
