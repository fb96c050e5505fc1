package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AgentAction is an append-only audit row. Rows are never updated or deleted.
type AgentAction struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;index;not null;constraint:OnDelete:CASCADE" json:"userId"`
	ActionType       string         `gorm:"type:varchar(32);index;not null" json:"actionType"`
	InputText        string         `gorm:"type:text" json:"inputText"`
	OutputText       string         `gorm:"type:text" json:"outputText"`
	Metadata         datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
	Status           string         `gorm:"type:varchar(16);default:completed;not null" json:"status"`
	TimeSavedSeconds int            `gorm:"default:0;not null" json:"timeSavedSeconds"`
	CreatedAt        time.Time      `gorm:"index" json:"createdAt"`

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (a *AgentAction) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
