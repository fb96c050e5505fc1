package store

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/actually-app/actually/core/types"
	models "github.com/actually-app/actually/dbmodels"
)

type Actions struct {
	DB *gorm.DB
}

func (s *Actions) Record(ctx context.Context, entry types.ActionLogEntry) error {
	metadata := datatypes.JSON([]byte("{}"))
	if entry.Metadata != nil {
		b, err := json.Marshal(entry.Metadata)
		if err != nil {
			return err
		}
		metadata = datatypes.JSON(b)
	}

	row := models.AgentAction{
		UserID:           entry.UserID,
		ActionType:       entry.ActionType,
		InputText:        entry.InputText,
		OutputText:       entry.OutputText,
		Metadata:         metadata,
		Status:           "completed",
		TimeSavedSeconds: entry.TimeSavedSeconds,
	}
	return s.DB.WithContext(ctx).Create(&row).Error
}

func (s *Actions) Recent(ctx context.Context, userID uuid.UUID, filter types.ActionFilter) ([]models.AgentAction, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}

	q := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit)
	if filter.Type != "" && filter.Type != "all" {
		q = q.Where("action_type = ?", filter.Type)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		q = q.Where("input_text ILIKE ? OR output_text ILIKE ?", like, like)
	}

	var rows []models.AgentAction
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
