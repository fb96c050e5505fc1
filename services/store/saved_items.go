package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	models "github.com/actually-app/actually/dbmodels"
)

type SavedItems struct {
	DB *gorm.DB
}

func (s *SavedItems) Insert(ctx context.Context, item *models.SavedItem) error {
	return s.DB.WithContext(ctx).Create(item).Error
}

func (s *SavedItems) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]models.SavedItem, error) {
	var items []models.SavedItem
	err := s.DB.WithContext(ctx).
		Preload("Collection").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
