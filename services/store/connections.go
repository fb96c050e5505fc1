package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	models "github.com/actually-app/actually/dbmodels"
)

type Connections struct {
	DB *gorm.DB
}

func (s *Connections) CountVerified(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&models.Connection{}).
		Where("user_id = ? AND status = ?", userID, models.ConnectionStatusVerified).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
