// Package store holds the gorm-backed implementations of the capability
// interfaces the pipeline consumes.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	models "github.com/actually-app/actually/dbmodels"
)

type Users struct {
	DB *gorm.DB
}

func (s *Users) ByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("external_id = ?", externalID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Users) ByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("phone = ?", phone).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Users) ByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Users) UpdateAgentSettings(ctx context.Context, id uuid.UUID, settings datatypes.JSON) error {
	return s.DB.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("agent_settings", settings).Error
}
