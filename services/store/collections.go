package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	models "github.com/actually-app/actually/dbmodels"
)

// The starter set every user gets lazily on first need.
var defaultCollections = []models.Collection{
	{Name: "Jobs", Icon: "💼", Position: 0},
	{Name: "Reading List", Icon: "📚", Position: 1},
	{Name: "Tools", Icon: "🧰", Position: 2},
	{Name: "People", Icon: "🤝", Position: 3},
}

type Collections struct {
	DB *gorm.DB
}

func (s *Collections) EnsureDefaults(ctx context.Context, userID uuid.UUID) error {
	var count int64
	if err := s.DB.WithContext(ctx).
		Model(&models.Collection{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	rows := make([]models.Collection, 0, len(defaultCollections))
	for _, c := range defaultCollections {
		c.UserID = userID
		c.IsDefault = true
		rows = append(rows, c)
	}
	return s.DB.WithContext(ctx).Create(&rows).Error
}

func (s *Collections) DefaultID(ctx context.Context, userID uuid.UUID, name string) (uuid.UUID, bool, error) {
	var collection models.Collection
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&collection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	return collection.ID, true, nil
}

func (s *Collections) List(ctx context.Context, userID uuid.UUID) ([]models.Collection, error) {
	var collections []models.Collection
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position ASC").
		Find(&collections).Error
	if err != nil {
		return nil, err
	}
	return collections, nil
}
