package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	models "github.com/actually-app/actually/dbmodels"
)

type Reminders struct {
	DB *gorm.DB
}

func (s *Reminders) Insert(ctx context.Context, reminder *models.Reminder) error {
	return s.DB.WithContext(ctx).Create(reminder).Error
}

func (s *Reminders) DuePending(ctx context.Context, now time.Time, limit int) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := s.DB.WithContext(ctx).
		Where("remind_at <= ? AND status = ?", now, models.ReminderStatusPending).
		Order("remind_at ASC").
		Limit(limit).
		Find(&reminders).Error
	if err != nil {
		return nil, err
	}
	return reminders, nil
}

func (s *Reminders) MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	return s.DB.WithContext(ctx).
		Model(&models.Reminder{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": models.ReminderStatusSent, "sent_at": at}).Error
}

func (s *Reminders) Upcoming(ctx context.Context, userID uuid.UUID, limit int) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.ReminderStatusPending).
		Order("remind_at ASC").
		Limit(limit).
		Find(&reminders).Error
	if err != nil {
		return nil, err
	}
	return reminders, nil
}
