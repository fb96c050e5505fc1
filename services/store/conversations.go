package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/actually-app/actually/core/types"
	models "github.com/actually-app/actually/dbmodels"
)

type Conversations struct {
	DB *gorm.DB
}

// Append stores each message as its own row. The conversation head is
// created on first use; the insert-per-message shape means two concurrent
// exchanges interleave instead of overwriting each other.
func (s *Conversations) Append(ctx context.Context, userID uuid.UUID, channel string, messages ...types.Message) error {
	if len(messages) == 0 {
		return nil
	}

	conv := models.Conversation{UserID: userID, Channel: channel}
	if err := s.DB.WithContext(ctx).
		Where("user_id = ? AND channel = ?", userID, channel).
		FirstOrCreate(&conv).Error; err != nil {
		return err
	}

	rows := make([]models.ConversationMessage, 0, len(messages))
	for _, m := range messages {
		rows = append(rows, models.ConversationMessage{
			ConversationID: conv.ID,
			Role:           m.Role,
			Content:        m.Content,
			CreatedAt:      m.At,
		})
	}
	return s.DB.WithContext(ctx).Create(&rows).Error
}

func (s *Conversations) History(ctx context.Context, userID uuid.UUID, channel string) ([]types.Message, error) {
	var conv models.Conversation
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND channel = ?", userID, channel).
		First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []types.Message{}, nil
	}
	if err != nil {
		return nil, err
	}

	var rows []models.ConversationMessage
	if err := s.DB.WithContext(ctx).
		Where("conversation_id = ?", conv.ID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	messages := make([]types.Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, types.Message{
			Role:    row.Role,
			Content: row.Content,
			At:      row.CreatedAt,
		})
	}
	return messages, nil
}

func (s *Conversations) Clear(ctx context.Context, userID uuid.UUID, channel string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var conv models.Conversation
		err := tx.Where("user_id = ? AND channel = ?", userID, channel).First(&conv).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Where("conversation_id = ?", conv.ID).Delete(&models.ConversationMessage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&conv).Error
	})
}
