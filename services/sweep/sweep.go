// Package sweep delivers due reminders. It runs outside the per-message
// pipeline, triggered by the in-process cron schedule or the authorized HTTP
// endpoint.
package sweep

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mudler/xlog"

	"github.com/actually-app/actually/core/types"
	models "github.com/actually-app/actually/dbmodels"
)

const (
	batchLimit = 50
	smsPrefix  = "Actual.ly reminder: "
)

type userLookup interface {
	ByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type Sweeper struct {
	Users     userLookup
	Reminders types.ReminderStore
	Log       types.ActionLog
	SMS       types.SMSSender // nil disables SMS delivery
}

// Run delivers up to 50 due pending reminders: SMS when the user opted into
// the sms channel and has a phone on file, then mark sent and log a
// reminder_delivery row. Returns the number processed.
func (s *Sweeper) Run(ctx context.Context) (int, error) {
	reminders, err := s.Reminders.DuePending(ctx, time.Now(), batchLimit)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, reminder := range reminders {
		user, err := s.Users.ByID(ctx, reminder.UserID)
		if err != nil {
			return processed, err
		}

		if s.SMS != nil && user != nil && user.Phone != "" && smsEnabled(user) {
			if err := s.SMS.Send(ctx, user.Phone, smsPrefix+reminder.Content); err != nil {
				return processed, err
			}
		}

		if err := s.Reminders.MarkSent(ctx, reminder.ID, time.Now()); err != nil {
			return processed, err
		}

		if err := s.Log.Record(ctx, types.ActionLogEntry{
			UserID:     reminder.UserID,
			ActionType: "reminder_delivery",
			InputText:  reminder.Content,
			OutputText: "Reminder delivered",
			Metadata:   map[string]any{"remind_at": reminder.RemindAt.Format(time.RFC3339)},
		}); err != nil {
			return processed, err
		}

		processed++
	}

	if processed > 0 {
		xlog.Info("Reminder sweep finished", "processed", processed)
	}
	return processed, nil
}

func smsEnabled(user *models.User) bool {
	if len(user.AgentSettings) == 0 {
		return false
	}
	var settings types.AgentSettings
	if err := json.Unmarshal(user.AgentSettings, &settings); err != nil {
		return false
	}
	return settings.EnabledChannels != nil && settings.EnabledChannels.SMS
}
