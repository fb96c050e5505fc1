// Package executor performs the side effects the intent resolver asked for:
// saving links, queueing reminders, creating calendar events and sending
// email. Each action is independent; there is no transaction across a batch,
// and an upstream API failure aborts the remainder of the batch.
package executor

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/mudler/xlog"

	"github.com/actually-app/actually/core/types"
	models "github.com/actually-app/actually/dbmodels"
)

// Estimated seconds saved per executed action, attached to the audit row.
// Display-only aggregation, not correctness-relevant.
const (
	TimeSavedSaveLink = 30
	TimeSavedReminder = 60
	TimeSavedCalendar = 120
	TimeSavedEmail    = 300
)

const (
	CollectionJobs        = "Jobs"
	CollectionReadingList = "Reading List"
)

var jobsRx = regexp.MustCompile(`(?i)job|career|apply`)

// CollectionFor picks the target collection from a link title.
func CollectionFor(title string) string {
	if title != "" && jobsRx.MatchString(title) {
		return CollectionJobs
	}
	return CollectionReadingList
}

const confirmTimeLayout = "Jan 2, 2006 3:04 PM"

type Executor struct {
	Fetcher     types.LinkFetcher
	SavedItems  types.SavedItemStore
	Collections types.CollectionStore
	Reminders   types.ReminderStore
	Log         types.ActionLog
	Tokens      types.TokenSource
	Calendar    types.CalendarClient
	Mail        types.MailClient
}

// Execute runs each action in order and returns the human-readable
// confirmations to append to the reply. Actions missing required fields are
// dropped silently (no row, no log, no result). An external API error stops
// the batch; earlier results are lost with it.
func (e *Executor) Execute(ctx context.Context, userID uuid.UUID, actions []types.ActionInput) ([]string, error) {
	results := []string{}

	for _, action := range actions {
		switch action.Type {
		case types.ActionSaveLink:
			res, err := e.saveLink(ctx, userID, action)
			if err != nil {
				return results, err
			}
			if res != "" {
				results = append(results, res)
			}

		case types.ActionCreateReminder:
			res, err := e.createReminder(ctx, userID, action)
			if err != nil {
				return results, err
			}
			if res != "" {
				results = append(results, res)
			}

		case types.ActionCalendarEvent:
			res, err := e.createCalendarEvent(ctx, userID, action)
			if err != nil {
				return results, err
			}
			if res != "" {
				results = append(results, res)
			}

		case types.ActionSendEmail:
			res, err := e.sendEmail(ctx, userID, action)
			if err != nil {
				return results, err
			}
			if res != "" {
				results = append(results, res)
			}

		default:
			xlog.Debug("Ignoring unknown action type", "type", action.Type)
		}
	}

	return results, nil
}

func (e *Executor) saveLink(ctx context.Context, userID uuid.UUID, action types.ActionInput) (string, error) {
	if action.URL == "" {
		xlog.Debug("Dropping save_link without url", "user", userID)
		return "", nil
	}

	metadata := e.Fetcher.FetchMetadata(ctx, action.URL)

	collectionName := action.Collection
	if collectionName == "" {
		title := ""
		if metadata != nil {
			title = metadata.Title
		}
		collectionName = CollectionFor(title)
	}

	collectionID, found, err := e.Collections.DefaultID(ctx, userID, collectionName)
	if err != nil {
		return "", err
	}
	if !found {
		if err := e.Collections.EnsureDefaults(ctx, userID); err != nil {
			return "", err
		}
		collectionID, found, err = e.Collections.DefaultID(ctx, userID, collectionName)
		if err != nil {
			return "", err
		}
	}

	item := &models.SavedItem{
		UserID:    userID,
		URL:       action.URL,
		Title:     action.Title,
		AISummary: action.Note,
	}
	if found {
		id := collectionID
		item.CollectionID = &id
	}
	if metadata != nil {
		if metadata.Title != "" {
			item.Title = metadata.Title
		}
		item.Description = metadata.Description
		item.ImageURL = metadata.Image
	}
	if item.Title == "" {
		item.Title = action.URL
	}

	if err := e.SavedItems.Insert(ctx, item); err != nil {
		return "", err
	}

	if err := e.Log.Record(ctx, types.ActionLogEntry{
		UserID:           userID,
		ActionType:       "save_link",
		InputText:        action.URL,
		OutputText:       fmt.Sprintf("Saved to %s.", collectionName),
		Metadata:         map[string]any{"url": action.URL, "collection": collectionName},
		TimeSavedSeconds: TimeSavedSaveLink,
	}); err != nil {
		return "", err
	}

	return fmt.Sprintf("Saved link to %s.", collectionName), nil
}

func (e *Executor) createReminder(ctx context.Context, userID uuid.UUID, action types.ActionInput) (string, error) {
	remindAt, ok := parseWhen(action.RemindAt)
	if !ok {
		xlog.Debug("Dropping create_reminder with unparseable time", "user", userID, "remind_at", action.RemindAt)
		return "", nil
	}

	content := firstNonEmpty(action.Title, action.Note, "Reminder")

	if err := e.Reminders.Insert(ctx, &models.Reminder{
		UserID:   userID,
		Content:  content,
		RemindAt: remindAt,
		Status:   models.ReminderStatusPending,
	}); err != nil {
		return "", err
	}

	formatted := remindAt.Format(confirmTimeLayout)
	if err := e.Log.Record(ctx, types.ActionLogEntry{
		UserID:           userID,
		ActionType:       "reminder",
		InputText:        content,
		OutputText:       fmt.Sprintf("Reminder set for %s.", formatted),
		Metadata:         map[string]any{"remind_at": remindAt.Format(time.RFC3339)},
		TimeSavedSeconds: TimeSavedReminder,
	}); err != nil {
		return "", err
	}

	return fmt.Sprintf("Reminder set for %s.", formatted), nil
}

func (e *Executor) createCalendarEvent(ctx context.Context, userID uuid.UUID, action types.ActionInput) (string, error) {
	startAt, ok := parseWhen(action.StartAt)
	if !ok {
		xlog.Debug("Dropping create_calendar_event with unparseable start", "user", userID, "start_at", action.StartAt)
		return "", nil
	}
	var endAt *time.Time
	if parsed, ok := parseWhen(action.EndAt); ok {
		endAt = &parsed
	}

	title := firstNonEmpty(action.Title, "Calendar event")

	token, err := e.Tokens.AccessToken(ctx, userID)
	if err != nil {
		return "", err
	}

	formatted := startAt.Format(confirmTimeLayout)

	if token == "" {
		// Degraded substitute: queue a reminder at the event start.
		if err := e.Reminders.Insert(ctx, &models.Reminder{
			UserID:   userID,
			Content:  title,
			RemindAt: startAt,
			Status:   models.ReminderStatusPending,
		}); err != nil {
			return "", err
		}

		if err := e.Log.Record(ctx, types.ActionLogEntry{
			UserID:           userID,
			ActionType:       "calendar",
			InputText:        title,
			OutputText:       "Calendar not connected. Reminder queued instead.",
			Metadata:         calendarMetadata(startAt, endAt),
			TimeSavedSeconds: TimeSavedCalendar,
		}); err != nil {
			return "", err
		}

		return "Google Calendar not connected yet. I queued a reminder instead.", nil
	}

	eventID, err := e.Calendar.CreateEvent(ctx, token, types.CalendarEvent{
		Title:       title,
		StartAt:     startAt,
		EndAt:       endAt,
		Description: action.Note,
		Location:    action.Location,
		Attendees:   action.Attendees,
	})
	if err != nil {
		return "", err
	}

	metadata := calendarMetadata(startAt, endAt)
	metadata["event_id"] = eventID
	if err := e.Log.Record(ctx, types.ActionLogEntry{
		UserID:           userID,
		ActionType:       "calendar",
		InputText:        title,
		OutputText:       fmt.Sprintf("Calendar event created for %s.", formatted),
		Metadata:         metadata,
		TimeSavedSeconds: TimeSavedCalendar,
	}); err != nil {
		return "", err
	}

	return fmt.Sprintf("Calendar event added for %s.", formatted), nil
}

func (e *Executor) sendEmail(ctx context.Context, userID uuid.UUID, action types.ActionInput) (string, error) {
	if action.To == "" || action.Subject == "" || action.Body == "" {
		xlog.Debug("Dropping send_email with missing fields", "user", userID)
		return "", nil
	}

	token, err := e.Tokens.AccessToken(ctx, userID)
	if err != nil {
		return "", err
	}

	if token == "" {
		if err := e.Log.Record(ctx, types.ActionLogEntry{
			UserID:     userID,
			ActionType: "email",
			InputText:  action.Subject,
			OutputText: "Gmail not connected.",
			Metadata:   map[string]any{"to": action.To, "subject": action.Subject},
		}); err != nil {
			return "", err
		}
		return "Gmail not connected yet. Connect Google to send emails.", nil
	}

	if err := e.Mail.Send(ctx, token, types.Email{To: action.To, Subject: action.Subject, Body: action.Body}); err != nil {
		return "", err
	}

	if err := e.Log.Record(ctx, types.ActionLogEntry{
		UserID:           userID,
		ActionType:       "email",
		InputText:        action.Subject,
		OutputText:       fmt.Sprintf("Email sent to %s.", action.To),
		Metadata:         map[string]any{"to": action.To, "subject": action.Subject},
		TimeSavedSeconds: TimeSavedEmail,
	}); err != nil {
		return "", err
	}

	return fmt.Sprintf("Email sent to %s.", action.To), nil
}

func calendarMetadata(startAt time.Time, endAt *time.Time) map[string]any {
	m := map[string]any{"start_at": startAt.Format(time.RFC3339)}
	if endAt != nil {
		m["end_at"] = endAt.Format(time.RFC3339)
	}
	return m
}

var whenLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseWhen accepts the ISO8601-ish timestamps models actually emit.
func parseWhen(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range whenLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
