package types

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"

	models "github.com/actually-app/actually/dbmodels"
)

// The pipeline talks to every external collaborator through one of these
// narrow capability interfaces so tests can swap in fakes.

type UserStore interface {
	ByExternalID(ctx context.Context, externalID string) (*models.User, error)
	ByPhone(ctx context.Context, phone string) (*models.User, error)
}

type ConversationStore interface {
	// Append persists messages as individual rows. A single exchange is one
	// call; concurrent exchanges interleave but never clobber each other.
	Append(ctx context.Context, userID uuid.UUID, channel string, messages ...Message) error
	History(ctx context.Context, userID uuid.UUID, channel string) ([]Message, error)
	Clear(ctx context.Context, userID uuid.UUID, channel string) error
}

type ActionFilter struct {
	Type  string
	Query string
	Limit int
}

type ActionLogEntry struct {
	UserID           uuid.UUID
	ActionType       string
	InputText        string
	OutputText       string
	Metadata         map[string]any
	TimeSavedSeconds int
}

type ActionLog interface {
	Record(ctx context.Context, entry ActionLogEntry) error
	Recent(ctx context.Context, userID uuid.UUID, filter ActionFilter) ([]models.AgentAction, error)
}

type SavedItemStore interface {
	Insert(ctx context.Context, item *models.SavedItem) error
	Recent(ctx context.Context, userID uuid.UUID, limit int) ([]models.SavedItem, error)
}

type CollectionStore interface {
	EnsureDefaults(ctx context.Context, userID uuid.UUID) error
	DefaultID(ctx context.Context, userID uuid.UUID, name string) (uuid.UUID, bool, error)
}

type ReminderStore interface {
	Insert(ctx context.Context, reminder *models.Reminder) error
	DuePending(ctx context.Context, now time.Time, limit int) ([]models.Reminder, error)
	MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error
}

// LinkFetcher is best-effort: nil means the page could not be fetched in time.
type LinkFetcher interface {
	FetchMetadata(ctx context.Context, url string) *LinkMetadata
	FetchPageContent(ctx context.Context, url string) *PageContent
}

type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// TokenSource resolves an OAuth access token for a user. An empty token with a
// nil error means the integration is not connected.
type TokenSource interface {
	AccessToken(ctx context.Context, userID uuid.UUID) (string, error)
}

type CalendarClient interface {
	CreateEvent(ctx context.Context, token string, event CalendarEvent) (string, error)
}

type MailClient interface {
	Send(ctx context.Context, token string, email Email) error
}

type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}
