package webui

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"gorm.io/datatypes"

	"github.com/actually-app/actually/core/agent"
	"github.com/actually-app/actually/core/types"
	models "github.com/actually-app/actually/dbmodels"
	"github.com/actually-app/actually/services/sweep"
)

// UserDirectory is what the handlers need from the user store.
type UserDirectory interface {
	ByExternalID(ctx context.Context, externalID string) (*models.User, error)
	ByPhone(ctx context.Context, phone string) (*models.User, error)
	UpdateAgentSettings(ctx context.Context, id uuid.UUID, settings datatypes.JSON) error
}

type ConnectionCounter interface {
	CountVerified(ctx context.Context, userID uuid.UUID) (int, error)
}

type GoogleTokenStore interface {
	Save(ctx context.Context, userID uuid.UUID, token *oauth2.Token) error
	Connected(ctx context.Context, userID uuid.UUID) (bool, error)
}

type Config struct {
	Agent         *agent.Agent
	Users         UserDirectory
	Conversations types.ConversationStore
	Actions       types.ActionLog
	SavedItems    types.SavedItemStore
	Connections   ConnectionCounter
	GoogleTokens  GoogleTokenStore
	GoogleOAuth   *oauth2.Config
	Sweeper       *sweep.Sweeper

	JWTSecret       string
	CronSecret      string
	TwilioAuthToken string
	PublicBaseURL   string
	DevBypassAuth   bool
}

type Option func(*Config)

func WithAgent(a *agent.Agent) Option {
	return func(c *Config) {
		c.Agent = a
	}
}

func WithUsers(users UserDirectory) Option {
	return func(c *Config) {
		c.Users = users
	}
}

func WithConversations(conversations types.ConversationStore) Option {
	return func(c *Config) {
		c.Conversations = conversations
	}
}

func WithActions(actions types.ActionLog) Option {
	return func(c *Config) {
		c.Actions = actions
	}
}

func WithSavedItems(items types.SavedItemStore) Option {
	return func(c *Config) {
		c.SavedItems = items
	}
}

func WithConnections(connections ConnectionCounter) Option {
	return func(c *Config) {
		c.Connections = connections
	}
}

func WithGoogleTokens(tokens GoogleTokenStore) Option {
	return func(c *Config) {
		c.GoogleTokens = tokens
	}
}

func WithGoogleOAuth(config *oauth2.Config) Option {
	return func(c *Config) {
		c.GoogleOAuth = config
	}
}

func WithSweeper(s *sweep.Sweeper) Option {
	return func(c *Config) {
		c.Sweeper = s
	}
}

func WithJWTSecret(secret string) Option {
	return func(c *Config) {
		c.JWTSecret = secret
	}
}

func WithCronSecret(secret string) Option {
	return func(c *Config) {
		c.CronSecret = secret
	}
}

func WithTwilioAuthToken(token string) Option {
	return func(c *Config) {
		c.TwilioAuthToken = token
	}
}

func WithPublicBaseURL(url string) Option {
	return func(c *Config) {
		c.PublicBaseURL = url
	}
}

func WithDevBypassAuth(enabled bool) Option {
	return func(c *Config) {
		c.DevBypassAuth = enabled
	}
}

func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

func NewConfig(opts ...Option) *Config {
	c := &Config{}
	c.Apply(opts...)
	return c
}
