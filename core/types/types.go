package types

import (
	"time"
)

const (
	ChannelWeb      = "web"
	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"
)

const (
	ActionSaveLink       = "save_link"
	ActionCreateReminder = "create_reminder"
	ActionCalendarEvent  = "create_calendar_event"
	ActionSendEmail      = "send_email"
)

// ActionInput is the normalized action handed from the intent resolver to the
// executor. Type is the only validated field; everything else is passed
// through as the model produced it. Unknown types survive normalization and
// simply match no executor branch.
type ActionInput struct {
	Type       string   `json:"type"`
	URL        string   `json:"url,omitempty"`
	Title      string   `json:"title,omitempty"`
	Collection string   `json:"collection,omitempty"`
	RemindAt   string   `json:"remind_at,omitempty"`
	StartAt    string   `json:"start_at,omitempty"`
	EndAt      string   `json:"end_at,omitempty"`
	Note       string   `json:"note,omitempty"`
	Location   string   `json:"location,omitempty"`
	Attendees  []string `json:"attendees,omitempty"`
	To         string   `json:"to,omitempty"`
	Subject    string   `json:"subject,omitempty"`
	Body       string   `json:"body,omitempty"`
}

type LinkMetadata struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Domain      string `json:"domain"`
}

type PageContent struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Text        string `json:"text"`
}

type Message struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

type CalendarEvent struct {
	Title       string
	StartAt     time.Time
	EndAt       *time.Time
	Description string
	Location    string
	Attendees   []string
}

type Email struct {
	To      string
	Subject string
	Body    string
}

// AgentSettings is the user-tunable agent configuration document, stored as a
// JSON column on the user row.
type AgentSettings struct {
	Tone            string           `json:"tone,omitempty"`
	Proactivity     string           `json:"proactivity,omitempty"`
	Verbosity       string           `json:"verbosity,omitempty"`
	WorkHours       *WorkHours       `json:"workHours,omitempty"`
	EnabledChannels *EnabledChannels `json:"enabledChannels,omitempty"`
}

type WorkHours struct {
	Enabled  bool   `json:"enabled"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Timezone string `json:"timezone"`
}

type EnabledChannels struct {
	SMS      bool `json:"sms"`
	WhatsApp bool `json:"whatsapp"`
	Web      bool `json:"web"`
}
