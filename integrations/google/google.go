// Package google calls the Calendar and Gmail REST APIs with a user's OAuth
// access token. Non-2xx responses surface as errors; there are no retries.
package google

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/actually-app/actually/core/types"
)

const (
	defaultCalendarURL = "https://www.googleapis.com/calendar/v3/calendars/primary/events"
	defaultGmailURL    = "https://gmail.googleapis.com/gmail/v1/users/me/messages/send"
)

type Client struct {
	httpClient  *http.Client
	calendarURL string
	gmailURL    string
}

func NewClient() *Client {
	return NewClientWithEndpoints(defaultCalendarURL, defaultGmailURL)
}

func NewClientWithEndpoints(calendarURL, gmailURL string) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		calendarURL: calendarURL,
		gmailURL:    gmailURL,
	}
}

type eventTime struct {
	DateTime string `json:"dateTime"`
}

type attendee struct {
	Email string `json:"email"`
}

type calendarEventPayload struct {
	Summary     string     `json:"summary"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	Start       eventTime  `json:"start"`
	End         eventTime  `json:"end"`
	Attendees   []attendee `json:"attendees,omitempty"`
}

// CreateEvent creates an event on the user's primary calendar and returns the
// event id. An event without an explicit end time ends when it starts.
func (c *Client) CreateEvent(ctx context.Context, token string, event types.CalendarEvent) (string, error) {
	end := event.StartAt
	if event.EndAt != nil {
		end = *event.EndAt
	}

	payload := calendarEventPayload{
		Summary:     event.Title,
		Description: event.Description,
		Location:    event.Location,
		Start:       eventTime{DateTime: event.StartAt.Format(time.RFC3339)},
		End:         eventTime{DateTime: end.Format(time.RFC3339)},
	}
	for _, email := range event.Attendees {
		payload.Attendees = append(payload.Attendees, attendee{Email: email})
	}

	body, err := c.post(ctx, c.calendarURL, token, payload)
	if err != nil {
		return "", fmt.Errorf("google calendar: %w", err)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return "", fmt.Errorf("google calendar: decode response: %w", err)
	}
	return created.ID, nil
}

// Send delivers an email through the Gmail API. The message is a minimal
// RFC 2822 text payload, base64url-encoded without padding as Gmail expects.
func (c *Client) Send(ctx context.Context, token string, email types.Email) error {
	lines := []string{
		fmt.Sprintf("To: %s", email.To),
		"Content-Type: text/plain; charset=UTF-8",
		"MIME-Version: 1.0",
		fmt.Sprintf("Subject: %s", email.Subject),
		"",
		email.Body,
	}
	raw := base64.RawURLEncoding.EncodeToString([]byte(strings.Join(lines, "\r\n")))

	if _, err := c.post(ctx, c.gmailURL, token, map[string]string{"raw": raw}); err != nil {
		return fmt.Errorf("gmail: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, url, token string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("upstream error %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
