// Package resolve turns a user message plus optional link context into a
// natural-language reply and a list of typed actions, via one bounded
// chat-completion call.
package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/actually-app/actually/core/types"
)

const DefaultModel = "llama-3.3-70b"

const (
	maxTokens   = 400
	temperature = 0.6
)

const systemPrompt = "You are the Actual.ly AI agent. Respond ONLY as JSON with keys: reply (string) and actions (array). " +
	"Action types: save_link {url, title?, collection?}, create_reminder {title?, remind_at ISO8601, note?}, " +
	"create_calendar_event {title?, start_at ISO8601, end_at?, location?, attendees?}, send_email {to, subject, body}. " +
	"If no action, return empty actions array. Use ISO8601 times in the user's local timezone if given. Be concise and proactive."

type Resolution struct {
	Reply   string
	Actions []types.ActionInput
}

type Resolver struct {
	client types.CompletionClient
	model  string
}

func New(client types.CompletionClient, model string) *Resolver {
	if model == "" {
		model = DefaultModel
	}
	return &Resolver{
		client: client,
		model:  model,
	}
}

// Resolve calls the completion endpoint and parses its output. A non-2xx
// upstream response is fatal for the request; no retry.
func (r *Resolver) Resolve(ctx context.Context, message string, metadata *types.LinkMetadata, content *types.PageContent) (*Resolution, error) {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(message, metadata, content)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no completion choices")
	}

	reply, actions := ParseModelOutput(strings.TrimSpace(resp.Choices[0].Message.Content))
	return &Resolution{Reply: reply, Actions: actions}, nil
}

func userPrompt(message string, metadata *types.LinkMetadata, content *types.PageContent) string {
	if metadata == nil {
		return fmt.Sprintf("User message: %s\nRespond with helpful next steps.", message)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "User message: %s\n\nLink metadata:\nTitle: %s\nDescription: %s\nDomain: %s\n",
		message, metadata.Title, metadata.Description, metadata.Domain)
	if content != nil && content.Text != "" {
		fmt.Fprintf(&b, "\nPage excerpt:\n%s\n", content.Text)
	}
	b.WriteString("\nProvide a summary and one recommended action.")
	return b.String()
}
