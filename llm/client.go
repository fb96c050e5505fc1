package llm

import (
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
)

const DefaultBaseURL = "https://api.cerebras.ai/v1"

// NewClient builds a chat-completion client against an OpenAI-compatible
// endpoint. The timeout bounds the whole request so a stalled upstream cannot
// hold a chat request open forever.
func NewClient(apiKey, baseURL, timeout string) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	config.BaseURL = baseURL

	dur, err := time.ParseDuration(timeout)
	if err != nil {
		dur = 60 * time.Second
	}
	config.HTTPClient = &http.Client{
		Timeout: dur,
	}

	return openai.NewClientWithConfig(config)
}
