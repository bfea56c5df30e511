// Package groq provides an adapter for the Groq chat-completions service.
// Calls are constrained to return a single JSON object; the raw content bytes
// are handed back for the caller to decode against its own schema. Running
// without an API key is a supported mode and yields ErrLLMNotConfigured.
package groq

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/vibelist-labs/vibelist/internal/core/ports"
)

const defaultBaseURL = "https://api.groq.com"

const requestTimeout = 20 * time.Second

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	http   *resty.Client
	apiKey string
	model  string
}

var _ ports.ChatCompleter = (*Client)(nil)

// NewClient constructs a Groq client. An empty apiKey is valid; every call
// then returns ports.ErrLLMNotConfigured.
func NewClient(baseURL, apiKey, model string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		http:   resty.New().SetBaseURL(baseURL).SetTimeout(requestTimeout),
		apiKey: apiKey,
		model:  model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// CompleteJSON sends a system+user prompt and returns the model's JSON
// content bytes.
func (c *Client) CompleteJSON(ctx context.Context, system, user string, temperature float64) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ports.ErrLLMNotConfigured
	}

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    temperature,
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	var parsed chatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetResult(&parsed).
		Post("/openai/v1/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("groq: request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("groq: unexpected status %d", resp.StatusCode())
	}

	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return nil, fmt.Errorf("groq: empty response")
	}
	return []byte(parsed.Choices[0].Message.Content), nil
}
