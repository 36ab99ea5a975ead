// Package openai summarizes text with any OpenAI compatible chat completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"indexmd/internal/domain"
)

// DefaultEndpoint is the public OpenAI API
const DefaultEndpoint = "https://api.openai.com/v1"

// DefaultModel is used when no model is configured
const DefaultModel = "gpt-4o-mini"

// ErrNotConfigured is returned when no API key is set
var ErrNotConfigured = errors.New("openai API key not configured")

// Client implements ports.Summarizer against /chat/completions
type Client struct {
	Endpoint string
	Model    string
	Debug    bool
	apiKey   string
	client   *http.Client
}

// ChatMessage represents a single message in a chat conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a request to the chat completions endpoint.
type ChatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

// ChatResponse represents a response from the chat completions endpoint.
type ChatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

type apiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewClient builds a new client
func NewClient(endpoint, apiKey, model string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		Endpoint: strings.TrimRight(endpoint, "/"),
		Model:    model,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 2 * time.Minute},
	}
}

// IsConfigured reports whether an API key is set
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// Summarize sends the prompt as a single user message.
func (c *Client) Summarize(ctx context.Context, text, question string) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	reqBody := ChatRequest{
		Model:    c.Model,
		Messages: []ChatMessage{{Role: "user", Content: domain.FormatPrompt(question, text)}},
		Stream:   false,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	c.logf("request /chat/completions payload: %s", truncate(string(body), 2048))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return "", err
	}
	c.logf("response /chat/completions payload: %s", truncate(string(responseBody), 2048))

	if resp.StatusCode >= 300 {
		var apiErr apiErrorResponse
		if json.Unmarshal(responseBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("openai error: %s: %s", resp.Status, apiErr.Error.Message)
		}
		return "", fmt.Errorf("openai error: %s", resp.Status)
	}

	var decoded ChatResponse
	if err := json.Unmarshal(responseBody, &decoded); err != nil {
		return "", fmt.Errorf("failed to decode openai response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", nil
	}
	return domain.CleanReply(decoded.Choices[0].Message.Content), nil
}

func (c *Client) logf(format string, args ...any) {
	if !c.Debug {
		return
	}
	log.Printf("[openai] "+format, args...)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
