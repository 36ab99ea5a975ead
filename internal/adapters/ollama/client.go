// Package ollama summarizes text with a local Ollama server.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"indexmd/internal/domain"
)

// DefaultEndpoint is where a local Ollama listens
const DefaultEndpoint = "http://localhost:11434"

// DefaultModel is small enough to run on a laptop
const DefaultModel = "phi3:mini"

// Client implements ports.Summarizer against the Ollama generate API
type Client struct {
	Endpoint string
	Model    string
	Debug    bool
	client   *http.Client
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response   string `json:"response"`
	Done       bool   `json:"done"`
	DoneReason string `json:"done_reason"`
	EvalCount  int    `json:"eval_count"`
}

// NewClient builds a new Ollama client.
func NewClient(endpoint, model string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		Endpoint: strings.TrimRight(endpoint, "/"),
		Model:    model,
		client: &http.Client{
			Timeout: 3 * time.Minute,
		},
	}
}

// Summarize sends one non-streaming generate request.
func (c *Client) Summarize(ctx context.Context, text, question string) (string, error) {
	payload := generateRequest{
		Model:  c.Model,
		Prompt: domain.FormatPrompt(question, text),
		Stream: false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	c.logf("request /api/generate payload: %s", truncate(string(body), 2048))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		detail := strings.TrimSpace(string(msg))
		if detail != "" {
			return "", fmt.Errorf("ollama error: %s: %s", resp.Status, detail)
		}
		return "", fmt.Errorf("ollama error: %s", resp.Status)
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	c.logf("response /api/generate payload: %s", truncate(string(responseBody), 2048))

	var decoded generateResponse
	if err := json.Unmarshal(responseBody, &decoded); err != nil {
		return "", fmt.Errorf("failed to decode ollama response: %w", err)
	}
	return domain.CleanReply(decoded.Response), nil
}

func (c *Client) logf(format string, args ...any) {
	if !c.Debug {
		return
	}
	log.Printf("[ollama] "+format, args...)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
