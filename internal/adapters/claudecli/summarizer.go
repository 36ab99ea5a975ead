package claudecli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"indexmd/internal/domain"
)

// Summarizer implements ports.Summarizer using the Claude Code CLI
type Summarizer struct {
	model  string
	binary string
	run    runFunc
}

type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Option configures the Summarizer
type Option func(*Summarizer)

// WithModel sets the Claude model to use
func WithModel(model string) Option {
	return func(s *Summarizer) {
		if model != "" {
			s.model = model
		}
	}
}

// WithBinary sets the path of the claude executable
func WithBinary(path string) Option {
	return func(s *Summarizer) {
		s.binary = path
	}
}

// NewSummarizer creates a new Claude CLI summarizer
func NewSummarizer(opts ...Option) *Summarizer {
	s := &Summarizer{
		model:  "haiku", // Default to haiku for speed
		binary: "claude",
		run:    runCommand,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// claudeResponse represents the JSON output from claude CLI
type claudeResponse struct {
	Type       string  `json:"type"`
	Subtype    string  `json:"subtype"`
	CostUSD    float64 `json:"cost_usd"`
	DurationMS int     `json:"duration_ms"`
	IsError    bool    `json:"is_error"`
	NumTurns   int     `json:"num_turns"`
	Result     string  `json:"result"`
	SessionID  string  `json:"session_id"`
}

// Summarize asks Claude the question about text
func (s *Summarizer) Summarize(ctx context.Context, text, question string) (string, error) {
	args := []string{
		"-p", domain.FormatPrompt(question, text),
		"--output-format", "json",
		"--model", s.model,
	}

	output, err := s.run(ctx, s.binary, args...)
	if err != nil {
		return "", err
	}
	return parseResult(output)
}

// IsAvailable checks if the claude CLI is installed and accessible
func (s *Summarizer) IsAvailable() bool {
	_, err := exec.LookPath(s.binary)
	return err == nil
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	output, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("claude CLI error: %s", string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("claude CLI error: %w", err)
	}
	return output, nil
}

var codeBlockRe = regexp.MustCompile("```(?:\\w+)?\\s*\\n?([\\s\\S]*?)\\n?```")

// parseResult extracts the reply text from the CLI JSON envelope.
// A reply wrapped entirely in a code block is unwrapped.
func parseResult(output []byte) (string, error) {
	var response claudeResponse
	if err := json.Unmarshal(output, &response); err != nil {
		return "", fmt.Errorf("failed to parse claude response: %w", err)
	}

	if response.IsError {
		return "", fmt.Errorf("claude returned an error: %s", response.Result)
	}

	result := strings.TrimSpace(response.Result)
	if matches := codeBlockRe.FindStringSubmatch(result); len(matches) > 1 && strings.HasPrefix(result, "```") {
		result = matches[1]
	}
	return domain.CleanReply(result), nil
}
