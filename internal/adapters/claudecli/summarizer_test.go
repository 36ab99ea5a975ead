package claudecli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indexmd/internal/domain"
)

func TestParseResult(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    string
		wantErr string
	}{
		{
			name:   "plain result",
			output: `{"type":"result","is_error":false,"result":"Parses config files."}`,
			want:   "Parses config files.",
		},
		{
			name:   "quoted result",
			output: `{"type":"result","result":"  \"Parses config files.\"\n"}`,
			want:   "Parses config files.",
		},
		{
			name:   "code block",
			output: "{\"result\":\"```text\\nparsing, cli\\n```\"}",
			want:   "parsing, cli",
		},
		{
			name:   "code block inside prose is kept",
			output: "{\"result\":\"Use it like\\n```go\\nx()\\n```\"}",
			want:   "Use it like\n```go\nx()\n```",
		},
		{
			name:   "empty result",
			output: `{"result":""}`,
			want:   "",
		},
		{
			name:    "error result",
			output:  `{"is_error":true,"result":"rate limited"}`,
			wantErr: "claude returned an error: rate limited",
		},
		{
			name:    "not json",
			output:  `oops`,
			wantErr: "failed to parse claude response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseResult([]byte(tt.output))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSummarizer_Arguments(t *testing.T) {
	var gotName string
	var gotArgs []string
	s := NewSummarizer(WithModel("sonnet"), WithBinary("/opt/claude"))
	s.run = func(_ context.Context, name string, args ...string) ([]byte, error) {
		gotName = name
		gotArgs = args
		return []byte(`{"result":"ok"}`), nil
	}

	reply, err := s.Summarize(context.Background(), "func main() {}", "")
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
	assert.Equal(t, "/opt/claude", gotName)
	assert.Equal(t, []string{
		"-p", domain.FormatPrompt(domain.DefaultQuestion, "func main() {}"),
		"--output-format", "json",
		"--model", "sonnet",
	}, gotArgs)
}

func TestSummarizer_CommandFailure(t *testing.T) {
	s := NewSummarizer()
	s.run = func(context.Context, string, ...string) ([]byte, error) {
		return nil, errors.New("claude CLI error: not logged in")
	}

	_, err := s.Summarize(context.Background(), "text", domain.FileQuestion)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestWithModel_IgnoresEmpty(t *testing.T) {
	assert.Equal(t, "haiku", NewSummarizer(WithModel("")).model)
}
