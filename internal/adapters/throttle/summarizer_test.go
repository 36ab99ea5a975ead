package throttle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoSummarizer struct {
	calls int
}

func (e *echoSummarizer) Summarize(_ context.Context, text, _ string) (string, error) {
	e.calls++
	return text, nil
}

func TestWrap_DisabledReturnsNext(t *testing.T) {
	next := &echoSummarizer{}
	assert.Same(t, next, Wrap(next, 0))
}

func TestWrap_PassesThrough(t *testing.T) {
	next := &echoSummarizer{}
	s := Wrap(next, 100)

	reply, err := s.Summarize(context.Background(), "hello", "")
	require.NoError(t, err)
	assert.Equal(t, "hello", reply)
	assert.Equal(t, 1, next.calls)
}

func TestWrap_HonoursContext(t *testing.T) {
	next := &echoSummarizer{}
	s := Wrap(next, 0.01) // one call per 100 seconds, burst 1

	_, err := s.Summarize(context.Background(), "first", "")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = s.Summarize(ctx, "second", "")
	require.Error(t, err)
	assert.Equal(t, 1, next.calls)
}
