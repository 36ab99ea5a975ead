// Package throttle rate limits calls to a summarizer.
package throttle

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"indexmd/internal/ports"
)

// Summarizer wraps another summarizer and waits for a token before each call
type Summarizer struct {
	next    ports.Summarizer
	limiter *rate.Limiter
}

// Wrap returns next limited to perSecond calls per second. A non-positive
// rate disables limiting and returns next unchanged.
func Wrap(next ports.Summarizer, perSecond float64) ports.Summarizer {
	if perSecond <= 0 {
		return next
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return &Summarizer{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Summarize blocks until the limiter allows a call or ctx is done
func (s *Summarizer) Summarize(ctx context.Context, text, question string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed waiting for summarizer slot: %w", err)
	}
	return s.next.Summarize(ctx, text, question)
}
