package llm

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RateLimitError is returned when a call would exceed the configured request
// budget. RetryAfter is how long until the oldest counted request leaves the
// window.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("LLM rate limit exceeded, retry after %s", e.RetryAfter.Round(time.Millisecond))
}

// Limiter enforces a sliding-window request budget across all LLM calls that
// share it. Safe for concurrent use.
type Limiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	stamps []time.Time
	now    func() time.Time
}

// NewLimiter creates a limiter allowing limit requests per window.
func NewLimiter(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow records one request if the budget permits. Returns a *RateLimitError
// when the window is full.
func (l *Limiter) Allow() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	kept := l.stamps[:0]
	for _, ts := range l.stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	l.stamps = kept

	if len(l.stamps) >= l.limit {
		return &RateLimitError{RetryAfter: l.stamps[0].Sub(cutoff)}
	}

	l.stamps = append(l.stamps, now)
	return nil
}

// limitedClient wraps a Client with rate limiting and a per-call timeout.
type limitedClient struct {
	inner   Client
	limiter *Limiter
	timeout time.Duration
}

// NewLimitedClient decorates a client so every generation call consumes rate
// limit budget and runs under a deadline. A zero timeout disables the deadline.
func NewLimitedClient(inner Client, limiter *Limiter, timeout time.Duration) Client {
	return &limitedClient{inner: inner, limiter: limiter, timeout: timeout}
}

func (c *limitedClient) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *limitedClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier, temperature float32) (string, error) {
	if err := c.limiter.Allow(); err != nil {
		return "", err
	}
	ctx, cancel := c.withDeadline(ctx)
	defer cancel()
	return c.inner.GenerateJSON(ctx, prompt, tier, temperature)
}

func (c *limitedClient) GenerateWithHistory(ctx context.Context, systemPrompt string, history []Message, tier ModelTier, temperature float32) (string, error) {
	if err := c.limiter.Allow(); err != nil {
		return "", err
	}
	ctx, cancel := c.withDeadline(ctx)
	defer cancel()
	return c.inner.GenerateWithHistory(ctx, systemPrompt, history, tier, temperature)
}

func (c *limitedClient) Close() error {
	return c.inner.Close()
}
