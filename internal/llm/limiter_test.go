package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_AllowsUpToLimit(t *testing.T) {
	l := NewLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.NoError(t, l.Allow())
	}

	err := l.Allow()
	require.Error(t, err)
	var rlErr *RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Greater(t, rlErr.RetryAfter, time.Duration(0))
}

func TestLimiter_WindowSlides(t *testing.T) {
	current := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewLimiter(2, time.Minute)
	l.now = func() time.Time { return current }

	require.NoError(t, l.Allow())
	require.NoError(t, l.Allow())
	require.Error(t, l.Allow())

	// Advance past the window; budget is restored.
	current = current.Add(61 * time.Second)
	assert.NoError(t, l.Allow())
}

func TestLimiter_RetryAfterReflectsOldestRequest(t *testing.T) {
	current := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewLimiter(1, time.Minute)
	l.now = func() time.Time { return current }

	require.NoError(t, l.Allow())

	current = current.Add(20 * time.Second)
	err := l.Allow()
	var rlErr *RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, 40*time.Second, rlErr.RetryAfter)
}

type stubClient struct {
	calls int
}

func (s *stubClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier, temperature float32) (string, error) {
	s.calls++
	return "{}", nil
}

func (s *stubClient) GenerateWithHistory(ctx context.Context, systemPrompt string, history []Message, tier ModelTier, temperature float32) (string, error) {
	s.calls++
	return "ok", nil
}

func (s *stubClient) Close() error { return nil }

func TestLimitedClient_BlocksWhenBudgetExhausted(t *testing.T) {
	stub := &stubClient{}
	client := NewLimitedClient(stub, NewLimiter(1, time.Minute), 0)

	_, err := client.GenerateJSON(context.Background(), "p", TierStandard, 0.1)
	require.NoError(t, err)

	_, err = client.GenerateJSON(context.Background(), "p", TierStandard, 0.1)
	var rlErr *RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, 1, stub.calls)
}

func TestLimitedClient_SharedBudgetAcrossMethods(t *testing.T) {
	stub := &stubClient{}
	client := NewLimitedClient(stub, NewLimiter(2, time.Minute), time.Second)

	_, err := client.GenerateJSON(context.Background(), "p", TierStandard, 0.1)
	require.NoError(t, err)
	_, err = client.GenerateWithHistory(context.Background(), "sys", []Message{{Role: "user", Content: "hi"}}, TierAdvanced, 0.3)
	require.NoError(t, err)

	_, err = client.GenerateJSON(context.Background(), "p", TierStandard, 0.1)
	require.Error(t, err)
	assert.Equal(t, 2, stub.calls)
}
