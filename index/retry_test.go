package index

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendisearch/vendisearch/ai"
)

func TestRetryWithBackoff_SucceedsFirstTry(t *testing.T) {
	attempts := 0
	err := RetryWithBackoff(context.Background(), func() error {
		attempts++
		return nil
	}, 3, time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRetryWithBackoff_RetriesTransient(t *testing.T) {
	attempts := 0
	err := RetryWithBackoff(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return ai.Transient("embed texts", errors.New("rate limit"))
		}
		return nil
	}, 5, time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryWithBackoff_StopsOnPermanent(t *testing.T) {
	attempts := 0
	permanent := ai.Permanent("embed texts", errors.New("bad api key"))
	err := RetryWithBackoff(context.Background(), func() error {
		attempts++
		return permanent
	}, 5, time.Millisecond)

	require.Error(t, err)
	assert.Equal(t, 1, attempts, "permanent failures must not be retried")
	assert.ErrorIs(t, err, permanent)
}

func TestRetryWithBackoff_ExhaustsAttempts(t *testing.T) {
	attempts := 0
	err := RetryWithBackoff(context.Background(), func() error {
		attempts++
		return ai.Transient("embed texts", errors.New("timeout"))
	}, 3, time.Millisecond)

	require.Error(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryWithBackoff_InvalidMaxAttempts(t *testing.T) {
	err := RetryWithBackoff(context.Background(), func() error { return nil }, 0, time.Millisecond)
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
}

func TestRetryWithBackoff_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return ai.Transient("embed texts", errors.New("timeout"))
	}, 3, time.Millisecond)

	assert.ErrorIs(t, err, context.Canceled)
}
