package strider

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestErrorCategories(t *testing.T) {
	t.Run("transient", func(t *testing.T) {
		err := NewTransientError("rate limited", 429, nil)
		assert.True(t, IsTransient(err))
		assert.False(t, IsPermanent(err))
		assert.True(t, err.Retryable())
		assert.Equal(t, 429, StatusCodeOf(err))
	})

	t.Run("permanent", func(t *testing.T) {
		err := NewPermanentError("bad api key", 401, nil)
		assert.True(t, IsPermanent(err))
		assert.False(t, err.Retryable())
	})

	t.Run("user input", func(t *testing.T) {
		err := NewUserInputError("bad request", 400, nil)
		assert.True(t, IsUserInput(err))
	})
}

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewTransientError("chat failed", 503, cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "chat failed")
	assert.Contains(t, err.Error(), "connection reset")

	// Categorization survives further wrapping.
	wrapped := fmt.Errorf("request: %w", err)
	assert.True(t, IsTransient(wrapped))
	assert.Equal(t, 503, StatusCodeOf(wrapped))
}

func TestRetryAfter(t *testing.T) {
	err := NewTransientErrorWithRetry("rate limited", 429, 5*time.Second, nil)
	assert.Equal(t, 5*time.Second, RetryAfterOf(err))
	assert.Equal(t, time.Duration(0), RetryAfterOf(errors.New("plain")))
}

func TestUncategorizedError(t *testing.T) {
	err := errors.New("something else")
	assert.False(t, IsTransient(err))
	assert.False(t, IsPermanent(err))
	assert.Equal(t, 0, StatusCodeOf(err))
}
