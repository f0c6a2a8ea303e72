// Package retry provides exponential backoff for transient failures.
package retry

import (
	"math"
	"math/rand/v2"
	"time"
)

// Config controls the backoff schedule.
type Config struct {
	// MaxAttempts bounds the total number of attempts; the first request
	// counts as attempt 1.
	MaxAttempts int

	// InitialDelay is the wait before the first retry.
	InitialDelay time.Duration

	// MaxDelay caps the wait between retries.
	MaxDelay time.Duration

	// Multiplier grows the delay after each failed attempt.
	Multiplier float64

	// Jitter randomizes each delay by a factor in [1-Jitter, 1+Jitter].
	Jitter float64
}

// DefaultConfig returns the standard schedule: 10 attempts, starting at
// 1s, doubling up to 60s, with 10% jitter.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  10,
		InitialDelay: time.Second,
		MaxDelay:     60 * time.Second,
		Multiplier:   2.0,
		Jitter:       0.1,
	}
}

// Disabled returns a schedule with a single attempt and no retries.
func Disabled() Config {
	return Config{MaxAttempts: 1}
}

// Delay returns the wait before the retry following the given attempt
// (0-indexed): min(MaxDelay, InitialDelay * Multiplier^attempt), jittered.
func (c Config) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	delay := math.Min(
		float64(c.InitialDelay)*math.Pow(c.Multiplier, float64(attempt)),
		float64(c.MaxDelay),
	)

	if c.Jitter > 0 {
		delay *= 1 + (rand.Float64()*2-1)*c.Jitter
	}

	return time.Duration(delay)
}
