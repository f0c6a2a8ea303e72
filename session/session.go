// Package session provides identifiers and scoped logging for agent runs.
package session

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// NewID returns a fresh session identifier.
func NewID() string {
	return "sess-" + uuid.NewString()
}

// Scope tags a logger with a session ID and records the run's lifetime.
type Scope struct {
	id     string
	logger *slog.Logger
	start  time.Time
}

// Begin opens a new scope and logs the start of the run.
func Begin(logger *slog.Logger, task string) *Scope {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Scope{
		id:    NewID(),
		start: time.Now(),
	}
	s.logger = logger.With("session", s.id)
	s.logger.Info("session started", "task", task)
	return s
}

// ID returns the session identifier.
func (s *Scope) ID() string {
	return s.id
}

// Logger returns the session-tagged logger.
func (s *Scope) Logger() *slog.Logger {
	return s.logger
}

// End logs the end of the run with its outcome and duration.
func (s *Scope) End(outcome string, err error) {
	if err != nil {
		s.logger.Error("session ended", "outcome", outcome, "duration", time.Since(s.start), "error", err)
		return
	}
	s.logger.Info("session ended", "outcome", outcome, "duration", time.Since(s.start))
}
