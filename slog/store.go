package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/adaptext"
)

// Ensure LoggingStore implements adaptext.LearningStore.
var _ adaptext.LearningStore = (*LoggingStore)(nil)

// LoggingStore wraps a LearningStore with debug logging of persistence
// operations.
type LoggingStore struct {
	next   adaptext.LearningStore
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next adaptext.LearningStore, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

// Save delegates to the wrapped store and logs the write.
func (s *LoggingStore) Save(ctx context.Context, state *adaptext.LearningState) error {
	begin := time.Now()
	err := s.next.Save(ctx, state)
	s.logger.Debug("save learning state",
		"contentTypes", len(state.SelectorScores),
		"domains", len(state.DomainPatterns),
		"duration", time.Since(begin),
		"error", err,
	)
	return err
}

// Load delegates to the wrapped store and logs the read.
func (s *LoggingStore) Load(ctx context.Context) (*adaptext.LearningState, error) {
	begin := time.Now()
	state, err := s.next.Load(ctx)
	s.logger.Debug("load learning state",
		"duration", time.Since(begin),
		"error", err,
	)
	return state, err
}
