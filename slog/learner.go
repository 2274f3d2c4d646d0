// Package slog provides logging decorators for adaptext domain interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/adaptext"
)

// Ensure LoggingLearner implements adaptext.SelectorLearner.
var _ adaptext.SelectorLearner = (*LoggingLearner)(nil)

// LoggingLearner wraps a SelectorLearner with debug logging of learning
// activity.
type LoggingLearner struct {
	next   adaptext.SelectorLearner
	logger *slog.Logger
}

// NewLoggingLearner creates a new LoggingLearner.
func NewLoggingLearner(next adaptext.SelectorLearner, logger *slog.Logger) *LoggingLearner {
	return &LoggingLearner{next: next, logger: logger}
}

// LearnSelectors delegates to the wrapped learner and logs the outcome.
func (l *LoggingLearner) LearnSelectors(ctx context.Context, doc adaptext.Document, contentType adaptext.ContentType, domain, knownContent string) ([]string, error) {
	begin := time.Now()
	selectors, err := l.next.LearnSelectors(ctx, doc, contentType, domain, knownContent)
	l.logger.Info("learn selectors",
		"contentType", string(contentType),
		"domain", domain,
		"known", knownContent != "",
		"selectors", len(selectors),
		"duration", time.Since(begin),
		"error", err,
	)
	return selectors, err
}

// ReportResult delegates to the wrapped learner and logs the feedback.
func (l *LoggingLearner) ReportResult(ctx context.Context, selector string, contentType adaptext.ContentType, domain string, success bool) {
	l.next.ReportResult(ctx, selector, contentType, domain, success)
	l.logger.Debug("report result",
		"selector", selector,
		"contentType", string(contentType),
		"domain", domain,
		"success", success,
	)
}

// GetLearnedSelectors delegates to the wrapped learner.
func (l *LoggingLearner) GetLearnedSelectors(contentType adaptext.ContentType, domain string) []string {
	return l.next.GetLearnedSelectors(contentType, domain)
}

// GetSelectorConfidence delegates to the wrapped learner.
func (l *LoggingLearner) GetSelectorConfidence(selector string) float64 {
	return l.next.GetSelectorConfidence(selector)
}
