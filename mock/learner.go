package mock

import (
	"context"

	"github.com/fwojciec/adaptext"
)

var _ adaptext.SelectorLearner = (*SelectorLearner)(nil)

// SelectorLearner is a mock implementation of adaptext.SelectorLearner.
type SelectorLearner struct {
	LearnSelectorsFn        func(ctx context.Context, doc adaptext.Document, contentType adaptext.ContentType, domain, knownContent string) ([]string, error)
	ReportResultFn          func(ctx context.Context, selector string, contentType adaptext.ContentType, domain string, success bool)
	GetLearnedSelectorsFn   func(contentType adaptext.ContentType, domain string) []string
	GetSelectorConfidenceFn func(selector string) float64
}

func (l *SelectorLearner) LearnSelectors(ctx context.Context, doc adaptext.Document, contentType adaptext.ContentType, domain, knownContent string) ([]string, error) {
	return l.LearnSelectorsFn(ctx, doc, contentType, domain, knownContent)
}

func (l *SelectorLearner) ReportResult(ctx context.Context, selector string, contentType adaptext.ContentType, domain string, success bool) {
	l.ReportResultFn(ctx, selector, contentType, domain, success)
}

func (l *SelectorLearner) GetLearnedSelectors(contentType adaptext.ContentType, domain string) []string {
	return l.GetLearnedSelectorsFn(contentType, domain)
}

func (l *SelectorLearner) GetSelectorConfidence(selector string) float64 {
	return l.GetSelectorConfidenceFn(selector)
}
