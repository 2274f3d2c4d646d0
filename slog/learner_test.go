package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/adaptext"
	"github.com/fwojciec/adaptext/mock"
	adaptextslog "github.com/fwojciec/adaptext/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingLearner_LearnSelectors(t *testing.T) {
	t.Parallel()

	t.Run("logs the outcome with duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SelectorLearner{
			LearnSelectorsFn: func(ctx context.Context, doc adaptext.Document, contentType adaptext.ContentType, domain, knownContent string) ([]string, error) {
				return []string{"h1.headline", "h1"}, nil
			},
		}

		learner := adaptextslog.NewLoggingLearner(inner, logger)
		selectors, err := learner.LearnSelectors(context.Background(), &mock.Document{}, adaptext.ContentTypeTitle, "example.com", "Hello World")

		require.NoError(t, err)
		assert.Equal(t, []string{"h1.headline", "h1"}, selectors)
		output := buf.String()
		assert.Contains(t, output, "learn selectors")
		assert.Contains(t, output, "contentType=title")
		assert.Contains(t, output, "domain=example.com")
		assert.Contains(t, output, "selectors=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs the error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SelectorLearner{
			LearnSelectorsFn: func(ctx context.Context, doc adaptext.Document, contentType adaptext.ContentType, domain, knownContent string) ([]string, error) {
				return nil, adaptext.Errorf(adaptext.EINVALID, "document required")
			},
		}

		learner := adaptextslog.NewLoggingLearner(inner, logger)
		_, err := learner.LearnSelectors(context.Background(), nil, adaptext.ContentTypeTitle, "example.com", "")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "document required")
	})
}

func TestLoggingLearner_ReportResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	var gotSelector string
	inner := &mock.SelectorLearner{
		ReportResultFn: func(ctx context.Context, selector string, contentType adaptext.ContentType, domain string, success bool) {
			gotSelector = selector
		},
	}

	learner := adaptextslog.NewLoggingLearner(inner, logger)
	learner.ReportResult(context.Background(), "h1.headline", adaptext.ContentTypeTitle, "example.com", true)

	assert.Equal(t, "h1.headline", gotSelector)
	output := buf.String()
	assert.Contains(t, output, "report result")
	assert.Contains(t, output, "success=true")
}

func TestLoggingLearner_Delegation(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	inner := &mock.SelectorLearner{
		GetLearnedSelectorsFn: func(contentType adaptext.ContentType, domain string) []string {
			return []string{"h1"}
		},
		GetSelectorConfidenceFn: func(selector string) float64 {
			return 1.21
		},
	}

	learner := adaptextslog.NewLoggingLearner(inner, logger)

	assert.Equal(t, []string{"h1"}, learner.GetLearnedSelectors(adaptext.ContentTypeTitle, "example.com"))
	assert.Equal(t, 1.21, learner.GetSelectorConfidence("h1.headline"))
}
