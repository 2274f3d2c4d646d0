package learn_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/adaptext"
	"github.com/fwojciec/adaptext/goquery"
	"github.com/fwojciec/adaptext/learn"
	"github.com/fwojciec/adaptext/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Learner implements adaptext.SelectorLearner at compile time.
var _ adaptext.SelectorLearner = (*learn.Learner)(nil)

const articleHTML = `<article><h1 class="headline">Hello World</h1><div class="content">Body text here</div></article>`

// emptyStore returns a mock store that loads an empty state and accepts
// every save.
func emptyStore() *mock.LearningStore {
	return &mock.LearningStore{
		SaveFn: func(ctx context.Context, state *adaptext.LearningState) error { return nil },
		LoadFn: func(ctx context.Context) (*adaptext.LearningState, error) {
			return adaptext.NewLearningState(), nil
		},
	}
}

func parseDoc(t *testing.T, html string) adaptext.Document {
	t.Helper()
	doc, err := goquery.ParseDocument(html)
	require.NoError(t, err)
	return doc
}

func TestLearner_LearnSelectors(t *testing.T) {
	t.Parallel()

	t.Run("discovers headline selector from known content", func(t *testing.T) {
		t.Parallel()

		learner := learn.NewLearner(context.Background(), emptyStore())
		doc := parseDoc(t, articleHTML)

		selectors, err := learner.LearnSelectors(context.Background(), doc, adaptext.ContentTypeTitle, "example.com", "Hello World")

		require.NoError(t, err)
		require.NotEmpty(t, selectors)
		assert.Contains(t, selectors, "h1.headline")
	})

	t.Run("discovered selectors re-find the known content", func(t *testing.T) {
		t.Parallel()

		learner := learn.NewLearner(context.Background(), emptyStore())
		doc := parseDoc(t, articleHTML)

		selectors, err := learner.LearnSelectors(context.Background(), doc, adaptext.ContentTypeTitle, "example.com", "Hello World")
		require.NoError(t, err)
		require.NotEmpty(t, selectors)

		for _, selector := range selectors {
			elements, err := doc.Select(selector)
			require.NoError(t, err, "selector %q must be queryable", selector)

			found := false
			for _, el := range elements {
				if strings.Contains(el.Text(), "Hello World") {
					found = true
					break
				}
			}
			assert.True(t, found, "selector %q must match the known content", selector)
		}
	})

	t.Run("replay is idempotent", func(t *testing.T) {
		t.Parallel()

		learner := learn.NewLearner(context.Background(), emptyStore())
		doc := parseDoc(t, articleHTML)

		first, err := learner.LearnSelectors(context.Background(), doc, adaptext.ContentTypeTitle, "example.com", "Hello World")
		require.NoError(t, err)
		second, err := learner.LearnSelectors(context.Background(), doc, adaptext.ContentTypeTitle, "example.com", "Hello World")
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("replays domain patterns without known content", func(t *testing.T) {
		t.Parallel()

		learner := learn.NewLearner(context.Background(), emptyStore())
		doc := parseDoc(t, articleHTML)

		_, err := learner.LearnSelectors(context.Background(), doc, adaptext.ContentTypeTitle, "example.com", "Hello World")
		require.NoError(t, err)

		selectors, err := learner.LearnSelectors(context.Background(), doc, adaptext.ContentTypeTitle, "example.com", "")
		require.NoError(t, err)
		assert.Contains(t, selectors, "h1.headline")
	})

	t.Run("reuses selectors learned on another domain", func(t *testing.T) {
		t.Parallel()

		learner := learn.NewLearner(context.Background(), emptyStore())
		doc := parseDoc(t, articleHTML)

		_, err := learner.LearnSelectors(context.Background(), doc, adaptext.ContentTypeTitle, "first.com", "Hello World")
		require.NoError(t, err)

		// A different domain with the same page structure replays the
		// general selector pool, no discovery needed.
		selectors, err := learner.LearnSelectors(context.Background(), doc, adaptext.ContentTypeTitle, "second.com", "Hello World")
		require.NoError(t, err)
		assert.Contains(t, selectors, "h1.headline")
	})

	t.Run("skips unqueryable selectors without failing", func(t *testing.T) {
		t.Parallel()

		state := adaptext.NewLearningState()
		state.AddDomainPattern("example.com", adaptext.ContentTypeTitle, "h1[[[broken")
		state.AddDomainPattern("example.com", adaptext.ContentTypeTitle, "h1.headline")
		state.SetCandidate(adaptext.ContentTypeTitle, adaptext.SelectorCandidate{Selector: "h1[[[broken", Confidence: 2.0})
		state.SetCandidate(adaptext.ContentTypeTitle, adaptext.SelectorCandidate{Selector: "h1.headline", Confidence: 1.0})

		store := emptyStore()
		store.LoadFn = func(ctx context.Context) (*adaptext.LearningState, error) { return state, nil }
		learner := learn.NewLearner(context.Background(), store)
		doc := parseDoc(t, articleHTML)

		selectors, err := learner.LearnSelectors(context.Background(), doc, adaptext.ContentTypeTitle, "example.com", "Hello World")

		require.NoError(t, err)
		assert.Contains(t, selectors, "h1.headline")
		assert.NotContains(t, selectors, "h1[[[broken")
	})

	t.Run("returns nothing without known content on a fresh learner", func(t *testing.T) {
		t.Parallel()

		learner := learn.NewLearner(context.Background(), emptyStore())
		doc := parseDoc(t, articleHTML)

		selectors, err := learner.LearnSelectors(context.Background(), doc, adaptext.ContentTypeTitle, "example.com", "")

		require.NoError(t, err)
		assert.Empty(t, selectors)
	})

	t.Run("rejects nil document", func(t *testing.T) {
		t.Parallel()

		learner := learn.NewLearner(context.Background(), emptyStore())

		_, err := learner.LearnSelectors(context.Background(), nil, adaptext.ContentTypeTitle, "example.com", "x")

		require.Error(t, err)
		assert.Equal(t, adaptext.EINVALID, adaptext.ErrorCode(err))
	})

	t.Run("rejects unknown content type", func(t *testing.T) {
		t.Parallel()

		learner := learn.NewLearner(context.Background(), emptyStore())
		doc := parseDoc(t, articleHTML)

		_, err := learner.LearnSelectors(context.Background(), doc, "headline", "example.com", "x")

		require.Error(t, err)
		assert.Equal(t, adaptext.EINVALID, adaptext.ErrorCode(err))
	})

	t.Run("persists write-through after each call", func(t *testing.T) {
		t.Parallel()

		saves := 0
		store := emptyStore()
		store.SaveFn = func(ctx context.Context, state *adaptext.LearningState) error {
			saves++
			assert.False(t, state.LastUpdated.IsZero())
			return nil
		}
		learner := learn.NewLearner(context.Background(), store)
		doc := parseDoc(t, articleHTML)

		_, err := learner.LearnSelectors(context.Background(), doc, adaptext.ContentTypeTitle, "example.com", "Hello World")
		require.NoError(t, err)
		_, err = learner.LearnSelectors(context.Background(), doc, adaptext.ContentTypeTitle, "example.com", "Hello World")
		require.NoError(t, err)

		assert.Equal(t, 2, saves)
	})

	t.Run("survives persistence failure", func(t *testing.T) {
		t.Parallel()

		store := emptyStore()
		store.SaveFn = func(ctx context.Context, state *adaptext.LearningState) error {
			return adaptext.Errorf(adaptext.EUNAVAILABLE, "store offline")
		}
		learner := learn.NewLearner(context.Background(), store)
		doc := parseDoc(t, articleHTML)

		selectors, err := learner.LearnSelectors(context.Background(), doc, adaptext.ContentTypeTitle, "example.com", "Hello World")

		require.NoError(t, err)
		assert.Contains(t, selectors, "h1.headline")
		// In-memory learning survives for subsequent calls.
		assert.Positive(t, learner.GetSelectorConfidence("h1.headline"))
	})
}

func TestLearner_NewLearner(t *testing.T) {
	t.Parallel()

	t.Run("starts empty when the store is unreachable", func(t *testing.T) {
		t.Parallel()

		store := emptyStore()
		store.LoadFn = func(ctx context.Context) (*adaptext.LearningState, error) {
			return nil, adaptext.Errorf(adaptext.EUNAVAILABLE, "store offline")
		}

		learner := learn.NewLearner(context.Background(), store)

		assert.Empty(t, learner.GetLearnedSelectors(adaptext.ContentTypeTitle, ""))
	})

	t.Run("normalizes nil maps in loaded state", func(t *testing.T) {
		t.Parallel()

		store := emptyStore()
		store.LoadFn = func(ctx context.Context) (*adaptext.LearningState, error) {
			return &adaptext.LearningState{}, nil
		}

		learner := learn.NewLearner(context.Background(), store)
		learner.ReportResult(context.Background(), "h1", adaptext.ContentTypeTitle, "example.com", true)

		assert.InDelta(t, 1.1, learner.GetSelectorConfidence("h1"), 1e-9)
	})
}

func TestLearner_ReportResult(t *testing.T) {
	t.Parallel()

	t.Run("two successes compound confidence to 1.21", func(t *testing.T) {
		t.Parallel()

		learner := learn.NewLearner(context.Background(), emptyStore())
		ctx := context.Background()

		before := learner.GetSelectorConfidence("h1.headline")
		learner.ReportResult(ctx, "h1.headline", adaptext.ContentTypeTitle, "example.com", true)
		learner.ReportResult(ctx, "h1.headline", adaptext.ContentTypeTitle, "example.com", true)
		after := learner.GetSelectorConfidence("h1.headline")

		assert.Greater(t, after, before)
		assert.InDelta(t, 1.21, after, 1e-9)
	})

	t.Run("confidence grows monotonically on success and decays on failure", func(t *testing.T) {
		t.Parallel()

		learner := learn.NewLearner(context.Background(), emptyStore())
		ctx := context.Background()

		prev := 0.0
		for i := 0; i < 5; i++ {
			learner.ReportResult(ctx, "h1", adaptext.ContentTypeTitle, "example.com", true)
			current := learner.GetSelectorConfidence("h1")
			assert.Greater(t, current, prev)
			prev = current
		}

		for i := 0; i < 50; i++ {
			learner.ReportResult(ctx, "h1", adaptext.ContentTypeTitle, "example.com", false)
			current := learner.GetSelectorConfidence("h1")
			assert.Less(t, current, prev)
			assert.GreaterOrEqual(t, current, 0.0)
			prev = current
		}
	})

	t.Run("success registers domain pattern and domain", func(t *testing.T) {
		t.Parallel()

		learner := learn.NewLearner(context.Background(), emptyStore())
		ctx := context.Background()

		learner.ReportResult(ctx, "h1.headline", adaptext.ContentTypeTitle, "example.com", true)

		state := learner.Snapshot()
		assert.Equal(t, []string{"h1.headline"}, state.DomainPatterns["example.com"][adaptext.ContentTypeTitle])
		assert.Equal(t, []string{"example.com"}, state.SuccessfulDomains["h1.headline"])
	})

	t.Run("failure does not register the domain", func(t *testing.T) {
		t.Parallel()

		learner := learn.NewLearner(context.Background(), emptyStore())
		ctx := context.Background()

		learner.ReportResult(ctx, "h1.headline", adaptext.ContentTypeTitle, "example.com", false)

		state := learner.Snapshot()
		assert.Empty(t, state.DomainPatterns)
		assert.Empty(t, state.SuccessfulDomains)
	})
}

func TestLearner_GetLearnedSelectors(t *testing.T) {
	t.Parallel()

	t.Run("promotes cross-domain selectors with markers", func(t *testing.T) {
		t.Parallel()

		learner := learn.NewLearner(context.Background(), emptyStore())
		ctx := context.Background()

		// h1.headline succeeds on two domains; h1.single only on one, with
		// more successes and hence higher confidence.
		learner.ReportResult(ctx, "h1.headline", adaptext.ContentTypeTitle, "first.com", true)
		learner.ReportResult(ctx, "h1.headline", adaptext.ContentTypeTitle, "second.com", true)
		learner.ReportResult(ctx, "h1.single", adaptext.ContentTypeTitle, "first.com", true)
		learner.ReportResult(ctx, "h1.single", adaptext.ContentTypeTitle, "first.com", true)
		learner.ReportResult(ctx, "h1.single", adaptext.ContentTypeTitle, "first.com", true)

		selectors := learner.GetLearnedSelectors(adaptext.ContentTypeTitle, "")

		require.Len(t, selectors, 2)
		assert.Equal(t, "h1.headline", selectors[0])
	})

	t.Run("bare tags are not common patterns", func(t *testing.T) {
		t.Parallel()

		learner := learn.NewLearner(context.Background(), emptyStore())
		ctx := context.Background()

		// h1 succeeds on two domains but has no class or id marker, so
		// confidence ordering decides.
		learner.ReportResult(ctx, "h1", adaptext.ContentTypeTitle, "first.com", true)
		learner.ReportResult(ctx, "h1", adaptext.ContentTypeTitle, "second.com", true)
		learner.ReportResult(ctx, "h1.headline", adaptext.ContentTypeTitle, "first.com", true)
		learner.ReportResult(ctx, "h1.headline", adaptext.ContentTypeTitle, "first.com", true)
		learner.ReportResult(ctx, "h1.headline", adaptext.ContentTypeTitle, "first.com", true)

		selectors := learner.GetLearnedSelectors(adaptext.ContentTypeTitle, "")

		require.Len(t, selectors, 2)
		assert.Equal(t, "h1.headline", selectors[0])
	})

	t.Run("includes domain shortlist for the given domain", func(t *testing.T) {
		t.Parallel()

		learner := learn.NewLearner(context.Background(), emptyStore())
		ctx := context.Background()

		learner.ReportResult(ctx, "h1.headline", adaptext.ContentTypeTitle, "example.com", true)

		withDomain := learner.GetLearnedSelectors(adaptext.ContentTypeTitle, "example.com")
		withoutDomain := learner.GetLearnedSelectors(adaptext.ContentTypeTitle, "")

		assert.Equal(t, []string{"h1.headline"}, withDomain)
		assert.Equal(t, []string{"h1.headline"}, withoutDomain)
	})

	t.Run("does not mutate state", func(t *testing.T) {
		t.Parallel()

		learner := learn.NewLearner(context.Background(), emptyStore())
		ctx := context.Background()

		learner.ReportResult(ctx, "h1.headline", adaptext.ContentTypeTitle, "example.com", true)
		before := learner.Snapshot()

		learner.GetLearnedSelectors(adaptext.ContentTypeTitle, "example.com")

		assert.Equal(t, before, learner.Snapshot())
	})
}

func TestLearner_Discover(t *testing.T) {
	t.Parallel()

	t.Run("requires known content", func(t *testing.T) {
		t.Parallel()

		learner := learn.NewLearner(context.Background(), emptyStore())
		doc := parseDoc(t, articleHTML)

		_, err := learner.Discover(context.Background(), doc, adaptext.ContentTypeTitle, "example.com", "")

		require.Error(t, err)
		assert.Equal(t, adaptext.EINVALID, adaptext.ErrorCode(err))
	})

	t.Run("discovers even when replay would succeed", func(t *testing.T) {
		t.Parallel()

		learner := learn.NewLearner(context.Background(), emptyStore())
		doc := parseDoc(t, articleHTML)

		_, err := learner.LearnSelectors(context.Background(), doc, adaptext.ContentTypeContent, "example.com", "Body text here")
		require.NoError(t, err)

		selectors, err := learner.Discover(context.Background(), doc, adaptext.ContentTypeContent, "example.com", "Body text here")
		require.NoError(t, err)
		assert.Contains(t, selectors, "div.content")
	})
}

func TestLearner_GetSelectorConfidence(t *testing.T) {
	t.Parallel()

	t.Run("returns zero for unknown selector", func(t *testing.T) {
		t.Parallel()

		learner := learn.NewLearner(context.Background(), emptyStore())

		assert.Zero(t, learner.GetSelectorConfidence("h1.never-seen"))
	})

	t.Run("returns the highest confidence across content types", func(t *testing.T) {
		t.Parallel()

		learner := learn.NewLearner(context.Background(), emptyStore())
		ctx := context.Background()

		learner.ReportResult(ctx, "h1", adaptext.ContentTypeTitle, "example.com", true)
		learner.ReportResult(ctx, "h1", adaptext.ContentTypeTopic, "example.com", false)

		assert.InDelta(t, 1.1, learner.GetSelectorConfidence("h1"), 1e-9)
	})
}
