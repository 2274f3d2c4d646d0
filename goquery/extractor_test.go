package goquery_test

import (
	"testing"

	"github.com/fwojciec/adaptext"
	"github.com/fwojciec/adaptext/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements adaptext.Extractor at compile time.
var _ adaptext.Extractor = (*goquery.Extractor)(nil)

const articleHTML = `
<html>
<body>
	<article>
		<h1 class="headline">Hello World</h1>
		<span class="byline">Jane Doe</span>
		<time class="published">2026-03-01</time>
		<div class="content">
			<p>Body text here.</p>
		</div>
		<img class="lead" src="https://example.com/lead.jpg">
		<img class="lazy" data-src="https://example.com/lazy.jpg">
		<a class="tag">politics</a>
		<a class="tag">economy</a>
		<a class="tag">politics</a>
	</article>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	extractor := goquery.NewExtractor()

	t.Run("extracts configured fields", func(t *testing.T) {
		t.Parallel()

		extraction, err := extractor.Extract(articleHTML, adaptext.ExtractionConfig{
			adaptext.ContentTypeTitle:   {"h1.headline"},
			adaptext.ContentTypeAuthor:  {"span.byline"},
			adaptext.ContentTypeDate:    {"time.published"},
			adaptext.ContentTypeContent: {"div.content"},
		})

		require.NoError(t, err)
		assert.Equal(t, "Hello World", extraction.Article.Title)
		assert.Equal(t, "Jane Doe", extraction.Article.Author)
		assert.Equal(t, "2026-03-01", extraction.Article.Published)
		assert.Contains(t, extraction.Article.Content, "<p>Body text here.</p>")
		assert.Empty(t, extraction.Missing)
	})

	t.Run("first matching selector wins", func(t *testing.T) {
		t.Parallel()

		extraction, err := extractor.Extract(articleHTML, adaptext.ExtractionConfig{
			adaptext.ContentTypeTitle: {"h2.missing", "h1.headline", "h1"},
		})

		require.NoError(t, err)
		assert.Equal(t, "Hello World", extraction.Article.Title)
		assert.Equal(t, "h1.headline", extraction.Fields[adaptext.ContentTypeTitle].Selector)
	})

	t.Run("records the producing selector per field", func(t *testing.T) {
		t.Parallel()

		extraction, err := extractor.Extract(articleHTML, adaptext.ExtractionConfig{
			adaptext.ContentTypeTitle:  {"h1.headline"},
			adaptext.ContentTypeAuthor: {"span.byline"},
		})

		require.NoError(t, err)
		assert.Equal(t, adaptext.FieldResult{
			ContentType: adaptext.ContentTypeTitle,
			Selector:    "h1.headline",
			Value:       "Hello World",
		}, extraction.Fields[adaptext.ContentTypeTitle])
		assert.Equal(t, "span.byline", extraction.Fields[adaptext.ContentTypeAuthor].Selector)
	})

	t.Run("reports content types that matched nothing", func(t *testing.T) {
		t.Parallel()

		extraction, err := extractor.Extract(articleHTML, adaptext.ExtractionConfig{
			adaptext.ContentTypeTitle:  {"h1.headline"},
			adaptext.ContentTypeTopic:  {"span.missing"},
			adaptext.ContentTypeAuthor: {"div.nope"},
		})

		require.NoError(t, err)
		assert.ElementsMatch(t, []adaptext.ContentType{adaptext.ContentTypeAuthor, adaptext.ContentTypeTopic}, extraction.Missing)
		assert.NotContains(t, extraction.Fields, adaptext.ContentTypeTopic)
	})

	t.Run("skips invalid selectors", func(t *testing.T) {
		t.Parallel()

		extraction, err := extractor.Extract(articleHTML, adaptext.ExtractionConfig{
			adaptext.ContentTypeTitle: {"h1[[[", "h1.headline"},
		})

		require.NoError(t, err)
		assert.Equal(t, "Hello World", extraction.Article.Title)
	})

	t.Run("collects list fields deduplicated", func(t *testing.T) {
		t.Parallel()

		extraction, err := extractor.Extract(articleHTML, adaptext.ExtractionConfig{
			adaptext.ContentTypeTopic: {"a.tag"},
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"politics", "economy"}, extraction.Article.Topics)
	})

	t.Run("image fields read src attributes", func(t *testing.T) {
		t.Parallel()

		extraction, err := extractor.Extract(articleHTML, adaptext.ExtractionConfig{
			adaptext.ContentTypeImage: {"img"},
		})

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/lead.jpg",
			"https://example.com/lazy.jpg",
		}, extraction.Article.Images)
	})

	t.Run("srcset keeps only the first URL", func(t *testing.T) {
		t.Parallel()

		html := `<img srcset="https://example.com/a-480.jpg 480w, https://example.com/a-800.jpg 800w">`
		extraction, err := extractor.Extract(html, adaptext.ExtractionConfig{
			adaptext.ContentTypeImage: {"img"},
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/a-480.jpg"}, extraction.Article.Images)
	})

	t.Run("empty config extracts nothing", func(t *testing.T) {
		t.Parallel()

		extraction, err := extractor.Extract(articleHTML, adaptext.ExtractionConfig{})

		require.NoError(t, err)
		assert.Empty(t, extraction.Fields)
		assert.Empty(t, extraction.Missing)
	})
}
