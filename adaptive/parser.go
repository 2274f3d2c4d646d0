// Package adaptive orchestrates adaptive extraction: fetch, extract with
// the current selector config, and on weak results delegate to the selector
// learner and retry.
package adaptive

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/adaptext"
	"github.com/fwojciec/adaptext/bloom"
	"github.com/fwojciec/adaptext/goquery"
	"golang.org/x/sync/errgroup"
)

// knownContentWords caps the length of the content snippet handed to the
// learner as known content.
const knownContentWords = 10

// Parser sequences fetching, extraction, learning, and article assembly.
type Parser struct {
	fetcher   adaptext.Fetcher
	extractor adaptext.Extractor
	learner   adaptext.SelectorLearner
	presets   adaptext.PresetService

	bootstrap adaptext.ContentExtractor
	converter adaptext.Converter
	articles  adaptext.ArticleService
	parseDoc  func(html string) (adaptext.Document, error)
	logger    *slog.Logger
	seen      *bloom.Filter
	now       func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithBootstrap sets the rule-free content extractor whose output seeds
// learning when selector extraction fails. Without it the parser never
// learns on its own; callers must feed known content explicitly.
func WithBootstrap(extractor adaptext.ContentExtractor) Option {
	return func(p *Parser) {
		p.bootstrap = extractor
	}
}

// WithConverter sets the Markdown converter for the content field.
// Without it the content field keeps its extracted HTML.
func WithConverter(converter adaptext.Converter) Option {
	return func(p *Parser) {
		p.converter = converter
	}
}

// WithArticleService persists every parsed article.
func WithArticleService(articles adaptext.ArticleService) Option {
	return func(p *Parser) {
		p.articles = articles
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// WithClock sets the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

// WithDocumentParser overrides how raw HTML becomes a queryable Document.
func WithDocumentParser(parse func(html string) (adaptext.Document, error)) Option {
	return func(p *Parser) {
		p.parseDoc = parse
	}
}

// NewParser creates a Parser.
func NewParser(fetcher adaptext.Fetcher, extractor adaptext.Extractor, learner adaptext.SelectorLearner, presets adaptext.PresetService, opts ...Option) *Parser {
	p := &Parser{
		fetcher:   fetcher,
		extractor: extractor,
		learner:   learner,
		presets:   presets,
		logger:    slog.Default(),
		seen:      bloom.NewFilter(100000, 0.01),
		now:       time.Now,
	}
	p.parseDoc = func(html string) (adaptext.Document, error) {
		return goquery.ParseDocument(html)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse fetches the URL, extracts an article with the current selector
// config, and on weak results runs a learning pass and retries once.
func (p *Parser) Parse(ctx context.Context, rawURL string) (*adaptext.Article, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, adaptext.Errorf(adaptext.EINVALID, "invalid URL %q", rawURL)
	}
	domain := strings.ToLower(u.Host)

	html, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	extraction, err := p.extractor.Extract(html, p.configFor(domain))
	if err != nil {
		return nil, err
	}

	if p.needsLearning(extraction) && p.bootstrap != nil && !p.seen.TestAndAdd(rawURL) {
		if p.learnFromPage(ctx, html, domain) {
			retried, err := p.extractor.Extract(html, p.configFor(domain))
			if err == nil {
				extraction = retried
			}
		}
	}

	// Feed successful field extractions back into the learner.
	for contentType, field := range extraction.Fields {
		p.learner.ReportResult(ctx, field.Selector, contentType, domain, true)
	}

	article := p.assembleArticle(extraction, rawURL, domain)

	if p.articles != nil {
		if err := p.articles.CreateArticle(ctx, article); err != nil {
			return nil, fmt.Errorf("store article %s: %w", rawURL, err)
		}
	}

	return article, nil
}

// Result is the outcome of parsing one URL in a batch.
type Result struct {
	URL     string
	Article *adaptext.Article
	Err     error
}

// ParseAll parses URLs concurrently with the given worker limit. Per-URL
// failures are reported in the results, not returned; the error return is
// reserved for context cancellation.
func (p *Parser) ParseAll(ctx context.Context, urls []string, concurrency int) ([]Result, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]Result, len(urls))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, u := range urls {
		g.Go(func() error {
			article, err := p.Parse(ctx, u)
			results[i] = Result{URL: u, Article: article, Err: err}
			if err != nil {
				p.logger.Warn("parse failed", "url", u, "error", err)
			}
			return ctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// configFor builds the extraction config for a domain: the preset (or
// generic) table with learned selectors ranked in front.
func (p *Parser) configFor(domain string) adaptext.ExtractionConfig {
	config, ok := p.presets.ConfigForDomain(domain)
	if !ok {
		config = p.presets.GenericConfig()
	}

	learned := make(adaptext.ExtractionConfig)
	for _, contentType := range adaptext.ContentTypes() {
		if selectors := p.learner.GetLearnedSelectors(contentType, domain); len(selectors) > 0 {
			learned[contentType] = selectors
		}
	}
	return config.Merge(learned)
}

// needsLearning reports whether extraction came out too weak to trust:
// the structural fields (title or content) are missing.
func (p *Parser) needsLearning(extraction *adaptext.Extraction) bool {
	for _, contentType := range extraction.Missing {
		if contentType == adaptext.ContentTypeTitle || contentType == adaptext.ContentTypeContent {
			return true
		}
	}
	return false
}

// learnFromPage extracts known content without selector rules and asks the
// learner to discover selectors for it. Returns true if anything was learned.
func (p *Parser) learnFromPage(ctx context.Context, html, domain string) bool {
	known, err := p.bootstrap.Extract(html)
	if err != nil {
		p.logger.Warn("bootstrap extraction failed", "domain", domain, "error", err)
		return false
	}

	doc, err := p.parseDoc(html)
	if err != nil {
		p.logger.Warn("document parse failed", "domain", domain, "error", err)
		return false
	}

	learned := false
	if known.Title != "" {
		selectors, err := p.learner.LearnSelectors(ctx, doc, adaptext.ContentTypeTitle, domain, known.Title)
		if err == nil && len(selectors) > 0 {
			learned = true
		}
	}
	if snippet := contentSnippet(known.ContentText); snippet != "" {
		selectors, err := p.learner.LearnSelectors(ctx, doc, adaptext.ContentTypeContent, domain, snippet)
		if err == nil && len(selectors) > 0 {
			learned = true
		}
	}
	return learned
}

// assembleArticle builds the final article, filling gaps from the bootstrap
// extractor and converting content to Markdown when a converter is set.
func (p *Parser) assembleArticle(extraction *adaptext.Extraction, rawURL, domain string) *adaptext.Article {
	article := extraction.Article
	article.URL = rawURL
	article.Domain = domain
	article.ExtractedAt = p.now().UTC()

	if p.converter != nil && article.Content != "" {
		if markdown, err := p.converter.Convert(article.Content); err == nil {
			article.Content = markdown
		}
	}
	if article.Content != "" {
		article.ContentHash = fmt.Sprintf("%016x", xxhash.Sum64String(article.Content))
	}
	return article
}

// contentSnippet returns the leading words of the first content line, small
// enough to appear verbatim inside the source element's text.
func contentSnippet(text string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	words := strings.Fields(line)
	if len(words) > knownContentWords {
		words = words[:knownContentWords]
	}
	return strings.Join(words, " ")
}
