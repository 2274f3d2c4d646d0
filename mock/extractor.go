package mock

import "github.com/fwojciec/adaptext"

var _ adaptext.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of adaptext.Extractor.
type Extractor struct {
	ExtractFn func(html string, config adaptext.ExtractionConfig) (*adaptext.Extraction, error)
}

func (e *Extractor) Extract(html string, config adaptext.ExtractionConfig) (*adaptext.Extraction, error) {
	return e.ExtractFn(html, config)
}

var _ adaptext.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of adaptext.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) (*adaptext.ExtractResult, error)
}

func (e *ContentExtractor) Extract(html string) (*adaptext.ExtractResult, error) {
	return e.ExtractFn(html)
}
