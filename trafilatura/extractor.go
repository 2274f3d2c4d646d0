// Package trafilatura provides a rule-free content extractor used to
// bootstrap selector learning: when no selector rules work on a page, its
// output supplies the known content the learner searches for.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/adaptext"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements adaptext.ContentExtractor at compile time.
var _ adaptext.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*adaptext.ExtractResult, error) {
	if rawHTML == "" {
		return nil, adaptext.Errorf(adaptext.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &adaptext.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
		ContentText: strings.TrimSpace(result.ContentText),
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
