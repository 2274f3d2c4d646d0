// Package goquery provides goquery-based implementations of the adaptext
// document query and extraction capabilities.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/adaptext"
)

// Ensure Document implements adaptext.Document at compile time.
var _ adaptext.Document = (*Document)(nil)

// Document wraps a parsed goquery document with CSS selector query
// capability.
type Document struct {
	doc *goquery.Document
}

// ParseDocument parses raw HTML into a queryable Document.
func ParseDocument(html string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, adaptext.Errorf(adaptext.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{doc: doc}, nil
}

// Select returns elements matching the CSS selector in document order.
// Selectors are compiled explicitly because goquery's Find panics on
// invalid input; a selector that fails to compile returns EINVALID.
func (d *Document) Select(selector string) ([]adaptext.Element, error) {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, adaptext.Errorf(adaptext.EINVALID, "invalid selector %q: %v", selector, err)
	}

	var elements []adaptext.Element
	d.doc.FindMatcher(matcher).Each(func(_ int, sel *goquery.Selection) {
		elements = append(elements, &element{sel: sel})
	})
	return elements, nil
}

// element adapts a goquery selection of a single node.
type element struct {
	sel *goquery.Selection
}

func (e *element) Text() string {
	return strings.TrimSpace(e.sel.Text())
}

func (e *element) TagName() string {
	return goquery.NodeName(e.sel)
}

func (e *element) ID() string {
	return e.sel.AttrOr("id", "")
}

func (e *element) ClassName() string {
	return e.sel.AttrOr("class", "")
}
