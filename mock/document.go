package mock

import "github.com/fwojciec/adaptext"

var _ adaptext.Document = (*Document)(nil)

// Document is a mock implementation of adaptext.Document.
type Document struct {
	SelectFn func(selector string) ([]adaptext.Element, error)
}

func (d *Document) Select(selector string) ([]adaptext.Element, error) {
	return d.SelectFn(selector)
}

var _ adaptext.Element = (*Element)(nil)

// Element is a mock implementation of adaptext.Element backed by plain
// field values.
type Element struct {
	TextValue      string
	TagNameValue   string
	IDValue        string
	ClassNameValue string
}

func (e *Element) Text() string      { return e.TextValue }
func (e *Element) TagName() string   { return e.TagNameValue }
func (e *Element) ID() string        { return e.IDValue }
func (e *Element) ClassName() string { return e.ClassNameValue }
