package mock

import "github.com/fwojciec/adaptext"

var _ adaptext.Converter = (*Converter)(nil)

// Converter is a mock implementation of adaptext.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
