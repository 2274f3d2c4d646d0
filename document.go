package adaptext

import "context"

// Element is a single node returned by a Document query.
type Element interface {
	// Text returns the element's text content, whitespace-trimmed.
	Text() string

	// TagName returns the lowercase tag name (e.g., "h1").
	TagName() string

	// ID returns the element's id attribute, or "" if absent.
	ID() string

	// ClassName returns the element's class attribute as a space-separated
	// token list, or "" if absent.
	ClassName() string
}

// Document is a parsed HTML page with CSS selector query capability.
type Document interface {
	// Select returns elements matching the CSS selector in document order.
	// A selector that cannot be parsed returns an EINVALID error; matching
	// nothing returns an empty slice and no error.
	Select(selector string) ([]Element, error)
}

// Fetcher retrieves raw HTML from URLs.
// Implementations own retries, header rotation, and rate limiting;
// none of that leaks into callers.
type Fetcher interface {
	// Fetch retrieves the page body for the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
