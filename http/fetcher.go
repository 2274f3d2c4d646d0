// Package http provides an HTTP-based implementation of adaptext.Fetcher
// for fetching content from static sites that don't require JavaScript
// rendering.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/fwojciec/adaptext"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultRetries is the default number of attempts per URL.
const DefaultRetries = 3

// userAgents are rotated across requests to avoid trivial blocking.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64; rv:127.0) Gecko/20100101 Firefox/127.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:127.0) Gecko/20100101 Firefox/127.0",
}

// Ensure Fetcher implements adaptext.Fetcher at compile time.
var _ adaptext.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests. It rotates
// user agents, retries transient failures with backoff, decodes non-UTF-8
// responses, and rate-limits per domain.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	retries int
	rps     float64

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	requests int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRetries sets the number of attempts per URL.
// Defaults to DefaultRetries.
func WithRetries(n int) Option {
	return func(f *Fetcher) {
		f.retries = n
	}
}

// WithRateLimit sets the per-domain requests-per-second limit.
// Zero disables rate limiting. Defaults to 1 rps.
func WithRateLimit(rps float64) Option {
	return func(f *Fetcher) {
		f.rps = rps
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		retries:  DefaultRetries,
		rps:      1,
		limiters: make(map[string]*rate.Limiter),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", adaptext.Errorf(adaptext.EINVALID, "invalid URL %q: %v", rawURL, err)
	}

	if err := f.wait(ctx, u.Host); err != nil {
		return "", err
	}

	var lastErr error
	for attempt := 0; attempt < f.retries; attempt++ {
		if attempt > 0 {
			// Exponential backoff between attempts: 500ms, 1s, 2s, ...
			backoff := 500 * time.Millisecond << (attempt - 1)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		body, retryable, err := f.fetchOnce(ctx, rawURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return "", lastErr
}

// fetchOnce performs a single request. The second return value reports
// whether the failure is worth retrying.
func (f *Fetcher) fetchOnce(ctx context.Context, url string) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false, err
	}
	req.Header.Set("User-Agent", f.nextUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return "", true, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	default:
		return "", false, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	// Decode the body to UTF-8 based on the Content-Type charset and any
	// in-document meta declarations.
	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", false, err
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return "", true, err
	}

	return string(body), false, nil
}

// wait blocks until the per-domain rate limit allows a request.
func (f *Fetcher) wait(ctx context.Context, domain string) error {
	if f.rps <= 0 {
		return nil
	}

	f.mu.Lock()
	limiter, ok := f.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(f.rps), 1)
		f.limiters[domain] = limiter
	}
	f.mu.Unlock()

	return limiter.Wait(ctx)
}

// nextUserAgent rotates through the user agent pool.
func (f *Fetcher) nextUserAgent() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ua := userAgents[f.requests%len(userAgents)]
	f.requests++
	return ua
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
