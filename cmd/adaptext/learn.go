package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/adaptext"
	"github.com/fwojciec/adaptext/goquery"
	adapthttp "github.com/fwojciec/adaptext/http"
)

// Run executes the learn command.
func (c *LearnCmd) Run(deps *Dependencies) error {
	contentType := adaptext.ContentType(c.Type)
	if !contentType.Valid() {
		return fmt.Errorf("unknown content type %q", c.Type)
	}

	domain := c.Domain
	if domain == "" {
		u, err := url.Parse(c.URL)
		if err != nil || u.Host == "" {
			return fmt.Errorf("invalid URL %q", c.URL)
		}
		domain = strings.ToLower(u.Host)
	}

	fetcher := adapthttp.NewFetcher()
	defer fetcher.Close()

	html, err := fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", c.URL, err)
	}

	doc, err := goquery.ParseDocument(html)
	if err != nil {
		return err
	}

	selectors, err := deps.Learner.LearnSelectors(deps.Ctx, doc, contentType, domain, c.Known)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", adaptext.ErrorMessage(err))
		return err
	}

	if len(selectors) == 0 {
		fmt.Fprintln(deps.Stdout, "No selectors learned. Provide --known content present on the page.")
		return nil
	}

	for _, selector := range selectors {
		fmt.Fprintf(deps.Stdout, "%.3f  %s\n", deps.Learner.GetSelectorConfidence(selector), selector)
	}
	return nil
}
