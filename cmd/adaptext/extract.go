package main

import (
	"fmt"

	"github.com/fwojciec/adaptext"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	results, err := deps.Parser.ParseAll(deps.Ctx, c.URLs, c.Concurrency)
	if err != nil {
		return err
	}

	failures := 0
	for _, result := range results {
		if result.Err != nil {
			failures++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", result.URL, adaptext.ErrorMessage(result.Err))
			continue
		}
		printArticle(deps, result.Article)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d URLs failed", failures, len(results))
	}
	return nil
}

func printArticle(deps *Dependencies, article *adaptext.Article) {
	fmt.Fprintf(deps.Stdout, "url:    %s\n", article.URL)
	fmt.Fprintf(deps.Stdout, "title:  %s\n", article.Title)
	if article.Author != "" {
		fmt.Fprintf(deps.Stdout, "author: %s\n", article.Author)
	}
	if article.Published != "" {
		fmt.Fprintf(deps.Stdout, "date:   %s\n", article.Published)
	}
	for _, topic := range article.Topics {
		fmt.Fprintf(deps.Stdout, "topic:  %s\n", topic)
	}
	if article.Content != "" {
		fmt.Fprintf(deps.Stdout, "\n%s\n", article.Content)
	}
}
