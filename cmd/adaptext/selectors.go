package main

import (
	"fmt"

	"github.com/fwojciec/adaptext"
)

// Run executes the selectors command.
func (c *SelectorsCmd) Run(deps *Dependencies) error {
	contentType := adaptext.ContentType(c.Type)
	if !contentType.Valid() {
		return fmt.Errorf("unknown content type %q", c.Type)
	}

	selectors := deps.Learner.GetLearnedSelectors(contentType, c.Domain)
	if len(selectors) == 0 {
		fmt.Fprintln(deps.Stdout, "No learned selectors. Use 'adaptext learn' or 'adaptext extract' first.")
		return nil
	}

	for _, selector := range selectors {
		fmt.Fprintf(deps.Stdout, "%.3f  %s\n", deps.Learner.GetSelectorConfidence(selector), selector)
	}
	return nil
}
