package main

import (
	"fmt"

	"github.com/fwojciec/adaptext"
)

// Run executes the report command.
func (c *ReportCmd) Run(deps *Dependencies) error {
	contentType := adaptext.ContentType(c.Type)
	if !contentType.Valid() {
		return fmt.Errorf("unknown content type %q", c.Type)
	}

	deps.Learner.ReportResult(deps.Ctx, c.Selector, contentType, c.Domain, !c.Failure)

	fmt.Fprintf(deps.Stdout, "%.3f  %s\n", deps.Learner.GetSelectorConfidence(c.Selector), c.Selector)
	return nil
}
