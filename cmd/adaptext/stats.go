package main

import (
	"fmt"

	"github.com/fwojciec/adaptext"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	state := deps.Snapshot()

	selectors := 0
	for _, candidates := range state.SelectorScores {
		selectors += len(candidates)
	}

	fmt.Fprintf(deps.Stdout, "content types: %d\n", len(state.SelectorScores))
	fmt.Fprintf(deps.Stdout, "selectors:     %d\n", selectors)
	fmt.Fprintf(deps.Stdout, "domains:       %d\n", len(state.DomainPatterns))
	if !state.LastUpdated.IsZero() {
		fmt.Fprintf(deps.Stdout, "last updated:  %s\n", state.LastUpdated.Format("2006-01-02 15:04:05"))
	}

	for _, contentType := range adaptext.ContentTypes() {
		candidates := state.SelectorScores[contentType]
		if len(candidates) == 0 {
			continue
		}
		fmt.Fprintf(deps.Stdout, "\n%s:\n", contentType)
		for _, c := range candidates {
			fmt.Fprintf(deps.Stdout, "  %.3f  %3d/%3d  %s\n",
				c.Confidence, c.SuccessCount, c.TotalAttempts, c.Selector)
		}
	}
	return nil
}
