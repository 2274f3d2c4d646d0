package learn

import (
	"sort"
	"strings"

	"github.com/fwojciec/adaptext"
)

// rankSelectors orders selectors in place, best first:
//
//  1. Common patterns rank above everything else. A common pattern is a
//     selector successful on at least two distinct domains that carries a
//     class or id marker, making it likely structurally general.
//  2. Among common patterns, more successful domains ranks higher.
//  3. Otherwise, higher confidence for the content type ranks higher.
//  4. Ties break toward the shorter selector string.
func rankSelectors(state *adaptext.LearningState, contentType adaptext.ContentType, selectors []string) {
	sort.SliceStable(selectors, func(i, j int) bool {
		a, b := selectors[i], selectors[j]

		commonA, commonB := isCommonPattern(state, a), isCommonPattern(state, b)
		if commonA != commonB {
			return commonA
		}
		if commonA && commonB {
			if da, db := state.DomainCount(a), state.DomainCount(b); da != db {
				return da > db
			}
		}

		confA, confB := confidenceOf(state, contentType, a), confidenceOf(state, contentType, b)
		if confA != confB {
			return confA > confB
		}

		return len(a) < len(b)
	})
}

// isCommonPattern reports whether the selector proved itself on at least two
// distinct domains and carries a class or id marker.
func isCommonPattern(state *adaptext.LearningState, selector string) bool {
	return state.DomainCount(selector) >= 2 && hasMarker(selector)
}

// hasMarker reports whether the selector contains a class or id marker.
func hasMarker(selector string) bool {
	return strings.ContainsAny(selector, ".#")
}

// confidenceOf returns the selector's confidence for the content type, or 0
// when the selector has no score there.
func confidenceOf(state *adaptext.LearningState, contentType adaptext.ContentType, selector string) float64 {
	if candidate, ok := state.Candidate(contentType, selector); ok {
		return candidate.Confidence
	}
	return 0
}
