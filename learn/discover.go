package learn

import (
	"strings"
	"time"
	"unicode"

	"github.com/fwojciec/adaptext"
)

// discoveryPattern pairs a scan selector with the base confidence assigned
// to selectors discovered through it.
type discoveryPattern struct {
	Selector   string
	Confidence float64
}

// discoveryPatterns is the fixed scan table, in priority order. Headings
// rank above generic containers; bare paragraphs are the last resort.
var discoveryPatterns = []discoveryPattern{
	{Selector: "h1", Confidence: 1.0},
	{Selector: "h2", Confidence: 0.9},
	{Selector: "h3", Confidence: 0.8},
	{Selector: "article", Confidence: 1.0},
	{Selector: "div[class*=content]", Confidence: 0.9},
	{Selector: "div[class*=article]", Confidence: 0.8},
	{Selector: "section[class*=content]", Confidence: 0.8},
	{Selector: "p", Confidence: 0.7},
}

// discoverLocked scans the document for elements whose text contains known,
// synthesizes selector strings for each match, and registers every verified
// selector in the state and the domain's pattern shortlist. Callers must
// hold l.mu.
func (l *Learner) discoverLocked(doc adaptext.Document, contentType adaptext.ContentType, domain, known string, now time.Time, accept func(string)) {
	for _, pattern := range discoveryPatterns {
		elements, err := doc.Select(pattern.Selector)
		if err != nil {
			continue
		}
		for _, el := range elements {
			if !containsText(el, known) {
				continue
			}
			for _, selector := range synthesizeSelectors(el) {
				// Only keep selectors that verifiably re-find the known
				// content on this document.
				if !matchesKnown(doc, selector, known) {
					continue
				}
				if _, ok := l.state.Candidate(contentType, selector); !ok {
					l.state.SetCandidate(contentType, adaptext.SelectorCandidate{
						Selector:   selector,
						Confidence: pattern.Confidence,
						LastUsed:   now,
					})
				}
				l.state.AddDomainPattern(domain, contentType, selector)
				accept(selector)
			}
		}
	}
}

// synthesizeSelectors builds candidate selector strings for an element in
// decreasing specificity: tag.class#id, tag.class (one per class token),
// tag#id, bare tag. Class and id tokens that are not plain CSS identifiers
// are skipped rather than escaped.
func synthesizeSelectors(el adaptext.Element) []string {
	tag := el.TagName()
	if tag == "" {
		return nil
	}

	id := el.ID()
	if !validIdent(id) {
		id = ""
	}
	var classes []string
	for _, class := range strings.Fields(el.ClassName()) {
		if validIdent(class) {
			classes = append(classes, class)
		}
	}

	var selectors []string
	if len(classes) > 0 && id != "" {
		selectors = append(selectors, tag+"."+classes[0]+"#"+id)
	}
	for _, class := range classes {
		selectors = append(selectors, tag+"."+class)
	}
	if id != "" {
		selectors = append(selectors, tag+"#"+id)
	}
	return append(selectors, tag)
}

// containsText reports whether the element's text contains the given
// substring.
func containsText(el adaptext.Element, s string) bool {
	return strings.Contains(el.Text(), s)
}

// validIdent reports whether s is a plain CSS identifier: letters, digits,
// hyphens, and underscores, not starting with a digit.
func validIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if unicode.IsLetter(r) || r == '-' || r == '_' {
			continue
		}
		if unicode.IsDigit(r) && i > 0 {
			continue
		}
		return false
	}
	return true
}
