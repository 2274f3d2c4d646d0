package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/adaptext"
)

// maxListValues bounds how many values a list field (images, topics, etc.)
// collects from a single page.
const maxListValues = 20

// Ensure Extractor implements adaptext.Extractor at compile time.
var _ adaptext.Extractor = (*Extractor)(nil)

// Extractor extracts article fields from HTML using an ExtractionConfig.
// For each content type it tries the configured selectors in order and the
// first selector that yields a value wins. The content field keeps its HTML
// so callers can convert it to Markdown downstream.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract applies the config to the HTML and assembles an article.
// Selectors that fail to compile or match nothing are skipped; a content
// type whose selectors all come up empty is reported in Extraction.Missing.
func (e *Extractor) Extract(html string, config adaptext.ExtractionConfig) (*adaptext.Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, adaptext.Errorf(adaptext.EINVALID, "failed to parse HTML: %v", err)
	}

	extraction := &adaptext.Extraction{
		Article: &adaptext.Article{},
		Fields:  make(map[adaptext.ContentType]adaptext.FieldResult),
	}

	for _, contentType := range adaptext.ContentTypes() {
		selectors, ok := config[contentType]
		if !ok || len(selectors) == 0 {
			continue
		}

		result, found := extractField(doc, contentType, selectors)
		if !found {
			extraction.Missing = append(extraction.Missing, contentType)
			continue
		}
		extraction.Fields[contentType] = result
		assignField(extraction.Article, doc, contentType, result)
	}

	return extraction, nil
}

// extractField tries selectors in order and returns the first non-empty
// value with the selector that produced it.
func extractField(doc *goquery.Document, contentType adaptext.ContentType, selectors []string) (adaptext.FieldResult, bool) {
	for _, selector := range selectors {
		matcher, err := cascadia.Compile(selector)
		if err != nil {
			continue
		}
		sel := doc.FindMatcher(matcher)
		if sel.Length() == 0 {
			continue
		}

		value := fieldValue(contentType, sel)
		if value == "" {
			continue
		}
		return adaptext.FieldResult{
			ContentType: contentType,
			Selector:    selector,
			Value:       value,
		}, true
	}
	return adaptext.FieldResult{}, false
}

// fieldValue reads the representative value for a matched selection: the
// image URL for images, the content HTML for content, trimmed text
// otherwise.
func fieldValue(contentType adaptext.ContentType, sel *goquery.Selection) string {
	switch contentType {
	case adaptext.ContentTypeImage:
		return imageURL(sel.First())
	case adaptext.ContentTypeContent:
		html, err := goquery.OuterHtml(sel.First())
		if err != nil {
			return ""
		}
		return html
	default:
		return strings.TrimSpace(sel.First().Text())
	}
}

// assignField writes the field value into the article. List fields collect
// from every element the winning selector matched, deduplicated.
func assignField(article *adaptext.Article, doc *goquery.Document, contentType adaptext.ContentType, result adaptext.FieldResult) {
	switch contentType {
	case adaptext.ContentTypeTitle:
		article.Title = result.Value
	case adaptext.ContentTypeContent:
		article.Content = result.Value
	case adaptext.ContentTypeAuthor:
		article.Author = result.Value
	case adaptext.ContentTypeDate:
		article.Published = result.Value
	case adaptext.ContentTypeImage:
		article.Images = collectValues(doc, result.Selector, imageURL)
	case adaptext.ContentTypeTopic:
		article.Topics = collectValues(doc, result.Selector, elementText)
	case adaptext.ContentTypeOrganization:
		article.Organizations = collectValues(doc, result.Selector, elementText)
	case adaptext.ContentTypeLocation:
		article.Locations = collectValues(doc, result.Selector, elementText)
	}
}

// collectValues gathers unique non-empty values from every element the
// selector matches, in document order, capped at maxListValues.
func collectValues(doc *goquery.Document, selector string, value func(*goquery.Selection) string) []string {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil
	}

	var values []string
	seen := make(map[string]bool)
	doc.FindMatcher(matcher).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		v := value(sel)
		if v != "" && !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
		return len(values) < maxListValues
	})
	return values
}

// imageURL returns the image source for an element, preferring src over
// lazy-loading attributes.
func imageURL(sel *goquery.Selection) string {
	for _, attr := range []string{"src", "data-src", "data-lazy-src", "srcset"} {
		if v := strings.TrimSpace(sel.AttrOr(attr, "")); v != "" {
			// srcset lists candidates; keep the first URL.
			if attr == "srcset" {
				fields := strings.Fields(strings.Split(v, ",")[0])
				if len(fields) == 0 {
					continue
				}
				v = fields[0]
			}
			return v
		}
	}
	return ""
}

func elementText(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.Text())
}
