// Package adaptext provides adaptive extraction of article content from
// HTML pages. It applies CSS-selector-based extraction rules for structural
// fields (title, content, author, date, images, topics, organizations,
// locations) and, when extraction fails or yields weak results, discovers
// new selectors by scanning the document for elements whose text matches
// previously known content. Learned selectors are scored, ranked, and
// persisted per domain and content type for reuse.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, trafilatura/).
package adaptext
