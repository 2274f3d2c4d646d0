package adaptext

// ExtractionConfig maps each content type to its candidate selectors in
// priority order. Configs are owned by the caller and built either from
// static presets or from the learner's ranked output.
type ExtractionConfig map[ContentType][]string

// Clone returns a deep copy of the config.
func (c ExtractionConfig) Clone() ExtractionConfig {
	out := make(ExtractionConfig, len(c))
	for ct, selectors := range c {
		out[ct] = append([]string(nil), selectors...)
	}
	return out
}

// Merge returns a copy of the config with other's selectors prepended per
// content type, deduplicated. Selectors from other take priority.
func (c ExtractionConfig) Merge(other ExtractionConfig) ExtractionConfig {
	out := make(ExtractionConfig, len(c)+len(other))
	for ct := range c {
		out[ct] = dedupe(append(append([]string(nil), other[ct]...), c[ct]...))
	}
	for ct := range other {
		if _, ok := out[ct]; !ok {
			out[ct] = dedupe(append([]string(nil), other[ct]...))
		}
	}
	return out
}

func dedupe(selectors []string) []string {
	seen := make(map[string]bool, len(selectors))
	out := selectors[:0]
	for _, s := range selectors {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// FieldResult records which selector produced a field value.
type FieldResult struct {
	ContentType ContentType
	Selector    string
	Value       string
}

// Extraction is the outcome of applying an ExtractionConfig to a page.
type Extraction struct {
	// Article holds the assembled field values.
	Article *Article

	// Fields maps each successfully extracted content type to the selector
	// that produced it, for downstream feedback to the learner.
	Fields map[ContentType]FieldResult

	// Missing lists content types the config had selectors for but which
	// produced no value.
	Missing []ContentType
}

// Extractor extracts article fields from raw HTML using an ExtractionConfig.
type Extractor interface {
	Extract(html string, config ExtractionConfig) (*Extraction, error)
}

// ExtractResult holds generic, boilerplate-free content produced without
// selector rules. It seeds the learner's known content when no selector
// rules work on a page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	ContentHTML string

	// ContentText is the main content as plain text.
	ContentText string
}

// ContentExtractor extracts main content from HTML pages without selector
// rules, removing boilerplate (nav, footer, sidebar, ads).
type ContentExtractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter transforms HTML content into Markdown.
type Converter interface {
	Convert(html string) (string, error)
}

// PresetService supplies static selector tables for known sites.
// Presets are configuration data, not learned state.
type PresetService interface {
	// ConfigForDomain returns the preset config for a domain.
	// Returns false when no preset is registered for the domain.
	ConfigForDomain(domain string) (ExtractionConfig, bool)

	// GenericConfig returns the fallback config used for unknown domains.
	GenericConfig() ExtractionConfig
}
