package adaptext

import (
	"context"
	"time"
)

// ContentType labels which article field a selector is meant to extract.
type ContentType string

// Content types recognized by the extractor and the learner.
const (
	ContentTypeTitle        ContentType = "title"
	ContentTypeContent      ContentType = "content"
	ContentTypeAuthor       ContentType = "author"
	ContentTypeDate         ContentType = "date"
	ContentTypeImage        ContentType = "image"
	ContentTypeTopic        ContentType = "topic"
	ContentTypeOrganization ContentType = "organization"
	ContentTypeLocation     ContentType = "location"
)

// ContentTypes returns all recognized content types in a stable order.
func ContentTypes() []ContentType {
	return []ContentType{
		ContentTypeTitle,
		ContentTypeContent,
		ContentTypeAuthor,
		ContentTypeDate,
		ContentTypeImage,
		ContentTypeTopic,
		ContentTypeOrganization,
		ContentTypeLocation,
	}
}

// Valid reports whether ct is one of the recognized content types.
func (ct ContentType) Valid() bool {
	switch ct {
	case ContentTypeTitle, ContentTypeContent, ContentTypeAuthor,
		ContentTypeDate, ContentTypeImage, ContentTypeTopic,
		ContentTypeOrganization, ContentTypeLocation:
		return true
	}
	return false
}

// SelectorCandidate records one CSS selector's track record for a content type.
type SelectorCandidate struct {
	Selector      string    `json:"selector"`
	Confidence    float64   `json:"confidence"`
	SuccessCount  int       `json:"successCount"`
	TotalAttempts int       `json:"totalAttempts"`
	LastUsed      time.Time `json:"lastUsed"`
}

// Apply returns a copy of the candidate updated with the outcome of one
// extraction attempt. Confidence is multiplied by 1.1 on success and 0.9 on
// failure; repeated failure drives it toward zero but never below.
func (c SelectorCandidate) Apply(success bool, now time.Time) SelectorCandidate {
	if success {
		c.Confidence *= 1.1
		c.SuccessCount++
	} else {
		c.Confidence *= 0.9
	}
	c.TotalAttempts++
	c.LastUsed = now
	return c
}

// SuccessRate returns SuccessCount/TotalAttempts.
// It returns 0 when no attempts have been recorded.
func (c SelectorCandidate) SuccessRate() float64 {
	if c.TotalAttempts == 0 {
		return 0
	}
	return float64(c.SuccessCount) / float64(c.TotalAttempts)
}

// LearningState is the full persisted learning snapshot, owned exclusively
// by the learner. Every selector referenced in DomainPatterns for a content
// type also appears in SelectorScores for that content type; write paths
// maintain this invariant.
type LearningState struct {
	// SelectorScores maps each content type to its scored candidates.
	// Selectors are unique per content type.
	SelectorScores map[ContentType][]SelectorCandidate `json:"selectorScores"`

	// DomainPatterns maps domain to content type to the ordered shortlist of
	// selectors discovered on that domain. Insertion order is discovery
	// order; duplicates are suppressed.
	DomainPatterns map[string]map[ContentType][]string `json:"domainPatterns"`

	// SuccessfulDomains maps a selector to the domains where it succeeded,
	// used to detect cross-domain generality.
	SuccessfulDomains map[string][]string `json:"successfulDomains"`

	// LastUpdated is the time of the last persistence write.
	LastUpdated time.Time `json:"lastUpdated"`
}

// NewLearningState returns an empty state with all maps initialized.
func NewLearningState() *LearningState {
	return &LearningState{
		SelectorScores:    make(map[ContentType][]SelectorCandidate),
		DomainPatterns:    make(map[string]map[ContentType][]string),
		SuccessfulDomains: make(map[string][]string),
	}
}

// Normalize initializes any nil maps, so that states decoded from storage
// are safe to mutate.
func (s *LearningState) Normalize() {
	if s.SelectorScores == nil {
		s.SelectorScores = make(map[ContentType][]SelectorCandidate)
	}
	if s.DomainPatterns == nil {
		s.DomainPatterns = make(map[string]map[ContentType][]string)
	}
	if s.SuccessfulDomains == nil {
		s.SuccessfulDomains = make(map[string][]string)
	}
}

// Clone returns a deep copy of the state.
func (s *LearningState) Clone() *LearningState {
	out := NewLearningState()
	out.LastUpdated = s.LastUpdated
	for ct, candidates := range s.SelectorScores {
		out.SelectorScores[ct] = append([]SelectorCandidate(nil), candidates...)
	}
	for domain, byType := range s.DomainPatterns {
		m := make(map[ContentType][]string, len(byType))
		for ct, selectors := range byType {
			m[ct] = append([]string(nil), selectors...)
		}
		out.DomainPatterns[domain] = m
	}
	for selector, domains := range s.SuccessfulDomains {
		out.SuccessfulDomains[selector] = append([]string(nil), domains...)
	}
	return out
}

// Candidate returns the scored candidate for a selector under a content type.
func (s *LearningState) Candidate(ct ContentType, selector string) (SelectorCandidate, bool) {
	for _, c := range s.SelectorScores[ct] {
		if c.Selector == selector {
			return c, true
		}
	}
	return SelectorCandidate{}, false
}

// SetCandidate inserts or replaces the scored candidate for its selector
// under a content type, preserving insertion order.
func (s *LearningState) SetCandidate(ct ContentType, candidate SelectorCandidate) {
	candidates := s.SelectorScores[ct]
	for i, c := range candidates {
		if c.Selector == candidate.Selector {
			candidates[i] = candidate
			return
		}
	}
	s.SelectorScores[ct] = append(candidates, candidate)
}

// AddDomainPattern appends a selector to the domain's shortlist for a content
// type. Returns false if the selector was already present.
func (s *LearningState) AddDomainPattern(domain string, ct ContentType, selector string) bool {
	byType, ok := s.DomainPatterns[domain]
	if !ok {
		byType = make(map[ContentType][]string)
		s.DomainPatterns[domain] = byType
	}
	for _, existing := range byType[ct] {
		if existing == selector {
			return false
		}
	}
	byType[ct] = append(byType[ct], selector)
	return true
}

// AddSuccessfulDomain registers a domain where the selector succeeded.
// Returns false if the domain was already registered.
func (s *LearningState) AddSuccessfulDomain(selector, domain string) bool {
	for _, existing := range s.SuccessfulDomains[selector] {
		if existing == domain {
			return false
		}
	}
	s.SuccessfulDomains[selector] = append(s.SuccessfulDomains[selector], domain)
	return true
}

// DomainCount returns the number of distinct domains where the selector
// succeeded.
func (s *LearningState) DomainCount(selector string) int {
	return len(s.SuccessfulDomains[selector])
}

// LearningStore durably stores and retrieves learning snapshots.
type LearningStore interface {
	// Save persists the full state. Returns EUNAVAILABLE on I/O or
	// serialization failure.
	Save(ctx context.Context, state *LearningState) error

	// Load retrieves the previously saved state. Absence of prior state is
	// not an error: implementations return an empty state.
	Load(ctx context.Context) (*LearningState, error)
}

// SelectorLearner discovers, scores, ranks, and persists CSS selectors.
type SelectorLearner interface {
	// LearnSelectors returns selectors likely to extract the content type on
	// the domain, ranked best first, updating persisted learning state as a
	// side effect. knownContent, when non-empty, constrains accepted
	// selectors to elements whose text contains it, and enables discovery of
	// new selectors when replay yields nothing.
	LearnSelectors(ctx context.Context, doc Document, contentType ContentType, domain, knownContent string) ([]string, error)

	// ReportResult applies external extraction feedback to a selector's
	// score, creating the candidate if absent.
	ReportResult(ctx context.Context, selector string, contentType ContentType, domain string, success bool)

	// GetLearnedSelectors returns the ranked union of domain-specific and
	// general selectors for the content type without mutating state.
	// An empty domain skips the domain-specific shortlist.
	GetLearnedSelectors(contentType ContentType, domain string) []string

	// GetSelectorConfidence returns the selector's highest confidence across
	// content types, or 0 if the selector was never seen.
	GetSelectorConfidence(selector string) float64
}
