// Package learn implements the selector learning and scoring engine.
// The Learner discovers candidate CSS selectors from parsed documents,
// scores and ranks them by confidence and cross-domain generality, and
// persists them keyed by domain and content type for reuse.
package learn

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/fwojciec/adaptext"
)

// Ensure Learner implements adaptext.SelectorLearner at compile time.
var _ adaptext.SelectorLearner = (*Learner)(nil)

// Learner holds the mutable learning state behind a mutex. A single Learner
// instance may be shared by concurrent extraction workers; all operations
// take the lock, so one mutation is in flight at a time.
//
// The in-memory state is authoritative for the process lifetime: persistence
// happens write-through after every mutation and failures are logged, never
// propagated.
type Learner struct {
	mu     sync.Mutex
	state  *adaptext.LearningState
	store  adaptext.LearningStore
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Learner.
type Option func(*Learner)

// WithLogger sets the logger used for non-fatal persistence warnings.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Learner) {
		l.logger = logger
	}
}

// WithClock sets the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(l *Learner) {
		l.now = now
	}
}

// NewLearner creates a Learner backed by the given store. Prior state is
// loaded once at construction; if no state exists or the store is
// unreachable the Learner starts empty.
func NewLearner(ctx context.Context, store adaptext.LearningStore, opts ...Option) *Learner {
	l := &Learner{
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}

	state, err := store.Load(ctx)
	if err != nil {
		l.logger.Warn("failed to load learning state, starting empty", "error", err)
		state = adaptext.NewLearningState()
	}
	state.Normalize()
	l.state = state
	return l
}

// LearnSelectors returns selectors likely to extract the content type on the
// domain, ranked best first. It replays the domain's known patterns, then all
// scored selectors for the content type across domains, and finally, when
// knownContent is given and replay produced nothing, discovers new selectors
// from elements whose text contains knownContent.
func (l *Learner) LearnSelectors(ctx context.Context, doc adaptext.Document, contentType adaptext.ContentType, domain, knownContent string) ([]string, error) {
	if doc == nil {
		return nil, adaptext.Errorf(adaptext.EINVALID, "document required")
	}
	if !contentType.Valid() {
		return nil, adaptext.Errorf(adaptext.EINVALID, "unknown content type %q", contentType)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	var accepted []string
	seen := make(map[string]bool)
	accept := func(selector string) {
		if !seen[selector] {
			seen[selector] = true
			accepted = append(accepted, selector)
		}
	}

	// Stage 1: domain-specific replay.
	for _, selector := range l.state.DomainPatterns[domain][contentType] {
		if !matchesKnown(doc, selector, knownContent) {
			continue
		}
		l.recordSuccess(contentType, selector, now)
		l.state.AddSuccessfulDomain(selector, domain)
		accept(selector)
	}

	// Stage 2: general replay across domains, best confidence first.
	general := append([]adaptext.SelectorCandidate(nil), l.state.SelectorScores[contentType]...)
	sort.SliceStable(general, func(i, j int) bool {
		return general[i].Confidence > general[j].Confidence
	})
	for _, candidate := range general {
		if seen[candidate.Selector] {
			continue
		}
		if !matchesKnown(doc, candidate.Selector, knownContent) {
			continue
		}
		l.recordSuccess(contentType, candidate.Selector, now)
		accept(candidate.Selector)
	}

	// Stage 3: discovery from known content, only when replay came up empty.
	if knownContent != "" && len(accepted) == 0 {
		l.discoverLocked(doc, contentType, domain, knownContent, now, accept)
	}

	rankSelectors(l.state, contentType, accepted)
	l.persist(ctx)
	return accepted, nil
}

// Discover runs fresh selector discovery regardless of what replay would
// find, for callers that want new candidates even when known patterns still
// work. knownContent is required.
func (l *Learner) Discover(ctx context.Context, doc adaptext.Document, contentType adaptext.ContentType, domain, knownContent string) ([]string, error) {
	if doc == nil {
		return nil, adaptext.Errorf(adaptext.EINVALID, "document required")
	}
	if !contentType.Valid() {
		return nil, adaptext.Errorf(adaptext.EINVALID, "unknown content type %q", contentType)
	}
	if knownContent == "" {
		return nil, adaptext.Errorf(adaptext.EINVALID, "known content required for discovery")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	var discovered []string
	seen := make(map[string]bool)
	accept := func(selector string) {
		if !seen[selector] {
			seen[selector] = true
			discovered = append(discovered, selector)
		}
	}

	l.discoverLocked(doc, contentType, domain, knownContent, now, accept)

	rankSelectors(l.state, contentType, discovered)
	l.persist(ctx)
	return discovered, nil
}

// ReportResult applies external extraction feedback to a selector's score,
// creating the candidate with confidence 1.0 if absent. Successes register
// the domain and append the selector to the domain's pattern shortlist.
func (l *Learner) ReportResult(ctx context.Context, selector string, contentType adaptext.ContentType, domain string, success bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	candidate, ok := l.state.Candidate(contentType, selector)
	if !ok {
		candidate = adaptext.SelectorCandidate{Selector: selector, Confidence: 1.0}
	}
	candidate = candidate.Apply(success, l.now())
	l.state.SetCandidate(contentType, candidate)

	if success {
		l.state.AddSuccessfulDomain(selector, domain)
		l.state.AddDomainPattern(domain, contentType, selector)
	}

	l.persist(ctx)
}

// GetLearnedSelectors returns the ranked union of domain-specific and general
// selectors for the content type. An empty domain skips the domain shortlist.
// State is not mutated.
func (l *Learner) GetLearnedSelectors(contentType adaptext.ContentType, domain string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var selectors []string
	seen := make(map[string]bool)
	if domain != "" {
		for _, selector := range l.state.DomainPatterns[domain][contentType] {
			if !seen[selector] {
				seen[selector] = true
				selectors = append(selectors, selector)
			}
		}
	}
	for _, candidate := range l.state.SelectorScores[contentType] {
		if !seen[candidate.Selector] {
			seen[candidate.Selector] = true
			selectors = append(selectors, candidate.Selector)
		}
	}

	rankSelectors(l.state, contentType, selectors)
	return selectors
}

// GetSelectorConfidence returns the selector's highest confidence across
// content types, or 0 if the selector was never seen.
func (l *Learner) GetSelectorConfidence(selector string) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	best := 0.0
	for _, candidates := range l.state.SelectorScores {
		for _, candidate := range candidates {
			if candidate.Selector == selector && candidate.Confidence > best {
				best = candidate.Confidence
			}
		}
	}
	return best
}

// Snapshot returns a deep copy of the current learning state.
func (l *Learner) Snapshot() *adaptext.LearningState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Clone()
}

// recordSuccess applies a success update to the selector's candidate,
// creating it with confidence 1.0 if absent. Creating on replay keeps the
// invariant that every selector in DomainPatterns also appears in
// SelectorScores, even for states written by older versions.
func (l *Learner) recordSuccess(contentType adaptext.ContentType, selector string, now time.Time) {
	candidate, ok := l.state.Candidate(contentType, selector)
	if !ok {
		candidate = adaptext.SelectorCandidate{Selector: selector, Confidence: 1.0}
	}
	l.state.SetCandidate(contentType, candidate.Apply(true, now))
}

// persist flushes the state write-through. Persistence failure is logged,
// not fatal; the in-memory state remains authoritative.
func (l *Learner) persist(ctx context.Context) {
	l.state.LastUpdated = l.now()
	if err := l.store.Save(ctx, l.state.Clone()); err != nil {
		l.logger.Warn("failed to persist learning state", "error", err)
	}
}

// matchesKnown reports whether the selector matches at least one element
// whose text contains known. An empty known accepts any match. Selectors
// that fail to parse or execute are treated as no match.
func matchesKnown(doc adaptext.Document, selector, known string) bool {
	elements, err := doc.Select(selector)
	if err != nil {
		return false
	}
	if known == "" {
		return len(elements) > 0
	}
	for _, el := range elements {
		if containsText(el, known) {
			return true
		}
	}
	return false
}
