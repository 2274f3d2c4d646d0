package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/adaptext"
)

// Compile-time interface verification.
var _ adaptext.LearningStore = (*LearningStore)(nil)

// LearningStore implements adaptext.LearningStore using SQLite.
// Save replaces the whole snapshot in a single transaction, which matches
// the learner's write-through, state-is-a-blob persistence contract.
type LearningStore struct {
	db *DB
}

// NewLearningStore creates a new LearningStore.
func NewLearningStore(db *DB) *LearningStore {
	return &LearningStore{db: db}
}

// Save persists the full state, replacing any previous snapshot.
func (s *LearningStore) Save(ctx context.Context, state *adaptext.LearningState) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return adaptext.Errorf(adaptext.EUNAVAILABLE, "failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"selector_scores", "domain_patterns", "successful_domains", "learning_meta"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return adaptext.Errorf(adaptext.EUNAVAILABLE, "failed to clear %s: %v", table, err)
		}
	}

	for contentType, candidates := range state.SelectorScores {
		for i, c := range candidates {
			lastUsed := ""
			if !c.LastUsed.IsZero() {
				lastUsed = c.LastUsed.UTC().Format(time.RFC3339Nano)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO selector_scores (content_type, selector, confidence, success_count, total_attempts, last_used, position)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, string(contentType), c.Selector, c.Confidence, c.SuccessCount, c.TotalAttempts, lastUsed, i); err != nil {
				return adaptext.Errorf(adaptext.EUNAVAILABLE, "failed to write selector score: %v", err)
			}
		}
	}

	for domain, byType := range state.DomainPatterns {
		for contentType, selectors := range byType {
			for i, selector := range selectors {
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO domain_patterns (domain, content_type, selector, position)
					VALUES (?, ?, ?, ?)
				`, domain, string(contentType), selector, i); err != nil {
					return adaptext.Errorf(adaptext.EUNAVAILABLE, "failed to write domain pattern: %v", err)
				}
			}
		}
	}

	for selector, domains := range state.SuccessfulDomains {
		for i, domain := range domains {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO successful_domains (selector, domain, position)
				VALUES (?, ?, ?)
			`, selector, domain, i); err != nil {
				return adaptext.Errorf(adaptext.EUNAVAILABLE, "failed to write successful domain: %v", err)
			}
		}
	}

	lastUpdated := state.LastUpdated
	if lastUpdated.IsZero() {
		lastUpdated = time.Now().UTC()
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO learning_meta (id, last_updated) VALUES (1, ?)
	`, lastUpdated.UTC().Format(time.RFC3339Nano)); err != nil {
		return adaptext.Errorf(adaptext.EUNAVAILABLE, "failed to write meta: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return adaptext.Errorf(adaptext.EUNAVAILABLE, "failed to commit learning state: %v", err)
	}
	return nil
}

// Load retrieves the previously saved state. An empty database yields an
// empty state, never an error.
func (s *LearningStore) Load(ctx context.Context) (*adaptext.LearningState, error) {
	state := adaptext.NewLearningState()

	rows, err := s.db.QueryContext(ctx, `
		SELECT content_type, selector, confidence, success_count, total_attempts, last_used
		FROM selector_scores
		ORDER BY content_type, position
	`)
	if err != nil {
		return nil, adaptext.Errorf(adaptext.EUNAVAILABLE, "failed to read selector scores: %v", err)
	}
	defer rows.Close()
	for rows.Next() {
		var contentType, lastUsed string
		var c adaptext.SelectorCandidate
		if err := rows.Scan(&contentType, &c.Selector, &c.Confidence, &c.SuccessCount, &c.TotalAttempts, &lastUsed); err != nil {
			return nil, adaptext.Errorf(adaptext.EUNAVAILABLE, "failed to scan selector score: %v", err)
		}
		if lastUsed != "" {
			t, err := time.Parse(time.RFC3339Nano, lastUsed)
			if err != nil {
				return nil, adaptext.Errorf(adaptext.EUNAVAILABLE, "failed to parse last_used: %v", err)
			}
			c.LastUsed = t
		}
		ct := adaptext.ContentType(contentType)
		state.SelectorScores[ct] = append(state.SelectorScores[ct], c)
	}
	if err := rows.Err(); err != nil {
		return nil, adaptext.Errorf(adaptext.EUNAVAILABLE, "failed to read selector scores: %v", err)
	}

	if err := s.loadDomainPatterns(ctx, state); err != nil {
		return nil, err
	}
	if err := s.loadSuccessfulDomains(ctx, state); err != nil {
		return nil, err
	}

	var lastUpdated string
	err = s.db.QueryRowContext(ctx, "SELECT last_updated FROM learning_meta WHERE id = 1").Scan(&lastUpdated)
	if err != nil && err != sql.ErrNoRows {
		return nil, adaptext.Errorf(adaptext.EUNAVAILABLE, "failed to read meta: %v", err)
	}
	if lastUpdated != "" {
		t, err := time.Parse(time.RFC3339Nano, lastUpdated)
		if err != nil {
			return nil, adaptext.Errorf(adaptext.EUNAVAILABLE, "failed to parse last_updated: %v", err)
		}
		state.LastUpdated = t
	}

	return state, nil
}

func (s *LearningStore) loadDomainPatterns(ctx context.Context, state *adaptext.LearningState) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT domain, content_type, selector
		FROM domain_patterns
		ORDER BY domain, content_type, position
	`)
	if err != nil {
		return adaptext.Errorf(adaptext.EUNAVAILABLE, "failed to read domain patterns: %v", err)
	}
	defer rows.Close()
	for rows.Next() {
		var domain, contentType, selector string
		if err := rows.Scan(&domain, &contentType, &selector); err != nil {
			return adaptext.Errorf(adaptext.EUNAVAILABLE, "failed to scan domain pattern: %v", err)
		}
		state.AddDomainPattern(domain, adaptext.ContentType(contentType), selector)
	}
	if err := rows.Err(); err != nil {
		return adaptext.Errorf(adaptext.EUNAVAILABLE, "failed to read domain patterns: %v", err)
	}
	return nil
}

func (s *LearningStore) loadSuccessfulDomains(ctx context.Context, state *adaptext.LearningState) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT selector, domain
		FROM successful_domains
		ORDER BY selector, position
	`)
	if err != nil {
		return adaptext.Errorf(adaptext.EUNAVAILABLE, "failed to read successful domains: %v", err)
	}
	defer rows.Close()
	for rows.Next() {
		var selector, domain string
		if err := rows.Scan(&selector, &domain); err != nil {
			return adaptext.Errorf(adaptext.EUNAVAILABLE, "failed to scan successful domain: %v", err)
		}
		state.AddSuccessfulDomain(selector, domain)
	}
	if err := rows.Err(); err != nil {
		return adaptext.Errorf(adaptext.EUNAVAILABLE, "failed to read successful domains: %v", err)
	}
	return nil
}
