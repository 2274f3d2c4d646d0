// Package fs provides a file-backed implementation of adaptext.LearningStore.
// The learning state is serialized as a single JSON snapshot; writes go to a
// temporary file first and are moved into place atomically.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/adaptext"
)

// Ensure Store implements adaptext.LearningStore at compile time.
var _ adaptext.LearningStore = (*Store)(nil)

// Store persists the learning state to a single JSON file.
type Store struct {
	path string
}

// NewStore creates a Store writing to the given path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Save writes the full state snapshot atomically.
func (s *Store) Save(ctx context.Context, state *adaptext.LearningState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return adaptext.Errorf(adaptext.EUNAVAILABLE, "failed to encode learning state: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return adaptext.Errorf(adaptext.EUNAVAILABLE, "failed to create state directory: %v", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return adaptext.Errorf(adaptext.EUNAVAILABLE, "failed to write learning state: %v", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return adaptext.Errorf(adaptext.EUNAVAILABLE, "failed to replace learning state: %v", err)
	}
	return nil
}

// Load reads the previously saved state. A missing file is not an error:
// it returns an empty state. A file that exists but cannot be read or
// decoded returns EUNAVAILABLE.
func (s *Store) Load(ctx context.Context) (*adaptext.LearningState, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return adaptext.NewLearningState(), nil
	}
	if err != nil {
		return nil, adaptext.Errorf(adaptext.EUNAVAILABLE, "failed to read learning state: %v", err)
	}

	var state adaptext.LearningState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, adaptext.Errorf(adaptext.EUNAVAILABLE, "failed to decode learning state: %v", err)
	}
	state.Normalize()
	return &state, nil
}
