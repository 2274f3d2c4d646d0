package mock

import (
	"context"

	"github.com/fwojciec/adaptext"
)

var _ adaptext.LearningStore = (*LearningStore)(nil)

// LearningStore is a mock implementation of adaptext.LearningStore.
type LearningStore struct {
	SaveFn func(ctx context.Context, state *adaptext.LearningState) error
	LoadFn func(ctx context.Context) (*adaptext.LearningState, error)
}

func (s *LearningStore) Save(ctx context.Context, state *adaptext.LearningState) error {
	return s.SaveFn(ctx, state)
}

func (s *LearningStore) Load(ctx context.Context) (*adaptext.LearningState, error) {
	return s.LoadFn(ctx)
}
