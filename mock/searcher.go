package mock

import (
	"context"

	"github.com/ElishaSamPeterPrabhu/workbuddy"
)

var _ workbuddy.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of workbuddy.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, filter workbuddy.SearchFilter) ([]workbuddy.FileRecord, error)
}

func (s *Searcher) Search(ctx context.Context, filter workbuddy.SearchFilter) ([]workbuddy.FileRecord, error) {
	return s.SearchFn(ctx, filter)
}

var _ workbuddy.Walker = (*Walker)(nil)

// Walker is a mock implementation of workbuddy.Walker.
type Walker struct {
	WalkFn func(ctx context.Context, root string, opts workbuddy.WalkOptions) ([]workbuddy.FileRecord, error)
}

func (w *Walker) Walk(ctx context.Context, root string, opts workbuddy.WalkOptions) ([]workbuddy.FileRecord, error) {
	return w.WalkFn(ctx, root, opts)
}
