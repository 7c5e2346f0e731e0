package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/ElishaSamPeterPrabhu/workbuddy"
	"github.com/ElishaSamPeterPrabhu/workbuddy/mock"
	"github.com/ElishaSamPeterPrabhu/workbuddy/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutor_Execute(t *testing.T) {
	t.Parallel()

	t.Run("returns results within the deadline", func(t *testing.T) {
		t.Parallel()

		exec := &search.Executor{Searcher: &mock.Searcher{
			SearchFn: func(ctx context.Context, filter workbuddy.SearchFilter) ([]workbuddy.FileRecord, error) {
				return []workbuddy.FileRecord{{Path: "/a"}, {Path: "/b"}}, nil
			},
		}}

		resp := exec.Execute(context.Background(), workbuddy.SearchFilter{Pattern: "x", Limit: 10}, time.Second)
		assert.True(t, resp.Success)
		assert.Equal(t, 2, resp.Count)
		assert.Len(t, resp.Results, 2)
		assert.NotEmpty(t, resp.Generation)
	})

	t.Run("zero deadline times out immediately without running the search", func(t *testing.T) {
		t.Parallel()

		exec := &search.Executor{Searcher: &mock.Searcher{
			SearchFn: func(ctx context.Context, filter workbuddy.SearchFilter) ([]workbuddy.FileRecord, error) {
				t.Fatal("searcher must not be called")
				return nil, nil
			},
		}}

		start := time.Now()
		resp := exec.Execute(context.Background(), workbuddy.SearchFilter{Pattern: "x", Limit: 10}, 0)
		assert.Less(t, time.Since(start), 100*time.Millisecond)
		assert.False(t, resp.Success)
		assert.Equal(t, 0, resp.Count)
		assert.Equal(t, "search timed out after 0s", resp.Error)
	})

	t.Run("abandons a slow search at the deadline", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		exec := &search.Executor{Searcher: &mock.Searcher{
			SearchFn: func(ctx context.Context, filter workbuddy.SearchFilter) ([]workbuddy.FileRecord, error) {
				<-release
				return []workbuddy.FileRecord{{Path: "/late"}}, nil
			},
		}}

		resp := exec.Execute(context.Background(), workbuddy.SearchFilter{Pattern: "x", Limit: 10}, 20*time.Millisecond)
		assert.False(t, resp.Success)
		assert.Equal(t, "search timed out after 0s", resp.Error)
		assert.Empty(t, resp.Results)

		// Let the abandoned worker finish; its result is dropped.
		close(release)
	})

	t.Run("search error is a structured failure", func(t *testing.T) {
		t.Parallel()

		exec := &search.Executor{Searcher: &mock.Searcher{
			SearchFn: func(ctx context.Context, filter workbuddy.SearchFilter) ([]workbuddy.FileRecord, error) {
				return nil, workbuddy.Errorf(workbuddy.EINTERNAL, "disk on fire")
			},
		}}

		resp := exec.Execute(context.Background(), workbuddy.SearchFilter{Pattern: "x", Limit: 10}, time.Second)
		assert.False(t, resp.Success)
		assert.Equal(t, "disk on fire", resp.Error)
	})

	t.Run("generation tags are unique per call", func(t *testing.T) {
		t.Parallel()

		exec := &search.Executor{Searcher: &mock.Searcher{
			SearchFn: func(ctx context.Context, filter workbuddy.SearchFilter) ([]workbuddy.FileRecord, error) {
				return nil, nil
			},
		}}

		a := exec.Execute(context.Background(), workbuddy.SearchFilter{Limit: 1}, time.Second)
		b := exec.Execute(context.Background(), workbuddy.SearchFilter{Limit: 1}, time.Second)
		require.NotEmpty(t, a.Generation)
		require.NotEmpty(t, b.Generation)
		assert.NotEqual(t, a.Generation, b.Generation)
	})
}
