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

// sessionFixture wires a Session around stub collaborators.
func sessionFixture(advisor workbuddy.Advisor, searcher workbuddy.Searcher, candidates []string) *search.Session {
	return &search.Session{
		Advisor:  advisor,
		Executor: &search.Executor{Searcher: searcher},
		Index: &mock.LocationIndex{
			WellKnownFn:  func(name string) (string, bool) { return "", false },
			CandidatesFn: func() []string { return candidates },
		},
		FS: &mock.FileSystem{
			FolderExistsFn: func(path string) bool { return true },
			ExpandSubfoldersFn: func(ctx context.Context, dir string) ([]string, error) {
				return nil, nil
			},
			EnumerateSubtreeFn: func(ctx context.Context, parent string, pattern string, depth int) ([]string, error) {
				return nil, nil
			},
		},
		Quick: time.Second,
	}
}

func TestSession_Run(t *testing.T) {
	t.Parallel()

	t.Run("two searches then stop", func(t *testing.T) {
		t.Parallel()

		srcResults := []workbuddy.FileRecord{{Path: "/work/src/main.py", Name: "main.py"}}
		testResults := []workbuddy.FileRecord{
			{Path: "/work/tests/test_main.py", Name: "test_main.py"},
			{Path: "/work/tests/test_util.py", Name: "test_util.py"},
		}

		calls := 0
		advisor := &mock.Advisor{NextCommandFn: func(ctx context.Context, rc workbuddy.RoundContext) (workbuddy.Command, error) {
			calls++
			switch calls {
			case 1:
				return workbuddy.Command{Kind: workbuddy.CommandSearch, Directory: "/work/src", Pattern: "*.py"}, nil
			case 2:
				return workbuddy.Command{Kind: workbuddy.CommandSearch, Directory: "/work/tests", Pattern: "test_*.py"}, nil
			default:
				return workbuddy.Command{Kind: workbuddy.CommandStop, Message: "done"}, nil
			}
		}}
		searcher := &mock.Searcher{SearchFn: func(ctx context.Context, filter workbuddy.SearchFilter) ([]workbuddy.FileRecord, error) {
			if filter.Path == "/work/src" {
				return srcResults, nil
			}
			return testResults, nil
		}}

		sess := sessionFixture(advisor, searcher, []string{"/work/src", "/work/tests", "/work/docs"})
		result, err := sess.Run(context.Background(), "python files")
		require.NoError(t, err)

		assert.Equal(t, 3, calls)
		assert.Equal(t, search.OutcomeStop, result.Outcome)
		require.Len(t, result.Rounds, 2)
		assert.Equal(t, "/work/src", result.Rounds[0].Directory)
		assert.Equal(t, "/work/tests", result.Rounds[1].Directory)
		assert.Equal(t, testResults, result.LastResults)
		assert.Len(t, result.Results, 3)
	})

	t.Run("hallucinated directory is rejected without being searched", func(t *testing.T) {
		t.Parallel()

		var contexts []workbuddy.RoundContext
		calls := 0
		advisor := &mock.Advisor{NextCommandFn: func(ctx context.Context, rc workbuddy.RoundContext) (workbuddy.Command, error) {
			contexts = append(contexts, rc)
			calls++
			if calls == 1 {
				return workbuddy.Command{Kind: workbuddy.CommandSearch, Directory: "/cand/c", Pattern: "x"}, nil
			}
			return workbuddy.Command{Kind: workbuddy.CommandStop}, nil
		}}
		searcher := &mock.Searcher{SearchFn: func(ctx context.Context, filter workbuddy.SearchFilter) ([]workbuddy.FileRecord, error) {
			t.Error("a rejected directory must never reach the searcher")
			return nil, nil
		}}

		sess := sessionFixture(advisor, searcher, []string{"/cand/a", "/cand/b"})
		result, err := sess.Run(context.Background(), "anything")
		require.NoError(t, err)

		require.Len(t, result.Rounds, 1)
		assert.Empty(t, result.Rounds[0].Results)
		assert.NotEmpty(t, result.Rounds[0].Note)

		// Second round: A and B still offered, C absent from searched.
		require.Len(t, contexts, 2)
		assert.ElementsMatch(t, []string{"/cand/a", "/cand/b"}, contexts[1].CandidateDirectories)
		assert.Empty(t, contexts[1].SearchedDirectories)
	})

	t.Run("rejection preserves the last valid results", func(t *testing.T) {
		t.Parallel()

		hit := []workbuddy.FileRecord{{Path: "/cand/a/hit.txt", Name: "hit.txt"}}

		var contexts []workbuddy.RoundContext
		calls := 0
		advisor := &mock.Advisor{NextCommandFn: func(ctx context.Context, rc workbuddy.RoundContext) (workbuddy.Command, error) {
			contexts = append(contexts, rc)
			calls++
			switch calls {
			case 1:
				return workbuddy.Command{Kind: workbuddy.CommandSearch, Directory: "/cand/a", Pattern: "hit"}, nil
			case 2:
				return workbuddy.Command{Kind: workbuddy.CommandSearch, Directory: "/cand/x", Pattern: "hit"}, nil
			default:
				return workbuddy.Command{Kind: workbuddy.CommandStop}, nil
			}
		}}
		searcher := &mock.Searcher{SearchFn: func(ctx context.Context, filter workbuddy.SearchFilter) ([]workbuddy.FileRecord, error) {
			return hit, nil
		}}

		sess := sessionFixture(advisor, searcher, []string{"/cand/a", "/cand/b"})
		result, err := sess.Run(context.Background(), "anything")
		require.NoError(t, err)

		// The rejected round consumes the counter but not the results.
		require.Len(t, contexts, 3)
		assert.Equal(t, hit, contexts[2].LastResults)
		assert.Equal(t, hit, result.LastResults)
		require.Len(t, result.Rounds, 2)
		assert.Empty(t, result.Rounds[1].Results)
	})

	t.Run("empty candidate set signals exhaustion to the advisor", func(t *testing.T) {
		t.Parallel()

		var flags []bool
		advisor := &mock.Advisor{NextCommandFn: func(ctx context.Context, rc workbuddy.RoundContext) (workbuddy.Command, error) {
			flags = append(flags, rc.ExhaustedCandidates)
			return workbuddy.Command{Kind: workbuddy.CommandStop}, nil
		}}
		searcher := &mock.Searcher{SearchFn: func(ctx context.Context, filter workbuddy.SearchFilter) ([]workbuddy.FileRecord, error) {
			return nil, nil
		}}

		sess := sessionFixture(advisor, searcher, nil)
		_, err := sess.Run(context.Background(), "anything")
		require.NoError(t, err)

		require.Len(t, flags, 1)
		assert.True(t, flags[0])
	})

	t.Run("never exceeds the round limit", func(t *testing.T) {
		t.Parallel()

		calls := 0
		advisor := &mock.Advisor{NextCommandFn: func(ctx context.Context, rc workbuddy.RoundContext) (workbuddy.Command, error) {
			calls++
			// Always asks for a directory that was never offered.
			return workbuddy.Command{Kind: workbuddy.CommandSearch, Directory: "/not/offered", Pattern: "x"}, nil
		}}
		searcher := &mock.Searcher{SearchFn: func(ctx context.Context, filter workbuddy.SearchFilter) ([]workbuddy.FileRecord, error) {
			return nil, nil
		}}

		sess := sessionFixture(advisor, searcher, []string{"/cand/a"})
		result, err := sess.Run(context.Background(), "anything")
		require.NoError(t, err)

		assert.Equal(t, search.MaxRounds, calls)
		assert.Equal(t, search.MaxRounds, len(result.Rounds))
		assert.Equal(t, search.OutcomeMaxRounds, result.Outcome)
	})

	t.Run("terminates when candidates are exhausted", func(t *testing.T) {
		t.Parallel()

		advisor := &mock.Advisor{NextCommandFn: func(ctx context.Context, rc workbuddy.RoundContext) (workbuddy.Command, error) {
			require.NotEmpty(t, rc.CandidateDirectories, "advisor must not be asked after exhaustion")
			return workbuddy.Command{Kind: workbuddy.CommandSearch, Directory: rc.CandidateDirectories[0], Pattern: "x"}, nil
		}}
		searcher := &mock.Searcher{SearchFn: func(ctx context.Context, filter workbuddy.SearchFilter) ([]workbuddy.FileRecord, error) {
			return nil, nil
		}}

		sess := sessionFixture(advisor, searcher, []string{"/cand/a", "/cand/b"})
		result, err := sess.Run(context.Background(), "anything")
		require.NoError(t, err)

		assert.Equal(t, search.OutcomeExhausted, result.Outcome)
		assert.Len(t, result.Rounds, 2)
		assert.Contains(t, result.Summary, "All candidate directories have been searched.")
	})

	t.Run("added candidates become searchable in the same round", func(t *testing.T) {
		t.Parallel()

		calls := 0
		advisor := &mock.Advisor{NextCommandFn: func(ctx context.Context, rc workbuddy.RoundContext) (workbuddy.Command, error) {
			calls++
			if calls == 1 {
				return workbuddy.Command{
					Kind:          workbuddy.CommandSearch,
					Directory:     "/mnt/share",
					Pattern:       "x",
					AddCandidates: []string{"/mnt/share"},
				}, nil
			}
			return workbuddy.Command{Kind: workbuddy.CommandStop}, nil
		}}
		searched := []string{}
		searcher := &mock.Searcher{SearchFn: func(ctx context.Context, filter workbuddy.SearchFilter) ([]workbuddy.FileRecord, error) {
			searched = append(searched, filter.Path)
			return nil, nil
		}}

		sess := sessionFixture(advisor, searcher, []string{"/cand/a"})
		result, err := sess.Run(context.Background(), "anything")
		require.NoError(t, err)

		assert.Equal(t, []string{"/mnt/share"}, searched)
		require.Len(t, result.Rounds, 1)
		assert.Empty(t, result.Rounds[0].Note)
	})

	t.Run("expand subfolders is a note-only round and idempotent", func(t *testing.T) {
		t.Parallel()

		calls := 0
		advisor := &mock.Advisor{NextCommandFn: func(ctx context.Context, rc workbuddy.RoundContext) (workbuddy.Command, error) {
			calls++
			if calls <= 2 {
				return workbuddy.Command{Kind: workbuddy.CommandExpandSubfolders, Directory: "/cand/a"}, nil
			}
			return workbuddy.Command{Kind: workbuddy.CommandStop}, nil
		}}
		expansions := 0
		searcher := &mock.Searcher{SearchFn: func(ctx context.Context, filter workbuddy.SearchFilter) ([]workbuddy.FileRecord, error) {
			return nil, nil
		}}

		sess := sessionFixture(advisor, searcher, []string{"/cand/a"})
		sess.FS = &mock.FileSystem{
			FolderExistsFn: func(path string) bool { return true },
			ExpandSubfoldersFn: func(ctx context.Context, dir string) ([]string, error) {
				expansions++
				return []string{"/cand/a/sub"}, nil
			},
		}

		result, err := sess.Run(context.Background(), "anything")
		require.NoError(t, err)

		assert.Equal(t, 1, expansions, "second expand must not hit the filesystem")
		require.Len(t, result.Rounds, 2)
		assert.Empty(t, result.Rounds[0].Results)
	})

	t.Run("enumerate subtree replaces candidates and resets searched", func(t *testing.T) {
		t.Parallel()

		var contexts []workbuddy.RoundContext
		calls := 0
		advisor := &mock.Advisor{NextCommandFn: func(ctx context.Context, rc workbuddy.RoundContext) (workbuddy.Command, error) {
			contexts = append(contexts, rc)
			calls++
			switch calls {
			case 1:
				return workbuddy.Command{Kind: workbuddy.CommandSearch, Directory: "/cand/a", Pattern: "x"}, nil
			case 2:
				return workbuddy.Command{Kind: workbuddy.CommandEnumerateSubtree, ParentDirectory: "/cand", Pattern: "*", Depth: 1}, nil
			default:
				return workbuddy.Command{Kind: workbuddy.CommandStop}, nil
			}
		}}
		searcher := &mock.Searcher{SearchFn: func(ctx context.Context, filter workbuddy.SearchFilter) ([]workbuddy.FileRecord, error) {
			return nil, nil
		}}

		sess := sessionFixture(advisor, searcher, []string{"/cand/a", "/cand/b"})
		sess.FS = &mock.FileSystem{
			FolderExistsFn: func(path string) bool { return true },
			EnumerateSubtreeFn: func(ctx context.Context, parent string, pattern string, depth int) ([]string, error) {
				return []string{"/cand/a", "/cand/x"}, nil
			},
		}

		_, err := sess.Run(context.Background(), "anything")
		require.NoError(t, err)

		// After replacement, /cand/a is searchable again.
		require.Len(t, contexts, 3)
		assert.ElementsMatch(t, []string{"/cand/a", "/cand/x"}, contexts[2].CandidateDirectories)
		assert.Empty(t, contexts[2].SearchedDirectories)
	})

	t.Run("extended retry after an empty quick round", func(t *testing.T) {
		t.Parallel()

		calls := 0
		advisor := &mock.Advisor{NextCommandFn: func(ctx context.Context, rc workbuddy.RoundContext) (workbuddy.Command, error) {
			calls++
			if calls == 1 {
				return workbuddy.Command{Kind: workbuddy.CommandSearch, Directory: "/cand/a", Pattern: "x", Extended: true}, nil
			}
			return workbuddy.Command{Kind: workbuddy.CommandStop}, nil
		}}
		searches := 0
		searcher := &mock.Searcher{SearchFn: func(ctx context.Context, filter workbuddy.SearchFilter) ([]workbuddy.FileRecord, error) {
			searches++
			if searches == 1 {
				return nil, nil
			}
			return []workbuddy.FileRecord{{Path: "/cand/a/found.txt"}}, nil
		}}

		sess := sessionFixture(advisor, searcher, []string{"/cand/a", "/cand/b"})
		sess.Extended = time.Second
		result, err := sess.Run(context.Background(), "anything")
		require.NoError(t, err)

		assert.Equal(t, 2, searches, "quick round plus one extended retry")
		require.Len(t, result.Rounds, 1)
		assert.Len(t, result.Rounds[0].Results, 1)
	})

	t.Run("unknown command is an implicit stop", func(t *testing.T) {
		t.Parallel()

		advisor := &mock.Advisor{NextCommandFn: func(ctx context.Context, rc workbuddy.RoundContext) (workbuddy.Command, error) {
			return workbuddy.Command{Kind: workbuddy.CommandUnknown, Message: "gibberish"}, nil
		}}
		searcher := &mock.Searcher{SearchFn: func(ctx context.Context, filter workbuddy.SearchFilter) ([]workbuddy.FileRecord, error) {
			return nil, nil
		}}

		sess := sessionFixture(advisor, searcher, []string{"/cand/a"})
		result, err := sess.Run(context.Background(), "anything")
		require.NoError(t, err)

		assert.Equal(t, search.OutcomeStop, result.Outcome)
		assert.Empty(t, result.Rounds)
		assert.Contains(t, result.Summary, "gibberish")
	})
}
