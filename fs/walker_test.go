package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ElishaSamPeterPrabhu/workbuddy"
	"github.com/ElishaSamPeterPrabhu/workbuddy/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates a file with parent directories as needed.
func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestWalker_Walk(t *testing.T) {
	t.Parallel()

	t.Run("nonexistent root yields empty result, not an error", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWalker(nil)
		records, err := w.Walk(context.Background(), "/no/such/directory", workbuddy.WalkOptions{MaxDepth: 3})
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("file as root yields empty result", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		file := filepath.Join(root, "plain.txt")
		writeFile(t, file, "x")

		w := fs.NewWalker(nil)
		records, err := w.Walk(context.Background(), file, workbuddy.WalkOptions{MaxDepth: 3})
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("respects max depth", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "top.txt"), "x")
		writeFile(t, filepath.Join(root, "a", "mid.txt"), "x")
		writeFile(t, filepath.Join(root, "a", "b", "deep.txt"), "x")

		w := fs.NewWalker(nil)
		records, err := w.Walk(context.Background(), root, workbuddy.WalkOptions{MaxDepth: 1})
		require.NoError(t, err)

		var names []string
		for _, rec := range records {
			names = append(names, rec.Name)
		}
		assert.ElementsMatch(t, []string{"top.txt", "mid.txt"}, names)
	})

	t.Run("glob pattern matches case-insensitively", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "Report.TXT"), "x")
		writeFile(t, filepath.Join(root, "notes.md"), "x")

		w := fs.NewWalker(nil)
		records, err := w.Walk(context.Background(), root, workbuddy.WalkOptions{Pattern: "*.txt", MaxDepth: 1})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Report.TXT", records[0].Name)
	})

	t.Run("keyword pattern matches as substring regex", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "annual-report.pdf"), "x")
		writeFile(t, filepath.Join(root, "summary.pdf"), "x")

		w := fs.NewWalker(nil)
		records, err := w.Walk(context.Background(), root, workbuddy.WalkOptions{Pattern: "report", MaxDepth: 1})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "annual-report.pdf", records[0].Name)
	})

	t.Run("file type filter", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "a.pdf"), "x")
		writeFile(t, filepath.Join(root, "b.txt"), "x")

		w := fs.NewWalker(nil)
		records, err := w.Walk(context.Background(), root, workbuddy.WalkOptions{FileType: "pdf", MaxDepth: 1})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "a.pdf", records[0].Name)
	})

	t.Run("max results stops the walk", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		for _, name := range []string{"a.txt", "b.txt", "c.txt", "d.txt"} {
			writeFile(t, filepath.Join(root, name), "x")
		}

		w := fs.NewWalker(nil)
		records, err := w.Walk(context.Background(), root, workbuddy.WalkOptions{MaxDepth: 1, MaxResults: 2})
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("include dirs reports matching directories", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "projects"), 0755))
		writeFile(t, filepath.Join(root, "projects.txt"), "x")

		w := fs.NewWalker(nil)
		records, err := w.Walk(context.Background(), root, workbuddy.WalkOptions{
			Pattern:     "projects",
			MaxDepth:    1,
			IncludeDirs: true,
		})
		require.NoError(t, err)
		require.Len(t, records, 2)

		var folders int
		for _, rec := range records {
			if rec.IsFolder {
				folders++
			}
		}
		assert.Equal(t, 1, folders)
	})

	t.Run("records carry size and modification time", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "data.bin"), "12345")

		w := fs.NewWalker(nil)
		records, err := w.Walk(context.Background(), root, workbuddy.WalkOptions{MaxDepth: 1})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, int64(5), records[0].Size)
		assert.False(t, records[0].ModifiedAt.IsZero())
		assert.Equal(t, filepath.Join(root, "data.bin"), records[0].Path)
	})
}
