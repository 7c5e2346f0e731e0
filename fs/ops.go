package fs

import (
	"context"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ElishaSamPeterPrabhu/workbuddy"
)

// Ensure FileSystem implements workbuddy.FileSystem at compile time.
var _ workbuddy.FileSystem = (*FileSystem)(nil)

// FileSystem implements the non-recursive filesystem primitives on the
// local disk.
type FileSystem struct {
	logger *slog.Logger
}

// NewFileSystem creates a new FileSystem. A nil logger disables logging.
func NewFileSystem(logger *slog.Logger) *FileSystem {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FileSystem{logger: logger}
}

// ListFolders returns the absolute paths of all folders in dir.
func (s *FileSystem) ListFolders(ctx context.Context, dir string) ([]string, error) {
	dir = filepath.Clean(ExpandHome(dir))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, workbuddy.Errorf(workbuddy.ENOTFOUND, "cannot list folders in %q: %v", dir, err)
	}

	folders := []string{}
	for _, e := range entries {
		if e.IsDir() {
			folders = append(folders, filepath.Join(dir, e.Name()))
		}
	}
	return folders, nil
}

// ListFiles returns files in dir matching a glob pattern, non-recursively.
// An empty pattern matches everything.
func (s *FileSystem) ListFiles(ctx context.Context, dir string, pattern string) ([]string, error) {
	dir = filepath.Clean(ExpandHome(dir))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, workbuddy.Errorf(workbuddy.ENOTFOUND, "cannot list files in %q: %v", dir, err)
	}
	if pattern == "" {
		pattern = "*"
	}

	files := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ok, err := path.Match(strings.ToLower(pattern), strings.ToLower(e.Name()))
		if err != nil {
			// Malformed glob: fall back to a literal comparison.
			ok = strings.EqualFold(e.Name(), pattern)
		}
		if ok {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

// FileExists reports whether a regular file exists at path.
func (s *FileSystem) FileExists(p string) bool {
	info, err := os.Stat(ExpandHome(p))
	return err == nil && info.Mode().IsRegular()
}

// FolderExists reports whether a directory exists at path.
func (s *FileSystem) FolderExists(p string) bool {
	return isDir(ExpandHome(p))
}

// ExpandSubfolders returns the first-level subfolders of dir. An
// unreadable directory yields an empty result, not an error.
func (s *FileSystem) ExpandSubfolders(ctx context.Context, dir string) ([]string, error) {
	folders, err := s.ListFolders(ctx, dir)
	if err != nil {
		s.logger.Warn("could not expand subfolders", "directory", dir, "error", err)
		return nil, nil
	}
	return folders, nil
}

// EnumerateSubtree returns all subfolders of parent up to depth whose
// names match the glob pattern. Unreadable directories are skipped.
func (s *FileSystem) EnumerateSubtree(ctx context.Context, parent string, pattern string, depth int) ([]string, error) {
	parent = filepath.Clean(ExpandHome(parent))
	if pattern == "" {
		pattern = "*"
	}
	if depth < 1 {
		depth = 1
	}

	var result []string
	queue := []workItem{{path: parent, depth: 0}}
	for len(queue) > 0 {
		if ctx.Err() != nil {
			return result, nil
		}
		item := queue[0]
		queue = queue[1:]

		entries, err := os.ReadDir(item.path)
		if err != nil {
			s.logger.Warn("could not enumerate subfolders", "directory", item.path, "error", err)
			continue
		}
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			ok, merr := path.Match(pattern, e.Name())
			if merr != nil {
				ok = true
			}
			if !ok {
				continue
			}
			full := filepath.Join(item.path, e.Name())
			result = append(result, full)
			if item.depth+1 < depth {
				queue = append(queue, workItem{path: full, depth: item.depth + 1})
			}
		}
	}
	return result, nil
}
