// Package fs provides filesystem adapters: the bounded directory walker,
// the tiered priority location index, and the non-recursive primitives
// consumed by the request surface.
package fs

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ElishaSamPeterPrabhu/workbuddy"
	"github.com/ElishaSamPeterPrabhu/workbuddy/bloom"
)

// Visited-set sizing for the walk frontier.
const (
	walkExpectedDirs      = 100000
	walkFalsePositiveRate = 0.001
)

// Ensure Walker implements workbuddy.Walker at compile time.
var _ workbuddy.Walker = (*Walker)(nil)

// Walker performs iterative, depth-limited directory traversal with an
// explicit worklist. Traversal is pruned, not merely stopped: children of
// directories at MaxDepth are never enqueued. Per-entry errors are logged
// and skipped; the walk continues.
type Walker struct {
	logger *slog.Logger
}

// NewWalker creates a new Walker. A nil logger disables logging.
func NewWalker(logger *slog.Logger) *Walker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Walker{logger: logger}
}

// workItem is one pending directory on the walk frontier.
type workItem struct {
	path  string
	depth int
}

// Walk traverses root up to opts.MaxDepth (root is depth 0) and returns
// records for matching entries. A missing or non-directory root yields an
// empty result and a nil error.
func (w *Walker) Walk(ctx context.Context, root string, opts workbuddy.WalkOptions) ([]workbuddy.FileRecord, error) {
	root = filepath.Clean(ExpandHome(root))
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, nil
	}

	match := newNameMatcher(opts.Pattern)
	ext := normalizeExt(opts.FileType)

	// The seen filter guards against overlapping enqueues and re-visits
	// through duplicated mount points.
	seen := bloom.NewFilter(walkExpectedDirs, walkFalsePositiveRate)
	seen.Add(root)

	var records []workbuddy.FileRecord
	queue := []workItem{{path: root, depth: 0}}

	for len(queue) > 0 {
		if ctx.Err() != nil {
			return records, nil
		}

		item := queue[0]
		queue = queue[1:]

		entries, err := os.ReadDir(item.path)
		if err != nil {
			// Permission denied or a race with concurrent deletion:
			// skip the directory, keep walking.
			w.logger.Warn("skipping unreadable directory", "path", item.path, "error", err)
			continue
		}

		for _, entry := range entries {
			full := filepath.Join(item.path, entry.Name())

			if entry.IsDir() {
				if opts.IncludeDirs && match(entry.Name()) {
					if rec, ok := w.record(full, entry); ok {
						records = append(records, rec)
						if opts.MaxResults > 0 && len(records) >= opts.MaxResults {
							return records, nil
						}
					}
				}
				if item.depth+1 <= opts.MaxDepth && !seen.Test(full) {
					seen.Add(full)
					queue = append(queue, workItem{path: full, depth: item.depth + 1})
				}
				continue
			}

			// Symlinks are reported if they match but never followed.
			if !match(entry.Name()) {
				continue
			}
			if ext != "" && !strings.HasSuffix(strings.ToLower(entry.Name()), ext) {
				continue
			}

			if rec, ok := w.record(full, entry); ok {
				records = append(records, rec)
				if opts.MaxResults > 0 && len(records) >= opts.MaxResults {
					return records, nil
				}
			}
		}
	}

	return records, nil
}

// record builds a FileRecord from a directory entry, skipping entries
// whose metadata can no longer be read.
func (w *Walker) record(full string, entry fs.DirEntry) (workbuddy.FileRecord, bool) {
	info, err := entry.Info()
	if err != nil {
		w.logger.Warn("skipping unreadable entry", "path", full, "error", err)
		return workbuddy.FileRecord{}, false
	}
	return workbuddy.FileRecord{
		Path:       full,
		Name:       entry.Name(),
		Size:       info.Size(),
		ModifiedAt: info.ModTime(),
		IsFolder:   entry.IsDir(),
	}, true
}

// newNameMatcher compiles pattern as a case-insensitive regular
// expression. An invalid regex silently falls back to glob matching, and
// an invalid glob to a literal substring match. An empty pattern or "*"
// matches everything.
func newNameMatcher(pattern string) func(name string) bool {
	if pattern == "" || pattern == "*" {
		return func(string) bool { return true }
	}

	if re, err := regexp.Compile("(?i)" + pattern); err == nil {
		return func(name string) bool { return re.MatchString(name) }
	}

	lower := strings.ToLower(pattern)
	if _, err := path.Match(lower, ""); err == nil {
		return func(name string) bool {
			ok, _ := path.Match(lower, strings.ToLower(name))
			return ok
		}
	}

	return func(name string) bool {
		return strings.Contains(strings.ToLower(name), lower)
	}
}

// normalizeExt lowercases an extension filter and ensures a leading dot.
func normalizeExt(ext string) string {
	if ext == "" {
		return ""
	}
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`) {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p[1:], string(os.PathSeparator)))
		}
	}
	return p
}
