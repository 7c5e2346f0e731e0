package workbuddy

import (
	"context"
	"time"
)

// Tier is the priority rank assigned to a well-known or configured
// directory. Lower tiers are searched first and deeper.
type Tier int

// Tier constants. TierUnknown sorts after every configured tier.
const (
	TierPrimary Tier = 1 // Desktop, Documents
	TierMedia   Tier = 2 // Downloads, Pictures, Videos, Music
	TierHome    Tier = 3 // home directory and configured search roots
	TierDrives  Tier = 4 // volume/drive roots
	TierSystem  Tier = 5 // OS/system directories, opt-in only
	TierUnknown Tier = 99
)

// FileRecord represents a single file or folder found during a search.
// Records are produced by the walker and never mutated after creation.
type FileRecord struct {
	Path       string    `json:"path"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"date_modified"`
	IsFolder   bool      `json:"is_folder"`
	Tier       Tier      `json:"tier,omitempty"`
}

// SearchFilter represents a structured file search request.
// It is immutable once built from a query.
type SearchFilter struct {
	// Pattern matches file names. Interpreted as a case-insensitive
	// regular expression, with a glob fallback if it does not compile.
	Pattern string `json:"pattern"`

	// Path restricts the search to a single directory subtree.
	// When empty the prioritized location tiers are searched instead.
	Path string `json:"path,omitempty"`

	// FileType filters by extension, with or without the leading dot.
	FileType string `json:"file_type,omitempty"`

	MinSize        *int64     `json:"min_size,omitempty"`
	MaxSize        *int64     `json:"max_size,omitempty"`
	ModifiedAfter  *time.Time `json:"modified_after,omitempty"`
	ModifiedBefore *time.Time `json:"modified_before,omitempty"`

	// Limit caps the number of returned records. A search never returns
	// more than Limit records; a non-positive limit yields no records.
	Limit int `json:"limit"`
}

// WalkOptions bounds a single directory traversal.
type WalkOptions struct {
	// Pattern matches entry names; empty or "*" matches everything.
	Pattern string

	// FileType filters files by extension.
	FileType string

	// MaxDepth is the deepest directory level visited, with the root at
	// depth 0. Children of directories at MaxDepth are never enqueued.
	MaxDepth int

	// MaxResults stops the traversal once reached. Non-positive means
	// unbounded.
	MaxResults int

	// IncludeDirs reports matching directories as records in addition
	// to files.
	IncludeDirs bool
}

// Walker performs a depth-limited traversal of a single directory tree.
// A missing or non-directory root yields an empty result, not an error;
// per-entry failures are skipped and the walk continues.
type Walker interface {
	Walk(ctx context.Context, root string, opts WalkOptions) ([]FileRecord, error)
}

// LocationIndex is an OS-aware, tiered ordering of directories to search.
// It is computed once at initialization and immutable thereafter, so a
// single index may be shared by concurrent sessions.
type LocationIndex interface {
	// Locations returns the configured, existing directories of a tier.
	Locations(tier Tier) []string

	// TierOf returns the tier of the most specific configured ancestor
	// of path, or TierUnknown.
	TierOf(path string) Tier

	// WellKnown resolves a folder keyword ("desktop", "documents", ...)
	// to its absolute path, if that folder exists.
	WellKnown(name string) (string, bool)

	// Candidates returns the directories offered to a new search
	// session: well-known folders, first-level home subfolders, the
	// working directory and user-configured search roots, existing and
	// readable only.
	Candidates() []string
}

// Searcher locates files matching a filter. Implementations contain their
// internal failures and degrade to partial or empty results.
type Searcher interface {
	Search(ctx context.Context, filter SearchFilter) ([]FileRecord, error)
}

// FileSystem provides the non-recursive filesystem primitives consumed by
// the request surface and the session controller.
type FileSystem interface {
	// ListFolders returns the absolute paths of all folders in dir.
	ListFolders(ctx context.Context, dir string) ([]string, error)

	// ListFiles returns files in dir matching a glob pattern,
	// non-recursively.
	ListFiles(ctx context.Context, dir string, pattern string) ([]string, error)

	// FileExists reports whether a regular file exists at path.
	FileExists(path string) bool

	// FolderExists reports whether a directory exists at path.
	FolderExists(path string) bool

	// ExpandSubfolders returns the first-level subfolders of dir.
	ExpandSubfolders(ctx context.Context, dir string) ([]string, error)

	// EnumerateSubtree returns all subfolders of parent up to depth
	// whose names match the glob pattern.
	EnumerateSubtree(ctx context.Context, parent string, pattern string, depth int) ([]string, error)
}
