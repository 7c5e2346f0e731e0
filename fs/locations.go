package fs

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/ElishaSamPeterPrabhu/workbuddy"
	"golang.org/x/sync/errgroup"
)

// Ensure LocationIndex implements workbuddy.LocationIndex at compile time.
var _ workbuddy.LocationIndex = (*LocationIndex)(nil)

// LocationIndex is the OS-aware, tiered ordering of directories to search.
// It probes every well-known location once at construction; missing or
// inaccessible locations are skipped, never treated as errors. The index
// is immutable after construction and safe to share between sessions.
type LocationIndex struct {
	home      string
	goos      string
	tiers     map[workbuddy.Tier][]string
	wellKnown map[string]string
	roots     []string
	logger    *slog.Logger
}

// LocationConfig configures index construction. Zero values fall back to
// the running system.
type LocationConfig struct {
	// Home overrides the user home directory (tests).
	Home string

	// GOOS overrides the operating system layout (tests).
	GOOS string

	// SearchRoots are user-configured extra directories, merged into the
	// home tier and the session candidate set.
	SearchRoots []string

	Logger *slog.Logger
}

// NewLocationIndex builds and probes the tiered index.
func NewLocationIndex(cfg LocationConfig) *LocationIndex {
	home := cfg.Home
	if home == "" {
		if h, err := os.UserHomeDir(); err == nil {
			home = h
		}
	}
	goos := cfg.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	idx := &LocationIndex{
		home:      home,
		goos:      goos,
		tiers:     make(map[workbuddy.Tier][]string),
		wellKnown: make(map[string]string),
		logger:    logger,
	}
	idx.initialize(cfg.SearchRoots)
	return idx
}

// probe is one candidate location awaiting an existence check.
type probe struct {
	tier workbuddy.Tier
	path string
	ok   bool
}

// initialize assembles the per-OS location layout and probes every entry
// concurrently. Order within a tier is preserved.
func (idx *LocationIndex) initialize(roots []string) {
	probes := idx.layout()

	for _, root := range roots {
		probes = append(probes, probe{tier: workbuddy.TierHome, path: filepath.Clean(ExpandHome(root))})
	}

	var g errgroup.Group
	for i := range probes {
		g.Go(func() error {
			probes[i].ok = isDir(probes[i].path)
			return nil
		})
	}
	_ = g.Wait() // probes never return errors; misses are skips

	for _, p := range probes {
		if !p.ok {
			idx.logger.Debug("skipping missing location", "path", p.path, "tier", int(p.tier))
			continue
		}
		idx.tiers[p.tier] = append(idx.tiers[p.tier], p.path)
		if p.tier == workbuddy.TierHome && p.path != idx.home {
			idx.roots = append(idx.roots, p.path)
		}
	}

	folders := map[string]string{
		"desktop":   "Desktop",
		"documents": "Documents",
		"downloads": "Downloads",
		"pictures":  "Pictures",
		"videos":    "Videos",
		"movies":    "Movies",
		"music":     "Music",
	}
	for name, folder := range folders {
		full := filepath.Join(idx.home, folder)
		if isDir(full) {
			idx.wellKnown[name] = full
		}
	}
	// "videos" resolves to Movies on macOS.
	if _, ok := idx.wellKnown["videos"]; !ok {
		if movies, ok := idx.wellKnown["movies"]; ok {
			idx.wellKnown["videos"] = movies
		}
	}
}

// layout returns the unprobed tier layout for the configured OS.
func (idx *LocationIndex) layout() []probe {
	home := idx.home
	var probes []probe

	add := func(tier workbuddy.Tier, paths ...string) {
		for _, p := range paths {
			if p != "" {
				probes = append(probes, probe{tier: tier, path: p})
			}
		}
	}

	add(workbuddy.TierPrimary,
		filepath.Join(home, "Desktop"),
		filepath.Join(home, "Documents"),
	)

	switch idx.goos {
	case "windows":
		add(workbuddy.TierMedia,
			filepath.Join(home, "Downloads"),
			filepath.Join(home, "Pictures"),
			filepath.Join(home, "Videos"),
			filepath.Join(home, "Music"),
		)
		add(workbuddy.TierHome, home)
		for c := 'A'; c <= 'Z'; c++ {
			add(workbuddy.TierDrives, string(c)+`:\`)
		}
		add(workbuddy.TierSystem,
			envOr("ProgramFiles", `C:\Program Files`),
			envOr("ProgramFiles(x86)", `C:\Program Files (x86)`),
			envOr("APPDATA", filepath.Join(home, "AppData", "Roaming")),
			envOr("LOCALAPPDATA", filepath.Join(home, "AppData", "Local")),
		)
	case "darwin":
		add(workbuddy.TierMedia,
			filepath.Join(home, "Downloads"),
			filepath.Join(home, "Pictures"),
			filepath.Join(home, "Movies"),
			filepath.Join(home, "Music"),
		)
		add(workbuddy.TierHome, home)
		add(workbuddy.TierDrives, "/")
		add(workbuddy.TierSystem,
			"/Applications",
			filepath.Join(home, "Library"),
		)
	default:
		add(workbuddy.TierMedia,
			filepath.Join(home, "Downloads"),
			filepath.Join(home, "Pictures"),
			filepath.Join(home, "Videos"),
			filepath.Join(home, "Music"),
		)
		add(workbuddy.TierHome, home)
		add(workbuddy.TierDrives, "/")
		add(workbuddy.TierSystem,
			"/usr/local",
			filepath.Join(home, ".local"),
			filepath.Join(home, ".config"),
		)
	}

	return probes
}

// Locations returns the configured, existing directories of a tier.
func (idx *LocationIndex) Locations(tier workbuddy.Tier) []string {
	locs := idx.tiers[tier]
	out := make([]string, len(locs))
	copy(out, locs)
	return out
}

// TierOf returns the tier of the most specific configured ancestor of
// path, or TierUnknown.
func (idx *LocationIndex) TierOf(path string) workbuddy.Tier {
	path = filepath.Clean(path)

	best := workbuddy.TierUnknown
	bestLen := -1
	for tier := workbuddy.TierPrimary; tier <= workbuddy.TierSystem; tier++ {
		for _, loc := range idx.tiers[tier] {
			if !isAncestor(loc, path) {
				continue
			}
			if len(loc) > bestLen {
				best = tier
				bestLen = len(loc)
			}
		}
	}
	return best
}

// WellKnown resolves a folder keyword to its absolute path.
func (idx *LocationIndex) WellKnown(name string) (string, bool) {
	path, ok := idx.wellKnown[strings.ToLower(strings.TrimSpace(name))]
	return path, ok
}

// Candidates returns the directories offered to a new search session.
func (idx *LocationIndex) Candidates() []string {
	seen := make(map[string]bool)
	var out []string
	appendDir := func(p string) {
		if p == "" || seen[p] || !isReadableDir(p) {
			return
		}
		seen[p] = true
		out = append(out, p)
	}

	for _, name := range []string{"desktop", "documents", "downloads"} {
		if p, ok := idx.wellKnown[name]; ok {
			appendDir(p)
		}
	}

	// All non-hidden first-level home subfolders, dynamically.
	if entries, err := os.ReadDir(idx.home); err == nil {
		var subs []string
		for _, e := range entries {
			if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
				subs = append(subs, filepath.Join(idx.home, e.Name()))
			}
		}
		sort.Strings(subs)
		for _, s := range subs {
			appendDir(s)
		}
	} else {
		idx.logger.Warn("could not list home subfolders", "home", idx.home, "error", err)
	}

	if cwd, err := os.Getwd(); err == nil {
		appendDir(cwd)
	}

	for _, r := range idx.roots {
		appendDir(r)
	}

	return out
}

// isAncestor reports whether path is dir or lies under dir.
func isAncestor(dir, path string) bool {
	if dir == path {
		return true
	}
	sep := string(os.PathSeparator)
	return strings.HasPrefix(path, strings.TrimSuffix(dir, sep)+sep)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// isReadableDir reports whether the directory exists and can be listed.
func isReadableDir(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	info, err := f.Stat()
	return err == nil && info.IsDir()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
