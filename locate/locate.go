// Package locate shells out to the host's file index when one is
// installed: es (Everything) on Windows, mdfind on macOS, plocate or
// locate elsewhere. When no tool is available every search returns
// EUNAVAILABLE so the caller can fall back to walking.
package locate

import (
	"bufio"
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/ElishaSamPeterPrabhu/workbuddy"
)

// Ensure Backend implements workbuddy.Searcher at compile time.
var _ workbuddy.Searcher = (*Backend)(nil)

// Backend runs one of the known locate tools and translates its output
// into file records.
type Backend struct {
	tool   string
	logger *slog.Logger
}

// New probes for a usable locate tool in preference order. The returned
// backend is usable even when none is found; it then reports
// EUNAVAILABLE from every search.
func New(logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	b := &Backend{logger: logger}
	for _, tool := range []string{"es", "mdfind", "plocate", "locate"} {
		if _, err := exec.LookPath(tool); err == nil {
			b.tool = tool
			break
		}
	}
	if b.tool == "" {
		logger.Debug("no locate tool on PATH")
	}
	return b
}

// Available reports whether a locate tool was found.
func (b *Backend) Available() bool { return b.tool != "" }

// Search queries the locate tool. Size and date bounds are not pushed
// down; the caller post-filters.
func (b *Backend) Search(ctx context.Context, filter workbuddy.SearchFilter) ([]workbuddy.FileRecord, error) {
	if b.tool == "" {
		return nil, workbuddy.Errorf(workbuddy.EUNAVAILABLE, "no locate tool available")
	}
	if filter.Pattern == "" {
		return nil, workbuddy.Errorf(workbuddy.EINVALID, "pattern required")
	}

	out, err := exec.CommandContext(ctx, b.tool, b.args(filter)...).Output()
	if err != nil {
		b.logger.Debug("locate tool failed", "tool", b.tool, "error", err)
		return nil, workbuddy.Errorf(workbuddy.EUNAVAILABLE, "%s: %v", b.tool, err)
	}

	var records []workbuddy.FileRecord
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		path := strings.TrimSpace(scanner.Text())
		if path == "" {
			continue
		}
		if filter.Path != "" && !strings.HasPrefix(path, filter.Path) {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		records = append(records, workbuddy.FileRecord{
			Path:       path,
			Name:       info.Name(),
			Size:       info.Size(),
			ModifiedAt: info.ModTime(),
			IsFolder:   info.IsDir(),
		})
		if filter.Limit > 0 && len(records) >= filter.Limit {
			break
		}
	}
	return records, nil
}

func (b *Backend) args(filter workbuddy.SearchFilter) []string {
	switch b.tool {
	case "es":
		args := []string{filter.Pattern}
		if filter.Limit > 0 {
			args = append(args, "-n", strconv.Itoa(filter.Limit))
		}
		return args
	case "mdfind":
		args := []string{"-name", filter.Pattern}
		if filter.Path != "" {
			args = append(args, "-onlyin", filter.Path)
		}
		return args
	default: // plocate, locate
		args := []string{"-i"}
		if filter.Limit > 0 {
			args = append(args, "-l", strconv.Itoa(filter.Limit))
		}
		return append(args, filter.Pattern)
	}
}
