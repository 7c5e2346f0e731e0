// Package search provides search orchestration: the free-text query
// interpreter, the prioritized engine, the timeout-bounded executor and
// the multi-round session controller.
package search

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ElishaSamPeterPrabhu/workbuddy"
	"github.com/ElishaSamPeterPrabhu/workbuddy/fs"
)

// Result limits applied to interpreted queries.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// WellKnownResolver resolves a folder keyword to an absolute path.
// *fs.LocationIndex satisfies it.
type WellKnownResolver interface {
	WellKnown(name string) (string, bool)
}

var _ WellKnownResolver = (*fs.LocationIndex)(nil)

var (
	fileTypeRe = regexp.MustCompile(`(?i)\.([a-zA-Z0-9]+)\b|\bfiles?\s+of\s+type\s+([a-zA-Z0-9]+)|\b([a-zA-Z0-9]+)\s+files?\b`)
	pathRe     = regexp.MustCompile(`(?i)\bin\s+(?:"([^"]+)"|'([^']+)'|([a-zA-Z]:\\\S+|~\S*|/\S+))`)
	lastDaysRe = regexp.MustCompile(`(?i)\blast\s+(\d+)\s+days?\b`)
	sizeRe     = regexp.MustCompile(`(?i)\b(larger|bigger|smaller|less)\s+than\s+(\d+)\s*(KB|MB|GB|B)\b`)
	limitRe    = regexp.MustCompile(`(?i)\blimit\s+(\d+)\b|\btop\s+(\d+)\b`)
)

// timeWindow maps a relative time phrase onto modified-after/before
// bounds. Phrases are tried in order; the first match wins.
type timeWindow struct {
	re      *regexp.Regexp
	resolve func(now, midnight time.Time) (after, before time.Time)
}

var timeWindows = []timeWindow{
	{regexp.MustCompile(`(?i)\btoday\b`), func(now, midnight time.Time) (time.Time, time.Time) {
		return midnight, time.Time{}
	}},
	{regexp.MustCompile(`(?i)\byesterday\b`), func(now, midnight time.Time) (time.Time, time.Time) {
		return midnight.AddDate(0, 0, -1), midnight
	}},
	{regexp.MustCompile(`(?i)\blast\s+week\b`), func(now, midnight time.Time) (time.Time, time.Time) {
		return now.AddDate(0, 0, -7), time.Time{}
	}},
	{regexp.MustCompile(`(?i)\blast\s+month\b`), func(now, midnight time.Time) (time.Time, time.Time) {
		return now.AddDate(0, 0, -30), time.Time{}
	}},
	{regexp.MustCompile(`(?i)\blast\s+year\b`), func(now, midnight time.Time) (time.Time, time.Time) {
		return now.AddDate(0, 0, -365), time.Time{}
	}},
}

var folderKeywords = []string{"desktop", "documents", "downloads", "pictures", "music", "videos"}

var sizeMultipliers = map[string]int64{
	"B":  1,
	"KB": 1024,
	"MB": 1024 * 1024,
	"GB": 1024 * 1024 * 1024,
}

// Interpret parses a free-text request into a structured filter. Every
// extraction step is best-effort and removes its matched text before the
// next step runs; an absent signal leaves the corresponding field
// unbounded. The remaining text becomes the keyword pattern.
func Interpret(query string, wk WellKnownResolver) workbuddy.SearchFilter {
	return interpretAt(query, wk, time.Now())
}

// interpretAt is Interpret with an injectable clock for tests.
func interpretAt(query string, wk WellKnownResolver, now time.Time) workbuddy.SearchFilter {
	filter := workbuddy.SearchFilter{Limit: DefaultLimit}

	// 1. File type. An explicit glob token ("*.pdf", "report?.txt")
	// already names both pattern and type, so it wins over the
	// file-type phrases and leaves FileType unset.
	glob, query := extractGlob(query)
	if glob == "" {
		if m := fileTypeRe.FindStringSubmatch(query); m != nil {
			ext := firstNonEmpty(m[1], m[2], m[3])
			if ext != "" {
				filter.FileType = strings.ToLower(ext)
				query = fileTypeRe.ReplaceAllString(query, "")
			}
		}
	}

	// 2. Explicit path, with home-relative expansion.
	if m := pathRe.FindStringSubmatch(query); m != nil {
		p := strings.TrimSpace(firstNonEmpty(m[1], m[2], m[3]))
		if strings.HasPrefix(p, "~") {
			p = fs.ExpandHome(p)
		}
		filter.Path = p
		query = pathRe.ReplaceAllString(query, "")
	}

	// 3. Relative time window; first matching phrase wins.
	for _, tw := range timeWindows {
		if !tw.re.MatchString(query) {
			continue
		}
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		after, before := tw.resolve(now, midnight)
		filter.ModifiedAfter = &after
		if !before.IsZero() {
			filter.ModifiedBefore = &before
		}
		query = tw.re.ReplaceAllString(query, "")
		break
	}
	if m := lastDaysRe.FindStringSubmatch(query); m != nil && filter.ModifiedAfter == nil {
		days, _ := strconv.Atoi(m[1])
		after := now.AddDate(0, 0, -days)
		filter.ModifiedAfter = &after
		query = lastDaysRe.ReplaceAllString(query, "")
	}

	// 4. Size comparisons.
	for {
		m := sizeRe.FindStringSubmatch(query)
		if m == nil {
			break
		}
		value, _ := strconv.ParseInt(m[2], 10, 64)
		size := value * sizeMultipliers[strings.ToUpper(m[3])]
		switch strings.ToLower(m[1]) {
		case "larger", "bigger":
			filter.MinSize = &size
		case "smaller", "less":
			filter.MaxSize = &size
		}
		query = strings.Replace(query, m[0], "", 1)
	}

	// 5. Explicit count override, capped regardless of the request.
	if m := limitRe.FindStringSubmatch(query); m != nil {
		if n, err := strconv.Atoi(firstNonEmpty(m[1], m[2])); err == nil {
			filter.Limit = min(n, MaxLimit)
		}
		query = limitRe.ReplaceAllString(query, "")
	}

	remaining := strings.Join(strings.Fields(query), " ")
	if glob != "" {
		filter.Pattern = glob
	} else {
		filter.Pattern = remaining
	}

	// Folder keywords resolve to well-known directories when no explicit
	// path was given.
	if filter.Path == "" && wk != nil {
		lower := strings.ToLower(remaining)
		for _, name := range folderKeywords {
			if !containsWord(lower, name) {
				continue
			}
			if p, ok := wk.WellKnown(name); ok {
				filter.Path = p
				break
			}
		}
	}

	return filter
}

// extractGlob pulls the first whitespace-delimited glob token out of the
// query. It returns the token (or "") and the remaining query text.
func extractGlob(query string) (string, string) {
	for _, field := range strings.Fields(query) {
		if strings.ContainsAny(field, "*?") {
			return field, strings.Replace(query, field, "", 1)
		}
	}
	return "", query
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// containsWord reports whether s contains word at word boundaries.
func containsWord(s, word string) bool {
	idx := strings.Index(s, word)
	for idx >= 0 {
		beforeOK := idx == 0 || !isWordChar(s[idx-1])
		end := idx + len(word)
		afterOK := end == len(s) || !isWordChar(s[end])
		if beforeOK && afterOK {
			return true
		}
		next := strings.Index(s[idx+1:], word)
		if next < 0 {
			return false
		}
		idx += 1 + next
	}
	return false
}

func isWordChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
