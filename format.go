package workbuddy

import (
	"fmt"
	"strings"
)

// summaryLimit caps the number of records spelled out by Summarize.
const summaryLimit = 10

// FormatBytes formats a byte count in human-readable form.
func FormatBytes(bytes int64) string {
	const (
		kb = int64(1024)
		mb = kb * 1024
		gb = mb * 1024
	)
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(gb))
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// Summarize renders search results as a human-readable listing for the
// given query. At most ten records are spelled out.
func Summarize(query string, records []FileRecord) string {
	if len(records) == 0 {
		return fmt.Sprintf("No files found matching %q.", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d items matching %q:\n", len(records), query)
	for i, rec := range records {
		if i == summaryLimit {
			break
		}
		fmt.Fprintf(&b, "%d. %s (%s, %s)\n", i+1, rec.Name,
			FormatBytes(rec.Size), rec.ModifiedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(&b, "   Path: %s\n", rec.Path)
	}
	if extra := len(records) - summaryLimit; extra > 0 {
		fmt.Fprintf(&b, "...and %d more items.\n", extra)
	}
	return strings.TrimRight(b.String(), "\n")
}
