// Package slog provides logging decorators for workbuddy services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/ElishaSamPeterPrabhu/workbuddy"
)

// Ensure LoggingSearcher implements workbuddy.Searcher.
var _ workbuddy.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with timing and result-count logging.
type LoggingSearcher struct {
	next   workbuddy.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next workbuddy.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs the outcome.
func (s *LoggingSearcher) Search(ctx context.Context, filter workbuddy.SearchFilter) ([]workbuddy.FileRecord, error) {
	begin := time.Now()
	records, err := s.next.Search(ctx, filter)
	if err != nil {
		s.logger.Error("search",
			"pattern", filter.Pattern,
			"path", filter.Path,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}
	s.logger.Info("search",
		"pattern", filter.Pattern,
		"path", filter.Path,
		"results", len(records),
		"duration", time.Since(begin),
	)
	return records, nil
}
