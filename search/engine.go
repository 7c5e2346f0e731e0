package search

import (
	"context"
	"log/slog"
	"sort"

	"github.com/ElishaSamPeterPrabhu/workbuddy"
)

// Traversal depth bounds.
const (
	// explicitPathDepth is used when the caller names a directory;
	// a single subtree can afford a deeper walk.
	explicitPathDepth = 5

	// maxTierDepth anchors the per-tier bound: tier 1 walks at depth 5,
	// tier 5 at depth 1, keeping low-priority trees shallow.
	maxTierDepth = 6
)

// Ensure Engine implements workbuddy.Searcher at compile time.
var _ workbuddy.Searcher = (*Engine)(nil)

// Engine composes the location index and the bounded walker into a
// ranked, quota-bounded search. Internal failures degrade to partial or
// empty results, never an error to the caller.
type Engine struct {
	Index  workbuddy.LocationIndex
	Walker workbuddy.Walker

	// Fast, when set, is consulted before walking; on any error the
	// engine falls back to the walker with an unchanged contract.
	Fast workbuddy.Searcher

	// IncludeSystem enables tier 5 (OS/system directories).
	IncludeSystem bool

	Logger *slog.Logger
}

// Search runs one prioritized search. It never returns more than
// filter.Limit records; a non-positive limit yields no records.
func (e *Engine) Search(ctx context.Context, filter workbuddy.SearchFilter) ([]workbuddy.FileRecord, error) {
	if filter.Limit <= 0 {
		return nil, nil
	}

	if e.Fast != nil {
		if records, err := e.Fast.Search(ctx, filter); err == nil {
			e.stampTiers(records)
			return e.finish(filter, records), nil
		} else if e.Logger != nil {
			e.Logger.Debug("fast backend unavailable, walking instead", "error", err)
		}
	}

	if filter.Path != "" {
		records, err := e.Walker.Walk(ctx, filter.Path, workbuddy.WalkOptions{
			Pattern:    filter.Pattern,
			FileType:   filter.FileType,
			MaxDepth:   explicitPathDepth,
			MaxResults: filter.Limit,
		})
		if err != nil {
			if e.Logger != nil {
				e.Logger.Warn("walk failed", "path", filter.Path, "error", err)
			}
			return nil, nil
		}
		e.stampTiers(records)
		return e.finish(filter, records), nil
	}

	var all []workbuddy.FileRecord
	for tier := workbuddy.TierPrimary; tier <= workbuddy.TierSystem; tier++ {
		if tier == workbuddy.TierSystem && !e.IncludeSystem {
			continue
		}
		remaining := filter.Limit - len(all)
		if remaining <= 0 {
			break
		}

		// Higher-priority tiers are small enough to search deeply;
		// drive roots and system trees stay shallow to bound cost.
		depth := maxTierDepth - int(tier)

		for _, location := range e.Index.Locations(tier) {
			remaining = filter.Limit - len(all)
			if remaining <= 0 {
				break
			}
			records, err := e.Walker.Walk(ctx, location, workbuddy.WalkOptions{
				Pattern:    filter.Pattern,
				FileType:   filter.FileType,
				MaxDepth:   depth,
				MaxResults: remaining,
			})
			if err != nil {
				if e.Logger != nil {
					e.Logger.Warn("walk failed", "location", location, "error", err)
				}
				continue
			}
			for i := range records {
				records[i].Tier = tier
			}
			all = append(all, applyBounds(filter, records)...)
		}
	}

	sortRecords(all)
	if len(all) > filter.Limit {
		all = all[:filter.Limit]
	}
	return all, nil
}

// finish post-filters, ranks and truncates records from a single-path
// walk or the fast backend.
func (e *Engine) finish(filter workbuddy.SearchFilter, records []workbuddy.FileRecord) []workbuddy.FileRecord {
	records = applyBounds(filter, records)
	sortRecords(records)
	if len(records) > filter.Limit {
		records = records[:filter.Limit]
	}
	return records
}

// stampTiers assigns each record the tier of its location.
func (e *Engine) stampTiers(records []workbuddy.FileRecord) {
	for i := range records {
		records[i].Tier = e.Index.TierOf(records[i].Path)
	}
}

// applyBounds applies the size and date bounds as a post-filter after
// name/type-filtered traversal.
func applyBounds(filter workbuddy.SearchFilter, records []workbuddy.FileRecord) []workbuddy.FileRecord {
	if filter.MinSize == nil && filter.MaxSize == nil &&
		filter.ModifiedAfter == nil && filter.ModifiedBefore == nil {
		return records
	}

	kept := records[:0]
	for _, rec := range records {
		if filter.MinSize != nil && rec.Size < *filter.MinSize {
			continue
		}
		if filter.MaxSize != nil && rec.Size > *filter.MaxSize {
			continue
		}
		if filter.ModifiedAfter != nil && rec.ModifiedAt.Before(*filter.ModifiedAfter) {
			continue
		}
		if filter.ModifiedBefore != nil && rec.ModifiedAt.After(*filter.ModifiedBefore) {
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}

// sortRecords orders by ascending tier, then descending modification time
// within a tier. Further ties are left unordered.
func sortRecords(records []workbuddy.FileRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Tier != records[j].Tier {
			return records[i].Tier < records[j].Tier
		}
		return records[i].ModifiedAt.After(records[j].ModifiedAt)
	})
}
