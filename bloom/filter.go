// Package bloom tracks visited directory paths during a bounded walk. A
// Bloom filter keeps the visited set's memory constant regardless of tree
// size; a false positive skips a directory, which the walker tolerates, a
// false negative cannot occur.
package bloom

import (
	"path/filepath"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter is a set of visited directory paths. Paths are canonicalized
// before hashing so lexically different spellings of the same directory
// ("/a/b/../b", "/a/b/") dedup to one entry.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected paths with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add marks a path as visited.
func (f *Filter) Add(path string) {
	f.f.AddString(canonical(path))
}

// Test reports whether a path might have been visited. False positives
// are possible; false negatives are not.
func (f *Filter) Test(path string) bool {
	return f.f.TestString(canonical(path))
}

// EstimatedCount returns the approximate number of paths in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

func canonical(path string) string {
	return filepath.Clean(path)
}
