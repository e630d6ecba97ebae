package watcher

import (
	"sync"
)

// Fingerprinter computes a content fingerprint of a file.
type Fingerprinter interface {
	ComputeFileHash(path string) (uint64, error)
}

// ChangeFilter drops events for files whose content is unchanged, such as a
// save without edits or a touch.
type ChangeFilter struct {
	fingerprinter Fingerprinter

	mu   sync.Mutex
	sums map[string]uint64
}

// NewChangeFilter creates an empty ChangeFilter.
func NewChangeFilter(fingerprinter Fingerprinter) *ChangeFilter {
	return &ChangeFilter{
		fingerprinter: fingerprinter,
		sums:          make(map[string]uint64),
	}
}

// Prime records the current fingerprint of paths without reporting them.
func (f *ChangeFilter) Prime(paths []string) {
	for _, p := range paths {
		_ = f.Changed(p)
	}
}

// Changed reports whether path differs from the last time it was seen. A
// path that cannot be read counts as changed once, when it disappears.
func (f *ChangeFilter) Changed(path string) bool {
	sum, err := f.fingerprinter.ComputeFileHash(path)

	f.mu.Lock()
	defer f.mu.Unlock()

	prev, known := f.sums[path]
	if err != nil {
		delete(f.sums, path)
		return known
	}

	f.sums[path] = sum
	return !known || prev != sum
}
