package fs

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceCollector = (*Collector)(nil)

// Collector enumerates module sources. A file is collected when its extension
// is requested and no directory between the source root and the file, nor the
// file's own dotted name parts, names a platform or platform group other than
// the target.
type Collector struct {
	walker *Walker
}

// NewCollector creates a Collector.
func NewCollector(walker *Walker) *Collector {
	return &Collector{walker: walker}
}

// Collect returns the sorted sources of m for platform.
func (c *Collector) Collect(m *domain.Module, platform domain.Platform, extensions []string) ([]string, error) {
	if _, err := os.Stat(m.SourceRoot); err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrSourceCollectionFailed.Error()), "module", m.Name.String())
		return nil, zerr.With(err, "path", m.SourceRoot)
	}

	excluded := platform.ExcludedSegments()
	var sources []string
	for path := range c.walker.WalkFiles(m.SourceRoot, nil) {
		if !slices.Contains(extensions, strings.ToLower(filepath.Ext(path))) {
			continue
		}
		rel, err := filepath.Rel(m.SourceRoot, path)
		if err != nil {
			continue
		}
		if isExcluded(rel, excluded) {
			continue
		}
		sources = append(sources, path)
	}

	slices.Sort(sources)
	return sources, nil
}

// isExcluded checks every directory segment of rel and the dotted parts of
// its file name, so both Windows/File.cpp and File.Windows.cpp belong to
// Windows.
func isExcluded(rel string, excluded map[string]struct{}) bool {
	segments := strings.Split(filepath.ToSlash(rel), "/")
	candidates := segments[:len(segments)-1]
	if parts := strings.Split(segments[len(segments)-1], "."); len(parts) > 2 {
		candidates = append(candidates, parts[1:len(parts)-1]...)
	}

	for _, s := range candidates {
		if _, ok := excluded[strings.ToLower(s)]; ok {
			return true
		}
	}
	return false
}
