package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ResourceCopier = (*Copier)(nil)

// Copier mirrors resource trees, skipping files whose fingerprint did not change.
type Copier struct {
	walker        *Walker
	fingerprinter *Fingerprinter
}

// NewCopier creates a Copier.
func NewCopier(walker *Walker, fingerprinter *Fingerprinter) *Copier {
	return &Copier{walker: walker, fingerprinter: fingerprinter}
}

// Copy mirrors src into dst and returns the number of files written.
// A missing src is not an error.
func (c *Copier) Copy(src, dst string) (int, error) {
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return 0, nil
		}
		return 0, zerr.With(zerr.Wrap(err, domain.ErrResourceCopyFailed.Error()), "path", src)
	}

	written := 0
	for path := range c.walker.WalkFiles(src, nil) {
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return written, zerr.With(zerr.Wrap(err, domain.ErrResourceCopyFailed.Error()), "path", path)
		}
		target := filepath.Join(dst, rel)

		if c.unchanged(path, target) {
			continue
		}
		if err := copyFile(path, target); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func (c *Copier) unchanged(src, dst string) bool {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return false
	}
	dstInfo, err := os.Stat(dst)
	if err != nil || srcInfo.Size() != dstInfo.Size() {
		return false
	}

	a, err := c.fingerprinter.ComputeFileHash(src)
	if err != nil {
		return false
	}
	b, err := c.fingerprinter.ComputeFileHash(dst)
	return err == nil && a == b
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOutputDirCreateFailed.Error()), "path", dst)
	}

	in, err := os.Open(src) //nolint:gosec // Path comes from module resources
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrResourceCopyFailed.Error()), "path", src)
	}
	defer in.Close() //nolint:errcheck // Read-only file

	//nolint:gosec // Destination is inside the binaries directory
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.FilePerm)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrResourceCopyFailed.Error()), "path", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrResourceCopyFailed.Error()), "path", dst)
	}
	if err := out.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrResourceCopyFailed.Error()), "path", dst)
	}
	return nil
}
