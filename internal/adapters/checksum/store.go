// Package checksum implements the incremental build cache: a persisted table
// of source and header content hashes.
package checksum

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultRetryInterval is the pause between attempts to read a file.
	DefaultRetryInterval = 5 * time.Millisecond
	// DefaultMaxTries bounds the attempts to read a file.
	DefaultMaxTries uint = 20
)

var _ ports.ChecksumStore = (*Store)(nil)

// Store implements ports.ChecksumStore on a single JSON file.
//
// loaded is the table as read by Load, the state of the last build, and is
// what ShouldRecompile judges against. saved starts as a copy of it, takes the
// hashes recorded during the session and is what Save persists. A header
// recorded by one source therefore never hides its change from another source
// of the same session. computed memoizes the current hash of every file read
// during the session. Keys are paths relative to the project root with forward
// slashes.
type Store struct {
	root string
	path string

	retryInterval time.Duration
	maxTries      uint

	mu       sync.Mutex
	loaded   map[string]string
	saved    map[string]string
	recorded map[string]bool
	computed map[string]string
	group    singleflight.Group
}

// Option configures a Store.
type Option func(*Store)

// WithRetry overrides how often a failing read is attempted.
func WithRetry(interval time.Duration, maxTries uint) Option {
	return func(s *Store) {
		s.retryInterval = interval
		s.maxTries = maxTries
	}
}

// NewStore creates a store for the project rooted at root, persisted at path.
func NewStore(root, path string, opts ...Option) *Store {
	s := &Store{
		root:          root,
		path:          path,
		retryInterval: DefaultRetryInterval,
		maxTries:      DefaultMaxTries,
		loaded:        make(map[string]string),
		saved:         make(map[string]string),
		recorded:      make(map[string]bool),
		computed:      make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the location of the checksum file.
func (s *Store) Path() string {
	return s.path
}

// Load replaces the in-memory state with the checksum file. A missing file
// yields an empty store. A corrupt file also leaves the store empty and is
// reported.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = make(map[string]string)
	s.saved = make(map[string]string)
	s.recorded = make(map[string]bool)
	s.computed = make(map[string]string)

	//nolint:gosec // Path is derived from the project layout
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrChecksumReadFailed.Error()), "path", s.path)
	}

	var saved map[string]string
	if err := json.Unmarshal(data, &saved); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrChecksumUnmarshalFailed.Error()), "path", s.path)
	}
	if saved != nil {
		s.loaded = saved
		s.saved = maps.Clone(saved)
	}
	return nil
}

// Save overwrites the checksum file with the saved hashes.
func (s *Store) Save() error {
	s.mu.Lock()
	data, err := json.MarshalIndent(s.saved, "", "  ")
	s.mu.Unlock()
	if err != nil {
		return zerr.Wrap(err, domain.ErrChecksumMarshalFailed.Error())
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrChecksumWriteFailed.Error()), "path", s.path)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrChecksumWriteFailed.Error()), "path", s.path)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // Gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrChecksumWriteFailed.Error()), "path", s.path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrChecksumWriteFailed.Error()), "path", s.path)
	}
	if err := os.Chmod(tmp.Name(), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrChecksumWriteFailed.Error()), "path", s.path)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrChecksumWriteFailed.Error()), "path", s.path)
	}
	return nil
}

// ShouldRecompile reports whether source must be compiled: it was never
// compiled successfully, or it or one of headers changed since. Headers that
// no longer exist are dropped from the saved table without forcing a
// recompile. A source recorded during this session is compared against its
// own record.
func (s *Store) ShouldRecompile(source string, headers []string) (bool, error) {
	base := s.baseline(source)

	saved, ok := base(source)
	if !ok {
		return true, nil
	}

	current, err := s.hash(source)
	if err != nil {
		return true, err
	}
	if current != saved {
		return true, nil
	}

	for _, header := range headers {
		current, err := s.hash(header)
		if errors.Is(err, fs.ErrNotExist) {
			s.forget(header)
			continue
		}
		if err != nil {
			return true, err
		}

		saved, ok := base(header)
		if !ok || current != saved {
			return true, nil
		}
	}
	return false, nil
}

// RecordSuccess stores the current hashes of source and headers.
func (s *Store) RecordSuccess(source string, headers []string) error {
	hashes := make(map[string]string, len(headers)+1)
	var errs []error

	for _, path := range append([]string{source}, headers...) {
		h, err := s.hash(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, err)
			}
			continue
		}
		hashes[s.key(path)] = h
	}

	s.mu.Lock()
	for k, v := range hashes {
		s.saved[k] = v
	}
	if len(errs) == 0 {
		s.recorded[s.key(source)] = true
	}
	s.mu.Unlock()

	return errors.Join(errs...)
}

// RecordFailure drops the saved hashes of source and headers.
func (s *Store) RecordFailure(source string, headers []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.key(source)
	delete(s.recorded, key)
	delete(s.saved, key)
	delete(s.loaded, key)
	for _, h := range headers {
		delete(s.saved, s.key(h))
		delete(s.loaded, s.key(h))
	}
}

// Len returns the number of saved entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saved)
}

// Saved returns the saved hash of path.
func (s *Store) Saved(path string) (string, bool) {
	return s.savedHash(path)
}

func (s *Store) savedHash(path string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.saved[s.key(path)]
	return h, ok
}

// baseline returns the table source is judged against.
func (s *Store) baseline(source string) func(path string) (string, bool) {
	s.mu.Lock()
	table := s.loaded
	if s.recorded[s.key(source)] {
		table = s.saved
	}
	s.mu.Unlock()

	return func(path string) (string, bool) {
		s.mu.Lock()
		defer s.mu.Unlock()
		h, ok := table[s.key(path)]
		return h, ok
	}
}

func (s *Store) forget(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saved, s.key(path))
	delete(s.loaded, s.key(path))
}

// hash returns the SHA-256 of path, reading each file at most once per session.
func (s *Store) hash(path string) (string, error) {
	key := s.key(path)

	s.mu.Lock()
	h, ok := s.computed[key]
	s.mu.Unlock()
	if ok {
		return h, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		h, err := s.hashWithRetry(path)
		if err != nil {
			return "", err
		}
		s.mu.Lock()
		s.computed[key] = h
		s.mu.Unlock()
		return h, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *Store) hashWithRetry(path string) (string, error) {
	h, err := backoff.Retry(context.Background(), func() (string, error) {
		h, err := hashFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			return "", backoff.Permanent(err)
		}
		return h, err
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(s.retryInterval)),
		backoff.WithMaxTries(s.maxTries),
	)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		return "", zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
	}
	return h, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path comes from the module sources
	if err != nil {
		return "", err
	}
	defer f.Close() //nolint:errcheck // Read-only file

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// key maps path to its table key.
func (s *Store) key(path string) string {
	if filepath.IsAbs(path) && s.root != "" {
		if rel, err := filepath.Rel(s.root, path); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(filepath.Clean(path))
}
