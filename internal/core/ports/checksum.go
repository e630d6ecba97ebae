package ports

//go:generate mockgen -source=checksum.go -destination=mocks/mock_checksum.go -package=mocks

// ChecksumStore is the incremental build cache of one build session.
// It keeps the hashes trusted from the last successful build and the hashes
// computed during the current run. All methods are safe for concurrent use.
type ChecksumStore interface {
	// Load replaces the trusted hashes with the persisted ones.
	// A missing file yields an empty store.
	Load() error

	// Save persists the trusted hashes, overwriting the whole file.
	Save() error

	// ShouldRecompile reports whether source or any of its headers changed
	// since they were last recorded. Headers that no longer exist are purged.
	ShouldRecompile(source string, headers []string) (bool, error)

	// RecordSuccess trusts the current content of source and headers.
	RecordSuccess(source string, headers []string) error

	// RecordFailure forgets source and headers so the next run recompiles.
	RecordFailure(source string, headers []string)

	// Len returns the number of trusted entries.
	Len() int
}

// ChecksumStoreFactory opens the store persisted at path. Keys are stored
// relative to root.
type ChecksumStoreFactory interface {
	Open(root, path string) ChecksumStore
}
