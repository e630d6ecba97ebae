package ports

// ResourceCopier mirrors module resource directories into the binaries directory.
//
//go:generate mockgen -source=resources.go -destination=mocks/mock_resources.go -package=mocks
type ResourceCopier interface {
	// Copy mirrors the tree at src into dst and returns the number of files
	// written. Files whose content is unchanged are skipped.
	Copy(src, dst string) (int, error)
}
