package domain

import "go.trai.ch/zerr"

var (
	// ErrModuleAlreadyExists is returned when a module with the same name is added twice.
	ErrModuleAlreadyExists = zerr.New("module already exists")

	// ErrModuleNotFound is returned when a requested module is not part of the project.
	ErrModuleNotFound = zerr.New("module not found")

	// ErrMissingDependency is returned when a module references a dependency that doesn't exist in the project.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected in the module dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrInvalidModuleName is returned when a module name contains invalid characters.
	ErrInvalidModuleName = zerr.New("module name can only contain alphanumeric characters, hyphens and underscores")

	// ErrMissingProjectName is returned when the project file does not declare a project name.
	ErrMissingProjectName = zerr.New("missing project name")

	// ErrUnknownPlatform is returned when a platform name cannot be parsed.
	ErrUnknownPlatform = zerr.New("unknown platform")

	// ErrUnknownConfiguration is returned when a build configuration name cannot be parsed.
	ErrUnknownConfiguration = zerr.New("unknown configuration")

	// ErrUnknownBinaryType is returned when a module binary type cannot be parsed.
	ErrUnknownBinaryType = zerr.New("unknown binary type")

	// ErrUnsupportedPlatform is returned when the host cannot build for the requested platform.
	ErrUnsupportedPlatform = zerr.New("platform is not supported on this host")

	// ErrUnsupportedBinaryType is returned when a toolchain cannot produce the requested binary type.
	ErrUnsupportedBinaryType = zerr.New("binary type is not supported by the toolchain")

	// ErrModuleNotAvailable is returned when a selected module is not built for the target platform.
	ErrModuleNotAvailable = zerr.New("module is not available on platform")

	// ErrInvalidTransition is returned when a module result is moved to a state it cannot reach.
	ErrInvalidTransition = zerr.New("invalid module state transition")

	// ErrActionPanicked is returned when a scheduled action panics.
	ErrActionPanicked = zerr.New("scheduled action panicked")

	// ErrCompileFailed is returned when the toolchain fails to compile a source.
	ErrCompileFailed = zerr.New("compilation failed")

	// ErrLinkFailed is returned when the toolchain fails to link a module.
	ErrLinkFailed = zerr.New("link failed")

	// ErrDependencyFailed is returned when a module cannot link because a dependency failed.
	ErrDependencyFailed = zerr.New("dependency failed")

	// ErrBuildFailed is returned when at least one selected module did not compile or link.
	ErrBuildFailed = zerr.New("build failed")

	// ErrChecksumReadFailed is returned when the checksum file cannot be read.
	ErrChecksumReadFailed = zerr.New("failed to read checksum file")

	// ErrChecksumUnmarshalFailed is returned when the checksum file cannot be decoded.
	ErrChecksumUnmarshalFailed = zerr.New("failed to unmarshal checksum file")

	// ErrChecksumMarshalFailed is returned when the checksums cannot be encoded.
	ErrChecksumMarshalFailed = zerr.New("failed to marshal checksums")

	// ErrChecksumWriteFailed is returned when the checksum file cannot be written.
	ErrChecksumWriteFailed = zerr.New("failed to write checksum file")

	// ErrFileHashFailed is returned when hashing a file fails after all retries.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrDependencyRecordReadFailed is returned when a compiler dependency record cannot be read.
	ErrDependencyRecordReadFailed = zerr.New("failed to read dependency record")

	// ErrSourceCollectionFailed is returned when a module's sources cannot be enumerated.
	ErrSourceCollectionFailed = zerr.New("failed to collect sources")

	// ErrOutputDirCreateFailed is returned when an output directory cannot be created.
	ErrOutputDirCreateFailed = zerr.New("failed to create output directory")

	// ErrResourceCopyFailed is returned when module resources cannot be copied.
	ErrResourceCopyFailed = zerr.New("failed to copy resources")

	// ErrCommandStartFailed is returned when a toolchain process cannot be started.
	ErrCommandStartFailed = zerr.New("failed to start command")

	// ErrConfigNotFound is returned when the project file cannot be found.
	ErrConfigNotFound = zerr.New("could not find forge.yaml")

	// ErrConfigReadFailed is returned when a config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when a config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrFailedToGetRoot is returned when the project root path cannot be determined.
	ErrFailedToGetRoot = zerr.New("failed to get absolute path of project root")

	// ErrCleanFailed is returned when intermediate artifacts cannot be removed.
	ErrCleanFailed = zerr.New("failed to clean intermediate directory")

	// ErrWatcherFailed is returned when source trees cannot be watched.
	ErrWatcherFailed = zerr.New("failed to watch sources")

	// ErrMetricsWriteFailed is returned when the metrics textfile cannot be written.
	ErrMetricsWriteFailed = zerr.New("failed to write metrics file")
)

// Annotate attaches a metadata pair to a sentinel error.
// Unlike zerr.With applied to the sentinel itself, the result still matches
// the sentinel with errors.Is.
func Annotate(sentinel error, key string, value any) error {
	return zerr.With(zerr.Wrap(sentinel, ""), key, value)
}
