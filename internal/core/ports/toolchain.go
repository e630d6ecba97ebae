package ports

import (
	"context"

	"go.trai.ch/forge/internal/core/domain"
)

//go:generate mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks

// Toolchain turns compile and link requests into compiler and linker runs.
type Toolchain interface {
	// Name identifies the toolchain in logs.
	Name() string

	// Compile compiles one source. A failed compilation is reported through
	// ProcessResult.Success; the error is reserved for failures to run at all.
	Compile(ctx context.Context, info domain.CompileInfo) (domain.ProcessResult, error)

	// Link links one module. Error semantics match Compile.
	Link(ctx context.Context, info domain.LinkInfo) (domain.ProcessResult, error)

	// CompileCommand returns the command Compile would run.
	CompileCommand(info domain.CompileInfo) (domain.Command, error)

	// LinkCommand returns the command Link would run.
	LinkCommand(info domain.LinkInfo) (domain.Command, error)

	// ObjectExtension is appended to source file names to form object paths.
	ObjectExtension(bt domain.BinaryType) string

	// BinaryPrefix is prepended to the output name of an artifact.
	BinaryPrefix(bt domain.BinaryType) string

	// BinaryExtension is appended to the output name of an artifact.
	BinaryExtension(bt domain.BinaryType) string

	// SourceExtensions lists the compilable file extensions for a binary type.
	SourceExtensions(bt domain.BinaryType) []string
}

// ToolchainProvider selects the toolchain for a target platform.
type ToolchainProvider interface {
	// For returns the toolchain building platform, honoring the project's overrides.
	// It fails with domain.ErrUnsupportedPlatform when the host cannot target it.
	For(project *domain.Project, platform domain.Platform) (Toolchain, error)
}
