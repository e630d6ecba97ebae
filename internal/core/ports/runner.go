package ports

import (
	"context"

	"go.trai.ch/forge/internal/core/domain"
)

// CommandRunner runs toolchain processes and captures their output.
//
//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type CommandRunner interface {
	// Run executes cmd and waits for it. A non-zero exit is reported through
	// the result; the error means the process could not be started.
	Run(ctx context.Context, cmd domain.Command) (domain.ProcessResult, error)
}
