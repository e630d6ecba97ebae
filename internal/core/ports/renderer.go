package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for build output.
// It decouples telemetry collection from presentation so that every line of
// build progress reaches the terminal through a single writer.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start begins the renderer's lifecycle.
	Start(ctx context.Context) error

	// Stop signals the renderer to stop accepting new events and flush.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	Wait() error

	// OnPlanEmit is called once the modules to build are known.
	// modules: module names in build order
	// deps: module -> modules it depends on
	// targets: the modules the user asked for
	OnPlanEmit(modules []string, deps map[string][]string, targets []string)

	// OnTaskStart is called when a compile or link task begins.
	OnTaskStart(spanID, parentID, name string, startTime time.Time)

	// OnTaskLog is called when a task emits output.
	// data may contain partial lines or ANSI sequences.
	OnTaskLog(spanID string, data []byte)

	// OnTaskComplete is called when a task finishes. err is nil on success.
	OnTaskComplete(spanID string, endTime time.Time, err error)
}
