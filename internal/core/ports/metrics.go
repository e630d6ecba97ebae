package ports

import "time"

// Metrics records build statistics.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// ObserveCompile records one compile action and whether it succeeded.
	ObserveCompile(module string, success bool, duration time.Duration)
	// ObserveLink records one link and whether it succeeded.
	ObserveLink(module string, success bool, duration time.Duration)
	// ObserveModule records the terminal state of a module.
	ObserveModule(module, state string)
	// ObserveCacheHit records a compile action skipped by the cache.
	ObserveCacheHit(module string)
	// WriteTextfile writes the collected metrics in the Prometheus text format.
	WriteTextfile(path string) error
}
