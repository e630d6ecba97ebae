package scheduler

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"go.trai.ch/forge/internal/core/domain"
)

// Pool is a fixed set of preallocated workers used by ParallelForEach.
//
// Items are handed to idle workers over an unbuffered channel. When every
// worker is busy the item runs inline on the dispatching goroutine, so the
// pool never queues work and nested fan-outs cannot starve each other.
type Pool struct {
	workers        int
	singleThreaded bool

	jobs      chan func()
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Option configures a Pool.
type Option func(*Pool)

// WithWorkers sets the number of preallocated workers. Values below one are ignored.
func WithWorkers(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithSingleThreaded makes every ParallelForEach run its items sequentially
// on the calling goroutine.
func WithSingleThreaded() Option {
	return func(p *Pool) {
		p.singleThreaded = true
	}
}

// NewPool starts a pool. The default worker count is runtime.NumCPU().
func NewPool(opts ...Option) *Pool {
	p := &Pool{workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(p)
	}

	if p.singleThreaded {
		return p
	}

	p.jobs = make(chan func())
	p.wg.Add(p.workers)
	for range p.workers {
		go p.work()
	}
	return p
}

// Workers returns the number of preallocated workers, or zero in single-threaded mode.
func (p *Pool) Workers() int {
	if p.singleThreaded {
		return 0
	}
	return p.workers
}

// SingleThreaded reports whether the pool runs items sequentially.
func (p *Pool) SingleThreaded() bool {
	return p.singleThreaded
}

// Close stops the workers and waits for them to exit.
// ParallelForEach must not be called after Close.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		if p.jobs != nil {
			close(p.jobs)
		}
		p.wg.Wait()
	})
}

func (p *Pool) work() {
	defer p.wg.Done()
	for job := range p.jobs {
		job()
	}
}

// dispatch hands job to an idle worker or runs it inline.
func (p *Pool) dispatch(job func()) {
	select {
	case p.jobs <- job:
	default:
		job()
	}
}

// ParallelForEach calls action once for every item and returns after all
// calls have returned. Errors and recovered panics of all items are joined
// in item order. It may be called from inside an action.
func ParallelForEach[T any](ctx context.Context, p *Pool, items []T, action func(context.Context, T) error) error {
	errs := make([]error, len(items))

	if p.singleThreaded {
		for i, item := range items {
			errs[i] = invoke(ctx, item, action)
		}
		return errors.Join(errs...)
	}

	var wg sync.WaitGroup
	wg.Add(len(items))
	for i, item := range items {
		p.dispatch(func() {
			defer wg.Done()
			errs[i] = invoke(ctx, item, action)
		})
	}
	wg.Wait()

	return errors.Join(errs...)
}

func invoke[T any](ctx context.Context, item T, action func(context.Context, T) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = domain.Annotate(domain.ErrActionPanicked, "panic", fmt.Sprint(r))
		}
	}()
	return action(ctx, item)
}
