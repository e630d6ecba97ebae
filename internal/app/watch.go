package app

import (
	"context"
	"fmt"

	"go.trai.ch/forge/internal/adapters/watcher"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// watch builds t once, then rebuilds after every debounced batch of changes
// until ctx is canceled. Build failures do not end the loop. Configuration is
// reloaded for every rebuild so edits to module files take effect.
func (a *App) watch(ctx context.Context, t *target, opts CompileOptions) error {
	if a.watcher == nil {
		return domain.Annotate(domain.ErrWatcherFailed, "reason", "no watcher configured")
	}

	a.prime(t)

	skip := []string{t.project.IntermediateRoot, t.project.BinariesRoot}
	if err := a.watcher.Start(ctx, t.project.Root, skip); err != nil {
		return err
	}

	// One pending rebuild is enough: it picks up every change made meanwhile.
	rebuild := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(a.debounce, func(paths []string) {
		select {
		case rebuild <- paths:
		default:
		}
	})
	defer debouncer.Stop()

	a.report(a.buildWatched(ctx, t, opts))
	a.logger.Info("Watching for changes, press Ctrl-C to stop")

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-ctx.Done()
		return a.watcher.Stop()
	})

	g.Go(func() error {
		for event := range a.watcher.Events() {
			if a.changed(event) {
				debouncer.Add(event.Path)
			}
		}
		if ctx.Err() == nil {
			return domain.Annotate(domain.ErrWatcherFailed, "reason", "event stream ended")
		}
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case paths := <-rebuild:
				a.logger.Info(fmt.Sprintf("%d file(s) changed, rebuilding", len(paths)))
				a.report(a.rebuild(ctx, opts))
			}
		}
	})

	return g.Wait()
}

func (a *App) rebuild(ctx context.Context, opts CompileOptions) error {
	t, err := a.resolve(opts)
	if err != nil {
		return err
	}
	a.prime(t)
	return a.buildWatched(ctx, t, opts)
}

func (a *App) buildWatched(ctx context.Context, t *target, opts CompileOptions) error {
	if _, err := a.build(ctx, t, opts); err != nil {
		return err
	}
	return a.writeMetrics(opts.MetricsFile)
}

// report logs a failed watch-mode build. Module failures were already shown
// in the build summary.
func (a *App) report(err error) {
	if err != nil {
		a.logger.Error(err)
	}
}

func (a *App) changed(event ports.WatchEvent) bool {
	if a.filter == nil {
		return true
	}
	return a.filter.Changed(event.Path)
}

// prime records the fingerprints of the sources of t so that saving an
// unchanged source does not trigger a rebuild.
func (a *App) prime(t *target) {
	if a.filter == nil || a.sources == nil {
		return
	}
	for _, m := range t.modules {
		paths, err := a.sources.Collect(m, t.platform, t.toolchain.SourceExtensions(m.BinaryType))
		if err != nil {
			continue
		}
		a.filter.Prime(paths)
	}
}
