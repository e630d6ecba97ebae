// Package linear renders build progress as a chronological log. Output of a
// compile or link is held back until it completes and then printed as one
// block, so the output of parallel actions never interleaves.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/ui/output"
	"go.trai.ch/forge/internal/ui/style"
)

var _ ports.Renderer = (*Renderer)(nil)

// eventBufferSize bounds the events queued ahead of the render loop.
const eventBufferSize = 1024

// Renderer implements ports.Renderer. A single goroutine drains the event
// queue and is the only writer of w.
type Renderer struct {
	w      io.Writer
	output *termenv.Output

	mu      sync.RWMutex
	stopped bool
	events  chan func()

	startOnce sync.Once
	started   chan struct{}
	done      chan struct{}

	// Owned by the render loop.
	tasks map[string]*task
	order []string
}

type task struct {
	name   string
	root   bool
	start  time.Time
	output bytes.Buffer
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithProfile forces the color profile of the output.
func WithProfile(p termenv.Profile) Option {
	return func(r *Renderer) {
		r.output = output.For(r.w, p)
	}
}

// NewRenderer creates a Renderer writing to w, or stdout when w is nil.
func NewRenderer(w io.Writer, opts ...Option) *Renderer {
	if w == nil {
		w = os.Stdout
	}

	r := &Renderer{
		w:       w,
		output:  output.For(w, output.Fixed()),
		events:  make(chan func(), eventBufferSize),
		started: make(chan struct{}),
		done:    make(chan struct{}),
		tasks:   make(map[string]*task),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start launches the render loop. Further calls do nothing.
func (r *Renderer) Start(_ context.Context) error {
	r.startOnce.Do(func() {
		close(r.started)
		go r.loop()
	})
	return nil
}

// Stop closes the event queue. Events sent afterwards are dropped.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.stopped {
		r.stopped = true
		close(r.events)
	}
	return nil
}

// Wait blocks until every queued event is rendered. It returns at once when
// the renderer was never started.
func (r *Renderer) Wait() error {
	select {
	case <-r.started:
		<-r.done
	default:
	}
	return nil
}

func (r *Renderer) send(fn func()) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.stopped {
		return
	}
	r.events <- fn
}

func (r *Renderer) loop() {
	defer close(r.done)

	for fn := range r.events {
		fn()
	}
	r.flushUnfinished()
}

// OnPlanEmit prints the modules about to be built.
func (r *Renderer) OnPlanEmit(modules []string, _ map[string][]string, _ []string) {
	modules = append([]string(nil), modules...)
	r.send(func() {
		r.printf("%s\n", r.output.String(
			fmt.Sprintf("Planning to build %d module(s): %s", len(modules), strings.Join(modules, ", ")),
		).Faint())
	})
}

// OnTaskStart registers a task. Tasks without a parent group the session: they
// get no status line and only their own output is printed.
func (r *Renderer) OnTaskStart(spanID, parentID, name string, startTime time.Time) {
	r.send(func() {
		r.tasks[spanID] = &task{name: name, root: parentID == "", start: startTime}
		r.order = append(r.order, spanID)
	})
}

// OnTaskLog holds data back until the task completes.
func (r *Renderer) OnTaskLog(spanID string, data []byte) {
	data = append([]byte(nil), data...)
	r.send(func() {
		if t, ok := r.tasks[spanID]; ok {
			t.output.Write(data)
		}
	})
}

// OnTaskComplete prints the status line of the task followed by its output.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error) {
	r.send(func() {
		t, ok := r.tasks[spanID]
		if !ok {
			return
		}
		r.forget(spanID)

		if t.root {
			r.writeOutput(t)
			return
		}

		duration := r.output.String(fmt.Sprintf("(%s)", endTime.Sub(t.start).Round(time.Millisecond))).Faint()
		if err != nil {
			r.printf("%s %s %s\n", output.Paint(r.output, style.Failed), t.name, duration)
		} else {
			r.printf("%s %s %s\n", output.Paint(r.output, style.Passed), t.name, duration)
		}

		r.writeOutput(t)
		if err != nil && t.output.Len() == 0 {
			r.printf("    %s\n", r.output.String("error: "+err.Error()).Foreground(r.output.Color(string(style.Rust))))
		}
	})
}

func (r *Renderer) forget(spanID string) {
	delete(r.tasks, spanID)
	for i, id := range r.order {
		if id == spanID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// flushUnfinished prints output of tasks that never completed, such as those
// interrupted by cancellation.
func (r *Renderer) flushUnfinished() {
	for _, id := range r.order {
		t := r.tasks[id]
		if t.output.Len() == 0 {
			continue
		}
		if t.root {
			r.writeOutput(t)
			continue
		}
		r.printf("%s %s\n", output.Paint(r.output, style.Interrupted), t.name)
		r.writeOutput(t)
	}
	r.order = nil
	clear(r.tasks)
}

func (r *Renderer) writeOutput(t *task) {
	if t.output.Len() == 0 {
		return
	}
	out := t.output.Bytes()
	_, _ = r.w.Write(out)
	if out[len(out)-1] != '\n' {
		_, _ = io.WriteString(r.w, "\n")
	}
}

func (r *Renderer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.w, format, args...)
}
