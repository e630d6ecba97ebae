package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/forge/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*Bridge)(nil)

// Bridge is a span processor that forwards span starts and ends to a Renderer.
type Bridge struct {
	renderer ports.Renderer
}

// NewBridge returns a Bridge forwarding to renderer. A nil renderer drops
// every event.
func NewBridge(renderer ports.Renderer) *Bridge {
	return &Bridge{renderer: renderer}
}

// OnStart reports the span as a started task.
func (b *Bridge) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	if b.renderer == nil || !s.SpanContext().IsValid() {
		return
	}

	var parentID string
	if ps := trace.SpanContextFromContext(parent); ps.IsValid() {
		parentID = ps.SpanID().String()
	}

	b.renderer.OnTaskStart(s.SpanContext().SpanID().String(), parentID, s.Name(), s.StartTime())
}

// OnEnd reports the span as a completed task, failed when its status is Error.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.renderer == nil || !s.SpanContext().IsValid() {
		return
	}

	b.renderer.OnTaskComplete(s.SpanContext().SpanID().String(), s.EndTime(), statusError(s.Status()))
}

func statusError(st sdktrace.Status) error {
	if st.Code != codes.Error {
		return nil
	}
	if st.Description == "" {
		return errors.New("task failed")
	}
	return errors.New(st.Description)
}

// ForceFlush does nothing; events are forwarded synchronously.
func (b *Bridge) ForceFlush(context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(context.Context) error {
	return nil
}
