package domain

import (
	"context"
	"sync"

	"go.trai.ch/zerr"
)

// ModuleState is the progress of one module through compile and link.
type ModuleState int

// Module states. Waiting moves to one compile state, which moves to one link state.
const (
	StateWaiting ModuleState = iota
	StateNothingToCompile
	StateCompilationSuccess
	StateCompilationFailed
	StateLinkUpToDate
	StateLinkSuccess
	StateLinkFailed
)

var stateNames = [...]string{
	StateWaiting:            "Waiting",
	StateNothingToCompile:   "NothingToCompile",
	StateCompilationSuccess: "CompilationSuccess",
	StateCompilationFailed:  "CompilationFailed",
	StateLinkUpToDate:       "LinkUpToDate",
	StateLinkSuccess:        "LinkSuccess",
	StateLinkFailed:         "LinkFailed",
}

func (s ModuleState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

// IsCompileState reports whether s is an outcome of the compile phase.
func (s ModuleState) IsCompileState() bool {
	return s == StateNothingToCompile || s == StateCompilationSuccess || s == StateCompilationFailed
}

// IsTerminal reports whether s ends the module's build.
func (s ModuleState) IsTerminal() bool {
	return s == StateLinkUpToDate || s == StateLinkSuccess || s == StateLinkFailed
}

// Succeeded reports whether s is a successful terminal state.
func (s ModuleState) Succeeded() bool {
	return s == StateLinkUpToDate || s == StateLinkSuccess
}

// ModuleResult is the state cell of one module for one build session.
// Each phase writes it exactly once: the compile outcome first, then the link
// outcome. Readers wait on Compiled and Linked, which are closed when the
// respective phase is written.
type ModuleResult struct {
	Name InternedString

	mu           sync.Mutex
	compileState ModuleState
	state        ModuleState
	diagnostics  string
	compiled     chan struct{}
	linked       chan struct{}
}

// NewModuleResult returns a cell in StateWaiting.
func NewModuleResult(name InternedString) *ModuleResult {
	return &ModuleResult{
		Name:     name,
		compiled: make(chan struct{}),
		linked:   make(chan struct{}),
	}
}

// State returns the current state.
func (r *ModuleResult) State() ModuleState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// CompileState returns the outcome of the compile phase, or StateWaiting.
func (r *ModuleResult) CompileState() ModuleState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.compileState
}

// Diagnostics returns the text captured when the module failed.
func (r *ModuleResult) Diagnostics() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.diagnostics
}

// Compiled is closed once the compile outcome is known.
func (r *ModuleResult) Compiled() <-chan struct{} {
	return r.compiled
}

// Linked is closed once the module reached a terminal state.
func (r *ModuleResult) Linked() <-chan struct{} {
	return r.linked
}

// CompleteCompile records the compile outcome.
func (r *ModuleResult) CompleteCompile(state ModuleState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateWaiting || !state.IsCompileState() {
		return r.transitionError(state)
	}
	r.state = state
	r.compileState = state
	close(r.compiled)
	return nil
}

// CompleteLink records the terminal outcome. A module whose compilation
// failed can only fail its link. A module still waiting may fail directly,
// which also releases readers of Compiled.
func (r *ModuleResult) CompleteLink(state ModuleState, diagnostics string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !state.IsTerminal() {
		return r.transitionError(state)
	}

	switch r.state {
	case StateWaiting:
		if state != StateLinkFailed {
			return r.transitionError(state)
		}
		r.compileState = StateCompilationFailed
		close(r.compiled)
	case StateCompilationFailed:
		if state != StateLinkFailed {
			return r.transitionError(state)
		}
	case StateNothingToCompile, StateCompilationSuccess:
	default:
		return r.transitionError(state)
	}

	r.state = state
	r.diagnostics = diagnostics
	close(r.linked)
	return nil
}

func (r *ModuleResult) transitionError(to ModuleState) error {
	err := Annotate(ErrInvalidTransition, "module", r.Name.String())
	err = zerr.With(err, "from", r.state.String())
	return zerr.With(err, "to", to.String())
}

// AwaitDependencies blocks until every dependency has linked successfully or
// any of them failed. It returns the first failed dependency observed, or nil
// when all succeeded. A dependency that failed to compile is reported as soon
// as its compile outcome is known, without waiting for its link phase.
func AwaitDependencies(ctx context.Context, deps []*ModuleResult) (*ModuleResult, error) {
	if len(deps) == 0 {
		return nil, nil
	}

	done := make(chan struct{})
	defer close(done)

	outcomes := make(chan *ModuleResult, len(deps))
	for _, dep := range deps {
		go func() {
			select {
			case <-dep.Compiled():
			case <-done:
				return
			}
			if dep.CompileState() == StateCompilationFailed {
				outcomes <- dep
				return
			}
			select {
			case <-dep.Linked():
				outcomes <- dep
			case <-done:
			}
		}()
	}

	for range deps {
		select {
		case dep := <-outcomes:
			if !dep.State().Succeeded() {
				return dep, nil
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, nil
}
