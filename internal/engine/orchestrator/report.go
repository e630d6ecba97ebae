package orchestrator

import (
	"go.trai.ch/forge/internal/core/domain"
)

// ModuleReport is the final state of one module.
type ModuleReport struct {
	Name         string
	CompileState domain.ModuleState
	State        domain.ModuleState
	Diagnostics  string
}

// Failed reports whether the module did not produce an up-to-date artifact.
func (r ModuleReport) Failed() bool {
	return !r.State.Succeeded()
}

// Phase names the phase a failed module stopped in.
func (r ModuleReport) Phase() string {
	if r.CompileState == domain.StateCompilationFailed {
		return "compile"
	}
	return "link"
}

// Report is the outcome of a build session, in build order.
type Report struct {
	Project string
	Modules []ModuleReport
}

// Succeeded is true when every module linked or was up to date.
func (r *Report) Succeeded() bool {
	for _, m := range r.Modules {
		if m.Failed() {
			return false
		}
	}
	return true
}

// Failures returns the reports of failed modules.
func (r *Report) Failures() []ModuleReport {
	var out []ModuleReport
	for _, m := range r.Modules {
		if m.Failed() {
			out = append(out, m)
		}
	}
	return out
}

// State returns the final state of the named module.
func (r *Report) State(name string) (domain.ModuleState, bool) {
	for _, m := range r.Modules {
		if m.Name == name {
			return m.State, true
		}
	}
	return domain.StateWaiting, false
}

func (s *Session) report(modules []*domain.Module) *Report {
	r := &Report{Project: s.project.Name, Modules: make([]ModuleReport, len(modules))}
	for i, m := range modules {
		cell := s.results[m.Name]
		r.Modules[i] = ModuleReport{
			Name:         m.Name.String(),
			CompileState: cell.CompileState(),
			State:        cell.State(),
			Diagnostics:  cell.Diagnostics(),
		}
	}
	return r
}
