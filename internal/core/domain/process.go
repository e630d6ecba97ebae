package domain

import "strings"

// CompileInfo is everything a toolchain needs to compile one source.
type CompileInfo struct {
	Module         *Module
	Platform       Platform
	Configuration  Configuration
	Source         string
	Object         string
	DependencyFile string
	HeaderPaths    []string
	Definitions    []string
}

// LinkInfo is everything a toolchain needs to link one module.
type LinkInfo struct {
	Module             *Module
	Platform           Platform
	Configuration      Configuration
	Objects            []string
	Artifact           string
	LibrarySearchPaths []string
	// LinkLibraries are library names without prefix or extension, dependency
	// modules first.
	LinkLibraries []string
	Frameworks    []string
}

// ProcessResult is the outcome of a toolchain invocation.
type ProcessResult struct {
	Success  bool
	ExitCode int
	Stdout   string
	Stderr   string
}

// Diagnostics returns the captured output, stderr last.
func (r ProcessResult) Diagnostics() string {
	parts := make([]string, 0, 2)
	if s := strings.TrimRight(r.Stdout, "\n"); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimRight(r.Stderr, "\n"); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n")
}

// Command is a fully resolved process invocation.
type Command struct {
	Args []string
	Dir  string
	// Env replaces the inherited environment when non-nil.
	Env []string
}

// String renders the command line with shell-style quoting for display.
func (c Command) String() string {
	quoted := make([]string, len(c.Args))
	for i, a := range c.Args {
		if a == "" || strings.ContainsAny(a, " \t\"'$\\") {
			a = "'" + strings.ReplaceAll(a, "'", `'\''`) + "'"
		}
		quoted[i] = a
	}
	return strings.Join(quoted, " ")
}
