// Package shell runs toolchain processes.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/creack/pty"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CommandRunner = (*Runner)(nil)

type terminalKey struct{}

// WithTerminal marks ctx so that commands run under a pseudo-terminal.
// Compilers then emit colored diagnostics; stdout and stderr are merged.
func WithTerminal(ctx context.Context) context.Context {
	return context.WithValue(ctx, terminalKey{}, true)
}

func terminal(ctx context.Context) bool {
	on, _ := ctx.Value(terminalKey{}).(bool)
	return on
}

// Runner implements ports.CommandRunner using os/exec and pty.
type Runner struct {
	environ func() []string
}

// NewRunner creates a Runner inheriting the allow-listed process environment.
func NewRunner() *Runner {
	return &Runner{environ: os.Environ}
}

// Run implements ports.CommandRunner.
func (r *Runner) Run(ctx context.Context, c domain.Command) (domain.ProcessResult, error) {
	if len(c.Args) == 0 {
		return domain.ProcessResult{Success: true}, nil
	}

	name := c.Args[0]
	env := resolveEnvironment(r.environ(), c.Env)

	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, env); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, c.Args[1:]...) //nolint:gosec // Toolchain command
	cmd.Args[0] = name
	cmd.Dir = c.Dir
	cmd.Env = env

	if terminal(ctx) {
		return runPTY(cmd)
	}
	return runPipes(cmd)
}

func runPipes(cmd *exec.Cmd) (domain.ProcessResult, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return domain.ProcessResult{}, startError(err, cmd)
	}
	return result(cmd.Wait(), stdout.String(), stderr.String())
}

func runPTY(cmd *exec.Cmd) (domain.ProcessResult, error) {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return domain.ProcessResult{}, startError(err, cmd)
	}

	var out bytes.Buffer
	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		// Reading the master fails with EIO once the child exits.
		_, _ = io.Copy(&out, ptmx)
	}()

	waitErr := cmd.Wait()
	<-ioDone
	_ = ptmx.Close()

	return result(waitErr, strings.ReplaceAll(out.String(), "\r\n", "\n"), "")
}

func result(waitErr error, stdout, stderr string) (domain.ProcessResult, error) {
	res := domain.ProcessResult{Stdout: stdout, Stderr: stderr}
	if waitErr == nil {
		res.Success = true
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	return res, zerr.Wrap(waitErr, domain.ErrCommandStartFailed.Error())
}

func startError(err error, cmd *exec.Cmd) error {
	return zerr.With(zerr.Wrap(err, domain.ErrCommandStartFailed.Error()), "command", cmd.Args[0])
}

// allowListedEnvVars are the host variables a toolchain process inherits.
// Compilers only see what they need to locate SDKs and temporary storage.
var allowListedEnvVars = map[string]struct{}{
	"HOME":          {},
	"TERM":          {},
	"USER":          {},
	"PATH":          {},
	"LANG":          {},
	"TMPDIR":        {},
	"TEMP":          {},
	"TMP":           {},
	"SYSTEMROOT":    {},
	"INCLUDE":       {},
	"LIB":           {},
	"LIBPATH":       {},
	"DEVELOPER_DIR": {},
	"SDKROOT":       {},
}

// resolveEnvironment filters sysEnv through the allow-list and applies
// overrides on top. Keys are matched case-insensitively so that Windows
// spellings such as Path are kept.
func resolveEnvironment(sysEnv, overrides []string) []string {
	envMap := make(map[string]string)
	keys := make(map[string]string)

	set := func(k, v string) {
		upper := strings.ToUpper(k)
		if prev, ok := keys[upper]; ok {
			delete(envMap, prev)
		}
		keys[upper] = k
		envMap[k] = v
	}

	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, allowed := allowListedEnvVars[strings.ToUpper(k)]; allowed {
			set(k, v)
		}
	}
	for _, entry := range overrides {
		if k, v, ok := strings.Cut(entry, "="); ok {
			set(k, v)
		}
	}

	out := make([]string, 0, len(envMap))
	for k, v := range envMap {
		out = append(out, k+"="+v)
	}
	return out
}

// lookPath searches for an executable in the directories named by the PATH
// entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if k, v, ok := strings.Cut(e, "="); ok && strings.EqualFold(k, "PATH") {
			path = v
			break
		}
	}
	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
