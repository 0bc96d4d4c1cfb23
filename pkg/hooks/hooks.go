// Package hooks runs a template's post-create commands inside the newly
// created project. Commands are interpreted in-process by mvdan.cc/sh, so
// hooks behave the same on every platform and need no system shell.
package hooks

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/logging"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Result is the outcome of one hook command
type Result struct {
	Command  string
	ExitCode int
	Err      error
}

// OK reports whether the command succeeded
func (r Result) OK() bool { return r.Err == nil }

// Executor runs hook commands
type Executor struct {
	Stdout io.Writer
	Stderr io.Writer
	// Env defaults to the process environment
	Env []string
}

// NewExecutor returns an executor writing to the process stdout and stderr
func NewExecutor() *Executor {
	return &Executor{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes every command in order with dir as working directory. A
// failing command does not stop the ones after it; each failure is reported
// in its Result and logged as a warning.
func (e *Executor) Run(ctx context.Context, commands []string, dir string) []Result {
	logger := logging.GetLogger("hooks")
	results := make([]Result, 0, len(commands))

	for _, cmd := range commands {
		res := e.runOne(ctx, cmd, dir)
		if res.OK() {
			logger.Info().Str("command", cmd).Str("dir", dir).Msg("hook finished")
		} else {
			logger.Warn().Err(res.Err).Str("command", cmd).Int("exit_code", res.ExitCode).Msg("hook failed")
		}
		results = append(results, res)
	}
	return results
}

// Failed filters the unsuccessful results
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.OK() {
			out = append(out, r)
		}
	}
	return out
}

func (e *Executor) runOne(ctx context.Context, cmd, dir string) Result {
	res := Result{Command: cmd}

	if strings.TrimSpace(cmd) == "" {
		return res
	}

	file, err := syntax.NewParser().Parse(strings.NewReader(cmd), "")
	if err != nil {
		res.ExitCode = -1
		res.Err = errors.Wrapf(err, errors.ErrHookExecute, "hook %q does not parse", cmd)
		return res
	}

	env := e.Env
	if env == nil {
		env = os.Environ()
	}

	var stderr bytes.Buffer
	errOut := io.Writer(&stderr)
	if e.Stderr != nil {
		errOut = io.MultiWriter(e.Stderr, &stderr)
	}
	stdout := e.Stdout
	if stdout == nil {
		stdout = io.Discard
	}

	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(nil, stdout, errOut),
	)
	if err != nil {
		res.ExitCode = -1
		res.Err = errors.Wrapf(err, errors.ErrHookExecute, "cannot run hook %q in %s", cmd, dir)
		return res
	}

	err = runner.Run(ctx, file)
	if err == nil {
		return res
	}

	var status interp.ExitStatus
	if errors.As(err, &status) {
		res.ExitCode = int(status)
	} else {
		res.ExitCode = -1
	}
	res.Err = errors.Wrapf(err, errors.ErrHookExecute, "hook %q failed", cmd).
		WithDetail("exit_code", res.ExitCode).
		WithDetail("stderr", strings.TrimSpace(stderr.String()))
	return res
}
