package command

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"

	"github.com/m-mizutani/cihelper/pkg/domain/interfaces"
	"github.com/m-mizutani/cihelper/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type config struct {
	dir    string
	stdout io.Writer
	stderr io.Writer
}

// Option is a functional option for Runner configuration
type Option func(*config)

// WithDir sets the working directory of executed commands
func WithDir(dir string) Option {
	return func(c *config) {
		c.dir = dir
	}
}

// WithStdout copies command stdout to w in addition to capturing it
func WithStdout(w io.Writer) Option {
	return func(c *config) {
		c.stdout = w
	}
}

// WithStderr forwards command stderr to w
func WithStderr(w io.Writer) Option {
	return func(c *config) {
		c.stderr = w
	}
}

// Runner executes commands on the local machine
type Runner struct {
	cfg config
}

var _ interfaces.CommandRunner = (*Runner)(nil)

// New creates a Runner
func New(opts ...Option) *Runner {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Runner{cfg: cfg}
}

// Run executes name with args and waits for it to exit
func (r *Runner) Run(ctx context.Context, name string, args ...string) (*model.CommandResult, error) {
	logger := ctxlog.From(ctx)

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.cfg.dir
	cmd.Stdout = &stdout
	if r.cfg.stdout != nil {
		cmd.Stdout = io.MultiWriter(&stdout, r.cfg.stdout)
	}
	cmd.Stderr = r.cfg.stderr

	logger.Debug("Running command", "name", name, "args", args, "dir", r.cfg.dir)

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return &model.CommandResult{Stdout: stdout.Bytes()}, nil
	case errors.As(err, &exitErr):
		logger.Debug("Command exited with non-zero status", "name", name, "exit_code", exitErr.ExitCode())
		return &model.CommandResult{Stdout: stdout.Bytes(), ExitCode: exitErr.ExitCode()}, nil
	default:
		return nil, goerr.Wrap(err, "failed to run command", goerr.V("name", name), goerr.V("args", args))
	}
}
