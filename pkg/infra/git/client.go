package git

import (
	"context"
	"strings"

	"github.com/m-mizutani/cihelper/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

type client struct {
	runner interfaces.CommandRunner
}

// NewClient creates a git client that invokes the git binary through runner
func NewClient(runner interfaces.CommandRunner) interfaces.Git {
	return &client{runner: runner}
}

func (c *client) git(ctx context.Context, args ...string) (string, int, error) {
	result, err := c.runner.Run(ctx, "git", args...)
	if err != nil {
		return "", 0, goerr.Wrap(err, "failed to run git", goerr.V("args", args))
	}
	return string(result.Stdout), result.ExitCode, nil
}

// CurrentBranch returns the abbreviated name of HEAD
func (c *client) CurrentBranch(ctx context.Context) (string, error) {
	out, code, err := c.git(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	if code != 0 {
		return "", goerr.New("git rev-parse failed", goerr.V("exit_code", code))
	}
	return strings.TrimSpace(out), nil
}

// Authors returns one author name per commit, in git log order
func (c *client) Authors(ctx context.Context, branch, base, path string) ([]string, error) {
	out, code, err := c.git(ctx, "log", branch, "--not", base, "--pretty=format:%an", "--", path)
	if err != nil {
		return nil, err
	}
	if code != 0 {
		return nil, goerr.New("git log failed", goerr.V("exit_code", code), goerr.V("path", path))
	}
	return splitLines(out), nil
}

// Show returns "" when path does not exist at rev
func (c *client) Show(ctx context.Context, rev, path string) (string, error) {
	out, code, err := c.git(ctx, "show", rev+":"+path)
	if err != nil {
		return "", err
	}
	if code != 0 {
		return "", nil
	}
	return out, nil
}

// DiffersFrom uses the exit status of git diff --exit-code: 0 same, 1 differs
func (c *client) DiffersFrom(ctx context.Context, rev, path string) (bool, error) {
	_, code, err := c.git(ctx, "diff", "--ignore-blank-lines", "-w", "-s", "--exit-code", rev, "--", path)
	if err != nil {
		return false, err
	}
	switch code {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, goerr.New("git diff failed", goerr.V("exit_code", code), goerr.V("path", path))
	}
}

// ChangedFiles returns paths (relative to the repository root) modified,
// added or copied since rev
func (c *client) ChangedFiles(ctx context.Context, rev string) ([]string, error) {
	out, code, err := c.git(ctx, "diff", rev, "--diff-filter=MAC", "--name-only")
	if err != nil {
		return nil, err
	}
	if code != 0 {
		return nil, goerr.New("git diff failed", goerr.V("exit_code", code), goerr.V("rev", rev))
	}
	return splitLines(out), nil
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
