package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// PullRequest holds the pull request a version bump is computed for. Title
// and body fall back to files written by an earlier workflow step.
type PullRequest struct {
	BaseBranch string
	Number     string
	Title      string
	TitleFile  string
	Body       string
	BodyFile   string
}

// Flags returns CLI flags for pull request configuration
func (c *PullRequest) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "base-branch",
			Usage:       "Base branch of the pull request",
			Required:    true,
			Destination: &c.BaseBranch,
			Sources:     cli.EnvVars("BASE_BRANCH"),
		},
		&cli.StringFlag{
			Name:        "pr-number",
			Usage:       "Pull request number",
			Required:    true,
			Destination: &c.Number,
			Sources:     cli.EnvVars("PR_NUMBER"),
		},
		&cli.StringFlag{
			Name:        "pr-title",
			Usage:       "Pull request title",
			Destination: &c.Title,
			Sources:     cli.EnvVars("PR_TITLE"),
		},
		&cli.StringFlag{
			Name:        "pr-title-file",
			Usage:       "File holding the pull request title, read when --pr-title is empty",
			Value:       "/tmp/pr_title",
			Destination: &c.TitleFile,
			Sources:     cli.EnvVars("PR_TITLE_FILE"),
		},
		&cli.StringFlag{
			Name:        "pr-body",
			Usage:       "Pull request body",
			Destination: &c.Body,
			Sources:     cli.EnvVars("PR_BODY"),
		},
		&cli.StringFlag{
			Name:        "pr-body-file",
			Usage:       "File holding the pull request body, read when --pr-body is empty",
			Value:       "/tmp/pr_body",
			Destination: &c.BodyFile,
			Sources:     cli.EnvVars("PR_BODY_FILE"),
		},
	}
}

// ResolveTitle returns the title, reading TitleFile when Title is empty
func (c *PullRequest) ResolveTitle() (string, error) {
	s, err := valueOrFile(c.Title, c.TitleFile)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// ResolveBody returns the body, reading BodyFile when Body is empty
func (c *PullRequest) ResolveBody() (string, error) {
	return valueOrFile(c.Body, c.BodyFile)
}

// valueOrFile returns value when set, else the content of path. A missing
// file yields an empty string.
func valueOrFile(value, path string) (string, error) {
	if value != "" || path == "" {
		return value, nil
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", goerr.Wrap(err, "failed to read file", goerr.V("path", path))
	}
	return string(raw), nil
}
