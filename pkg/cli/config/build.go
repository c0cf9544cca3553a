package config

import (
	"github.com/m-mizutani/cihelper/pkg/domain/interfaces"
	"github.com/m-mizutani/cihelper/pkg/domain/model"
	"github.com/m-mizutani/cihelper/pkg/infra/shortcut"
	"github.com/urfave/cli/v3"
)

// Build holds the workflow environment a set of tags is derived from
type Build struct {
	input model.BuildContextInput
}

// Flags returns CLI flags for the build context
func (c *Build) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "event-name",
			Usage:       "Workflow trigger event (push, pull_request, release)",
			Destination: &c.input.EventName,
			Sources:     cli.EnvVars("GITHUB_EVENT_NAME"),
		},
		&cli.StringFlag{
			Name:        "sha",
			Usage:       "Commit SHA of the build",
			Destination: &c.input.SHA,
			Sources:     cli.EnvVars("GITHUB_SHA"),
		},
		&cli.StringFlag{
			Name:        "ref",
			Usage:       "Full ref of the build (refs/heads/main)",
			Destination: &c.input.Ref,
			Sources:     cli.EnvVars("GITHUB_REF"),
		},
		&cli.StringFlag{
			Name:        "head-ref",
			Usage:       "Full head ref of the pull request",
			Destination: &c.input.HeadRef,
			Sources:     cli.EnvVars("GITHUB_HEAD_REF"),
		},
		&cli.StringFlag{
			Name:        "base-ref",
			Usage:       "Full base ref of the pull request",
			Destination: &c.input.BaseRef,
			Sources:     cli.EnvVars("GITHUB_BASE_REF"),
		},
		&cli.StringFlag{
			Name:        "server-url",
			Usage:       "GitHub server URL",
			Destination: &c.input.ServerURL,
			Sources:     cli.EnvVars("GITHUB_SERVER_URL"),
		},
		&cli.StringFlag{
			Name:        "repository",
			Usage:       "Repository in owner/name form",
			Destination: &c.input.Repository,
			Sources:     cli.EnvVars("GITHUB_REPOSITORY"),
		},
		&cli.StringFlag{
			Name:        "event-number",
			Usage:       "Pull request number of a pull_request event",
			Destination: &c.input.EventNumber,
			Sources:     cli.EnvVars("INPUT_EVENT_NUMBER"),
		},
		&cli.StringFlag{
			Name:        "prefix",
			Usage:       "Prefix of development tags",
			Value:       model.DefaultTagPrefix,
			Destination: &c.input.Prefix,
			Sources:     cli.EnvVars("INPUT_PREFIX"),
		},
		&cli.StringFlag{
			Name:        "head-commit-message",
			Usage:       "Head commit message of a push event",
			Destination: &c.input.HeadCommitMessage,
			Sources:     cli.EnvVars("INPUT_HEAD_COMMIT_MESSAGE"),
		},
		&cli.StringFlag{
			Name:        "shortcut-token",
			Usage:       "Shortcut API token; story tags are skipped when empty",
			Destination: &c.input.ShortcutToken,
			Sources:     cli.EnvVars("INPUT_SHORTCUT_API_TOKEN"),
		},
	}
}

// BuildContext validates the collected values
func (c *Build) BuildContext() (*model.BuildContext, error) {
	return model.NewBuildContext(c.input)
}

// Input returns the raw values for logging
func (c *Build) Input() model.BuildContextInput {
	return c.input
}

// NewTracker returns a Shortcut client, or nil when no token is set
func (c *Build) NewTracker() interfaces.IssueTracker {
	if c.input.ShortcutToken == "" {
		return nil
	}
	return shortcut.NewClient(c.input.ShortcutToken)
}
