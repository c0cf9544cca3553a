package config

import (
	"strings"

	"github.com/m-mizutani/cihelper/pkg/domain/interfaces"
	ghclient "github.com/m-mizutani/cihelper/pkg/infra/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub API configuration
type GitHub struct {
	Token      string `masq:"secret"`
	Repository string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub API token",
			Required:    true,
			Destination: &c.Token,
			Sources:     cli.EnvVars("GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "repository",
			Usage:       "Repository in owner/name form",
			Required:    true,
			Destination: &c.Repository,
			Sources:     cli.EnvVars("GITHUB_REPOSITORY"),
		},
	}
}

// OwnerRepo splits Repository into owner and name
func (c *GitHub) OwnerRepo() (string, string, error) {
	owner, repo, ok := strings.Cut(c.Repository, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", goerr.New("repository must be in owner/name form", goerr.V("repository", c.Repository))
	}
	return owner, repo, nil
}

// NewClient creates a GitHub API client
func (c *GitHub) NewClient() interfaces.GitHubClient {
	return ghclient.NewClient(c.Token)
}
