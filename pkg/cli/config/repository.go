package config

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Repository identifies the repository links are built for
type Repository struct {
	ServerURL string
	Name      string
}

// Flags returns CLI flags for the repository location
func (c *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "server-url",
			Usage:       "GitHub server URL",
			Value:       "https://github.com",
			Destination: &c.ServerURL,
			Sources:     cli.EnvVars("GITHUB_SERVER_URL"),
		},
		&cli.StringFlag{
			Name:        "repository",
			Usage:       "Repository in owner/name form",
			Required:    true,
			Destination: &c.Name,
			Sources:     cli.EnvVars("GITHUB_REPOSITORY"),
		},
	}
}

// URL returns the web URL of the repository
func (c *Repository) URL() (string, error) {
	if c.ServerURL == "" || c.Name == "" {
		return "", goerr.New("server URL and repository are required",
			goerr.V("server_url", c.ServerURL),
			goerr.V("repository", c.Name),
		)
	}
	return strings.TrimSuffix(c.ServerURL, "/") + "/" + c.Name, nil
}
