package config

import (
	"github.com/m-mizutani/cihelper/pkg/domain/interfaces"
	"github.com/m-mizutani/cihelper/pkg/infra/actions"
	"github.com/urfave/cli/v3"
)

// Output holds the step output destination
type Output struct {
	Path string
}

// Flags returns CLI flags for step outputs
func (c *Output) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "output",
			Usage:       "File step outputs are appended to",
			Required:    true,
			Destination: &c.Path,
			Sources:     cli.EnvVars("GITHUB_OUTPUT"),
		},
	}
}

// NewWriter returns a writer appending to Path
func (c *Output) NewWriter() interfaces.OutputWriter {
	return actions.NewOutputFile(c.Path)
}
