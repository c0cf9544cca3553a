package config

import (
	"os"

	"github.com/m-mizutani/cihelper/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Lint holds lint runner configuration
type Lint struct {
	BaseBranch string
	ConfigPath string
	WorkDir    string
}

// lintFile is the layout of the TOML tool list:
//
//	[[tools]]
//	name = "ruff"
//	command = "ruff"
//	args = ["check"]
//	fatal = true
type lintFile struct {
	Tools []model.LintTool `toml:"tools"`
}

// Flags returns CLI flags for lint configuration
func (c *Lint) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "base-branch",
			Usage:       "Branch the changed files are computed against",
			Required:    true,
			Destination: &c.BaseBranch,
			Sources:     cli.EnvVars("BASE_BRANCH"),
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "TOML file overriding the lint tool list",
			Destination: &c.ConfigPath,
			Sources:     cli.EnvVars("CIHELPER_LINT_CONFIG"),
		},
		&cli.StringFlag{
			Name:        "work-dir",
			Usage:       "Repository working directory (default: current directory)",
			Destination: &c.WorkDir,
			Sources:     cli.EnvVars("CIHELPER_WORK_DIR"),
		},
	}
}

// Tools returns the configured tool list, or the default Python chain when
// no config file is set
func (c *Lint) Tools() ([]model.LintTool, error) {
	if c.ConfigPath == "" {
		return model.DefaultLintTools(), nil
	}

	raw, err := os.ReadFile(c.ConfigPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read lint config", goerr.V("path", c.ConfigPath))
	}
	return ParseLintTools(raw)
}

// ParseLintTools decodes a TOML tool list. Every tool needs a command; the
// name defaults to the command.
func ParseLintTools(raw []byte) ([]model.LintTool, error) {
	var f lintFile
	if err := toml.Unmarshal(raw, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse lint config")
	}
	if len(f.Tools) == 0 {
		return nil, goerr.New("lint config has no tools")
	}

	for i := range f.Tools {
		if f.Tools[i].Command == "" {
			return nil, goerr.New("lint tool has no command", goerr.V("index", i), goerr.V("name", f.Tools[i].Name))
		}
		if f.Tools[i].Name == "" {
			f.Tools[i].Name = f.Tools[i].Command
		}
	}
	return f.Tools, nil
}

// Dir returns the working directory, defaulting to the current one
func (c *Lint) Dir() (string, error) {
	if c.WorkDir != "" {
		return c.WorkDir, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", goerr.Wrap(err, "failed to get working directory")
	}
	return dir, nil
}
