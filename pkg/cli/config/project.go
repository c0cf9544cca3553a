package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/cihelper/pkg/domain/types"
	"github.com/m-mizutani/cihelper/pkg/utils/files"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Project locates the version file and changelog in the working tree
type Project struct {
	WorkDir          string
	VersionPattern   string
	ChangelogPattern string
	ChangelogPath    string
}

// Flags returns CLI flags for project file discovery
func (c *Project) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "work-dir",
			Usage:       "Repository working directory (default: current directory)",
			Destination: &c.WorkDir,
			Sources:     cli.EnvVars("CIHELPER_WORK_DIR"),
		},
		&cli.StringFlag{
			Name:        "version-file",
			Usage:       "Base name pattern of the version file",
			Value:       "_version.py",
			Destination: &c.VersionPattern,
			Sources:     cli.EnvVars("CIHELPER_VERSION_FILE"),
		},
		&cli.StringFlag{
			Name:        "changelog",
			Usage:       "Base name pattern of the changelog",
			Value:       "CHANGELOG.md",
			Destination: &c.ChangelogPattern,
			Sources:     cli.EnvVars("CIHELPER_CHANGELOG"),
		},
		&cli.StringFlag{
			Name:        "changelog-path",
			Usage:       "Changelog path relative to the working directory; skips discovery by --changelog",
			Destination: &c.ChangelogPath,
			Sources:     cli.EnvVars("CIHELPER_CHANGELOG_PATH"),
		},
	}
}

// Dir returns the working directory, defaulting to the current one
func (c *Project) Dir() (string, error) {
	if c.WorkDir != "" {
		return c.WorkDir, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", goerr.Wrap(err, "failed to get working directory")
	}
	return dir, nil
}

// VersionFile returns the shallowest version file, relative to dir
func (c *Project) VersionFile(dir string) (string, error) {
	path, err := files.FindShallowest(dir, c.VersionPattern)
	if err != nil {
		return "", goerr.Wrap(err, "version file not found", goerr.V("pattern", c.VersionPattern))
	}
	return path, nil
}

// ChangelogFile returns ChangelogPath when set. Otherwise it returns the
// shallowest changelog matching ChangelogPattern, relative to dir; when none
// exists the pattern itself is used so that the file is created at the root.
func (c *Project) ChangelogFile(dir string) (string, error) {
	if c.ChangelogPath != "" {
		if filepath.IsAbs(c.ChangelogPath) {
			rel, err := filepath.Rel(dir, c.ChangelogPath)
			if err == nil && (rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
				err = goerr.New("path escapes the working directory")
			}
			if err != nil {
				return "", goerr.Wrap(err, "changelog path is not under the working directory", goerr.V("path", c.ChangelogPath))
			}
			return rel, nil
		}
		return filepath.Clean(c.ChangelogPath), nil
	}

	path, err := files.FindShallowest(dir, c.ChangelogPattern)
	if errors.Is(err, types.ErrFileNotFound) {
		return c.ChangelogPattern, nil
	}
	if err != nil {
		return "", goerr.Wrap(err, "failed to search changelog", goerr.V("pattern", c.ChangelogPattern))
	}
	return path, nil
}
