package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/cihelper/pkg/cli/config"
	"github.com/m-mizutani/cihelper/pkg/domain/model"
	"github.com/m-mizutani/cihelper/pkg/infra/command"
	"github.com/m-mizutani/cihelper/pkg/infra/git"
	"github.com/m-mizutani/cihelper/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdBump() *cli.Command {
	var (
		prCfg      config.PullRequest
		projectCfg config.Project
		repoCfg    config.Repository
	)

	flags := append(prCfg.Flags(), projectCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "bump",
		Aliases: []string{"b"},
		Usage:   "Bump the version file and changelog of a pull request branch",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			req, err := newBumpRequest(&prCfg, &projectCfg, &repoCfg)
			if err != nil {
				return err
			}

			runner := command.New(command.WithDir(req.WorkDir))
			report, err := usecase.NewBump(git.NewClient(runner)).Run(ctx, req)
			if err != nil {
				return goerr.Wrap(err, "failed to bump version")
			}

			fmt.Fprintf(c.Root().Writer, "Version %s (version file updated: %t, changelog updated: %t)\n",
				report.Version, report.VersionWritten, report.ChangelogWritten)
			return nil
		},
	}
}

func newBumpRequest(prCfg *config.PullRequest, projectCfg *config.Project, repoCfg *config.Repository) (*model.BumpRequest, error) {
	dir, err := projectCfg.Dir()
	if err != nil {
		return nil, err
	}
	versionFile, err := projectCfg.VersionFile(dir)
	if err != nil {
		return nil, err
	}
	changelogFile, err := projectCfg.ChangelogFile(dir)
	if err != nil {
		return nil, err
	}

	title, err := prCfg.ResolveTitle()
	if err != nil {
		return nil, err
	}
	body, err := prCfg.ResolveBody()
	if err != nil {
		return nil, err
	}

	repoURL, err := repoCfg.URL()
	if err != nil {
		return nil, err
	}

	return &model.BumpRequest{
		BaseBranch:    prCfg.BaseBranch,
		VersionFile:   versionFile,
		ChangelogFile: changelogFile,
		WorkDir:       dir,
		PRTitle:       title,
		PRBody:        body,
		PRNumber:      prCfg.Number,
		RepoURL:       repoURL,
	}, nil
}
