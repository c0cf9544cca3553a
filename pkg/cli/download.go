package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/cihelper/pkg/cli/config"
	"github.com/m-mizutani/cihelper/pkg/domain/model"
	"github.com/m-mizutani/cihelper/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdDownload() *cli.Command {
	var (
		githubCfg config.GitHub
		runID     int64
		nameRegex string
		dir       string
		maxRetry  int64
		extract   bool
	)

	flags := append(githubCfg.Flags(),
		&cli.Int64Flag{
			Name:        "run-id",
			Usage:       "Workflow run whose artifacts are downloaded",
			Required:    true,
			Destination: &runID,
			Sources:     cli.EnvVars("GITHUB_RUN_ID"),
		},
		&cli.StringFlag{
			Name:        "name",
			Usage:       "Regular expression artifact names must match",
			Value:       ".*",
			Destination: &nameRegex,
		},
		&cli.StringFlag{
			Name:        "dir",
			Usage:       "Directory the artifact zips are written to",
			Value:       ".",
			Destination: &dir,
		},
		&cli.Int64Flag{
			Name:        "max-retry",
			Usage:       "Download attempts per artifact",
			Value:       usecase.DefaultMaxRetry,
			Destination: &maxRetry,
		},
		&cli.BoolFlag{
			Name:        "extract",
			Usage:       "Unpack each artifact into a directory named after it",
			Destination: &extract,
		},
	)

	return &cli.Command{
		Name:    "download",
		Aliases: []string{"d"},
		Usage:   "Download artifacts of a workflow run",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			owner, repo, err := githubCfg.OwnerRepo()
			if err != nil {
				return err
			}
			if maxRetry < 1 {
				return goerr.New("max retry must be at least 1", goerr.V("max_retry", maxRetry))
			}

			paths, err := usecase.NewArtifact(githubCfg.NewClient()).Download(ctx, &model.DownloadRequest{
				Owner:     owner,
				Repo:      repo,
				RunID:     runID,
				NameRegex: nameRegex,
				Dir:       dir,
				MaxRetry:  int(maxRetry),
				Extract:   extract,
			})
			if err != nil {
				return goerr.Wrap(err, "failed to download artifacts", goerr.V("run_id", runID))
			}

			for _, p := range paths {
				fmt.Fprintln(c.Root().Writer, p)
			}
			return nil
		},
	}
}
