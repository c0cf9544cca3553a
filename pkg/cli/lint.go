package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/cihelper/pkg/cli/config"
	"github.com/m-mizutani/cihelper/pkg/infra/command"
	"github.com/m-mizutani/cihelper/pkg/infra/git"
	"github.com/m-mizutani/cihelper/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdLint() *cli.Command {
	var lintCfg config.Lint

	return &cli.Command{
		Name:    "lint",
		Aliases: []string{"l"},
		Usage:   "Format and lint Python files changed against the base branch",
		Flags:   lintCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			dir, err := lintCfg.Dir()
			if err != nil {
				return err
			}
			tools, err := lintCfg.Tools()
			if err != nil {
				return err
			}

			gitClient := git.NewClient(command.New(command.WithDir(dir)))
			toolRunner := command.New(
				command.WithDir(dir),
				command.WithStdout(c.Root().Writer),
				command.WithStderr(os.Stderr),
			)

			uc := usecase.NewLint(gitClient, toolRunner, tools, dir, c.Root().Writer)
			return uc.Run(ctx, lintCfg.BaseBranch)
		},
	}
}
