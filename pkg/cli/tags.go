package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/m-mizutani/cihelper/pkg/cli/config"
	"github.com/m-mizutani/cihelper/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdTags() *cli.Command {
	var (
		buildCfg  config.Build
		outputCfg config.Output
	)

	return &cli.Command{
		Name:    "tags",
		Aliases: []string{"t"},
		Usage:   "Derive Docker image tags from the workflow event",
		Flags:   append(buildCfg.Flags(), outputCfg.Flags()...),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)
			logger.Debug("Build context input", "input", buildCfg.Input())

			bc, err := buildCfg.BuildContext()
			if err != nil {
				return err
			}

			tags, err := usecase.NewTags(buildCfg.NewTracker()).GenerateTags(ctx, bc)
			if err != nil {
				return goerr.Wrap(err, "failed to generate tags")
			}

			joined := tags.String()
			if err := outputCfg.NewWriter().SetOutput("tags", joined); err != nil {
				return err
			}

			logger.Info("Generated tags", "tags", tags.Sorted(), "event", bc.EventKind())
			color.New(color.FgGreen).Fprintf(c.Root().Writer, "Generated tags \"%s\".\n", joined)
			return nil
		},
	}
}
