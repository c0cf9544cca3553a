package cli

import (
	"context"
	"os"
	"strconv"

	"github.com/m-mizutani/cihelper/pkg/cli/config"
	"github.com/m-mizutani/cihelper/pkg/domain/model"
	"github.com/m-mizutani/cihelper/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdComment() *cli.Command {
	var (
		githubCfg config.GitHub
		prNumber  string
		uid       string
		body      string
		bodyFile  string
	)

	flags := append(githubCfg.Flags(),
		&cli.StringFlag{
			Name:        "pr-number",
			Usage:       "Pull request number to comment on",
			Required:    true,
			Destination: &prNumber,
			Sources:     cli.EnvVars("PR_NUMBER"),
		},
		&cli.StringFlag{
			Name:        "uid",
			Usage:       "Identifier of the comment; an earlier comment with the same uid is updated",
			Destination: &uid,
			Sources:     cli.EnvVars("CIHELPER_COMMENT_UID"),
		},
		&cli.StringFlag{
			Name:        "body",
			Usage:       "Comment body",
			Destination: &body,
		},
		&cli.StringFlag{
			Name:        "body-file",
			Usage:       "File holding the comment body, read when --body is empty",
			Destination: &bodyFile,
		},
	)

	return &cli.Command{
		Name:    "comment",
		Aliases: []string{"c"},
		Usage:   "Create or update a pull request comment",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			owner, repo, err := githubCfg.OwnerRepo()
			if err != nil {
				return err
			}

			number, err := strconv.Atoi(prNumber)
			if err != nil || number <= 0 {
				return goerr.New("pull request number must be a positive integer", goerr.V("pr_number", prNumber))
			}

			content, err := readBody(body, bodyFile)
			if err != nil {
				return err
			}

			return usecase.NewComment(githubCfg.NewClient()).Upsert(ctx, &model.CommentRequest{
				Owner:    owner,
				Repo:     repo,
				PRNumber: number,
				UID:      uid,
				Body:     content,
			})
		},
	}
}

func readBody(body, bodyFile string) (string, error) {
	if body != "" {
		return body, nil
	}
	if bodyFile == "" {
		return "", goerr.New("either --body or --body-file is required")
	}

	raw, err := os.ReadFile(bodyFile)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read comment body", goerr.V("path", bodyFile))
	}
	return string(raw), nil
}
