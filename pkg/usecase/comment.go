package usecase

import (
	"context"

	"github.com/m-mizutani/cihelper/pkg/domain/interfaces"
	"github.com/m-mizutani/cihelper/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type commentUseCase struct {
	githubClient interfaces.GitHubClient
}

// NewComment creates a CommentUseCase
func NewComment(githubClient interfaces.GitHubClient) interfaces.CommentUseCase {
	return &commentUseCase{githubClient: githubClient}
}

// Upsert edits the actions bot comment carrying req.UID, or creates a new
// comment when there is none or UID is empty
func (uc *commentUseCase) Upsert(ctx context.Context, req *model.CommentRequest) error {
	logger := ctxlog.From(ctx)
	content := model.CommentContent(req.Body, req.UID)

	if req.UID != "" {
		comments, err := uc.githubClient.ListIssueComments(ctx, req.Owner, req.Repo, req.PRNumber)
		if err != nil {
			return goerr.Wrap(err, "failed to list pull request comments")
		}

		for _, c := range comments {
			if !model.IsOwnedComment(c, req.UID) {
				continue
			}

			logger.Info("Updating existing comment", "comment_id", c.ID, "uid", req.UID, "pr_number", req.PRNumber)
			if err := uc.githubClient.EditIssueComment(ctx, req.Owner, req.Repo, c.ID, content); err != nil {
				return goerr.Wrap(err, "failed to update comment", goerr.V("comment_id", c.ID))
			}
			return nil
		}
	}

	logger.Info("Creating comment", "uid", req.UID, "pr_number", req.PRNumber)
	if err := uc.githubClient.CreateIssueComment(ctx, req.Owner, req.Repo, req.PRNumber, content); err != nil {
		return goerr.Wrap(err, "failed to create comment", goerr.V("pr_number", req.PRNumber))
	}
	return nil
}
