package interfaces

import (
	"context"

	"github.com/m-mizutani/cihelper/pkg/domain/model"
)

// GitHubClient defines operations for interacting with GitHub API
type GitHubClient interface {
	// ListIssueComments returns all comments of an issue or pull request
	ListIssueComments(ctx context.Context, owner, repo string, number int) ([]model.PRComment, error)

	// CreateIssueComment creates a comment on a pull request or issue
	CreateIssueComment(ctx context.Context, owner, repo string, number int, body string) error

	// EditIssueComment replaces the body of an existing comment
	EditIssueComment(ctx context.Context, owner, repo string, commentID int64, body string) error

	// ListRunArtifacts returns the artifacts of a workflow run
	ListRunArtifacts(ctx context.Context, owner, repo string, runID int64) ([]model.Artifact, error)

	// DownloadArtifact downloads an artifact as a zip archive
	DownloadArtifact(ctx context.Context, owner, repo string, artifactID int64) ([]byte, error)
}
