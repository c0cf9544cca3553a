package interfaces

import (
	"context"

	"github.com/m-mizutani/cihelper/pkg/domain/model"
)

// TagsUseCase derives Docker image tags for a build
type TagsUseCase interface {
	// GenerateTags derives the tag set, including issue tracker tags when available
	GenerateTags(ctx context.Context, bc *model.BuildContext) (model.TagSet, error)
}

// BumpUseCase bumps the version file and merges the changelog of a pull request branch
type BumpUseCase interface {
	Run(ctx context.Context, req *model.BumpRequest) (*model.BumpReport, error)
}

// LintUseCase formats and lints files changed against a base branch
type LintUseCase interface {
	Run(ctx context.Context, baseBranch string) error
}

// CommentUseCase creates or updates an identified pull request comment
type CommentUseCase interface {
	Upsert(ctx context.Context, req *model.CommentRequest) error
}

// ArtifactUseCase downloads workflow run artifacts
type ArtifactUseCase interface {
	Download(ctx context.Context, req *model.DownloadRequest) ([]string, error)
}
