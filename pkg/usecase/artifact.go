package usecase

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/m-mizutani/cihelper/pkg/domain/interfaces"
	"github.com/m-mizutani/cihelper/pkg/domain/model"
	"github.com/m-mizutani/cihelper/pkg/utils/archive"
	"github.com/m-mizutani/cihelper/pkg/utils/retry"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultMaxRetry is the number of download attempts per artifact
const DefaultMaxRetry = 15

type artifactUseCase struct {
	githubClient interfaces.GitHubClient
	backoff      retry.Backoff
}

// ArtifactOption is a functional option for the artifact use case
type ArtifactOption func(*artifactUseCase)

// WithBackoff replaces the linear one second backoff between attempts
func WithBackoff(b retry.Backoff) ArtifactOption {
	return func(uc *artifactUseCase) {
		uc.backoff = b
	}
}

// NewArtifact creates an ArtifactUseCase
func NewArtifact(githubClient interfaces.GitHubClient, opts ...ArtifactOption) interfaces.ArtifactUseCase {
	uc := &artifactUseCase{
		githubClient: githubClient,
		backoff:      retry.Linear(time.Second),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Download saves every artifact of the run whose name matches req.NameRegex
// to req.Dir, one at a time. With req.Extract each archive is unpacked into
// a directory named after the artifact instead. It returns the written paths.
func (uc *artifactUseCase) Download(ctx context.Context, req *model.DownloadRequest) ([]string, error) {
	logger := ctxlog.From(ctx)

	re, err := regexp.Compile(req.NameRegex)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid artifact name regex", goerr.V("regex", req.NameRegex))
	}

	maxRetry := req.MaxRetry
	if maxRetry <= 0 {
		maxRetry = DefaultMaxRetry
	}

	artifacts, err := uc.githubClient.ListRunArtifacts(ctx, req.Owner, req.Repo, req.RunID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list artifacts", goerr.V("run_id", req.RunID))
	}

	if err := os.MkdirAll(req.Dir, 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create download directory", goerr.V("dir", req.Dir))
	}

	var paths []string
	for _, a := range artifacts {
		if !re.MatchString(a.Name) {
			continue
		}

		dest := filepath.Join(req.Dir, filepath.Base(a.Name))
		err := retry.Do(ctx, maxRetry, uc.backoff, func(ctx context.Context, attempt int) error {
			logger.Info("Attempting to download artifact", "name", a.Name, "attempt", attempt)
			data, err := uc.githubClient.DownloadArtifact(ctx, req.Owner, req.Repo, a.ID)
			if err != nil {
				return err
			}
			if req.Extract {
				files, err := archive.Unzip(data, dest)
				if err != nil {
					return err
				}
				logger.Debug("Extracted artifact", "name", a.Name, "files", files)
				return nil
			}
			if err := os.WriteFile(dest, data, 0644); err != nil {
				return goerr.Wrap(err, "failed to save artifact", goerr.V("path", dest))
			}
			return nil
		})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to download artifact", goerr.V("name", a.Name))
		}

		logger.Info("Successfully downloaded artifact", "name", a.Name, "path", dest)
		paths = append(paths, dest)
	}

	return paths, nil
}
