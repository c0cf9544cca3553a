package usecase_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/cihelper/pkg/domain/model"
	"github.com/m-mizutani/cihelper/pkg/usecase"
	"github.com/m-mizutani/cihelper/pkg/utils/retry"
	"github.com/m-mizutani/gt"
)

func TestArtifactUseCase_Download(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "artifacts")
	client := &mockGitHubClient{
		artifacts: []model.Artifact{
			{ID: 1, Name: "coverage-py3.11"},
			{ID: 2, Name: "wheel"},
			{ID: 3, Name: "coverage-py3.12"},
		},
		downloadFunc: func(id int64, attempt int) ([]byte, error) {
			if id == 3 && attempt < 3 {
				return nil, errors.New("rate limited")
			}
			return []byte("zip"), nil
		},
	}

	uc := usecase.NewArtifact(client, usecase.WithBackoff(retry.Linear(time.Millisecond)))
	paths, err := uc.Download(context.Background(), &model.DownloadRequest{
		Owner:     "org",
		Repo:      "repo",
		RunID:     99,
		NameRegex: "^coverage-",
		Dir:       dir,
	})
	gt.NoError(t, err)
	gt.Value(t, paths).Equal([]string{
		filepath.Join(dir, "coverage-py3.11"),
		filepath.Join(dir, "coverage-py3.12"),
	})
	gt.Value(t, client.downloadCalls[1]).Equal(1)
	gt.Value(t, client.downloadCalls[2]).Equal(0)
	gt.Value(t, client.downloadCalls[3]).Equal(3)

	data, err := os.ReadFile(filepath.Join(dir, "coverage-py3.12"))
	gt.NoError(t, err)
	gt.Value(t, string(data)).Equal("zip")
}

func TestArtifactUseCase_Download_GivesUp(t *testing.T) {
	client := &mockGitHubClient{
		artifacts: []model.Artifact{{ID: 1, Name: "coverage"}},
		downloadFunc: func(id int64, attempt int) ([]byte, error) {
			return nil, errors.New("server error")
		},
	}

	uc := usecase.NewArtifact(client, usecase.WithBackoff(retry.Linear(time.Millisecond)))
	_, err := uc.Download(context.Background(), &model.DownloadRequest{
		NameRegex: ".*",
		Dir:       t.TempDir(),
		MaxRetry:  4,
	})
	gt.Error(t, err)
	gt.Value(t, client.downloadCalls[1]).Equal(4)
}

func TestArtifactUseCase_Download_InvalidRegex(t *testing.T) {
	uc := usecase.NewArtifact(&mockGitHubClient{})
	_, err := uc.Download(context.Background(), &model.DownloadRequest{NameRegex: "(", Dir: t.TempDir()})
	gt.Error(t, err)
}

func TestArtifactUseCase_Download_Extract(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("coverage.xml")
	gt.NoError(t, err)
	_, err = f.Write([]byte("<coverage/>"))
	gt.NoError(t, err)
	gt.NoError(t, w.Close())

	client := &mockGitHubClient{
		artifacts: []model.Artifact{{ID: 1, Name: "coverage"}},
		downloadFunc: func(id int64, attempt int) ([]byte, error) {
			return buf.Bytes(), nil
		},
	}

	dir := t.TempDir()
	uc := usecase.NewArtifact(client)
	paths, err := uc.Download(context.Background(), &model.DownloadRequest{
		NameRegex: ".*",
		Dir:       dir,
		Extract:   true,
	})
	gt.NoError(t, err)
	gt.Value(t, paths).Equal([]string{filepath.Join(dir, "coverage")})

	data, err := os.ReadFile(filepath.Join(dir, "coverage", "coverage.xml"))
	gt.NoError(t, err)
	gt.Value(t, string(data)).Equal("<coverage/>")
}
