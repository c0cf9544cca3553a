package usecase

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/m-mizutani/cihelper/pkg/domain/interfaces"
	"github.com/m-mizutani/cihelper/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type bumpUseCase struct {
	git interfaces.Git
}

// NewBump creates a BumpUseCase
func NewBump(git interfaces.Git) interfaces.BumpUseCase {
	return &bumpUseCase{git: git}
}

// Run bumps the version file and then merges the changelog entry for the
// resulting version
func (uc *bumpUseCase) Run(ctx context.Context, req *model.BumpRequest) (*model.BumpReport, error) {
	logger := ctxlog.From(ctx)

	branch, err := uc.git.CurrentBranch(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get current branch")
	}
	baseRev := "origin/" + req.BaseBranch

	logger.Info("Bumping version",
		"branch", branch,
		"base_branch", req.BaseBranch,
		"version_file", req.VersionFile,
		"changelog_file", req.ChangelogFile,
	)

	version, versionWritten, err := uc.bumpVersionFile(ctx, req, branch, baseRev)
	if err != nil {
		return nil, err
	}

	changelogWritten, err := uc.mergeChangelog(ctx, req, branch, baseRev, version)
	if err != nil {
		return nil, err
	}

	return &model.BumpReport{
		Version:          version,
		VersionWritten:   versionWritten,
		ChangelogWritten: changelogWritten,
	}, nil
}

func (uc *bumpUseCase) bumpVersionFile(ctx context.Context, req *model.BumpRequest, branch, baseRev string) (model.Version, bool, error) {
	logger := ctxlog.From(ctx)
	path := filepath.Join(req.WorkDir, req.VersionFile)

	raw, err := os.ReadFile(path)
	if err != nil {
		return model.Version{}, false, goerr.Wrap(err, "failed to read version file", goerr.V("path", path))
	}
	currentText := string(raw)

	current, err := model.ExtractVersion(currentText)
	if err != nil {
		return model.Version{}, false, goerr.Wrap(err, "failed to parse version file", goerr.V("path", path))
	}

	base, err := uc.baseVersion(ctx, baseRev, req.VersionFile)
	if err != nil {
		return model.Version{}, false, err
	}

	authors, err := uc.git.Authors(ctx, branch, baseRev, req.VersionFile)
	if err != nil {
		return model.Version{}, false, goerr.Wrap(err, "failed to list version file authors")
	}

	logger.Debug("Version state", "file_version", current.String(), "base_version", base.String(), "authors", authors)

	result := model.BumpVersion(model.BumpInput{
		Current: current,
		Base:    base,
		Authors: authors,
		Title:   req.PRTitle,
		Body:    req.PRBody,
	})

	if result.Skipped {
		logger.Warn("Version already advanced by a non-bot commit, skipping version bump",
			"version", result.Version.String(),
			"base_version", base.String(),
		)
		return result.Version, false, nil
	}

	logger.Info("Tagging new version",
		"version", result.Version.String(),
		"level", result.Level,
		"source", result.Source,
	)

	newText := model.ReplaceVersion(currentText, result.Version)
	if newText == currentText {
		return result.Version, false, nil
	}
	if err := writeFile(path, newText); err != nil {
		return model.Version{}, false, err
	}
	return result.Version, true, nil
}

// baseVersion reads the version of the base branch; a base branch without
// the file starts from 0.0.0
func (uc *bumpUseCase) baseVersion(ctx context.Context, baseRev, versionFile string) (model.Version, error) {
	text, err := uc.git.Show(ctx, baseRev, gitRelative(versionFile))
	if err != nil {
		return model.Version{}, goerr.Wrap(err, "failed to read base version file")
	}
	if text == "" {
		return model.ZeroVersion, nil
	}

	v, err := model.ExtractVersion(text)
	if err != nil {
		return model.Version{}, goerr.Wrap(err, "failed to parse base version file", goerr.V("rev", baseRev))
	}
	return v, nil
}

func (uc *bumpUseCase) mergeChangelog(ctx context.Context, req *model.BumpRequest, branch, baseRev string, version model.Version) (bool, error) {
	logger := ctxlog.From(ctx)
	path := filepath.Join(req.WorkDir, req.ChangelogFile)

	authors, err := uc.git.Authors(ctx, branch, baseRev, req.ChangelogFile)
	if err != nil {
		return false, goerr.Wrap(err, "failed to list changelog authors")
	}

	humanEdited := false
	if model.HasHumanAuthor(authors) {
		humanEdited, err = uc.git.DiffersFrom(ctx, baseRev, req.ChangelogFile)
		if err != nil {
			return false, goerr.Wrap(err, "failed to compare changelog with base branch")
		}
	}

	base, err := uc.git.Show(ctx, baseRev, gitRelative(req.ChangelogFile))
	if err != nil {
		return false, goerr.Wrap(err, "failed to read base changelog")
	}

	current, err := readFileIfExists(path)
	if err != nil {
		return false, err
	}

	result, err := model.MergeChangelogEntry(model.ChangelogMergeInput{
		Base:        base,
		Current:     current,
		HumanEdited: humanEdited,
		Version:     version,
		PRBody:      req.PRBody,
		PRNumber:    req.PRNumber,
		RepoURL:     req.RepoURL,
	})
	if err != nil {
		return false, goerr.Wrap(err, "failed to merge changelog", goerr.V("path", path))
	}

	switch {
	case humanEdited:
		logger.Info("Changelog edited by a non-bot commit, leaving it as is", "path", path)
		return false, nil
	case !result.Write, result.Text == current:
		logger.Info("Changelog already up to date, skipping update", "version", version.String())
		return false, nil
	}

	if err := writeFile(path, result.Text); err != nil {
		return false, err
	}
	logger.Info("Updated changelog", "path", path, "version", version.String())
	return true, nil
}

// gitRelative makes path relative to the working directory in "rev:path"
func gitRelative(path string) string {
	return "./" + filepath.ToSlash(path)
}

func readFileIfExists(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", goerr.Wrap(err, "failed to read file", goerr.V("path", path))
	}
	return string(raw), nil
}

func writeFile(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return goerr.Wrap(err, "failed to create parent directory", goerr.V("path", path))
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return goerr.Wrap(err, "failed to write file", goerr.V("path", path))
	}
	return nil
}
