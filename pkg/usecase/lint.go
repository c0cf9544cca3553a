package usecase

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/cihelper/pkg/domain/interfaces"
	"github.com/m-mizutani/cihelper/pkg/domain/model"
	"github.com/m-mizutani/cihelper/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// LintIgnoreFile lists paths excluded from linting, relative to the work dir
const LintIgnoreFile = ".lintignore"

type lintUseCase struct {
	git     interfaces.Git
	runner  interfaces.CommandRunner
	tools   []model.LintTool
	workDir string
	out     io.Writer
}

// NewLint creates a LintUseCase running tools in workDir. Stage banners are
// written to out.
func NewLint(git interfaces.Git, runner interfaces.CommandRunner, tools []model.LintTool, workDir string, out io.Writer) interfaces.LintUseCase {
	return &lintUseCase{
		git:     git,
		runner:  runner,
		tools:   tools,
		workDir: workDir,
		out:     out,
	}
}

// Run lints the Python files changed against origin/<baseBranch>
func (uc *lintUseCase) Run(ctx context.Context, baseBranch string) error {
	logger := ctxlog.From(ctx)

	targets, err := uc.targets(ctx, "origin/"+baseBranch)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		logger.Info("No changed Python files to lint", "base_branch", baseBranch)
		return nil
	}

	logger.Info("Linting changed files", "count", len(targets))
	banner := color.New(color.FgCyan, color.Bold)

	for _, tool := range uc.tools {
		banner.Fprintf(uc.out, "Running %s...\n", tool.Name)

		args := append(append([]string{}, tool.Args...), targets...)
		result, err := uc.runner.Run(ctx, tool.Command, args...)
		if err != nil {
			return goerr.Wrap(err, "failed to start lint tool", goerr.V("tool", tool.Name))
		}

		switch {
		case result.ExitCode == 0:
		case tool.Tolerates(result.ExitCode):
			logger.Warn("Lint tool exited with tolerated status", "tool", tool.Name, "exit_code", result.ExitCode)
		case tool.Fatal:
			return goerr.Wrap(types.ErrToolFailed, "lint tool reported problems",
				goerr.V("tool", tool.Name),
				goerr.V("exit_code", result.ExitCode),
			)
		default:
			logger.Warn("Lint tool exited with non-zero status", "tool", tool.Name, "exit_code", result.ExitCode)
		}
	}

	return nil
}

// targets returns changed .py files as absolute paths, minus ignored ones
func (uc *lintUseCase) targets(ctx context.Context, rev string) ([]string, error) {
	changed, err := uc.git.ChangedFiles(ctx, rev)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list changed files")
	}

	ignored, err := uc.ignoredPaths()
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var targets []string
	for _, f := range changed {
		if filepath.Ext(f) != ".py" {
			continue
		}
		abs := uc.abs(f)
		if seen[abs] || isIgnored(abs, ignored) {
			continue
		}
		seen[abs] = true
		targets = append(targets, abs)
	}

	sort.Strings(targets)
	return targets, nil
}

func (uc *lintUseCase) ignoredPaths() ([]string, error) {
	raw, err := os.ReadFile(filepath.Join(uc.workDir, LintIgnoreFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read lint ignore file")
	}

	var paths []string
	for _, p := range strings.Fields(string(raw)) {
		paths = append(paths, uc.abs(p))
	}
	return paths, nil
}

func (uc *lintUseCase) abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(uc.workDir, path)
}

// isIgnored matches path against ignored files and, recursively, directories
func isIgnored(path string, ignored []string) bool {
	for _, ig := range ignored {
		if path == ig || strings.HasPrefix(path, ig+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
