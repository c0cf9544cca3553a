package git_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/cihelper/pkg/domain/model"
	"github.com/m-mizutani/cihelper/pkg/infra/git"
	"github.com/m-mizutani/gt"
)

type call struct {
	Name string
	Args []string
}

// mockRunner returns canned results and records invocations
type mockRunner struct {
	result *model.CommandResult
	err    error
	calls  []call
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) (*model.CommandResult, error) {
	m.calls = append(m.calls, call{Name: name, Args: args})
	return m.result, m.err
}

func TestClient_CurrentBranch(t *testing.T) {
	runner := &mockRunner{result: &model.CommandResult{Stdout: []byte("feature/x\n")}}
	branch, err := git.NewClient(runner).CurrentBranch(context.Background())
	gt.NoError(t, err)
	gt.Value(t, branch).Equal("feature/x")
	gt.Value(t, runner.calls[0].Args).Equal([]string{"rev-parse", "--abbrev-ref", "HEAD"})
}

func TestClient_Authors(t *testing.T) {
	runner := &mockRunner{result: &model.CommandResult{Stdout: []byte("Jane Doe\ngithub-actions[bot]\n\nJane Doe")}}
	authors, err := git.NewClient(runner).Authors(context.Background(), "feature", "origin/main", "pkg/_version.py")
	gt.NoError(t, err)
	gt.Value(t, authors).Equal([]string{"Jane Doe", "github-actions[bot]", "Jane Doe"})
	gt.Value(t, runner.calls[0].Args).Equal([]string{
		"log", "feature", "--not", "origin/main", "--pretty=format:%an", "--", "pkg/_version.py",
	})
}

func TestClient_Show(t *testing.T) {
	t.Run("existing file", func(t *testing.T) {
		runner := &mockRunner{result: &model.CommandResult{Stdout: []byte(`__version__ = "1.2.3"`)}}
		text, err := git.NewClient(runner).Show(context.Background(), "origin/main", "_version.py")
		gt.NoError(t, err)
		gt.Value(t, text).Equal(`__version__ = "1.2.3"`)
		gt.Value(t, runner.calls[0].Args).Equal([]string{"show", "origin/main:_version.py"})
	})

	t.Run("missing file", func(t *testing.T) {
		runner := &mockRunner{result: &model.CommandResult{ExitCode: 128}}
		text, err := git.NewClient(runner).Show(context.Background(), "origin/main", "_version.py")
		gt.NoError(t, err)
		gt.Value(t, text).Equal("")
	})

	t.Run("runner failure", func(t *testing.T) {
		runner := &mockRunner{err: errors.New("no git")}
		_, err := git.NewClient(runner).Show(context.Background(), "origin/main", "_version.py")
		gt.Error(t, err)
	})
}

func TestClient_DiffersFrom(t *testing.T) {
	tests := []struct {
		name     string
		exitCode int
		want     bool
		wantErr  bool
	}{
		{name: "same content", exitCode: 0, want: false},
		{name: "different content", exitCode: 1, want: true},
		{name: "git error", exitCode: 128, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &mockRunner{result: &model.CommandResult{ExitCode: tt.exitCode}}
			got, err := git.NewClient(runner).DiffersFrom(context.Background(), "origin/main", "CHANGELOG.md")
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.Value(t, got).Equal(tt.want)
			gt.Value(t, runner.calls[0].Args).Equal([]string{
				"diff", "--ignore-blank-lines", "-w", "-s", "--exit-code", "origin/main", "--", "CHANGELOG.md",
			})
		})
	}
}

func TestClient_ChangedFiles(t *testing.T) {
	runner := &mockRunner{result: &model.CommandResult{Stdout: []byte("a.py\nREADME.md\npkg/b.py\n")}}
	files, err := git.NewClient(runner).ChangedFiles(context.Background(), "origin/main")
	gt.NoError(t, err)
	gt.Value(t, files).Equal([]string{"a.py", "README.md", "pkg/b.py"})
	gt.Value(t, runner.calls[0].Args).Equal([]string{"diff", "origin/main", "--diff-filter=MAC", "--name-only"})
}
