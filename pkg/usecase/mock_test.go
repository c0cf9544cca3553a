package usecase_test

import (
	"context"
	"errors"

	"github.com/m-mizutani/cihelper/pkg/domain/model"
)

// mockGit is a mock implementation of interfaces.Git keyed by path
type mockGit struct {
	branch  string
	authors map[string][]string // path -> authors
	shows   map[string]string   // "rev:path" -> content
	differs map[string]bool     // path -> differs from base
	changed []string

	showCalls []string
}

func (m *mockGit) CurrentBranch(ctx context.Context) (string, error) {
	if m.branch == "" {
		return "feature", nil
	}
	return m.branch, nil
}

func (m *mockGit) Authors(ctx context.Context, branch, base, path string) ([]string, error) {
	return m.authors[path], nil
}

func (m *mockGit) Show(ctx context.Context, rev, path string) (string, error) {
	m.showCalls = append(m.showCalls, rev+":"+path)
	return m.shows[rev+":"+path], nil
}

func (m *mockGit) DiffersFrom(ctx context.Context, rev, path string) (bool, error) {
	return m.differs[path], nil
}

func (m *mockGit) ChangedFiles(ctx context.Context, rev string) ([]string, error) {
	return m.changed, nil
}

type runCall struct {
	Name string
	Args []string
}

// mockRunner returns exit codes per command name
type mockRunner struct {
	exitCodes map[string]int
	calls     []runCall
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) (*model.CommandResult, error) {
	m.calls = append(m.calls, runCall{Name: name, Args: args})
	return &model.CommandResult{ExitCode: m.exitCodes[name]}, nil
}

// mockTracker is a mock implementation of interfaces.IssueTracker
type mockTracker struct {
	ids   []string
	err   error
	calls []string
}

func (m *mockTracker) SearchStoryIDs(ctx context.Context, prURL string) ([]string, error) {
	m.calls = append(m.calls, prURL)
	return m.ids, m.err
}

// mockGitHubClient is a mock implementation of interfaces.GitHubClient
type mockGitHubClient struct {
	comments []model.PRComment
	created  []string
	edited   map[int64]string

	artifacts     []model.Artifact
	downloadFunc  func(id int64, attempt int) ([]byte, error)
	downloadCalls map[int64]int
}

func (m *mockGitHubClient) ListIssueComments(ctx context.Context, owner, repo string, number int) ([]model.PRComment, error) {
	return m.comments, nil
}

func (m *mockGitHubClient) CreateIssueComment(ctx context.Context, owner, repo string, number int, body string) error {
	m.created = append(m.created, body)
	return nil
}

func (m *mockGitHubClient) EditIssueComment(ctx context.Context, owner, repo string, commentID int64, body string) error {
	if m.edited == nil {
		m.edited = map[int64]string{}
	}
	m.edited[commentID] = body
	return nil
}

func (m *mockGitHubClient) ListRunArtifacts(ctx context.Context, owner, repo string, runID int64) ([]model.Artifact, error) {
	return m.artifacts, nil
}

func (m *mockGitHubClient) DownloadArtifact(ctx context.Context, owner, repo string, artifactID int64) ([]byte, error) {
	if m.downloadCalls == nil {
		m.downloadCalls = map[int64]int{}
	}
	m.downloadCalls[artifactID]++
	if m.downloadFunc == nil {
		return nil, errors.New("mock not configured")
	}
	return m.downloadFunc(artifactID, m.downloadCalls[artifactID])
}
