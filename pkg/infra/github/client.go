package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/cihelper/pkg/domain/interfaces"
	"github.com/m-mizutani/cihelper/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

const (
	perPage      = 100
	maxRedirects = 3
)

type client struct {
	githubClient *github.Client
	httpClient   *http.Client // fetches pre-signed artifact URLs without GitHub auth
}

// NewClient creates a new GitHub client authenticated with a token. API
// calls wait out secondary rate limits instead of failing.
func NewClient(token string) interfaces.GitHubClient {
	rateLimitClient := github_ratelimit.NewClient(http.DefaultTransport)
	return &client{
		githubClient: github.NewClient(rateLimitClient).WithAuthToken(token),
		httpClient:   http.DefaultClient,
	}
}

// NewClientWithHTTPClient creates a client against baseURL. It is intended
// for tests with an httptest server and for GitHub Enterprise.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, token string) (interfaces.GitHubClient, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse GitHub base URL", goerr.V("base_url", baseURL))
	}

	gh := github.NewClient(httpClient)
	if token != "" {
		gh = gh.WithAuthToken(token)
	}
	gh.BaseURL = u

	return &client{githubClient: gh, httpClient: httpClient}, nil
}

// ListIssueComments returns all comments, following pagination
func (c *client) ListIssueComments(ctx context.Context, owner, repo string, number int) ([]model.PRComment, error) {
	var comments []model.PRComment
	opts := &github.IssueListCommentsOptions{ListOptions: github.ListOptions{PerPage: perPage}}

	for {
		page, resp, err := c.githubClient.Issues.ListComments(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list issue comments",
				goerr.V("owner", owner), goerr.V("repo", repo), goerr.V("number", number))
		}

		for _, ic := range page {
			comments = append(comments, model.PRComment{
				ID:       ic.GetID(),
				AuthorID: ic.GetUser().GetID(),
				Body:     ic.GetBody(),
			})
		}

		if resp.NextPage == 0 {
			return comments, nil
		}
		opts.Page = resp.NextPage
	}
}

// CreateIssueComment creates a comment on a pull request or issue
func (c *client) CreateIssueComment(ctx context.Context, owner, repo string, number int, body string) error {
	_, _, err := c.githubClient.Issues.CreateComment(ctx, owner, repo, number, &github.IssueComment{
		Body: github.Ptr(body),
	})
	if err != nil {
		return goerr.Wrap(err, "failed to create comment",
			goerr.V("owner", owner), goerr.V("repo", repo), goerr.V("number", number))
	}
	return nil
}

// EditIssueComment replaces the body of a comment
func (c *client) EditIssueComment(ctx context.Context, owner, repo string, commentID int64, body string) error {
	_, _, err := c.githubClient.Issues.EditComment(ctx, owner, repo, commentID, &github.IssueComment{
		Body: github.Ptr(body),
	})
	if err != nil {
		return goerr.Wrap(err, "failed to edit comment",
			goerr.V("owner", owner), goerr.V("repo", repo), goerr.V("comment_id", commentID))
	}
	return nil
}

// ListRunArtifacts returns all artifacts of a workflow run, following pagination
func (c *client) ListRunArtifacts(ctx context.Context, owner, repo string, runID int64) ([]model.Artifact, error) {
	var artifacts []model.Artifact
	opts := &github.ListOptions{PerPage: perPage}

	for {
		list, resp, err := c.githubClient.Actions.ListWorkflowRunArtifacts(ctx, owner, repo, runID, opts)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list workflow run artifacts",
				goerr.V("owner", owner), goerr.V("repo", repo), goerr.V("run_id", runID))
		}

		for _, a := range list.Artifacts {
			artifacts = append(artifacts, model.Artifact{ID: a.GetID(), Name: a.GetName()})
		}

		if resp.NextPage == 0 {
			return artifacts, nil
		}
		opts.Page = resp.NextPage
	}
}

// DownloadArtifact resolves the artifact's archive URL and downloads the zip
func (c *client) DownloadArtifact(ctx context.Context, owner, repo string, artifactID int64) ([]byte, error) {
	archiveURL, _, err := c.githubClient.Actions.DownloadArtifact(ctx, owner, repo, artifactID, maxRedirects)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get artifact download URL",
			goerr.V("owner", owner), goerr.V("repo", repo), goerr.V("artifact_id", artifactID))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL.String(), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create download request", goerr.V("url", archiveURL.String()))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to download artifact", goerr.V("artifact_id", artifactID))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New(fmt.Sprintf("unexpected status code %d", resp.StatusCode),
			goerr.V("artifact_id", artifactID))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read artifact body")
	}
	return data, nil
}
