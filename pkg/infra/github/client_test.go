package github_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/cihelper/pkg/domain/interfaces"
	githubinfra "github.com/m-mizutani/cihelper/pkg/infra/github"
)

func newTestClient(t *testing.T, mux *http.ServeMux) (interfaces.GitHubClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := githubinfra.NewClientWithHTTPClient(server.Client(), server.URL, "test-token")
	gt.NoError(t, err)
	return client, server
}

func TestClient_ListIssueComments_Pagination(t *testing.T) {
	mux := http.NewServeMux()
	var server *httptest.Server
	mux.HandleFunc("/repos/owner/repo/issues/7/comments", func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.Header.Get("Authorization")).Equal("Bearer test-token")
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "2" {
			_, _ = w.Write([]byte(`[{"id":3,"body":"third","user":{"id":41898282}}]`))
			return
		}
		w.Header().Set("Link", `<`+server.URL+`/repos/owner/repo/issues/7/comments?page=2>; rel="next"`)
		_, _ = w.Write([]byte(`[{"id":1,"body":"first","user":{"id":1}},{"id":2,"body":"second","user":{"id":2}}]`))
	})

	client, s := newTestClient(t, mux)
	server = s

	comments, err := client.ListIssueComments(context.Background(), "owner", "repo", 7)
	gt.NoError(t, err)
	gt.Value(t, len(comments)).Equal(3)
	gt.Value(t, comments[2].ID).Equal(int64(3))
	gt.Value(t, comments[2].AuthorID).Equal(int64(41898282))
	gt.Value(t, comments[0].Body).Equal("first")
}

func TestClient_CreateAndEditIssueComment(t *testing.T) {
	var created, edited string
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/repo/issues/7/comments", func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.Method).Equal(http.MethodPost)
		var body map[string]string
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		created = body["body"]
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":10}`))
	})
	mux.HandleFunc("/repos/owner/repo/issues/comments/10", func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.Method).Equal(http.MethodPatch)
		var body map[string]string
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		edited = body["body"]
		_, _ = w.Write([]byte(`{"id":10}`))
	})

	client, _ := newTestClient(t, mux)
	ctx := context.Background()

	gt.NoError(t, client.CreateIssueComment(ctx, "owner", "repo", 7, "hello"))
	gt.NoError(t, client.EditIssueComment(ctx, "owner", "repo", 10, "updated"))
	gt.Value(t, created).Equal("hello")
	gt.Value(t, edited).Equal("updated")
}

func TestClient_DownloadArtifact(t *testing.T) {
	mux := http.NewServeMux()
	var server *httptest.Server
	mux.HandleFunc("/repos/owner/repo/actions/runs/99/artifacts", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total_count":2,"artifacts":[{"id":5,"name":"coverage"},{"id":6,"name":"wheel"}]}`))
	})
	mux.HandleFunc("/repos/owner/repo/actions/artifacts/5/zip", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, server.URL+"/blob/5", http.StatusFound)
	})
	mux.HandleFunc("/blob/5", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "zip-bytes")
	})

	client, s := newTestClient(t, mux)
	server = s
	ctx := context.Background()

	artifacts, err := client.ListRunArtifacts(ctx, "owner", "repo", 99)
	gt.NoError(t, err)
	gt.Value(t, len(artifacts)).Equal(2)
	gt.Value(t, artifacts[1].Name).Equal("wheel")

	data, err := client.DownloadArtifact(ctx, "owner", "repo", 5)
	gt.NoError(t, err)
	gt.Value(t, string(data)).Equal("zip-bytes")
}

func TestClient_DownloadArtifact_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/repo/actions/artifacts/5/zip", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"Not Found"}`)
	})

	client, _ := newTestClient(t, mux)
	_, err := client.DownloadArtifact(context.Background(), "owner", "repo", 5)
	gt.Error(t, err)
	gt.Value(t, strings.Contains(err.Error(), "artifact download URL")).Equal(true)
}
