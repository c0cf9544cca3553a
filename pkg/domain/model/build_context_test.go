package model_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/cihelper/pkg/domain/model"
	"github.com/m-mizutani/cihelper/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestNewBuildContext(t *testing.T) {
	bc, err := model.NewBuildContext(model.BuildContextInput{
		EventName:  "push",
		SHA:        "60eee9dd65ab5ef964f540328dd04e5e7f5eab95",
		Ref:        "refs/heads/main",
		ServerURL:  "https://github.com",
		Repository: "org/repo",
	})
	gt.NoError(t, err)
	gt.Value(t, bc.EventKind()).Equal(model.EventKindPush)
	gt.Value(t, bc.ShortSHA()).Equal("60eee9d")
	gt.Value(t, bc.Prefix()).Equal(model.DefaultTagPrefix)
	gt.Value(t, bc.HasShortcutToken()).Equal(false)
	gt.Value(t, bc.PullRequestURL("5")).Equal("https://github.com/org/repo/pull/5")
}

func TestNewBuildContext_ReportsAllMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		input model.BuildContextInput
		want  []string
	}{
		{
			name:  "empty input",
			input: model.BuildContextInput{},
			want:  []string{"event_name", "server_url", "repository", "sha"},
		},
		{
			name: "pull request without refs",
			input: model.BuildContextInput{
				EventName: "pull_request", SHA: "60eee9dd", ServerURL: "s", Repository: "r",
			},
			want: []string{"head_ref", "base_ref"},
		},
		{
			name: "release without ref and short sha",
			input: model.BuildContextInput{
				EventName: "release", SHA: "60ee", ServerURL: "s", Repository: "r",
			},
			want: []string{"sha", "ref"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bc, err := model.NewBuildContext(tt.input)
			gt.Error(t, err)
			gt.Value(t, bc).Nil()
			gt.Value(t, errors.Is(err, types.ErrInvalidBuildContext)).Equal(true)

			gt.String(t, err.Error()).Contains(strings.Join(tt.want, ", "))
		})
	}
}

func TestEventKind_IsSupported(t *testing.T) {
	gt.Value(t, model.EventKindPush.IsSupported()).Equal(true)
	gt.Value(t, model.EventKindPullRequest.IsSupported()).Equal(true)
	gt.Value(t, model.EventKindRelease.IsSupported()).Equal(true)
	gt.Value(t, model.EventKind("workflow_dispatch").IsSupported()).Equal(false)
}
