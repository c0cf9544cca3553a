package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/cihelper/pkg/domain/model"
	"github.com/m-mizutani/cihelper/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestLastPathSegment(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{ref: "refs/heads/cloud-action-test", want: "cloud-action-test"},
		{ref: "refs/heads/main", want: "main"},
		{ref: "refs/tags/v1.0.0", want: "v1.0.0"},
		{ref: "refs/heads/feature/nested", want: "nested"},
		{ref: "refs/heads/", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := model.LastPathSegment(tt.ref)
			gt.NoError(t, err)
			gt.Value(t, got).Equal(tt.want)
		})
	}
}

func TestLastPathSegment_Invalid(t *testing.T) {
	for _, ref := range []string{"refs", "main", ""} {
		t.Run(ref, func(t *testing.T) {
			_, err := model.LastPathSegment(ref)
			gt.Error(t, err)
			gt.Value(t, errors.Is(err, types.ErrUnparsableRef)).Equal(true)
		})
	}
}

func TestTagSet(t *testing.T) {
	s := model.NewTagSet("latest", "main", "latest")
	s.Add("60eee9d", "main")

	gt.Value(t, len(s)).Equal(3)
	gt.Value(t, s.Has("latest")).Equal(true)
	gt.Value(t, s.Has("dev")).Equal(false)
	gt.Value(t, s.Sorted()).Equal([]string{"60eee9d", "latest", "main"})
	gt.Value(t, s.String()).Equal("60eee9d,latest,main")
}
