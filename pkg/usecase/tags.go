package usecase

import (
	"context"
	"regexp"

	"github.com/m-mizutani/cihelper/pkg/domain/interfaces"
	"github.com/m-mizutani/cihelper/pkg/domain/model"
	"github.com/m-mizutani/cihelper/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

var mainBranches = map[string]bool{"main": true, "master": true}

// DeriveTags computes the Docker image tags of a build. Only the branch for
// bc's event kind applies; other event kinds fail with ErrUnsupportedEventKind.
func DeriveTags(bc *model.BuildContext) (model.TagSet, error) {
	sha7 := bc.ShortSHA()

	switch bc.EventKind() {
	case model.EventKindPullRequest:
		to, err := model.LastPathSegment(bc.BaseRef())
		if err != nil {
			return nil, goerr.Wrap(err, "failed to parse base ref")
		}
		from, err := model.LastPathSegment(bc.HeadRef())
		if err != nil {
			return nil, goerr.Wrap(err, "failed to parse head ref")
		}
		return model.NewTagSet(bc.Prefix()+"."+sha7, bc.Prefix()+"."+from+"."+to), nil

	case model.EventKindRelease:
		ref, err := model.LastPathSegment(bc.Ref())
		if err != nil {
			return nil, goerr.Wrap(err, "failed to parse release ref")
		}
		return model.NewTagSet("release."+sha7, "release."+ref), nil

	case model.EventKindPush:
		ref, err := model.LastPathSegment(bc.Ref())
		if err != nil {
			return nil, goerr.Wrap(err, "failed to parse push ref")
		}
		if mainBranches[ref] {
			return model.NewTagSet(sha7, "latest", ref), nil
		}
		return model.NewTagSet(bc.Prefix()+"."+sha7, bc.Prefix()+"."+ref), nil

	default:
		return nil, goerr.Wrap(types.ErrUnsupportedEventKind, "cannot derive tags",
			goerr.V("event_name", string(bc.EventKind())))
	}
}

var prReferenceRe = regexp.MustCompile(`#(\d+)`)

// GetPRNumber returns the pull request number of a build: the event number
// for pull_request events, the first "#<digits>" of the head commit message
// for push events. It returns false when there is none.
func GetPRNumber(bc *model.BuildContext) (string, bool) {
	switch bc.EventKind() {
	case model.EventKindPullRequest:
		return bc.EventNumber(), bc.EventNumber() != ""
	case model.EventKindPush:
		m := prReferenceRe.FindStringSubmatch(bc.HeadCommitMessage())
		if m == nil {
			return "", false
		}
		return m[1], true
	default:
		return "", false
	}
}

type tagsUseCase struct {
	tracker interfaces.IssueTracker
}

// NewTags creates a TagsUseCase. tracker may be nil, which disables issue
// tracker enrichment.
func NewTags(tracker interfaces.IssueTracker) interfaces.TagsUseCase {
	return &tagsUseCase{tracker: tracker}
}

// GenerateTags derives tags and adds "sc-<id>" for Shortcut stories linked
// to the build's pull request
func (uc *tagsUseCase) GenerateTags(ctx context.Context, bc *model.BuildContext) (model.TagSet, error) {
	logger := ctxlog.From(ctx)

	tags, err := DeriveTags(bc)
	if err != nil {
		return nil, err
	}

	prNumber, ok := GetPRNumber(bc)
	if !ok || !bc.HasShortcutToken() || uc.tracker == nil {
		logger.Debug("Skipping issue tracker enrichment",
			"pr_number", prNumber,
			"has_token", bc.HasShortcutToken(),
		)
		return tags, nil
	}

	for _, id := range ResolveIssueIDs(ctx, uc.tracker, bc, prNumber) {
		tags.Add("sc-" + id)
	}

	return tags, nil
}

// ResolveIssueIDs returns the ids of stories linked to the pull request. It
// never fails: tracker errors are logged and yield no ids.
func ResolveIssueIDs(ctx context.Context, tracker interfaces.IssueTracker, bc *model.BuildContext, prNumber string) []string {
	logger := ctxlog.From(ctx)
	prURL := bc.PullRequestURL(prNumber)

	ids, err := tracker.SearchStoryIDs(ctx, prURL)
	if err != nil {
		logger.Warn("Failed to resolve Shortcut stories, continuing without them",
			"pr_url", prURL,
			"error", err,
		)
		return nil
	}

	logger.Info("Resolved Shortcut stories", "pr_url", prURL, "story_ids", ids)
	return ids
}
