package model

import (
	"strings"

	"github.com/m-mizutani/cihelper/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// EventKind represents the GitHub Actions event that triggered the workflow
type EventKind string

const (
	EventKindPush        EventKind = "push"
	EventKindPullRequest EventKind = "pull_request"
	EventKindRelease     EventKind = "release"
)

// IsSupported checks if tags can be derived for the event kind
func (k EventKind) IsSupported() bool {
	switch k {
	case EventKindPush, EventKindPullRequest, EventKindRelease:
		return true
	default:
		return false
	}
}

// DefaultTagPrefix is used for development tags when no prefix is configured
const DefaultTagPrefix = "dev"

// BuildContextInput holds raw values read from the workflow environment
type BuildContextInput struct {
	EventName         string
	SHA               string
	Ref               string
	HeadRef           string
	BaseRef           string
	ServerURL         string
	Repository        string
	EventNumber       string
	Prefix            string
	HeadCommitMessage string
	ShortcutToken     string `masq:"secret"`
}

// BuildContext is the validated, read-only snapshot of a build event
type BuildContext struct {
	eventKind         EventKind
	commitSHA         string
	ref               string
	headRef           string
	baseRef           string
	serverURL         string
	repository        string
	eventNumber       string
	prefix            string
	headCommitMessage string
	shortcutToken     string
}

// NewBuildContext validates input and returns a BuildContext. All missing or
// invalid fields are reported together in a single error.
func NewBuildContext(in BuildContextInput) (*BuildContext, error) {
	var missing []string
	require := func(name, value string) {
		if value == "" {
			missing = append(missing, name)
		}
	}

	require("event_name", in.EventName)
	require("server_url", in.ServerURL)
	require("repository", in.Repository)
	if len(in.SHA) < 7 {
		missing = append(missing, "sha")
	}

	switch EventKind(in.EventName) {
	case EventKindPullRequest:
		require("head_ref", in.HeadRef)
		require("base_ref", in.BaseRef)
	case EventKindPush, EventKindRelease:
		require("ref", in.Ref)
	}

	if len(missing) > 0 {
		return nil, goerr.Wrap(types.ErrInvalidBuildContext, "missing or invalid build context values: "+strings.Join(missing, ", "),
			goerr.V("fields", missing),
			goerr.V("event_name", in.EventName),
		)
	}

	prefix := in.Prefix
	if prefix == "" {
		prefix = DefaultTagPrefix
	}

	return &BuildContext{
		eventKind:         EventKind(in.EventName),
		commitSHA:         in.SHA,
		ref:               in.Ref,
		headRef:           in.HeadRef,
		baseRef:           in.BaseRef,
		serverURL:         in.ServerURL,
		repository:        in.Repository,
		eventNumber:       in.EventNumber,
		prefix:            prefix,
		headCommitMessage: in.HeadCommitMessage,
		shortcutToken:     in.ShortcutToken,
	}, nil
}

func (c *BuildContext) EventKind() EventKind { return c.eventKind }
func (c *BuildContext) CommitSHA() string { return c.commitSHA }
func (c *BuildContext) Ref() string { return c.ref }
func (c *BuildContext) HeadRef() string { return c.headRef }
func (c *BuildContext) BaseRef() string { return c.baseRef }
func (c *BuildContext) ServerURL() string { return c.serverURL }
func (c *BuildContext) Repository() string { return c.repository }
func (c *BuildContext) EventNumber() string { return c.eventNumber }
func (c *BuildContext) Prefix() string { return c.prefix }
func (c *BuildContext) HeadCommitMessage() string { return c.headCommitMessage }
func (c *BuildContext) ShortcutToken() string { return c.shortcutToken }
func (c *BuildContext) HasShortcutToken() bool { return c.shortcutToken != "" }

// ShortSHA returns the first 7 characters of the commit SHA
func (c *BuildContext) ShortSHA() string {
	return c.commitSHA[:7]
}

// PullRequestURL returns the web URL of the given pull request number
func (c *BuildContext) PullRequestURL(number string) string {
	return c.serverURL + "/" + c.repository + "/pull/" + number
}
