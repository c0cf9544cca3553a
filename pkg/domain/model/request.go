package model

// BumpRequest holds the inputs of a version bump run
type BumpRequest struct {
	BaseBranch    string
	VersionFile   string // path relative to WorkDir
	ChangelogFile string // path relative to WorkDir
	WorkDir       string
	PRTitle       string
	PRBody        string
	PRNumber      string
	RepoURL       string
}

// BumpReport summarizes a version bump run
type BumpReport struct {
	Version          Version
	VersionWritten   bool
	ChangelogWritten bool
}

// CommentRequest identifies the comment to create or update
type CommentRequest struct {
	Owner    string
	Repo     string
	PRNumber int
	UID      string
	Body     string
}

// DownloadRequest selects the artifacts of a workflow run to download
type DownloadRequest struct {
	Owner     string
	Repo      string
	RunID     int64
	NameRegex string
	Dir       string
	MaxRetry  int
	Extract   bool // unpack each zip into Dir/<name>/
}
