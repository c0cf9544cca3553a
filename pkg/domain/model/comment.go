package model

import "strings"

// ActionsBotUserID is the static user id of the github-actions bot
const ActionsBotUserID int64 = 41898282

// PRComment is a pull request comment as seen by the upsert logic
type PRComment struct {
	ID       int64
	AuthorID int64
	Body     string
}

// CommentHeader is the hidden marker identifying comments of one kind
func CommentHeader(uid string) string {
	return "<!-- " + uid + " -->"
}

// CommentContent appends the hidden marker to body
func CommentContent(body, uid string) string {
	return body + "\n" + CommentHeader(uid)
}

// IsOwnedComment reports whether c was posted by the actions bot with the marker of uid
func IsOwnedComment(c PRComment, uid string) bool {
	return c.AuthorID == ActionsBotUserID && strings.HasSuffix(strings.TrimSpace(c.Body), CommentHeader(uid))
}
