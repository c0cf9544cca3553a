package interfaces

import "context"

// IssueTracker searches stories linked to a pull request
type IssueTracker interface {
	// SearchStoryIDs returns ids of stories referencing prURL
	SearchStoryIDs(ctx context.Context, prURL string) ([]string, error)
}
