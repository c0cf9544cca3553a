package interfaces

import "context"

// Git defines the git queries used by the version bumper and lint runner
type Git interface {
	// CurrentBranch returns the abbreviated name of HEAD
	CurrentBranch(ctx context.Context) (string, error)

	// Authors returns author names of commits on branch but not on base that touch path
	Authors(ctx context.Context, branch, base, path string) ([]string, error)

	// Show returns the content of path at rev, or "" when it does not exist there
	Show(ctx context.Context, rev, path string) (string, error)

	// DiffersFrom reports whether path differs from rev, ignoring whitespace and blank lines
	DiffersFrom(ctx context.Context, rev, path string) (bool, error)

	// ChangedFiles returns files modified, added or copied relative to rev
	ChangedFiles(ctx context.Context, rev string) ([]string, error)
}
