package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrUnparsableRef is returned when a ref has no path separator
	ErrUnparsableRef = goerr.New("cannot parse branch name from ref")

	// ErrUnsupportedEventKind is returned for events other than push, pull_request and release
	ErrUnsupportedEventKind = goerr.New("unsupported event name, cannot get tags")

	// ErrInvalidBuildContext is returned when required build context values are missing
	ErrInvalidBuildContext = goerr.New("invalid build context")

	// ErrChangelogMismatch is returned when a manually edited changelog does not start with the expected heading
	ErrChangelogMismatch = goerr.New("changelog heading does not match the new version")

	// ErrVersionNotFound is returned when no version literal can be extracted from a version file
	ErrVersionNotFound = goerr.New("version not found")

	// ErrFileNotFound is returned when no file matches a discovery pattern
	ErrFileNotFound = goerr.New("no file matches the pattern")

	// ErrToolFailed is returned when a lint tool exits with a fatal status
	ErrToolFailed = goerr.New("lint tool failed")
)
