package model

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/m-mizutani/cihelper/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/mod/semver"
)

// BumpLevel selects which version component to increment
type BumpLevel string

const (
	BumpMajor BumpLevel = "MAJOR"
	BumpMinor BumpLevel = "MINOR"
	BumpPatch BumpLevel = "PATCH"
)

// Version is a semantic version triple. LeadingV records whether the source
// text displayed it as "v1.2.3".
type Version struct {
	Major    int
	Minor    int
	Patch    int
	LeadingV bool
}

// ZeroVersion is assumed when the base branch has no version file yet
var ZeroVersion = Version{}

var versionCoreRe = regexp.MustCompile(`^(v?)(\d+)\.(\d+)\.(\d+)$`)

// ParseVersion parses "1.2.3" or "v1.2.3"
func ParseVersion(s string) (Version, error) {
	m := versionCoreRe.FindStringSubmatch(s)
	if m == nil {
		return Version{}, goerr.Wrap(types.ErrVersionNotFound, "invalid semantic version", goerr.V("version", s))
	}

	var nums [3]int
	for i := range nums {
		n, err := strconv.Atoi(m[i+2])
		if err != nil {
			return Version{}, goerr.Wrap(err, "invalid version component", goerr.V("version", s))
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2], LeadingV: m[1] == "v"}, nil
}

// Core returns "major.minor.patch" without the leading "v"
func (v Version) Core() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// String returns the version as displayed in its source
func (v Version) String() string {
	if v.LeadingV {
		return "v" + v.Core()
	}
	return v.Core()
}

// Compare returns -1, 0 or +1 comparing major, then minor, then patch.
// The display flag is ignored.
func (v Version) Compare(other Version) int {
	return semver.Compare("v"+v.Core(), "v"+other.Core())
}

// Less reports whether v orders before other
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// Bump increments the selected component and resets lower components
func (v Version) Bump(level BumpLevel) Version {
	switch level {
	case BumpMajor:
		return Version{Major: v.Major + 1, LeadingV: v.LeadingV}
	case BumpMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1, LeadingV: v.LeadingV}
	default:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1, LeadingV: v.LeadingV}
	}
}

// WithLeadingV returns a copy of v with the display flag set to leadingV
func (v Version) WithLeadingV(leadingV bool) Version {
	v.LeadingV = leadingV
	return v
}

var versionAssignRe = regexp.MustCompile(`__version__\s*=\s*["'](v?\d+\.\d+\.\d+)["']`)

// ExtractVersion finds the `__version__ = "x.y.z"` assignment in a version file
func ExtractVersion(text string) (Version, error) {
	m := versionAssignRe.FindStringSubmatch(text)
	if m == nil {
		return Version{}, goerr.Wrap(types.ErrVersionNotFound, "no __version__ assignment in version file")
	}
	return ParseVersion(m[1])
}

// ReplaceVersion rewrites the version literal of the first `__version__`
// assignment, keeping quoting and surrounding text intact. Text without an
// assignment gets a fresh one.
func ReplaceVersion(text string, v Version) string {
	loc := versionAssignRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return fmt.Sprintf("__version__ = \"%s\"\n", v)
	}
	return text[:loc[2]] + v.String() + text[loc[3]:]
}
