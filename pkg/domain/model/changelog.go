package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/m-mizutani/cihelper/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// DescriptionStartMarker opens the description section of the pull request template
	DescriptionStartMarker = "**Description of the Change:**"
	// DescriptionEndMarker closes the description section of the pull request template
	DescriptionEndMarker = "**Version information (please select exactly one):**"

	headingPrefix = "# "
)

// ChangelogEntry is one "# <heading>" section of a changelog
type ChangelogEntry struct {
	Version string // heading text after "# "
	line    string // raw heading line including its line break
	Body    string // text up to the next heading, verbatim
}

// Heading returns the heading line of the entry. Entries built by
// ParseChangelog keep their original line.
func (e ChangelogEntry) Heading() string {
	if e.line != "" {
		return e.line
	}
	return headingPrefix + e.Version + "\n"
}

func (e ChangelogEntry) version() (Version, bool) {
	v, err := ParseVersion(e.Version)
	return v, err == nil
}

// ChangelogDocument is a changelog split into the text before the first
// heading and one entry per "# " heading. Headings that are not semantic
// versions, like "# Changelog" or "# Unreleased", are entries too.
type ChangelogDocument struct {
	Preamble string
	Entries  []ChangelogEntry
}

// ParseChangelog splits text on "# " heading lines. Deeper headings ("## ")
// belong to the entry above them.
func ParseChangelog(text string) *ChangelogDocument {
	doc := &ChangelogDocument{}
	var current *ChangelogEntry

	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		if version, ok := headingVersion(line); ok {
			doc.Entries = append(doc.Entries, ChangelogEntry{Version: version, line: line})
			current = &doc.Entries[len(doc.Entries)-1]
			continue
		}
		if current == nil {
			doc.Preamble += line
		} else {
			current.Body += line
		}
	}

	return doc
}

func headingVersion(line string) (string, bool) {
	trimmed := strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(trimmed, headingPrefix) {
		return "", false
	}
	return strings.TrimSpace(trimmed[len(headingPrefix):]), true
}

// Has reports whether a heading for version exists
func (d *ChangelogDocument) Has(version string) bool {
	for _, e := range d.Entries {
		if e.Version == version {
			return true
		}
	}
	return false
}

// Add inserts an entry ahead of the first version entry. Non-version
// headings above it, such as a title, stay on top.
func (d *ChangelogDocument) Add(version, body string) {
	at := len(d.Entries)
	for i, e := range d.Entries {
		if _, ok := e.version(); ok {
			at = i
			break
		}
	}

	entry := ChangelogEntry{Version: version, Body: body}
	d.Entries = append(d.Entries[:at], append([]ChangelogEntry{entry}, d.Entries[at:]...)...)
}

// Render serializes the document. Version entries are ordered newest first
// among the positions held by version entries; every other heading keeps
// its position.
func (d *ChangelogDocument) Render() string {
	var (
		slots    []int
		versions []ChangelogEntry
	)
	for i, e := range d.Entries {
		if _, ok := e.version(); ok {
			slots = append(slots, i)
			versions = append(versions, e)
		}
	}

	sort.SliceStable(versions, func(i, j int) bool {
		vi, _ := versions[i].version()
		vj, _ := versions[j].version()
		return vj.Less(vi)
	})

	entries := make([]ChangelogEntry, len(d.Entries))
	copy(entries, d.Entries)
	for i, slot := range slots {
		entries[slot] = versions[i]
	}

	var sb strings.Builder
	sb.WriteString(d.Preamble)
	for _, e := range entries {
		if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") {
			sb.WriteString("\n")
		}
		sb.WriteString(e.Heading())
		sb.WriteString(e.Body)
	}
	return sb.String()
}

// ExtractDescription returns the trimmed text between DescriptionStartMarker
// and DescriptionEndMarker. A missing start marker means the description
// starts at the beginning of body; a missing end marker means it runs to the
// end.
func ExtractDescription(body string) string {
	if _, after, found := strings.Cut(body, DescriptionStartMarker); found {
		body = after
	}
	if before, _, found := strings.Cut(body, DescriptionEndMarker); found {
		body = before
	}
	return strings.TrimSpace(body)
}

// FormatEntryBody renders the pull request link line of a changelog entry
func FormatEntryBody(prNumber, repoURL, description string) string {
	return fmt.Sprintf("[#%s](%s/pull/%s) %s\n\n", prNumber, repoURL, prNumber, description)
}

// FirstNonBlankLine returns the first line of text with non-space content, trimmed
func FirstNonBlankLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			return s
		}
	}
	return ""
}

// ChangelogMergeInput carries everything the merge decision needs. HumanEdited
// is true when a non-bot author changed the changelog relative to the base
// branch; Current is then the working-tree text to verify.
type ChangelogMergeInput struct {
	Base        string
	Current     string
	HumanEdited bool
	Version     Version
	PRBody      string
	PRNumber    string
	RepoURL     string
}

// ChangelogMergeResult tells the caller whether Text must be written
type ChangelogMergeResult struct {
	Text  string
	Write bool
}

// MergeChangelogEntry prepends an entry for in.Version to the base changelog.
// A human-edited changelog is only verified: its first non-blank line must be
// the heading of the new version, otherwise ErrChangelogMismatch is returned.
// When the base already has the heading nothing is written.
func MergeChangelogEntry(in ChangelogMergeInput) (*ChangelogMergeResult, error) {
	version := in.Version.String()
	heading := headingPrefix + version

	if in.HumanEdited {
		if got := FirstNonBlankLine(in.Current); got != heading {
			return nil, goerr.Wrap(types.ErrChangelogMismatch, "manually edited changelog must start with the new version heading",
				goerr.V("expected", heading),
				goerr.V("actual", got),
			)
		}
		return &ChangelogMergeResult{Text: in.Current, Write: false}, nil
	}

	doc := ParseChangelog(in.Base)
	if doc.Has(version) {
		return &ChangelogMergeResult{Text: in.Base, Write: false}, nil
	}

	doc.Add(version, FormatEntryBody(in.PRNumber, in.RepoURL, ExtractDescription(in.PRBody)))
	return &ChangelogMergeResult{Text: doc.Render(), Write: true}, nil
}
