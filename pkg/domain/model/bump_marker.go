package model

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const bumpMarkerSuffix = " version bump"

// FindBumpMarker scans a pull request body for the first checked
// "[<mark>] <LEVEL> version bump" line, where mark is a single non-space rune
// and LEVEL is MAJOR, MINOR or PATCH. Line breaks count as spaces, so a
// marker wrapped across lines still matches. Unchecked boxes ("[ ]") and
// unknown levels are skipped. It returns false when no marker is found.
func FindBumpMarker(body string) (BumpLevel, bool) {
	s := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(body)

	for i := 0; i < len(s); i++ {
		if s[i] != '[' {
			continue
		}

		mark, size := utf8.DecodeRuneInString(s[i+1:])
		if size == 0 || mark == utf8.RuneError || unicode.IsSpace(mark) {
			continue
		}

		rest := s[i+1+size:]
		if !strings.HasPrefix(rest, "] ") {
			continue
		}
		rest = rest[2:]

		for _, level := range []BumpLevel{BumpMajor, BumpMinor, BumpPatch} {
			if strings.HasPrefix(rest, string(level)+bumpMarkerSuffix) {
				return level, true
			}
		}
	}

	return "", false
}

var conventionalLevels = map[string]BumpLevel{
	"feat":  BumpMinor,
	"fix":   BumpPatch,
	"chore": BumpPatch,
}

// ConventionalType returns the type of a conventional-commit style title:
// the text before the first colon with any "(scope)" and "!" removed.
// "feat(api)!: drop v1" yields "feat". A title without a colon yields "".
func ConventionalType(title string) string {
	head, _, found := strings.Cut(title, ":")
	if !found {
		return ""
	}
	if idx := strings.IndexByte(head, '('); idx >= 0 {
		head = head[:idx]
	}
	return strings.TrimSpace(strings.TrimSuffix(head, "!"))
}

// LevelFromTitle maps the conventional-commit type of a title to a bump
// level. Unknown or missing types bump the patch version.
func LevelFromTitle(title string) BumpLevel {
	if level, ok := conventionalLevels[ConventionalType(title)]; ok {
		return level
	}
	return BumpPatch
}
