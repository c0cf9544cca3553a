package model

import (
	"strings"
	"unicode"
)

// IsBotAuthor reports whether a commit author name contains "bot" as a whole
// word. Words are separated by any non-alphanumeric rune, so
// "github-actions[bot]" and "Release Bot" are both bots while "Abbott" is not.
func IsBotAuthor(name string) bool {
	words := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		if w == "bot" {
			return true
		}
	}
	return false
}

// HasHumanAuthor reports whether any non-empty author is not a bot
func HasHumanAuthor(authors []string) bool {
	for _, a := range authors {
		if strings.TrimSpace(a) == "" {
			continue
		}
		if !IsBotAuthor(a) {
			return true
		}
	}
	return false
}
