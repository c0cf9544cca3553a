package model

import (
	"sort"
	"strings"

	"github.com/m-mizutani/cihelper/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// TagSet is a set of distinct Docker image tags
type TagSet map[string]struct{}

// NewTagSet creates a TagSet holding the given tags
func NewTagSet(tags ...string) TagSet {
	s := make(TagSet, len(tags))
	s.Add(tags...)
	return s
}

// Add inserts tags; duplicates collapse
func (s TagSet) Add(tags ...string) {
	for _, t := range tags {
		s[t] = struct{}{}
	}
}

// Has reports whether tag is in the set
func (s TagSet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Sorted returns the tags in lexical order
func (s TagSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// String joins the sorted tags with commas
func (s TagSet) String() string {
	return strings.Join(s.Sorted(), ",")
}

// LastPathSegment returns the part of ref after its final "/"
func LastPathSegment(ref string) (string, error) {
	idx := strings.LastIndex(ref, "/")
	if idx < 0 {
		return "", goerr.Wrap(types.ErrUnparsableRef, "ref has no path separator", goerr.V("ref", ref))
	}
	return ref[idx+1:], nil
}
