package files

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/m-mizutani/cihelper/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// FindShallowest walks root and returns the path, relative to root, of the
// least nested regular file whose base name matches pattern (filepath.Match
// syntax). Ties are broken lexically. Hidden directories are skipped.
func FindShallowest(root, pattern string) (string, error) {
	var matches []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		ok, err := filepath.Match(pattern, d.Name())
		if err != nil {
			return goerr.Wrap(err, "invalid file pattern", goerr.V("pattern", pattern))
		}
		if ok {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return goerr.Wrap(err, "failed to relativize path", goerr.V("path", path))
			}
			matches = append(matches, rel)
		}
		return nil
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to search files", goerr.V("root", root), goerr.V("pattern", pattern))
	}

	if len(matches) == 0 {
		return "", goerr.Wrap(types.ErrFileNotFound, "no matching file", goerr.V("root", root), goerr.V("pattern", pattern))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		di, dj := depth(matches[i]), depth(matches[j])
		if di != dj {
			return di < dj
		}
		return matches[i] < matches[j]
	})
	return matches[0], nil
}

func depth(rel string) int {
	return strings.Count(filepath.ToSlash(rel), "/")
}
