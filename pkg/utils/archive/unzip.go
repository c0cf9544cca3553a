package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Unzip extracts zip data into destDir and returns the extracted entry
// names. Entries resolving outside destDir are rejected.
func Unzip(data []byte, destDir string) ([]string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open zip archive")
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create extract directory", goerr.V("dir", destDir))
	}

	var names []string
	for _, file := range reader.File {
		if err := extractFile(file, destDir); err != nil {
			return nil, goerr.Wrap(err, "failed to extract file", goerr.V("name", file.Name))
		}
		if !file.FileInfo().IsDir() {
			names = append(names, file.Name)
		}
	}

	return names, nil
}

func extractFile(file *zip.File, destDir string) error {
	destPath := filepath.Join(destDir, file.Name)
	if !strings.HasPrefix(destPath, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return goerr.New("invalid file path in archive", goerr.V("name", file.Name), goerr.V("dest", destPath))
	}

	if file.FileInfo().IsDir() {
		return os.MkdirAll(destPath, 0755)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return goerr.Wrap(err, "failed to create parent directory", goerr.V("path", destPath))
	}

	rc, err := file.Open()
	if err != nil {
		return goerr.Wrap(err, "failed to open file in archive")
	}
	defer rc.Close()

	dest, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return goerr.Wrap(err, "failed to create file", goerr.V("path", destPath))
	}
	if err := copyAndClose(dest, rc); err != nil {
		return goerr.Wrap(err, "failed to write file", goerr.V("path", destPath))
	}
	return nil
}

// copyAndClose copies src into dst and closes dst. A close failure is
// returned unless the copy failed first.
func copyAndClose(dst io.WriteCloser, src io.Reader) error {
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return goerr.Wrap(err, "failed to copy data")
	}
	if err := dst.Close(); err != nil {
		return goerr.Wrap(err, "failed to close file")
	}
	return nil
}
