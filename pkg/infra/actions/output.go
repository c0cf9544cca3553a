package actions

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/cihelper/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

type outputFile struct {
	path string
}

// NewOutputFile returns a writer appending outputs to the file named by
// GITHUB_OUTPUT
func NewOutputFile(path string) interfaces.OutputWriter {
	return &outputFile{path: path}
}

// SetOutput appends "name=value". Multi-line values use the heredoc form
// with a random delimiter.
func (o *outputFile) SetOutput(name, value string) error {
	f, err := os.OpenFile(o.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return goerr.Wrap(err, "failed to open output file", goerr.V("path", o.path))
	}
	defer f.Close()

	line := fmt.Sprintf("%s=%s\n", name, value)
	if strings.ContainsAny(value, "\r\n") {
		delimiter := "ghadelimiter_" + uuid.NewString()
		line = fmt.Sprintf("%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
	}

	if _, err := f.WriteString(line); err != nil {
		return goerr.Wrap(err, "failed to write output", goerr.V("path", o.path), goerr.V("name", name))
	}
	return nil
}
