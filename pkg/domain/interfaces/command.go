package interfaces

import (
	"context"

	"github.com/m-mizutani/cihelper/pkg/domain/model"
)

// CommandRunner runs external programs. A non-zero exit status is reported
// through the result, not as an error.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (*model.CommandResult, error)
}
