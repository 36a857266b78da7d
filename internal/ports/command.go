package ports

import (
	"context"
	"io"
)

// Command is a host process invocation.
type Command struct {
	Name  string
	Args  []string
	Stdin io.Reader
}

// CommandRunner executes host processes. Run streams output to the
// terminal; Output captures stdout.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) error
	Output(ctx context.Context, cmd Command) (string, error)
}
