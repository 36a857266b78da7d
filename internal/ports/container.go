package ports

import (
	"context"
	"io"
)

type RunOptions struct {
	// Root runs the command as the container superuser instead of the
	// unprivileged build user.
	Root bool
	// Dir is created if missing and used as the working directory.
	Dir   string
	Stdin io.Reader
}

// ContainerPort drives one named build container.
type ContainerPort interface {
	Name() string
	Exists(ctx context.Context) (bool, error)
	Create(ctx context.Context) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Destroy(ctx context.Context) error
	Run(ctx context.Context, args []string, opts RunOptions) error
	Output(ctx context.Context, args []string, opts RunOptions) (string, error)
	Write(ctx context.Context, path string, data []byte, opts RunOptions) error
}

// ReadinessPort blocks until a started container is usable.
type ReadinessPort interface {
	Wait(ctx context.Context, container ContainerPort) error
}
