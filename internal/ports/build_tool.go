package ports

import (
	"context"

	"jhbuild-lxc/internal/types"
)

// BuildToolPort drives the module-build tool inside a container.
type BuildToolPort interface {
	Install(ctx context.Context) error
	Configure(ctx context.Context, cfg types.JHBuildConfig) error
	List(ctx context.Context, modules []string) ([]string, error)
	Sysdeps(ctx context.Context, modules []string) ([]string, error)
	Update(ctx context.Context, modules []string) error
	Build(ctx context.Context, modules []string) error
}
