package ports

import (
	"context"

	"jhbuild-lxc/internal/types"
)

// PackageIndexPort answers questions about the container's package
// archive. Implementations query the live index; results follow the
// index's own listing order.
type PackageIndexPort interface {
	// SearchFile returns every package shipping a path containing pattern.
	SearchFile(ctx context.Context, pattern string) ([]types.FileMatch, error)

	// Depends returns pkg's dependency groups. Each group lists
	// alternatives in preference order; virtual names are wrapped in
	// angle brackets.
	Depends(ctx context.Context, pkg string) ([][]string, error)

	// ReverseProvides returns the packages providing a virtual name.
	ReverseProvides(ctx context.Context, name string) ([]string, error)

	// UpdateFileIndex refreshes the file-contents index.
	UpdateFileIndex(ctx context.Context) error
}
