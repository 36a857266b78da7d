package ports

import "jhbuild-lxc/internal/types"

type PartSpecPort interface {
	LoadPart(path string) (types.PartSpec, error)
}

// ExceptionTablePort loads the embedded default exception table with the
// given layers merged over it, later layers winning per key.
type ExceptionTablePort interface {
	LoadTable(paths []string) (types.ExceptionTable, error)
}

// HostPort describes the machine running the tool.
type HostPort interface {
	Distribution() (id string, release string, err error)
	Architecture() (string, error)
}
