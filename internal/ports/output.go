package ports

import "jhbuild-lxc/internal/types"

type OutputPort interface {
	WritePackageSet(set *types.PackageSet) error
	WriteResolutionReport(report types.ResolutionReport) error
}
