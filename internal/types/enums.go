package types

// DependencyKind is the prefix of a sysdeps token, e.g. "pkgconfig" in
// "pkgconfig:gtk+-3.0".
type DependencyKind string

const (
	DependencyKindCInclude  DependencyKind = "c_include"
	DependencyKindPath      DependencyKind = "path"
	DependencyKindPkgConfig DependencyKind = "pkgconfig"
	DependencyKindPython2   DependencyKind = "python2"
	DependencyKindXML       DependencyKind = "xml"
)

var dependencyKinds = map[string]DependencyKind{
	string(DependencyKindCInclude):  DependencyKindCInclude,
	string(DependencyKindPath):      DependencyKindPath,
	string(DependencyKindPkgConfig): DependencyKindPkgConfig,
	string(DependencyKindPython2):   DependencyKindPython2,
	string(DependencyKindXML):       DependencyKindXML,
}

// ParseDependencyKind reports whether value names one of the closed set of
// dependency kinds.
func ParseDependencyKind(value string) (DependencyKind, bool) {
	kind, ok := dependencyKinds[value]
	return kind, ok
}

type Backend string

const (
	BackendLXC    Backend = "lxc"
	BackendChroot Backend = "chroot"
)

// LookupSource records which step of the resolver produced a lookup.
type LookupSource string

const (
	LookupSourceTable    LookupSource = "table"
	LookupSourceIndex    LookupSource = "index"
	LookupSourceRewrite  LookupSource = "rewrite"
	LookupSourceSkip     LookupSource = "skip"
	LookupSourceNone     LookupSource = "none"
	LookupSourceExplicit LookupSource = "explicit"
	LookupSourceModule   LookupSource = "module"
)
