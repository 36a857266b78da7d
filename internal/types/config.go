package types

// BindMount maps a host directory onto a path relative to the container
// root filesystem.
type BindMount struct {
	Source string
	Target string
}

// IDMap is one uid or gid range mapping for an unprivileged container.
type IDMap struct {
	Type      string
	Container int
	Host      int
	Count     int
}

// LXCConfig is the content of the container's lxc.conf.
type LXCConfig struct {
	Include  string
	IDMapKey string
	IDMaps   []IDMap
	Mounts   []BindMount
}

// JHBuildConfig is the content of the jhbuildrc file.
type JHBuildConfig struct {
	ModuleSet       string
	TarballDir      string
	MirrorDir       string
	CheckoutRoot    string
	Prefix          string
	XDGDataHome     string
	Skip            []string
	DisableParallel bool
	AutogenArgs     map[string]string
}
