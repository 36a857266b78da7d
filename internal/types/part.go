package types

// PartSpec is the YAML definition of a jhbuild part.
type PartSpec struct {
	Name              string            `yaml:"name"`
	Modules           ModuleList        `yaml:"modules"`
	ModuleSet         string            `yaml:"moduleset,omitempty"`
	SnapName          string            `yaml:"snap-name"`
	SnapRevision      string            `yaml:"snap-revision,omitempty"`
	ContainerName     string            `yaml:"container-name,omitempty"`
	Backend           Backend           `yaml:"backend,omitempty"`
	Distribution      string            `yaml:"distribution,omitempty"`
	Release           string            `yaml:"release,omitempty"`
	Architecture      string            `yaml:"architecture,omitempty"`
	ContainerPackages []string          `yaml:"container-packages,omitempty"`
	DebMirror         string            `yaml:"debmirror,omitempty"`
	JHTarballs        string            `yaml:"jhtarballs,omitempty"`
	JHMirror          string            `yaml:"jhmirror,omitempty"`
	JHCheckout        string            `yaml:"jhcheckout,omitempty"`
	CCache            string            `yaml:"ccache,omitempty"`
	JHBuildRepo       string            `yaml:"jhbuild-repo,omitempty"`
	DisablePull       bool              `yaml:"disable-pull,omitempty"`
	DisableBuild      bool              `yaml:"disable-build,omitempty"`
	DisableJHUpdate   bool              `yaml:"disable-jhupdate,omitempty"`
	DisableParallel   bool              `yaml:"disable-parallel,omitempty"`
	ModuleAutogenArgs map[string]string `yaml:"module-autogenargs,omitempty"`
	Exceptions        []string          `yaml:"exceptions,omitempty"`
	ReadinessHost     string            `yaml:"readiness-host,omitempty"`
	ReadinessTimeout  string            `yaml:"readiness-timeout,omitempty"`
}

const (
	DefaultModuleSet        = "gnome-world"
	DefaultSnapRevision     = "current"
	DefaultJHBuildRepo      = "https://gitlab.gnome.org/GNOME/jhbuild.git"
	DefaultReadinessHost    = "archive.ubuntu.com"
	DefaultReadinessTimeout = "60s"
)

// DefaultAutogenArgs are applied unless the part overrides the module.
var DefaultAutogenArgs = map[string]string{
	"gdk-pixbuf": "--disable-gio-sniffing",
}
