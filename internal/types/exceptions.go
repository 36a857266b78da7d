package types

// SysdepException overrides the resolution of a single token.
//
// Stage semantics: nil means "expand the build package's runtime
// dependencies"; a non-nil empty string means "no stage package".
type SysdepException struct {
	Skip  bool    `yaml:"skip,omitempty"`
	Build string  `yaml:"build,omitempty"`
	Stage *string `yaml:"stage,omitempty"`
}

type BasePackages struct {
	Build []string `yaml:"build,omitempty"`
	Stage []string `yaml:"stage,omitempty"`
}

// ExceptionFile is the on-disk layout of an exception table layer.
type ExceptionFile struct {
	SchemaVersion string                     `yaml:"schema_version"`
	Sysdeps       map[string]SysdepException `yaml:"sysdeps,omitempty"`
	Modules       map[string][]string        `yaml:"modules,omitempty"`
	Base          *BasePackages              `yaml:"base,omitempty"`
}

// ExceptionTable is the merged, read-only view the resolver consults.
type ExceptionTable struct {
	Sysdeps map[string]SysdepException
	Modules map[string][]string
	Base    BasePackages
}

// Sysdep looks up an exception by its raw "<kind>:<subject>" key.
func (t ExceptionTable) Sysdep(raw string) (SysdepException, bool) {
	entry, ok := t.Sysdeps[raw]
	return entry, ok
}

// ModulePackages returns the extra build packages a module needs.
func (t ExceptionTable) ModulePackages(module string) []string {
	return t.Modules[module]
}

// StagePtr returns a pointer to value, for building exception entries.
func StagePtr(value string) *string {
	return &value
}
