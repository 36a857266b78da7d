package types

import "strings"

// ModuleList is the user's list of jhbuild modules. Entries starting with
// "-" are skipped rather than built.
type ModuleList []string

// Build returns the modules to build, in order.
func (m ModuleList) Build() []string {
	var out []string
	for _, entry := range m {
		if strings.HasPrefix(entry, "-") {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// Skipped returns the skipped modules with their "-" prefix removed.
func (m ModuleList) Skipped() []string {
	var out []string
	for _, entry := range m {
		if name, ok := strings.CutPrefix(entry, "-"); ok {
			out = append(out, name)
		}
	}
	return out
}
