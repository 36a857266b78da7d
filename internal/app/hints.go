package app

import (
	"fmt"
	"os"

	"jhbuild-lxc/internal/types"
)

// checkOverrideHints returns hints for flags whose value repeats what the
// part file already says.
func checkOverrideHints(req PartRequest, part types.PartSpec) []string {
	checks := []struct {
		flag  string
		key   string
		value string
		part  string
	}{
		{"--backend", "backend", req.Backend, string(part.Backend)},
		{"--container-name", "container-name", req.ContainerName, part.ContainerName},
		{"--distribution", "distribution", req.Distribution, part.Distribution},
		{"--release", "release", req.Release, part.Release},
		{"--architecture", "architecture", req.Architecture, part.Architecture},
		{"--debmirror", "debmirror", req.DebMirror, part.DebMirror},
	}

	var hints []string
	for _, c := range checks {
		if c.value != "" && c.value == c.part {
			hints = append(hints, fmt.Sprintf(
				"hint: %s is also set in the part file (%s); you can omit the flag",
				c.flag, c.key,
			))
		}
	}
	return hints
}

func emitHints(hints []string) {
	for _, h := range hints {
		fmt.Fprintln(os.Stderr, h)
	}
}
