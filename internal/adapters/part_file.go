package adapters

import (
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"jhbuild-lxc/internal/ports"
	"jhbuild-lxc/internal/types"
)

type PartFileAdapter struct{}

func NewPartFileAdapter() PartFileAdapter {
	return PartFileAdapter{}
}

// LoadPart reads a part definition, fills in static defaults and validates
// it. Host-derived defaults (release, architecture) are left to the caller.
func (a PartFileAdapter) LoadPart(path string) (types.PartSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.PartSpec{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("part file not found: " + path).
			WithCause(err)
	}
	var part types.PartSpec
	if err := yaml.Unmarshal(data, &part); err != nil {
		return types.PartSpec{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse part yaml").
			WithCause(err)
	}
	ApplyPartDefaults(&part)
	if err := ValidatePart(part); err != nil {
		return types.PartSpec{}, err
	}
	log.Debug().Str("part", part.Name).Strs("modules", part.Modules).Msg("part loaded")
	return part, nil
}

func ApplyPartDefaults(part *types.PartSpec) {
	if part.ModuleSet == "" {
		part.ModuleSet = types.DefaultModuleSet
	}
	if part.SnapRevision == "" {
		part.SnapRevision = types.DefaultSnapRevision
	}
	if part.Backend == "" {
		part.Backend = types.BackendLXC
	}
	if part.JHBuildRepo == "" {
		part.JHBuildRepo = types.DefaultJHBuildRepo
	}
	if part.ReadinessHost == "" {
		part.ReadinessHost = types.DefaultReadinessHost
	}
	if part.ReadinessTimeout == "" {
		part.ReadinessTimeout = types.DefaultReadinessTimeout
	}
	if part.ContainerName == "" && part.SnapName != "" && part.Name != "" {
		part.ContainerName = "snapcraft-" + part.SnapName + "-" + part.Name
	}
	autogen := make(map[string]string, len(types.DefaultAutogenArgs)+len(part.ModuleAutogenArgs))
	for module, args := range types.DefaultAutogenArgs {
		autogen[module] = args
	}
	for module, args := range part.ModuleAutogenArgs {
		autogen[module] = args
	}
	part.ModuleAutogenArgs = autogen
}

func ValidatePart(part types.PartSpec) error {
	if strings.TrimSpace(part.Name) == "" {
		return invalidPart("part name is required")
	}
	if strings.TrimSpace(part.SnapName) == "" {
		return invalidPart("snap-name is required")
	}
	if len(part.Modules) == 0 {
		return invalidPart("modules must list at least one module")
	}
	seen := make(map[string]struct{}, len(part.Modules))
	for _, module := range part.Modules {
		name := strings.TrimSpace(module)
		if name == "" || name == "-" {
			return invalidPart("modules contains an empty entry")
		}
		if _, ok := seen[name]; ok {
			return invalidPart("duplicate module: " + name)
		}
		seen[name] = struct{}{}
	}
	if len(part.Modules.Build()) == 0 {
		return invalidPart("modules only lists skipped modules")
	}
	switch part.Backend {
	case types.BackendLXC, types.BackendChroot:
	default:
		return invalidPart("unsupported backend: " + string(part.Backend))
	}
	if _, err := ParseTimeout(part.ReadinessTimeout, 0); err != nil {
		return err
	}
	return nil
}

func invalidPart(msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(msg)
}

var _ ports.PartSpecPort = PartFileAdapter{}
