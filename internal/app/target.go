package app

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"jhbuild-lxc/internal/adapters"
	"jhbuild-lxc/internal/types"
)

func (s Service) loadTarget(req PartRequest) (Target, error) {
	partPath := strings.TrimSpace(req.PartPath)
	if partPath == "" {
		return Target{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("part file path is required")
	}
	part, err := s.PartLoader.LoadPart(partPath)
	if err != nil {
		return Target{}, err
	}
	emitHints(checkOverrideHints(req, part))
	applyOverrides(&part, req)
	if err := adapters.ValidatePart(part); err != nil {
		return Target{}, err
	}
	layout, err := newLayout(part, req.WorkDir, req.InstallDir)
	if err != nil {
		return Target{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid part directories").
			WithCause(err)
	}
	return Target{Part: part, Layout: layout, Sudo: req.Sudo}, nil
}

// withHostDefaults fills the container distribution, release and
// architecture the part left open from the host.
func (s Service) withHostDefaults(target Target) (Target, error) {
	part := &target.Part
	if part.Distribution == "" || part.Release == "" {
		id, release, err := s.Host.Distribution()
		if err != nil {
			return Target{}, err
		}
		if part.Distribution == "" {
			part.Distribution = id
		}
		if part.Release == "" {
			part.Release = release
		}
	}
	if part.Architecture == "" {
		arch, err := s.Host.Architecture()
		if err != nil {
			return Target{}, err
		}
		part.Architecture = arch
	}
	target.Layout.Part = *part
	log.Debug().
		Str("container", part.ContainerName).
		Str("backend", string(part.Backend)).
		Str("distribution", part.Distribution).
		Str("release", part.Release).
		Str("architecture", part.Architecture).
		Msg("container target")
	return target, nil
}

func applyOverrides(part *types.PartSpec, req PartRequest) {
	if req.Backend != "" {
		part.Backend = types.Backend(req.Backend)
	}
	if req.ContainerName != "" {
		part.ContainerName = req.ContainerName
	}
	if req.Distribution != "" {
		part.Distribution = req.Distribution
	}
	if req.Release != "" {
		part.Release = req.Release
	}
	if req.Architecture != "" {
		part.Architecture = req.Architecture
	}
	if req.DebMirror != "" {
		part.DebMirror = req.DebMirror
	}
	if req.ReadinessHost != "" {
		part.ReadinessHost = req.ReadinessHost
	}
	if req.ReadinessTimeout != "" {
		part.ReadinessTimeout = req.ReadinessTimeout
	}
	if req.DisableJHUpdate {
		part.DisableJHUpdate = true
	}
	part.Exceptions = append(append([]string(nil), part.Exceptions...), req.Exceptions...)
}
