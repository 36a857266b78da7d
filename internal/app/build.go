package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"jhbuild-lxc/internal/ports"
)

func (s Service) Build(ctx context.Context, req BuildRequest) (BuildResult, error) {
	target, err := s.loadTarget(req.PartRequest)
	if err != nil {
		return BuildResult{}, err
	}
	if target.Part.DisableBuild {
		log.Info().Str("part", target.Part.Name).Msg("build disabled")
		return BuildResult{Skipped: true, ContainerName: target.Part.ContainerName}, nil
	}
	target, err = s.withHostDefaults(target)
	if err != nil {
		return BuildResult{}, err
	}
	container, err := s.existingContainer(ctx, target)
	if err != nil {
		return BuildResult{}, err
	}
	if err := container.Start(ctx); err != nil {
		return BuildResult{}, err
	}

	modules := target.Part.Modules.Build()
	log.Info().Strs("modules", modules).Msg("building modules")
	if err := s.buildTool(container, target).Build(ctx, modules); err != nil {
		stopQuietly(ctx, container)
		return BuildResult{}, err
	}
	if err := container.Stop(ctx); err != nil {
		return BuildResult{}, err
	}
	return BuildResult{ContainerName: container.Name(), Modules: modules}, nil
}

// existingContainer returns the part's container, failing when pull has
// not created it yet.
func (s Service) existingContainer(ctx context.Context, target Target) (ports.ContainerPort, error) {
	container, err := s.container(target)
	if err != nil {
		return nil, err
	}
	exists, err := container.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("container " + container.Name() + " does not exist; run pull first")
	}
	return container, nil
}
