package app

import (
	"context"

	"github.com/rs/zerolog/log"
)

// CleanPull destroys the part's container. A missing container is not an
// error.
func (s Service) CleanPull(ctx context.Context, req CleanRequest) (CleanResult, error) {
	target, err := s.loadTarget(req.PartRequest)
	if err != nil {
		return CleanResult{}, err
	}
	target, err = s.withHostDefaults(target)
	if err != nil {
		return CleanResult{}, err
	}
	container, err := s.container(target)
	if err != nil {
		return CleanResult{}, err
	}
	exists, err := container.Exists(ctx)
	if err != nil {
		return CleanResult{}, err
	}
	log.Info().Str("container", container.Name()).Bool("exists", exists).Msg("destroying container")
	if err := container.Destroy(ctx); err != nil {
		return CleanResult{}, err
	}
	return CleanResult{ContainerName: container.Name(), Existed: exists}, nil
}
