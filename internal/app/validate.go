package app

import "context"

func (s Service) Validate(_ context.Context, req ValidateRequest) (ValidateResult, error) {
	target, err := s.loadTarget(req.PartRequest)
	if err != nil {
		return ValidateResult{}, err
	}
	table, err := s.Exceptions.LoadTable(target.Part.Exceptions)
	if err != nil {
		return ValidateResult{}, err
	}
	return ValidateResult{
		PartName:      target.Part.Name,
		ContainerName: target.Part.ContainerName,
		Modules:       target.Part.Modules.Build(),
		Skipped:       target.Part.Modules.Skipped(),
		Exceptions:    len(table.Sysdeps),
	}, nil
}
