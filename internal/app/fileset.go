package app

import "context"

// Fileset lists the top-level entries of the part's install dir.
func (s Service) Fileset(_ context.Context, req FilesetRequest) (FilesetResult, error) {
	target, err := s.loadTarget(req.PartRequest)
	if err != nil {
		return FilesetResult{}, err
	}
	entries, err := s.Workspace.Fileset(target.Layout.InstallDir)
	if err != nil {
		return FilesetResult{}, err
	}
	return FilesetResult{Entries: entries}, nil
}
