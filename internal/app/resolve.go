package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"jhbuild-lxc/internal/core"
	"jhbuild-lxc/internal/shared"
)

// Resolve runs the resolution pass over a saved sysdeps report against the
// container's package index, without installing anything.
func (s Service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	reportPath := strings.TrimSpace(req.ReportPath)
	if reportPath == "" {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("sysdeps report path is required")
	}
	target, err := s.loadTarget(req.PartRequest)
	if err != nil {
		return ResolveResult{}, err
	}
	data, err := os.ReadFile(reportPath)
	if err != nil {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("sysdeps report not found: " + reportPath).
			WithCause(err)
	}
	groups := core.ParseReport(shared.NonEmptyLines(string(data)))
	table, err := s.Exceptions.LoadTable(target.Part.Exceptions)
	if err != nil {
		return ResolveResult{}, err
	}

	target, err = s.withHostDefaults(target)
	if err != nil {
		return ResolveResult{}, err
	}
	container, err := s.existingContainer(ctx, target)
	if err != nil {
		return ResolveResult{}, err
	}
	if err := container.Start(ctx); err != nil {
		return ResolveResult{}, err
	}

	pass := core.NewPass(core.NewResolver(s.index(container), table))
	log.Info().Int("lines", len(groups)).Str("report", reportPath).Msg("resolving sysdeps report")
	if err := pass.AddReport(ctx, groups); err != nil {
		stopQuietly(ctx, container)
		return ResolveResult{}, err
	}
	set, err := pass.Finish(ctx)
	if err != nil {
		stopQuietly(ctx, container)
		return ResolveResult{}, err
	}
	if err := container.Stop(ctx); err != nil {
		return ResolveResult{}, err
	}

	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		outputDir = filepath.Join(target.Layout.WorkDir, "resolve")
	}
	output := s.output(outputDir)
	if err := output.WritePackageSet(set); err != nil {
		return ResolveResult{}, err
	}
	report := pass.Report()
	if err := output.WriteResolutionReport(report); err != nil {
		return ResolveResult{}, err
	}
	return ResolveResult{
		BuildPackages: set.BuildList(),
		StagePackages: set.StageList(),
		Report:        report,
		OutputDir:     outputDir,
	}, nil
}
