package core

import (
	"context"

	"github.com/rs/zerolog/log"

	"jhbuild-lxc/internal/types"
)

// Pass accumulates the packages of one pull: explicit container packages,
// module exceptions and the sysdeps report. Runtime expansion happens once,
// in Finish, over every queued build package.
type Pass struct {
	Resolver Resolver

	set      *types.PackageSet
	queued   []string
	isQueued map[string]struct{}
	records  []types.ResolutionRecord
}

func NewPass(resolver Resolver) *Pass {
	return &Pass{
		Resolver: resolver,
		set:      types.NewPackageSet(),
		isQueued: make(map[string]struct{}),
	}
}

// AddPackages adds packages the user asked for explicitly.
func (p *Pass) AddPackages(pkgs []string) {
	for _, pkg := range pkgs {
		p.addBuild(pkg)
		p.records = append(p.records, types.ResolutionRecord{
			Dependency: pkg,
			Source:     types.LookupSourceExplicit,
			Build:      pkg,
		})
	}
}

// AddModules adds the extra build packages the exception table lists for
// the given jhbuild modules.
func (p *Pass) AddModules(modules []string) {
	for _, module := range modules {
		for _, pkg := range p.Resolver.Table.ModulePackages(module) {
			log.Debug().Str("module", module).Str("package", pkg).Msg("module exception")
			p.addBuild(pkg)
			p.records = append(p.records, types.ResolutionRecord{
				Dependency: "module:" + module,
				Source:     types.LookupSourceModule,
				Build:      pkg,
			})
		}
	}
}

// AddGroup resolves one report line. It fails when no alternative
// resolves.
func (p *Pass) AddGroup(ctx context.Context, group types.AlternativeGroup) error {
	resolution, err := p.Resolver.ResolveGroup(ctx, group)
	if err != nil {
		return err
	}
	record := types.ResolutionRecord{
		Dependency: resolution.Token.Raw,
		Source:     resolution.Source,
		Build:      resolution.Build,
	}
	if resolution.Stage != nil {
		p.set.AddBuild(resolution.Build)
		p.set.AddStage(*resolution.Stage)
		if *resolution.Stage != "" {
			record.Stage = []string{*resolution.Stage}
		}
	} else {
		p.addBuild(resolution.Build)
	}
	p.records = append(p.records, record)
	return nil
}

func (p *Pass) AddReport(ctx context.Context, groups []types.AlternativeGroup) error {
	for _, group := range groups {
		if err := p.AddGroup(ctx, group); err != nil {
			return err
		}
	}
	return nil
}

// Finish expands the queued build packages and returns the final set,
// including the table's base stage packages.
func (p *Pass) Finish(ctx context.Context) (*types.PackageSet, error) {
	stage, err := p.Resolver.ExpandRuntimeDeps(ctx, p.queued)
	if err != nil {
		return nil, err
	}
	p.set.AddStage(stage...)
	p.set.AddStage(p.Resolver.Table.Base.Stage...)
	log.Info().
		Int("build", len(p.set.BuildList())).
		Int("stage", len(p.set.StageList())).
		Msg("dependency resolution finished")
	return p.set, nil
}

func (p *Pass) Report() types.ResolutionReport {
	return types.ResolutionReport{Records: append([]types.ResolutionRecord(nil), p.records...)}
}

func (p *Pass) addBuild(pkg string) {
	if pkg == "" {
		return
	}
	p.set.AddBuild(pkg)
	if _, ok := p.isQueued[pkg]; ok {
		return
	}
	p.isQueued[pkg] = struct{}{}
	p.queued = append(p.queued, pkg)
}
