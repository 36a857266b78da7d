package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"jhbuild-lxc/internal/core"
	"jhbuild-lxc/internal/ports"
	"jhbuild-lxc/internal/types"
)

// Pull prepares the container, installs jhbuild and every package the
// part's modules need, and fetches the module sources.
func (s Service) Pull(ctx context.Context, req PullRequest) (PullResult, error) {
	target, err := s.loadTarget(req.PartRequest)
	if err != nil {
		return PullResult{}, err
	}
	part := target.Part
	if part.DisablePull {
		log.Info().Str("part", part.Name).Msg("pull disabled")
		return PullResult{Skipped: true, ContainerName: part.ContainerName}, nil
	}
	if uid, _ := s.identity(); uid == 0 {
		return PullResult{}, errbuilder.New().
			WithCode(errbuilder.CodePermissionDenied).
			WithMsg("refusing to run as root")
	}

	target, err = s.withHostDefaults(target)
	if err != nil {
		return PullResult{}, err
	}
	part = target.Part
	table, err := s.Exceptions.LoadTable(part.Exceptions)
	if err != nil {
		return PullResult{}, err
	}
	if err := s.Workspace.EnsureDirs(target.Layout.OwnedDirs()...); err != nil {
		return PullResult{}, err
	}

	container, err := s.container(target)
	if err != nil {
		return PullResult{}, err
	}
	if err := s.bringUp(ctx, container, target.Layout); err != nil {
		return PullResult{}, err
	}

	set, report, err := s.pullInContainer(ctx, container, target, table)
	if err != nil {
		stopQuietly(ctx, container)
		return PullResult{}, err
	}

	output := s.output(target.Layout.WorkDir)
	if err := output.WritePackageSet(set); err != nil {
		stopQuietly(ctx, container)
		return PullResult{}, err
	}
	if err := output.WriteResolutionReport(report); err != nil {
		stopQuietly(ctx, container)
		return PullResult{}, err
	}

	log.Info().Str("container", container.Name()).Msg("stopping container")
	if err := container.Stop(ctx); err != nil {
		return PullResult{}, err
	}
	return PullResult{
		ContainerName: container.Name(),
		BuildPackages: set.BuildList(),
		StagePackages: set.StageList(),
		OutputDir:     target.Layout.WorkDir,
	}, nil
}

// bringUp creates the container on first use, rewriting its apt sources
// when a deb mirror is configured and debootstrap did not already use it,
// and starts it otherwise.
func (s Service) bringUp(ctx context.Context, container ports.ContainerPort, layout Layout) error {
	part := layout.Part
	exists, err := container.Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		log.Info().Str("container", container.Name()).Msg("starting container")
		return container.Start(ctx)
	}
	log.Info().Str("container", container.Name()).Msg("creating container")
	if err := container.Create(ctx); err != nil {
		return err
	}
	if err := container.Start(ctx); err != nil {
		return err
	}
	if part.DebMirror == "" || layout.BootstrapMirror() != "" {
		return nil
	}
	return container.Run(ctx, []string{"sed", "-i", "-e", mirrorExpression(part.DebMirror), sourcesList}, ports.RunOptions{Root: true})
}

func (s Service) pullInContainer(ctx context.Context, container ports.ContainerPort, target Target, table types.ExceptionTable) (*types.PackageSet, types.ResolutionReport, error) {
	part := target.Part
	root := ports.RunOptions{Root: true}

	log.Info().Str("container", container.Name()).Msg("updating container")
	if err := container.Run(ctx, []string{"apt-get", "update"}, root); err != nil {
		return nil, types.ResolutionReport{}, err
	}
	if err := aptInstall(ctx, container, table.Base.Build); err != nil {
		return nil, types.ResolutionReport{}, err
	}

	tool := s.buildTool(container, target)
	if err := tool.Install(ctx); err != nil {
		return nil, types.ResolutionReport{}, err
	}
	if err := tool.Configure(ctx, target.Layout.JHBuildConfig()); err != nil {
		return nil, types.ResolutionReport{}, err
	}

	index := s.index(container)
	pass := core.NewPass(core.NewResolver(index, table))
	modules := part.Modules.Build()

	log.Info().Msg("finding dependencies")
	pass.AddPackages(part.ContainerPackages)
	listed, err := tool.List(ctx, modules)
	if err != nil {
		return nil, types.ResolutionReport{}, err
	}
	pass.AddModules(listed)

	if err := index.UpdateFileIndex(ctx); err != nil {
		return nil, types.ResolutionReport{}, err
	}
	lines, err := tool.Sysdeps(ctx, modules)
	if err != nil {
		return nil, types.ResolutionReport{}, err
	}
	groups := core.ParseReport(lines)
	if err := pass.AddReport(ctx, groups); err != nil {
		return nil, types.ResolutionReport{}, err
	}
	set, err := pass.Finish(ctx)
	if err != nil {
		return nil, types.ResolutionReport{}, err
	}

	log.Info().Int("packages", len(set.BuildList())).Msg("installing dependencies")
	if err := aptInstall(ctx, container, set.BuildList()); err != nil {
		return nil, types.ResolutionReport{}, err
	}

	if !part.DisableJHUpdate {
		log.Info().Strs("modules", modules).Msg("downloading modules")
		if err := tool.Update(ctx, modules); err != nil {
			return nil, types.ResolutionReport{}, err
		}
	}
	return set, pass.Report(), nil
}

func aptInstall(ctx context.Context, container ports.ContainerPort, packages []string) error {
	if len(packages) == 0 {
		return nil
	}
	args := append([]string{"apt-get", "install", "-y"}, packages...)
	return container.Run(ctx, args, ports.RunOptions{Root: true})
}

// mirrorExpression rewrites every http(s):// prefix in sources.list to
// point at mirror.
func mirrorExpression(mirror string) string {
	escaped := strings.ReplaceAll(strings.TrimSuffix(mirror, "/"), "/", `\/`)
	return `s/https\?:\/\//` + escaped + `\//`
}

func stopQuietly(ctx context.Context, container ports.ContainerPort) {
	if err := container.Stop(ctx); err != nil {
		log.Debug().Err(err).Str("container", container.Name()).Msg("ignoring stop failure after error")
	}
}
