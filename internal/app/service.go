package app

import (
	"os"

	"jhbuild-lxc/internal/adapters"
	"jhbuild-lxc/internal/ports"
	"jhbuild-lxc/internal/types"
)

// Target is everything a use case knows about the part it operates on.
type Target struct {
	Part   types.PartSpec
	Layout Layout
	Sudo   bool
}

type ContainerFactory func(target Target, readiness ports.ReadinessPort) ports.ContainerPort
type BuildToolFactory func(container ports.ContainerPort, target Target) ports.BuildToolPort
type IndexFactory func(container ports.ContainerPort) ports.PackageIndexPort
type OutputFactory func(dir string) ports.OutputPort

type Service struct {
	PartLoader ports.PartSpecPort
	Exceptions ports.ExceptionTablePort
	Host       ports.HostPort
	Workspace  ports.WorkspacePort
	Runner     ports.CommandRunner
	// Identity returns the effective uid and gid of the caller.
	Identity func() (int, int)

	Containers ContainerFactory
	BuildTools BuildToolFactory
	Indexes    IndexFactory
	Outputs    OutputFactory
}

func NewService() Service {
	return Service{
		PartLoader: adapters.NewPartFileAdapter(),
		Exceptions: adapters.NewExceptionTableAdapter(),
		Host:       adapters.NewHostAdapter(),
		Workspace:  adapters.NewWorkspaceAdapter(),
		Runner:     adapters.NewExecRunner(),
		Identity: func() (int, int) {
			return os.Geteuid(), os.Getegid()
		},
	}
}

func (s Service) container(target Target) (ports.ContainerPort, error) {
	timeout, err := adapters.ParseTimeout(target.Part.ReadinessTimeout, 0)
	if err != nil {
		return nil, err
	}
	readiness := adapters.NewNetworkReadiness(target.Part.ReadinessHost, timeout)
	if s.Containers != nil {
		return s.Containers(target, readiness), nil
	}

	part := target.Part
	layout := target.Layout
	uid, gid := s.identity()
	if part.Backend == types.BackendChroot {
		return adapters.NewChrootContainer(chrootConfig(target, uid), s.Runner, readiness), nil
	}
	return adapters.NewLXCContainer(adapters.LXCContainerConfig{
		Name:         part.ContainerName,
		Distribution: part.Distribution,
		Release:      part.Release,
		Architecture: part.Architecture,
		ConfigPath:   layout.LXCConfPath(),
		Config: types.LXCConfig{
			Include: adapters.DefaultLXCInclude,
			IDMaps:  adapters.UnprivilegedIDMaps(uid, gid),
			Mounts:  layout.Mounts(),
		},
		Prefix: layout.Prefix(),
	}, s.Runner, readiness), nil
}

func chrootConfig(target Target, uid int) adapters.ChrootContainerConfig {
	return adapters.ChrootContainerConfig{
		Name:         target.Part.ContainerName,
		Root:         target.Layout.ChrootRoot(),
		Release:      target.Part.Release,
		Architecture: target.Part.Architecture,
		Mirror:       target.Layout.BootstrapMirror(),
		Mounts:       target.Layout.Mounts(),
		Prefix:       target.Layout.Prefix(),
		UID:          uid,
		Sudo:         target.Sudo,
	}
}

func (s Service) buildTool(container ports.ContainerPort, target Target) ports.BuildToolPort {
	if s.BuildTools != nil {
		return s.BuildTools(container, target)
	}
	layout := target.Layout
	return adapters.NewJHBuildTool(container, target.Part.JHBuildRepo, layout.JHSource(), layout.Prefix(), layout.JHBuildRC())
}

func (s Service) index(container ports.ContainerPort) ports.PackageIndexPort {
	if s.Indexes != nil {
		return s.Indexes(container)
	}
	return adapters.NewAptIndexAdapter(container)
}

func (s Service) output(dir string) ports.OutputPort {
	if s.Outputs != nil {
		return s.Outputs(dir)
	}
	return adapters.NewOutputFileAdapter(dir)
}

func (s Service) identity() (int, int) {
	if s.Identity == nil {
		return os.Geteuid(), os.Getegid()
	}
	return s.Identity()
}
