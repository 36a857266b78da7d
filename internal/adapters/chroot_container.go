package adapters

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"jhbuild-lxc/internal/ports"
	"jhbuild-lxc/internal/types"
)

type ChrootContainerConfig struct {
	Name         string
	Root         string
	Release      string
	Architecture string
	// Mirror is passed to debootstrap; empty uses its default archive.
	Mirror       string
	// Mounts are bound under Root on Start; targets are relative to Root.
	Mounts []types.BindMount
	Prefix string
	// UID is the host uid owning the bind mounts; the build user is created
	// with it since a chroot has no id mapping.
	UID int
	// Sudo prefixes privileged host commands with sudo.
	Sudo bool
}

// ChrootContainer is a debootstrap tree entered with chroot. It needs
// root on the host for mounting and chrooting.
type ChrootContainer struct {
	Config    ChrootContainerConfig
	Runner    ports.CommandRunner
	Readiness ports.ReadinessPort

	user string
}

func NewChrootContainer(cfg ChrootContainerConfig, runner ports.CommandRunner, readiness ports.ReadinessPort) *ChrootContainer {
	return &ChrootContainer{Config: cfg, Runner: runner, Readiness: readiness}
}

func (c *ChrootContainer) Name() string {
	return c.Config.Name
}

func (c *ChrootContainer) Exists(context.Context) (bool, error) {
	_, err := os.Stat(filepath.Join(c.Config.Root, "etc", "debian_version"))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("failed to inspect chroot " + c.Config.Root).
		WithCause(err)
}

func (c *ChrootContainer) Create(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(c.Config.Root), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create chroot parent directory").
			WithCause(err)
	}
	args := []string{"--arch", c.Config.Architecture, c.Config.Release, c.Config.Root}
	if c.Config.Mirror != "" {
		args = append(args, c.Config.Mirror)
	}
	log.Info().
		Str("container", c.Config.Name).
		Str("root", c.Config.Root).
		Str("release", c.Config.Release).
		Msg("bootstrapping chroot")
	return c.host(ctx, "debootstrap", args...)
}

func (c *ChrootContainer) Start(ctx context.Context) error {
	for _, m := range c.mounts() {
		target := filepath.Join(c.Config.Root, m.target)
		if c.mounted(ctx, target) {
			continue
		}
		if err := c.host(ctx, "mkdir", "-p", target); err != nil {
			return err
		}
		if err := c.host(ctx, "mount", append(m.args, target)...); err != nil {
			return err
		}
	}
	if err := c.host(ctx, "cp", "/etc/resolv.conf", filepath.Join(c.Config.Root, "etc", "resolv.conf")); err != nil {
		return err
	}
	if c.Readiness == nil {
		return nil
	}
	return c.Readiness.Wait(ctx, c)
}

func (c *ChrootContainer) Stop(ctx context.Context) error {
	mounts := c.mounts()
	slices.Reverse(mounts)
	for _, m := range mounts {
		target := filepath.Join(c.Config.Root, m.target)
		if !c.mounted(ctx, target) {
			continue
		}
		ignoreFailure("umount "+target, c.host(ctx, "umount", target))
	}
	return nil
}

func (c *ChrootContainer) Destroy(ctx context.Context) error {
	exists, err := c.Exists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	ignoreFailure("stop", c.Stop(ctx))
	log.Info().Str("container", c.Config.Name).Str("root", c.Config.Root).Msg("removing chroot")
	ignoreFailure("rm", c.host(ctx, "rm", "-rf", "--one-file-system", c.Config.Root))
	c.user = ""
	return nil
}

func (c *ChrootContainer) Run(ctx context.Context, args []string, opts ports.RunOptions) error {
	cmd, err := c.chrootCommand(ctx, args, opts)
	if err != nil {
		return err
	}
	return c.Runner.Run(ctx, cmd)
}

func (c *ChrootContainer) Output(ctx context.Context, args []string, opts ports.RunOptions) (string, error) {
	cmd, err := c.chrootCommand(ctx, args, opts)
	if err != nil {
		return "", err
	}
	return c.Runner.Output(ctx, cmd)
}

func (c *ChrootContainer) Write(ctx context.Context, path string, data []byte, opts ports.RunOptions) error {
	return writeThroughShell(ctx, c, path, data, opts)
}

func (c *ChrootContainer) chrootCommand(ctx context.Context, args []string, opts ports.RunOptions) (ports.Command, error) {
	var inner []string
	if opts.Root {
		wrapped, err := wrapRootCommand(args, opts.Dir)
		if err != nil {
			return ports.Command{}, err
		}
		inner = append([]string{"env", "-i"}, containerEnv(c.Config.Prefix, homeFor("root"))...)
		inner = append(inner, wrapped...)
	} else {
		user, err := c.buildUser(ctx)
		if err != nil {
			return ports.Command{}, err
		}
		wrapped, err := wrapUserCommand(args, containerEnv(c.Config.Prefix, homeFor(user)), user, opts.Dir)
		if err != nil {
			return ports.Command{}, err
		}
		inner = wrapped
	}
	return c.privileged("chroot", append([]string{c.Config.Root}, inner...), opts.Stdin), nil
}

func (c *ChrootContainer) buildUser(ctx context.Context) (string, error) {
	if c.user != "" {
		return c.user, nil
	}
	user, err := discoverUser(ctx, c, c.Config.Prefix, c.Config.UID)
	if err != nil {
		return "", err
	}
	c.user = user
	return user, nil
}

type chrootMount struct {
	target string
	args   []string
}

func (c *ChrootContainer) mounts() []chrootMount {
	mounts := []chrootMount{
		{target: "proc", args: []string{"-t", "proc", "proc"}},
		{target: "sys", args: []string{"-t", "sysfs", "sysfs"}},
		{target: "dev", args: []string{"--bind", "/dev"}},
		{target: "dev/pts", args: []string{"--bind", "/dev/pts"}},
	}
	for _, m := range c.Config.Mounts {
		mounts = append(mounts, chrootMount{target: m.Target, args: []string{"--bind", m.Source}})
	}
	return mounts
}

func (c *ChrootContainer) mounted(ctx context.Context, target string) bool {
	return c.Runner.Run(ctx, ports.Command{Name: "mountpoint", Args: []string{"-q", target}}) == nil
}

func (c *ChrootContainer) host(ctx context.Context, name string, args ...string) error {
	return c.Runner.Run(ctx, c.privileged(name, args, nil))
}

func (c *ChrootContainer) privileged(name string, args []string, stdin io.Reader) ports.Command {
	if !c.Config.Sudo {
		return ports.Command{Name: name, Args: args, Stdin: stdin}
	}
	return ports.Command{Name: "sudo", Args: append([]string{name}, args...), Stdin: stdin}
}

var _ ports.ContainerPort = (*ChrootContainer)(nil)
