package adapters

import (
	"context"
	"os"
	"path/filepath"
	"slices"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"jhbuild-lxc/internal/ports"
	"jhbuild-lxc/internal/shared"
	"jhbuild-lxc/internal/types"
)

type LXCContainerConfig struct {
	Name         string
	Distribution string
	Release      string
	Architecture string
	// ConfigPath is the host lxc.conf. It is written on first Create and
	// kept afterwards.
	ConfigPath string
	Config     types.LXCConfig
	// Prefix is the in-container install prefix; its owner is the build
	// user.
	Prefix string
}

// LXCContainer drives an unprivileged LXC container through the lxc-*
// command line tools.
type LXCContainer struct {
	Config    LXCContainerConfig
	Runner    ports.CommandRunner
	Readiness ports.ReadinessPort

	user string
}

func NewLXCContainer(cfg LXCContainerConfig, runner ports.CommandRunner, readiness ports.ReadinessPort) *LXCContainer {
	return &LXCContainer{Config: cfg, Runner: runner, Readiness: readiness}
}

func (c *LXCContainer) Name() string {
	return c.Config.Name
}

func (c *LXCContainer) Exists(ctx context.Context) (bool, error) {
	names, err := c.list(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(names, c.Config.Name), nil
}

func (c *LXCContainer) Create(ctx context.Context) error {
	if err := c.writeConfig(ctx); err != nil {
		return err
	}
	log.Info().
		Str("container", c.Config.Name).
		Str("distribution", c.Config.Distribution).
		Str("release", c.Config.Release).
		Str("architecture", c.Config.Architecture).
		Msg("creating container")
	return c.host(ctx, "lxc-create",
		"-n", c.Config.Name,
		"-f", c.Config.ConfigPath,
		"-t", "download",
		"--",
		"-d", c.Config.Distribution,
		"-r", c.Config.Release,
		"-a", c.Config.Architecture,
	)
}

func (c *LXCContainer) Start(ctx context.Context) error {
	stopped, err := c.list(ctx, "--stopped")
	if err != nil {
		return err
	}
	if slices.Contains(stopped, c.Config.Name) {
		log.Info().Str("container", c.Config.Name).Msg("starting container")
		if err := c.host(ctx, "lxc-start", "-n", c.Config.Name); err != nil {
			return err
		}
	} else {
		frozen, err := c.list(ctx, "--frozen")
		if err != nil {
			return err
		}
		if slices.Contains(frozen, c.Config.Name) {
			log.Info().Str("container", c.Config.Name).Msg("unfreezing container")
			if err := c.host(ctx, "lxc-unfreeze", "-n", c.Config.Name); err != nil {
				return err
			}
		}
	}
	if err := c.host(ctx, "lxc-wait", "-n", c.Config.Name, "-s", "RUNNING"); err != nil {
		return err
	}
	if c.Readiness == nil {
		return nil
	}
	return c.Readiness.Wait(ctx, c)
}

func (c *LXCContainer) Stop(ctx context.Context) error {
	log.Info().Str("container", c.Config.Name).Msg("stopping container")
	ignoreFailure("lxc-stop", c.host(ctx, "lxc-stop", "-n", c.Config.Name))
	return c.host(ctx, "lxc-wait", "-n", c.Config.Name, "-s", "STOPPED")
}

func (c *LXCContainer) Destroy(ctx context.Context) error {
	exists, err := c.Exists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		log.Debug().Str("container", c.Config.Name).Msg("container already gone")
		return nil
	}
	ignoreFailure("stop", c.Stop(ctx))
	log.Info().Str("container", c.Config.Name).Msg("destroying container")
	ignoreFailure("lxc-destroy", c.host(ctx, "lxc-destroy", "-n", c.Config.Name, "-s"))
	c.user = ""
	return nil
}

func (c *LXCContainer) Run(ctx context.Context, args []string, opts ports.RunOptions) error {
	attach, err := c.attachArgs(ctx, args, opts)
	if err != nil {
		return err
	}
	return c.Runner.Run(ctx, ports.Command{Name: "lxc-attach", Args: attach, Stdin: opts.Stdin})
}

func (c *LXCContainer) Output(ctx context.Context, args []string, opts ports.RunOptions) (string, error) {
	attach, err := c.attachArgs(ctx, args, opts)
	if err != nil {
		return "", err
	}
	return c.Runner.Output(ctx, ports.Command{Name: "lxc-attach", Args: attach, Stdin: opts.Stdin})
}

func (c *LXCContainer) Write(ctx context.Context, path string, data []byte, opts ports.RunOptions) error {
	return writeThroughShell(ctx, c, path, data, opts)
}

func (c *LXCContainer) attachArgs(ctx context.Context, args []string, opts ports.RunOptions) ([]string, error) {
	var env []string
	var inner []string
	if opts.Root {
		env = containerEnv(c.Config.Prefix, homeFor("root"))
		wrapped, err := wrapRootCommand(args, opts.Dir)
		if err != nil {
			return nil, err
		}
		inner = wrapped
	} else {
		user, err := c.buildUser(ctx)
		if err != nil {
			return nil, err
		}
		env = containerEnv(c.Config.Prefix, homeFor(user))
		wrapped, err := wrapUserCommand(args, env, user, opts.Dir)
		if err != nil {
			return nil, err
		}
		inner = wrapped
	}

	attach := []string{"-n", c.Config.Name, "--clear-env"}
	for _, kv := range env {
		attach = append(attach, "-v", kv)
	}
	attach = append(attach, "--")
	return append(attach, inner...), nil
}

func (c *LXCContainer) buildUser(ctx context.Context) (string, error) {
	if c.user != "" {
		return c.user, nil
	}
	user, err := discoverUser(ctx, c, c.Config.Prefix, mappedUID)
	if err != nil {
		return "", err
	}
	c.user = user
	return user, nil
}

func (c *LXCContainer) writeConfig(ctx context.Context) error {
	if c.Config.ConfigPath == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("lxc config path is empty")
	}
	if _, err := os.Stat(c.Config.ConfigPath); err == nil {
		log.Debug().Str("path", c.Config.ConfigPath).Msg("keeping existing lxc config")
		return nil
	}
	cfg := c.Config.Config
	if cfg.IDMapKey == "" {
		version, err := c.Runner.Output(ctx, ports.Command{Name: "lxc-create", Args: []string{"--version"}})
		if err != nil {
			return err
		}
		cfg.IDMapKey = idMapKeyForVersion(version)
	}
	if err := os.MkdirAll(filepath.Dir(c.Config.ConfigPath), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create lxc config directory").
			WithCause(err)
	}
	if err := os.WriteFile(c.Config.ConfigPath, []byte(RenderLXCConfig(cfg)), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write lxc config").
			WithCause(err)
	}
	return nil
}

func (c *LXCContainer) list(ctx context.Context, flags ...string) ([]string, error) {
	out, err := c.Runner.Output(ctx, ports.Command{Name: "lxc-ls", Args: append([]string{"-1"}, flags...)})
	if err != nil {
		return nil, err
	}
	return shared.NonEmptyLines(out), nil
}

func (c *LXCContainer) host(ctx context.Context, name string, args ...string) error {
	return c.Runner.Run(ctx, ports.Command{Name: name, Args: args})
}

var _ ports.ContainerPort = (*LXCContainer)(nil)
