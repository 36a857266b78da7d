package adapters

import (
	"context"

	"github.com/rs/zerolog/log"

	"jhbuild-lxc/internal/ports"
	"jhbuild-lxc/internal/shared"
	"jhbuild-lxc/internal/types"
)

// JHBuildTool installs and runs jhbuild inside a container as the build
// user.
type JHBuildTool struct {
	Container ports.ContainerPort
	Repo      string
	SourceDir string
	Prefix    string
	RCPath    string
}

func NewJHBuildTool(container ports.ContainerPort, repo string, sourceDir string, prefix string, rcPath string) JHBuildTool {
	if repo == "" {
		repo = types.DefaultJHBuildRepo
	}
	return JHBuildTool{
		Container: container,
		Repo:      repo,
		SourceDir: sourceDir,
		Prefix:    prefix,
		RCPath:    rcPath,
	}
}

func (t JHBuildTool) Install(ctx context.Context) error {
	log.Info().Str("source", t.SourceDir).Msg("installing jhbuild")
	if err := t.Container.Run(ctx, []string{"git", "clone", t.Repo, t.SourceDir}, ports.RunOptions{}); err != nil {
		log.Info().Err(err).Msg("clone failed, updating the existing checkout")
		if err := t.Container.Run(ctx, []string{"git", "pull"}, ports.RunOptions{Dir: t.SourceDir}); err != nil {
			return err
		}
	}
	in := ports.RunOptions{Dir: t.SourceDir}
	steps := [][]string{
		{"./autogen.sh", "--prefix=" + t.Prefix},
		{"make"},
		{"make", "install"},
	}
	for _, step := range steps {
		if err := t.Container.Run(ctx, step, in); err != nil {
			return err
		}
	}
	return nil
}

func (t JHBuildTool) Configure(ctx context.Context, cfg types.JHBuildConfig) error {
	return t.Container.Write(ctx, t.RCPath, []byte(RenderJHBuildRC(cfg)), ports.RunOptions{})
}

func (t JHBuildTool) List(ctx context.Context, modules []string) ([]string, error) {
	return t.output(ctx, append([]string{"list"}, modules...))
}

func (t JHBuildTool) Sysdeps(ctx context.Context, modules []string) ([]string, error) {
	return t.output(ctx, append([]string{"sysdeps", "--dump-all"}, modules...))
}

func (t JHBuildTool) Update(ctx context.Context, modules []string) error {
	log.Info().Strs("modules", modules).Msg("downloading modules")
	return t.Container.Run(ctx, t.command(append([]string{"update"}, modules...)), ports.RunOptions{})
}

func (t JHBuildTool) Build(ctx context.Context, modules []string) error {
	log.Info().Strs("modules", modules).Msg("building modules")
	return t.Container.Run(ctx, t.command(append([]string{"build"}, modules...)), ports.RunOptions{})
}

func (t JHBuildTool) output(ctx context.Context, args []string) ([]string, error) {
	out, err := t.Container.Output(ctx, t.command(args), ports.RunOptions{})
	if err != nil {
		return nil, err
	}
	return shared.NonEmptyLines(out), nil
}

func (t JHBuildTool) command(args []string) []string {
	return append([]string{"jhbuild", "-f", t.RCPath}, args...)
}

var _ ports.BuildToolPort = JHBuildTool{}
