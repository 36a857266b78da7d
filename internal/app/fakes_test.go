package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"jhbuild-lxc/internal/adapters"
	"jhbuild-lxc/internal/ports"
	"jhbuild-lxc/internal/types"
)

type fakeContainer struct {
	name    string
	exists  bool
	calls   []string
	runErr  map[string]error
	started int
	stopped int
}

func (c *fakeContainer) record(call string) {
	c.calls = append(c.calls, call)
}

func (c *fakeContainer) Name() string { return c.name }

func (c *fakeContainer) Exists(context.Context) (bool, error) { return c.exists, nil }

func (c *fakeContainer) Create(context.Context) error {
	c.record("create")
	c.exists = true
	return nil
}

func (c *fakeContainer) Start(context.Context) error {
	c.record("start")
	c.started++
	return nil
}

func (c *fakeContainer) Stop(context.Context) error {
	c.record("stop")
	c.stopped++
	return nil
}

func (c *fakeContainer) Destroy(context.Context) error {
	c.record("destroy")
	c.exists = false
	return nil
}

func (c *fakeContainer) Run(_ context.Context, args []string, opts ports.RunOptions) error {
	line := strings.Join(args, " ")
	if opts.Root {
		line = "root: " + line
	}
	c.record(line)
	return c.runErr[line]
}

func (c *fakeContainer) Output(ctx context.Context, args []string, opts ports.RunOptions) (string, error) {
	return "", c.Run(ctx, args, opts)
}

func (c *fakeContainer) Write(_ context.Context, path string, _ []byte, _ ports.RunOptions) error {
	c.record("write " + path)
	return nil
}

func (c *fakeContainer) runs(prefix string) []string {
	var out []string
	for _, call := range c.calls {
		if strings.HasPrefix(call, prefix) {
			out = append(out, call)
		}
	}
	return out
}

type fakeTool struct {
	listed   []string
	sysdeps  []string
	calls    []string
	config   types.JHBuildConfig
	buildErr error
}

func (t *fakeTool) Install(context.Context) error {
	t.calls = append(t.calls, "install")
	return nil
}

func (t *fakeTool) Configure(_ context.Context, cfg types.JHBuildConfig) error {
	t.calls = append(t.calls, "configure")
	t.config = cfg
	return nil
}

func (t *fakeTool) List(_ context.Context, modules []string) ([]string, error) {
	t.calls = append(t.calls, "list "+strings.Join(modules, " "))
	return t.listed, nil
}

func (t *fakeTool) Sysdeps(_ context.Context, modules []string) ([]string, error) {
	t.calls = append(t.calls, "sysdeps "+strings.Join(modules, " "))
	return t.sysdeps, nil
}

func (t *fakeTool) Update(_ context.Context, modules []string) error {
	t.calls = append(t.calls, "update "+strings.Join(modules, " "))
	return nil
}

func (t *fakeTool) Build(_ context.Context, modules []string) error {
	t.calls = append(t.calls, "build "+strings.Join(modules, " "))
	return t.buildErr
}

type fakeIndex struct {
	files    map[string][]types.FileMatch
	depends  map[string][][]string
	provides map[string][]string
	updated  int
}

func (i *fakeIndex) SearchFile(_ context.Context, pattern string) ([]types.FileMatch, error) {
	return i.files[pattern], nil
}

func (i *fakeIndex) Depends(_ context.Context, pkg string) ([][]string, error) {
	return i.depends[pkg], nil
}

func (i *fakeIndex) ReverseProvides(_ context.Context, name string) ([]string, error) {
	return i.provides[name], nil
}

func (i *fakeIndex) UpdateFileIndex(context.Context) error {
	i.updated++
	return nil
}

type fakeHost struct{}

func (fakeHost) Distribution() (string, string, error) { return "ubuntu", "noble", nil }

func (fakeHost) Architecture() (string, error) { return "amd64", nil }

// harness wires a Service against fakes, with a part file and work dirs in
// a temp dir.
type harness struct {
	service   Service
	container *fakeContainer
	tool      *fakeTool
	index     *fakeIndex
	targets   []Target
	request   PartRequest
	uid       int
}

func newHarness(t *testing.T, partYAML string) *harness {
	t.Helper()
	root := t.TempDir()
	partPath := filepath.Join(root, "part.yaml")
	require.NoError(t, os.WriteFile(partPath, []byte(partYAML), 0644))

	h := &harness{
		container: &fakeContainer{name: "snapcraft-demo-gnome"},
		tool:      &fakeTool{},
		index: &fakeIndex{
			files:    map[string][]types.FileMatch{},
			depends:  map[string][][]string{},
			provides: map[string][]string{},
		},
		request: PartRequest{
			PartPath:   partPath,
			WorkDir:    filepath.Join(root, "parts", "gnome", "src"),
			InstallDir: filepath.Join(root, "parts", "gnome", "install"),
		},
		uid: 1000,
	}
	h.service = Service{
		PartLoader: adapters.NewPartFileAdapter(),
		Exceptions: adapters.NewExceptionTableAdapter(),
		Host:       fakeHost{},
		Workspace:  adapters.NewWorkspaceAdapter(),
		Identity:   func() (int, int) { return h.uid, 1000 },
		Containers: func(target Target, _ ports.ReadinessPort) ports.ContainerPort {
			h.targets = append(h.targets, target)
			return h.container
		},
		BuildTools: func(ports.ContainerPort, Target) ports.BuildToolPort { return h.tool },
		Indexes:    func(ports.ContainerPort) ports.PackageIndexPort { return h.index },
	}
	return h
}

const samplePart = `
name: gnome
snap-name: demo
modules:
  - gnome-calculator
  - -gtk-doc
container-packages:
  - libglib2.0-bin
`
