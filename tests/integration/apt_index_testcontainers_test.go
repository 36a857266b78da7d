//go:build integration

package integration

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcexec "github.com/testcontainers/testcontainers-go/exec"
	"github.com/testcontainers/testcontainers-go/wait"

	"jhbuild-lxc/internal/adapters"
	"jhbuild-lxc/internal/core"
	"jhbuild-lxc/internal/ports"
)

// dockerContainer runs commands in an already started testcontainer.
// Lifecycle calls are no-ops; the test owns the container.
type dockerContainer struct {
	container testcontainers.Container
}

func (d dockerContainer) Name() string { return "apt-index-test" }

func (d dockerContainer) Exists(context.Context) (bool, error) { return true, nil }

func (d dockerContainer) Create(context.Context) error { return nil }

func (d dockerContainer) Start(context.Context) error { return nil }

func (d dockerContainer) Stop(context.Context) error { return nil }

func (d dockerContainer) Destroy(context.Context) error { return nil }

func (d dockerContainer) Run(ctx context.Context, args []string, opts ports.RunOptions) error {
	_, err := d.Output(ctx, args, opts)
	return err
}

func (d dockerContainer) Output(ctx context.Context, args []string, _ ports.RunOptions) (string, error) {
	code, reader, err := d.container.Exec(ctx, args, tcexec.Multiplexed())
	if err != nil {
		return "", err
	}
	out, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	if code != 0 {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("%s exited %d", strings.Join(args, " "), code)).
			WithCause(fmt.Errorf("%s", strings.TrimSpace(string(out))))
	}
	return string(out), nil
}

func (d dockerContainer) Write(context.Context, string, []byte, ports.RunOptions) error {
	return errbuilder.New().WithCode(errbuilder.CodeInternal).WithMsg("write not supported")
}

func startUbuntu(ctx context.Context, t *testing.T) dockerContainer {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:      "ubuntu:24.04",
		Cmd:        []string{"sleep", "infinity"},
		WaitingFor: wait.ForExec([]string{"true"}).WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})
	return dockerContainer{container: container}
}

func TestAptIndexAgainstUbuntu(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers integration in short mode")
	}
	ctx := t.Context()
	container := startUbuntu(ctx, t)

	root := ports.RunOptions{Root: true}
	require.NoError(t, container.Run(ctx, []string{"apt-get", "update"}, root))
	require.NoError(t, container.Run(ctx, []string{"sh", "-c", "DEBIAN_FRONTEND=noninteractive apt-get install -y apt-file"}, root))

	index := adapters.NewAptIndexAdapter(container)
	require.NoError(t, index.UpdateFileIndex(ctx))

	matches, err := index.SearchFile(ctx, "/usr/include/zlib.h")
	require.NoError(t, err)
	var packages []string
	for _, m := range matches {
		packages = append(packages, m.Package)
	}
	assert.Contains(t, packages, "zlib1g-dev")

	depends, err := index.Depends(ctx, "zlib1g-dev")
	require.NoError(t, err)
	require.NotEmpty(t, depends)
	assert.Equal(t, "zlib1g", strings.Split(depends[0][0], ":")[0])

	providers, err := index.ReverseProvides(ctx, "libz-dev")
	require.NoError(t, err)
	assert.Contains(t, providers, "zlib1g-dev")

	table, err := adapters.NewExceptionTableAdapter().LoadTable(nil)
	require.NoError(t, err)
	pass := core.NewPass(core.NewResolver(index, table))
	groups := core.ParseReport([]string{"c_include:zlib.h", "pkgconfig:libpng"})
	require.NoError(t, pass.AddReport(ctx, groups))
	set, err := pass.Finish(ctx)
	require.NoError(t, err)

	assert.True(t, set.HasBuild("zlib1g-dev"))
	assert.True(t, set.HasBuild("libpng-dev"))
	assert.True(t, set.HasStage("zlib1g"))
}
