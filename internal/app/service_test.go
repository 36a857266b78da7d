package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jhbuild-lxc/internal/types"
)

func TestBootstrapMirror(t *testing.T) {
	tests := []struct {
		name string
		part types.PartSpec
		want string
	}{
		{
			name: "lxc keeps the sources rewrite",
			part: types.PartSpec{Backend: types.BackendLXC, DebMirror: "http://localhost:3142", Distribution: "ubuntu", Architecture: "amd64"},
		},
		{
			name: "chroot without mirror",
			part: types.PartSpec{Backend: types.BackendChroot, Distribution: "ubuntu", Architecture: "amd64"},
		},
		{
			name: "ubuntu archive",
			part: types.PartSpec{Backend: types.BackendChroot, DebMirror: "http://localhost:3142/", Distribution: "ubuntu", Architecture: "amd64"},
			want: "http://localhost:3142/archive.ubuntu.com/ubuntu",
		},
		{
			name: "ubuntu ports",
			part: types.PartSpec{Backend: types.BackendChroot, DebMirror: "http://localhost:3142", Distribution: "ubuntu", Architecture: "arm64"},
			want: "http://localhost:3142/ports.ubuntu.com/ubuntu-ports",
		},
		{
			name: "debian",
			part: types.PartSpec{Backend: types.BackendChroot, DebMirror: "http://localhost:3142", Distribution: "debian", Architecture: "amd64"},
			want: "http://localhost:3142/deb.debian.org/debian",
		},
		{
			name: "unknown distribution falls back to the rewrite",
			part: types.PartSpec{Backend: types.BackendChroot, DebMirror: "http://localhost:3142", Distribution: "fedora", Architecture: "amd64"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Layout{Part: tt.part}.BootstrapMirror())
		})
	}
}

func TestChrootConfigUsesCallerUID(t *testing.T) {
	part := types.PartSpec{
		Name:          "gnome",
		SnapName:      "demo",
		SnapRevision:  "current",
		Backend:       types.BackendChroot,
		Distribution:  "ubuntu",
		Release:       "noble",
		Architecture:  "amd64",
		DebMirror:     "http://localhost:3142",
		ContainerName: "snapcraft-demo-gnome",
	}
	layout, err := newLayout(part, t.TempDir(), "")
	require.NoError(t, err)

	cfg := chrootConfig(Target{Part: part, Layout: layout, Sudo: true}, 1001)
	assert.Equal(t, 1001, cfg.UID)
	assert.Equal(t, "http://localhost:3142/archive.ubuntu.com/ubuntu", cfg.Mirror)
	assert.Equal(t, layout.ChrootRoot(), cfg.Root)
	assert.Equal(t, "/snap/demo/current", cfg.Prefix)
	assert.Equal(t, "noble", cfg.Release)
	assert.True(t, cfg.Sudo)
	assert.Equal(t, layout.Mounts(), cfg.Mounts)
}

func TestPullChrootBootstrapsFromMirror(t *testing.T) {
	h := newHarness(t, samplePart+"backend: chroot\ndebmirror: http://localhost:3142\n")

	_, err := h.service.Pull(t.Context(), PullRequest{PartRequest: h.request})
	require.NoError(t, err)

	require.Len(t, h.targets, 1)
	assert.Equal(t, "http://localhost:3142/archive.ubuntu.com/ubuntu", h.targets[0].Layout.BootstrapMirror())
	assert.Contains(t, h.container.calls, "create")
	assert.Empty(t, h.container.runs("root: sed"))
}
