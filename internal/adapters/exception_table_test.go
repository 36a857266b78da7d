package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jhbuild-lxc/internal/types"
)

func TestExceptionTableDefaults(t *testing.T) {
	table, err := NewExceptionTableAdapter().LoadTable(nil)
	require.NoError(t, err)

	entry, ok := table.Sysdep("c_include:jpeglib.h")
	require.True(t, ok)
	assert.Equal(t, "libjpeg-dev", entry.Build)
	assert.Nil(t, entry.Stage)

	entry, ok = table.Sysdep("path:make")
	require.True(t, ok)
	require.NotNil(t, entry.Stage)
	assert.Equal(t, "", *entry.Stage)

	entry, ok = table.Sysdep("xml:-//OASIS//DTD DocBook XML V4.3//EN")
	require.True(t, ok)
	assert.True(t, entry.Skip)

	assert.Equal(t, []string{"valac"}, table.ModulePackages("vala"))
	assert.Contains(t, table.Base.Build, "apt-file")
	assert.Equal(t, []string{"python", "ttf-ubuntu-font-family", "adwaita-icon-theme-full"}, table.Base.Stage)
}

func TestExceptionTableLayering(t *testing.T) {
	dir := t.TempDir()
	layer := filepath.Join(dir, "sysdeps.yaml")
	require.NoError(t, os.WriteFile(layer, []byte(`
schema_version: "v1"
sysdeps:
  "pkgconfig:zlib":
    build: zlib1g-dev
    stage: zlib1g
  "c_include:webkit2/webkit2.h":
    build: libwebkit2gtk-4.0-dev
modules:
  vala: [valac, libvala-0.30-dev]
`), 0644))

	table, err := NewExceptionTableAdapter().LoadTable([]string{layer})
	require.NoError(t, err)

	entry, ok := table.Sysdep("pkgconfig:zlib")
	require.True(t, ok)
	assert.Equal(t, types.StagePtr("zlib1g"), entry.Stage)

	_, ok = table.Sysdep("c_include:webkit2/webkit2.h")
	assert.True(t, ok)
	_, ok = table.Sysdep("path:flex")
	assert.True(t, ok)

	assert.Equal(t, []string{"valac", "libvala-0.30-dev"}, table.ModulePackages("vala"))
	assert.Equal(t, []string{"libgl1-mesa-dev"}, table.ModulePackages("gst-plugins-bad"))
	assert.Contains(t, table.Base.Build, "git")
}

func TestExceptionTableRejectsInvalidLayers(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{
			name:    "missing schema version",
			content: "sysdeps: {}\n",
			message: "missing schema_version",
		},
		{
			name:    "unknown kind",
			content: "schema_version: v1\nsysdeps:\n  \"cmake:Foo\":\n    build: libfoo-dev\n",
			message: "not a known dependency kind",
		},
		{
			name:    "skip with packages",
			content: "schema_version: v1\nsysdeps:\n  \"path:flex\":\n    skip: true\n    build: flex\n",
			message: "combines skip",
		},
		{
			name:    "empty entry",
			content: "schema_version: v1\nsysdeps:\n  \"path:flex\": {}\n",
			message: "no build or stage package",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "layer.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := NewExceptionTableAdapter().LoadTable([]string{path})
			require.Error(t, err)
			assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestExceptionTableMissingLayer(t *testing.T) {
	_, err := NewExceptionTableAdapter().LoadTable([]string{filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}
