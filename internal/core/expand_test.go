package core

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jhbuild-lxc/internal/types"
)

func TestExpandRuntimeDeps(t *testing.T) {
	index := newFakeIndex()
	index.depends["libgtk-3-dev"] = [][]string{
		{"libgtk-3-0"},
		{"libglib2.0-dev"},
		{"libcairo2-dev", "libcairo-dev"},
		{"libc6:any"},
	}
	index.depends["libglib2.0-dev"] = [][]string{
		{"libglib2.0-0"},
		{"libpcre3-dev:amd64"},
	}
	index.depends["libcairo2-dev"] = [][]string{{"libcairo2"}}
	index.depends["libpcre3-dev"] = [][]string{{"libpcre3"}}
	resolver := NewResolver(index, types.ExceptionTable{})

	got, err := resolver.ExpandRuntimeDeps(t.Context(), []string{"libgtk-3-dev", "python-rdflib"})
	require.NoError(t, err)

	want := []string{"libc6", "libcairo2", "libglib2.0-0", "libgtk-3-0", "libpcre3", "python-rdflib"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected stage packages (-want +got):\n%s", diff)
	}
	assert.Zero(t, index.dependsCalls["libcairo-dev"])
	assert.Zero(t, index.dependsCalls["python-rdflib"])
}

func TestExpandRuntimeDepsVisitsEachNameOnce(t *testing.T) {
	index := newFakeIndex()
	index.depends["liba-dev"] = [][]string{{"libb-dev"}, {"liba1"}}
	index.depends["libb-dev"] = [][]string{{"libc-dev"}, {"liba-dev"}}
	index.depends["libc-dev"] = [][]string{{"liba-dev"}, {"libb-dev"}, {"libc1"}}
	resolver := NewResolver(index, types.ExceptionTable{})

	got, err := resolver.ExpandRuntimeDeps(t.Context(), []string{"liba-dev", "libb-dev", "liba-dev"})
	require.NoError(t, err)
	assert.Equal(t, []string{"liba1", "libc1"}, got)

	for name, count := range index.dependsCalls {
		assert.Equal(t, 1, count, name)
	}
	assert.Len(t, index.dependsCalls, 3)
}

func TestExpandRuntimeDepsResolvesVirtualFirstAlternative(t *testing.T) {
	index := newFakeIndex()
	index.depends["libjpeg-dev"] = [][]string{{"<libjpeg-turbo8-dev>"}}
	index.provides["libjpeg-turbo8-dev"] = []string{"libjpeg-turbo8-dev"}
	index.depends["libjpeg-turbo8-dev"] = [][]string{{"libjpeg-turbo8"}}
	resolver := NewResolver(index, types.ExceptionTable{})

	got, err := resolver.ExpandRuntimeDeps(t.Context(), []string{"libjpeg-dev"})
	require.NoError(t, err)
	assert.Equal(t, []string{"libjpeg-turbo8"}, got)
	assert.Equal(t, []string{"libjpeg-turbo8-dev"}, index.providesCalls)
}

func TestExpandRuntimeDepsDropsUnprovidedVirtual(t *testing.T) {
	logs := captureLogs(t)
	index := newFakeIndex()
	index.depends["libfoo-dev"] = [][]string{
		{"<libbar-abi>", "libbar2"},
		{"libfoo1"},
	}
	resolver := NewResolver(index, types.ExceptionTable{})

	got, err := resolver.ExpandRuntimeDeps(t.Context(), []string{"libfoo-dev"})
	require.NoError(t, err)
	assert.Equal(t, []string{"libfoo1"}, got)
	assert.Contains(t, logs.String(), "libbar-abi")
}

func TestExpandRuntimeDepsPropagatesIndexErrors(t *testing.T) {
	index := newFakeIndex()
	index.err = errors.New("apt-cache failed")
	resolver := NewResolver(index, types.ExceptionTable{})

	_, err := resolver.ExpandRuntimeDeps(t.Context(), []string{"libfoo-dev"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apt-cache failed")
}

func TestNormalizeAptName(t *testing.T) {
	tests := map[string]string{
		"libc6:any":    "libc6",
		" perl:amd64 ": "perl",
		"zlib1g":       "zlib1g",
		"":             "",
	}
	for input, want := range tests {
		assert.Equal(t, want, normalizeAptName(input), input)
	}
}
