package app

import (
	"errors"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRunsModules(t *testing.T) {
	h := newHarness(t, samplePart)
	h.container.exists = true

	result, err := h.service.Build(t.Context(), BuildRequest{PartRequest: h.request})
	require.NoError(t, err)
	assert.Equal(t, []string{"gnome-calculator"}, result.Modules)
	if diff := cmp.Diff([]string{"start", "stop"}, h.container.calls); diff != "" {
		t.Fatalf("unexpected container calls (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"build gnome-calculator"}, h.tool.calls)
}

func TestBuildRequiresContainer(t *testing.T) {
	h := newHarness(t, samplePart)

	_, err := h.service.Build(t.Context(), BuildRequest{PartRequest: h.request})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
	assert.Empty(t, h.tool.calls)
}

func TestBuildFailureStopsContainer(t *testing.T) {
	h := newHarness(t, samplePart)
	h.container.exists = true
	h.tool.buildErr = errors.New("make failed")

	_, err := h.service.Build(t.Context(), BuildRequest{PartRequest: h.request})
	require.Error(t, err)
	assert.Equal(t, 1, h.container.stopped)
}

func TestBuildDisabled(t *testing.T) {
	h := newHarness(t, samplePart+"disable-build: true\n")

	result, err := h.service.Build(t.Context(), BuildRequest{PartRequest: h.request})
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Empty(t, h.container.calls)
}

func TestCleanPull(t *testing.T) {
	h := newHarness(t, samplePart)
	h.container.exists = true

	result, err := h.service.CleanPull(t.Context(), CleanRequest{PartRequest: h.request})
	require.NoError(t, err)
	assert.True(t, result.Existed)
	assert.Equal(t, "snapcraft-demo-gnome", result.ContainerName)
	assert.Equal(t, []string{"destroy"}, h.container.calls)
}

func TestCleanPullContainerOverride(t *testing.T) {
	h := newHarness(t, samplePart)
	req := h.request
	req.ContainerName = "custom"
	req.Release = "jammy"

	_, err := h.service.CleanPull(t.Context(), CleanRequest{PartRequest: req})
	require.NoError(t, err)
	require.Len(t, h.targets, 1)
	assert.Equal(t, "custom", h.targets[0].Part.ContainerName)
	assert.Equal(t, "jammy", h.targets[0].Part.Release)
	assert.Equal(t, "ubuntu", h.targets[0].Part.Distribution)
}
