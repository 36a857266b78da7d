package adapters

import (
	"context"
	"strings"

	"jhbuild-lxc/internal/ports"
	"jhbuild-lxc/internal/shared"
	"jhbuild-lxc/internal/types"
)

// AptIndexAdapter answers package index queries with apt-file and
// apt-cache inside a container.
type AptIndexAdapter struct {
	Container ports.ContainerPort
}

func NewAptIndexAdapter(container ports.ContainerPort) AptIndexAdapter {
	return AptIndexAdapter{Container: container}
}

func (a AptIndexAdapter) SearchFile(ctx context.Context, pattern string) ([]types.FileMatch, error) {
	quoted, err := shared.ShellQuote(pattern)
	if err != nil {
		return nil, quoteFailed(err)
	}
	// apt-file exits 1 when nothing matches; any other failure is fatal.
	out, err := a.Container.Output(ctx, []string{"sh", "-c", "apt-file search " + quoted + " || [ $? -eq 1 ]"}, ports.RunOptions{Root: true})
	if err != nil {
		return nil, err
	}
	return parseFileSearch(out), nil
}

func (a AptIndexAdapter) Depends(ctx context.Context, pkg string) ([][]string, error) {
	out, err := a.Container.Output(ctx, []string{"apt-cache", "depends", "-i", pkg}, ports.RunOptions{})
	if err != nil {
		return nil, err
	}
	return parseDepends(out), nil
}

func (a AptIndexAdapter) ReverseProvides(ctx context.Context, name string) ([]string, error) {
	out, err := a.Container.Output(ctx, []string{"apt-cache", "showpkg", name}, ports.RunOptions{})
	if err != nil {
		return nil, err
	}
	return parseReverseProvides(out), nil
}

func (a AptIndexAdapter) UpdateFileIndex(ctx context.Context) error {
	return a.Container.Run(ctx, []string{"apt-file", "update"}, ports.RunOptions{Root: true})
}

// parseFileSearch parses "package: /path" lines.
func parseFileSearch(output string) []types.FileMatch {
	var matches []types.FileMatch
	for _, line := range shared.NonEmptyLines(output) {
		pkg, path, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		matches = append(matches, types.FileMatch{
			Package: strings.TrimSpace(pkg),
			Path:    strings.TrimSpace(path),
		})
	}
	return matches
}

// parseDepends parses "apt-cache depends" output into dependency groups.
// A line starting with "|" is followed by an alternative of the same
// group. Virtual names keep their angle brackets.
func parseDepends(output string) [][]string {
	var groups [][]string
	continued := false
	for _, line := range shared.NonEmptyLines(output) {
		if !strings.Contains(line, "Depends:") {
			continue
		}
		alternative := strings.HasPrefix(line, "|")
		_, name, _ := strings.Cut(line, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			continued = alternative
			continue
		}
		if continued && len(groups) > 0 {
			groups[len(groups)-1] = append(groups[len(groups)-1], name)
		} else {
			groups = append(groups, []string{name})
		}
		continued = alternative
	}
	return groups
}

// parseReverseProvides returns the first field of every line in the
// "Reverse Provides:" section of "apt-cache showpkg" output.
func parseReverseProvides(output string) []string {
	var providers []string
	inSection := false
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "Reverse Provides:") {
			inSection = true
			continue
		}
		if !inSection || trimmed == "" {
			continue
		}
		providers = append(providers, strings.Fields(trimmed)[0])
	}
	return shared.UniqueStrings(providers)
}

var _ ports.PackageIndexPort = AptIndexAdapter{}
