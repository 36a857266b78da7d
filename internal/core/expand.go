package core

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

const devSuffix = "-dev"

// ExpandRuntimeDeps derives the stage packages for a set of build
// packages. Development packages are walked depth-first through their
// dependencies; every other name is a stage package. Each name is visited
// at most once, so dependency cycles terminate.
func (r Resolver) ExpandRuntimeDeps(ctx context.Context, build []string) ([]string, error) {
	seen := make(map[string]struct{})
	stage := make(map[string]struct{})
	var stack []string
	push := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		stack = append(stack, name)
	}
	for _, name := range build {
		push(normalizeAptName(name))
	}

	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !strings.HasSuffix(name, devSuffix) {
			stage[name] = struct{}{}
			continue
		}
		groups, err := r.Index.Depends(ctx, name)
		if err != nil {
			return nil, err
		}
		for _, group := range groups {
			if len(group) == 0 {
				continue
			}
			dep, ok, err := r.firstAlternative(ctx, group[0])
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			push(dep)
		}
	}

	out := make([]string, 0, len(stage))
	for name := range stage {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// firstAlternative normalizes the first alternative of a dependency group.
// A virtual name without a provider is dropped.
func (r Resolver) firstAlternative(ctx context.Context, raw string) (string, bool, error) {
	name := strings.TrimSpace(raw)
	virtual := isVirtual(name)
	if virtual {
		name = unwrapVirtual(name)
	}
	name = normalizeAptName(name)
	if name == "" {
		return "", false, nil
	}
	if !virtual {
		return name, true, nil
	}
	providers, err := r.Index.ReverseProvides(ctx, name)
	if err != nil {
		return "", false, err
	}
	if len(providers) == 0 {
		log.Warn().Str("package", name).Msg("no provider found for virtual dependency, dropping it")
		return "", false, nil
	}
	return normalizeAptName(providers[0]), true, nil
}

// normalizeAptName strips architecture qualifiers (":any", ":amd64") and
// whitespace from a package name.
func normalizeAptName(value string) string {
	name := strings.TrimSpace(value)
	if idx := strings.Index(name, ":"); idx >= 0 {
		name = strings.TrimSpace(name[:idx])
	}
	return name
}
