package core

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"jhbuild-lxc/internal/ports"
	"jhbuild-lxc/internal/types"
)

// Resolver maps sysdeps tokens to Debian packages using the exception
// table first and the package index second.
type Resolver struct {
	Index ports.PackageIndexPort
	Table types.ExceptionTable
}

// Resolution is the outcome of resolving one token. Stage is nil when the
// stage side has to be derived by expanding Build.
type Resolution struct {
	Token  types.Token
	Source types.LookupSource
	Build  string
	Stage  *string
}

// NeedsExpansion reports whether the stage packages of this resolution
// come from the build package's runtime dependencies.
func (r Resolution) NeedsExpansion() bool {
	return r.Stage == nil && r.Build != ""
}

func NewResolver(index ports.PackageIndexPort, table types.ExceptionTable) Resolver {
	return Resolver{Index: index, Table: table}
}

func (r Resolver) Resolve(ctx context.Context, token types.Token) (Resolution, error) {
	if entry, ok := r.Table.Sysdep(token.Raw); ok {
		return r.fromTable(ctx, token, entry)
	}
	var pattern string
	switch token.Kind {
	case types.DependencyKindCInclude:
		pattern = "/usr/include/" + token.Subject
	case types.DependencyKindPath:
		pattern = "bin/" + token.Subject
	case types.DependencyKindPkgConfig:
		pattern = "/" + token.Subject + ".pc"
	case types.DependencyKindPython2:
		return Resolution{Token: token, Source: types.LookupSourceRewrite, Build: "python-" + token.Subject}, nil
	case types.DependencyKindXML:
		return Resolution{Token: token, Source: types.LookupSourceNone}, nil
	default:
		return Resolution{}, unknownKindError(token.Raw)
	}
	if r.Index == nil {
		return Resolution{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("resolver requires a package index to look up " + token.Raw)
	}

	matches, err := r.Index.SearchFile(ctx, pattern)
	if err != nil {
		return Resolution{}, err
	}
	candidates := matchingPackages(matches, pattern)
	if len(candidates) == 0 {
		return Resolution{}, notFoundError(token, pattern)
	}
	if len(candidates) > 1 {
		log.Warn().
			Str("token", token.Raw).
			Strs("candidates", candidates).
			Str("selected", candidates[0]).
			Msg("multiple packages match dependency, using the first")
	}
	build, err := r.concrete(ctx, candidates[0])
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Token: token, Source: types.LookupSourceIndex, Build: build}, nil
}

func (r Resolver) fromTable(ctx context.Context, token types.Token, entry types.SysdepException) (Resolution, error) {
	if entry.Skip {
		return Resolution{Token: token, Source: types.LookupSourceSkip}, nil
	}
	build := entry.Build
	if isVirtual(build) {
		resolved, err := r.concrete(ctx, build)
		if err != nil {
			return Resolution{}, err
		}
		build = resolved
	}
	return Resolution{Token: token, Source: types.LookupSourceTable, Build: build, Stage: entry.Stage}, nil
}

// concrete replaces a virtual "<name>" with its first provider. Without a
// provider the bare name is kept.
func (r Resolver) concrete(ctx context.Context, name string) (string, error) {
	if !isVirtual(name) {
		return name, nil
	}
	bare := unwrapVirtual(name)
	if r.Index == nil {
		return bare, nil
	}
	providers, err := r.Index.ReverseProvides(ctx, bare)
	if err != nil {
		return "", err
	}
	if len(providers) == 0 {
		log.Warn().Str("package", bare).Msg("no provider found for virtual package")
		return bare, nil
	}
	return providers[0], nil
}

// ResolveGroup returns the resolution of the first alternative that
// resolves. Later alternatives are never queried.
func (r Resolver) ResolveGroup(ctx context.Context, group types.AlternativeGroup) (Resolution, error) {
	for _, token := range group.Tokens {
		resolution, err := r.Resolve(ctx, token)
		if err == nil {
			return resolution, nil
		}
		if !IsNotFound(err) {
			return Resolution{}, err
		}
		log.Warn().Str("token", token.Raw).Err(err).Msg("dependency alternative not resolved")
	}
	return Resolution{}, allAlternativesFailedError(group)
}

// matchingPackages keeps the packages whose path ends with pattern, in
// listing order, without duplicates.
func matchingPackages(matches []types.FileMatch, pattern string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, match := range matches {
		if !strings.HasSuffix(match.Path, pattern) {
			continue
		}
		if _, ok := seen[match.Package]; ok {
			continue
		}
		seen[match.Package] = struct{}{}
		out = append(out, match.Package)
	}
	return out
}

func isVirtual(name string) bool {
	return len(name) > 2 && strings.HasPrefix(name, "<") && strings.HasSuffix(name, ">")
}

func unwrapVirtual(name string) string {
	return strings.TrimSuffix(strings.TrimPrefix(name, "<"), ">")
}
