package types

import "sort"

// PackageSet accumulates build and stage packages for one pass. Both
// sides are sets: insertion order is not significant.
type PackageSet struct {
	build map[string]struct{}
	stage map[string]struct{}
}

func NewPackageSet() *PackageSet {
	return &PackageSet{
		build: make(map[string]struct{}),
		stage: make(map[string]struct{}),
	}
}

func (s *PackageSet) AddBuild(names ...string) {
	for _, name := range names {
		if name == "" {
			continue
		}
		s.build[name] = struct{}{}
	}
}

func (s *PackageSet) AddStage(names ...string) {
	for _, name := range names {
		if name == "" {
			continue
		}
		s.stage[name] = struct{}{}
	}
}

func (s *PackageSet) HasBuild(name string) bool {
	_, ok := s.build[name]
	return ok
}

func (s *PackageSet) HasStage(name string) bool {
	_, ok := s.stage[name]
	return ok
}

// BuildList returns the build packages sorted by name.
func (s *PackageSet) BuildList() []string {
	return sortedKeys(s.build)
}

// StageList returns the stage packages sorted by name.
func (s *PackageSet) StageList() []string {
	return sortedKeys(s.stage)
}

func sortedKeys(values map[string]struct{}) []string {
	out := make([]string, 0, len(values))
	for key := range values {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// ResolutionRecord explains how one dependency ended up in the package set.
type ResolutionRecord struct {
	Dependency string
	Source     LookupSource
	Build      string
	Stage      []string
}

type ResolutionReport struct {
	Records []ResolutionRecord
}
