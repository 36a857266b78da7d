package core

import (
	"context"

	"jhbuild-lxc/internal/types"
)

type fakeIndex struct {
	files    map[string][]types.FileMatch
	depends  map[string][][]string
	provides map[string][]string
	err      error

	searches      []string
	dependsCalls  map[string]int
	providesCalls []string
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{
		files:        map[string][]types.FileMatch{},
		depends:      map[string][][]string{},
		provides:     map[string][]string{},
		dependsCalls: map[string]int{},
	}
}

func (f *fakeIndex) SearchFile(_ context.Context, pattern string) ([]types.FileMatch, error) {
	f.searches = append(f.searches, pattern)
	if f.err != nil {
		return nil, f.err
	}
	return f.files[pattern], nil
}

func (f *fakeIndex) Depends(_ context.Context, pkg string) ([][]string, error) {
	f.dependsCalls[pkg]++
	if f.err != nil {
		return nil, f.err
	}
	return f.depends[pkg], nil
}

func (f *fakeIndex) ReverseProvides(_ context.Context, name string) ([]string, error) {
	f.providesCalls = append(f.providesCalls, name)
	if f.err != nil {
		return nil, f.err
	}
	return f.provides[name], nil
}

func (f *fakeIndex) UpdateFileIndex(context.Context) error {
	return f.err
}

func (f *fakeIndex) queries() int {
	total := len(f.searches) + len(f.providesCalls)
	for _, count := range f.dependsCalls {
		total += count
	}
	return total
}
