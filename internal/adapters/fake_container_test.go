package adapters

import (
	"context"
	"strings"

	"jhbuild-lxc/internal/ports"
)

type containerCall struct {
	Args []string
	Root bool
	Dir  string
}

func (c containerCall) Line() string {
	return strings.Join(c.Args, " ")
}

type fakeContainer struct {
	calls   []containerCall
	writes  map[string]string
	respond func(call containerCall) (string, error)
}

func newFakeContainer() *fakeContainer {
	return &fakeContainer{writes: map[string]string{}}
}

func (f *fakeContainer) Name() string { return "fake" }
func (f *fakeContainer) Exists(context.Context) (bool, error) { return true, nil }
func (f *fakeContainer) Create(context.Context) error { return nil }
func (f *fakeContainer) Start(context.Context) error { return nil }
func (f *fakeContainer) Stop(context.Context) error { return nil }
func (f *fakeContainer) Destroy(context.Context) error { return nil }

func (f *fakeContainer) Run(ctx context.Context, args []string, opts ports.RunOptions) error {
	_, err := f.Output(ctx, args, opts)
	return err
}

func (f *fakeContainer) Output(_ context.Context, args []string, opts ports.RunOptions) (string, error) {
	call := containerCall{Args: append([]string(nil), args...), Root: opts.Root, Dir: opts.Dir}
	f.calls = append(f.calls, call)
	if f.respond == nil {
		return "", nil
	}
	return f.respond(call)
}

func (f *fakeContainer) Write(_ context.Context, path string, data []byte, _ ports.RunOptions) error {
	f.writes[path] = string(data)
	return nil
}

func (f *fakeContainer) lines() []string {
	out := make([]string, 0, len(f.calls))
	for _, call := range f.calls {
		out = append(out, call.Line())
	}
	return out
}
