package adapters

import (
	"context"
	"io"
	"strings"

	"jhbuild-lxc/internal/ports"
)

type recordedCommand struct {
	Name  string
	Args  []string
	Stdin string
}

func (c recordedCommand) Line() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// fakeRunner records every command. respond, when set, decides the output
// and error of a command from its joined command line.
type fakeRunner struct {
	commands []recordedCommand
	respond  func(line string) (string, error)
}

func (f *fakeRunner) Run(ctx context.Context, cmd ports.Command) error {
	_, err := f.Output(ctx, cmd)
	return err
}

func (f *fakeRunner) Output(_ context.Context, cmd ports.Command) (string, error) {
	recorded := recordedCommand{Name: cmd.Name, Args: append([]string(nil), cmd.Args...)}
	if cmd.Stdin != nil {
		data, _ := io.ReadAll(cmd.Stdin)
		recorded.Stdin = string(data)
	}
	f.commands = append(f.commands, recorded)
	if f.respond == nil {
		return "", nil
	}
	return f.respond(recorded.Line())
}

func (f *fakeRunner) lines() []string {
	out := make([]string, 0, len(f.commands))
	for _, cmd := range f.commands {
		out = append(out, cmd.Line())
	}
	return out
}

func (f *fakeRunner) last() recordedCommand {
	return f.commands[len(f.commands)-1]
}
