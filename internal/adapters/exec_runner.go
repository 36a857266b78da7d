package adapters

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"jhbuild-lxc/internal/ports"
	"jhbuild-lxc/internal/shared"
)

// ExecRunner runs host processes with os/exec.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func NewExecRunner() ExecRunner {
	return ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

func (r ExecRunner) Run(ctx context.Context, c ports.Command) error {
	log.Debug().Str("command", c.Name).Strs("args", c.Args).Msg("run")
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Stdin = c.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = io.MultiWriter(r.stderr(), &stderr)
	if err := cmd.Run(); err != nil {
		return commandFailed(c.Name, stderr.Bytes(), err)
	}
	return nil
}

func (r ExecRunner) Output(ctx context.Context, c ports.Command) (string, error) {
	log.Debug().Str("command", c.Name).Strs("args", c.Args).Msg("output")
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Stdin = c.Stdin
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return "", commandFailed(c.Name, stderr.Bytes(), err)
	}
	return string(output), nil
}

func (r ExecRunner) stderr() io.Writer {
	if r.Stderr == nil {
		return io.Discard
	}
	return r.Stderr
}

func commandFailed(name string, output []byte, err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(name + " command failed").
		WithCause(shared.CommandError(output, err))
}

var _ ports.CommandRunner = ExecRunner{}
