package adapters

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"jhbuild-lxc/internal/ports"
	"jhbuild-lxc/internal/shared"
)

const (
	// mappedUID is the container uid the LXC id map assigns to the
	// invoking host user.
	mappedUID       = 1000
	defaultUserName = "user"

	containerCCacheDir = "/host/ccache"
)

func containerEnv(prefix string, home string) []string {
	searchPath := []string{
		path.Join(prefix, "bin"),
		"/usr/lib/ccache",
		"/usr/bin",
		"/bin",
		"/usr/sbin",
		"/sbin",
	}
	return []string{
		"HOME=" + home,
		"PATH=" + strings.Join(searchPath, ":"),
		"CCACHE_DIR=" + containerCCacheDir,
	}
}

func homeFor(user string) string {
	if user == "root" {
		return "/root"
	}
	return path.Join("/home", user)
}

// shellScript renders args as one shell command line, optionally creating
// and entering dir first.
func shellScript(args []string, dir string) (string, error) {
	line, err := shared.ShellJoin(args)
	if err != nil {
		return "", err
	}
	if dir == "" {
		return line, nil
	}
	quotedDir, err := shared.ShellQuote(dir)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("mkdir -p %s ; cd %s ; %s", quotedDir, quotedDir, line), nil
}

func wrapRootCommand(args []string, dir string) ([]string, error) {
	if dir == "" {
		return args, nil
	}
	script, err := shellScript(args, dir)
	if err != nil {
		return nil, quoteFailed(err)
	}
	return []string{"sh", "-c", script}, nil
}

// wrapUserCommand runs args through a login shell of user with a clean
// environment.
func wrapUserCommand(args []string, env []string, user string, dir string) ([]string, error) {
	script, err := shellScript(args, dir)
	if err != nil {
		return nil, quoteFailed(err)
	}
	quotedScript, err := shared.ShellQuote(script)
	if err != nil {
		return nil, quoteFailed(err)
	}
	quotedEnv, err := shared.ShellJoin(env)
	if err != nil {
		return nil, quoteFailed(err)
	}
	return []string{"su", "-", user, "-c", fmt.Sprintf("env - %s sh -c %s", quotedEnv, quotedScript)}, nil
}

func quoteFailed(err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("command cannot be quoted for the container shell").
		WithCause(err)
}

// discoverUser returns the owner of prefix inside the container. An owner
// that only shows up as a numeric uid has no account yet, so one is created
// with uid and the lookup is repeated.
func discoverUser(ctx context.Context, container ports.ContainerPort, prefix string, uid int) (string, error) {
	root := ports.RunOptions{Root: true}
	for attempt := 0; attempt < 2; attempt++ {
		out, err := container.Output(ctx, []string{"ls", "-ld", prefix}, root)
		if err != nil {
			return "", err
		}
		fields := strings.Fields(out)
		if len(fields) < 3 {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("unexpected ls output for " + prefix + ": " + strings.TrimSpace(out))
		}
		owner := fields[2]
		if !isNumericOwner(owner) {
			log.Debug().Str("user", owner).Str("container", container.Name()).Msg("build user")
			return owner, nil
		}
		if attempt > 0 {
			break
		}
		log.Info().Str("container", container.Name()).Int("uid", uid).Msg("creating build user")
		if err := container.Run(ctx, []string{"useradd", "-m", "-u", strconv.Itoa(uid), defaultUserName}, root); err != nil {
			return "", err
		}
	}
	return "", errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg("no user owns " + prefix + " inside " + container.Name())
}

func isNumericOwner(owner string) bool {
	_, err := strconv.Atoi(owner)
	return err == nil
}

// writeThroughShell writes data to path inside the container using only
// mkdir and dd.
func writeThroughShell(ctx context.Context, container ports.ContainerPort, target string, data []byte, opts ports.RunOptions) error {
	mkdir := opts
	mkdir.Stdin = nil
	if err := container.Run(ctx, []string{"mkdir", "-p", path.Dir(target)}, mkdir); err != nil {
		return err
	}
	write := opts
	write.Stdin = bytes.NewReader(data)
	return container.Run(ctx, []string{"dd", "status=none", "of=" + target}, write)
}
