package adapters

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/subosito/gotenv"

	"jhbuild-lxc/internal/ports"
)

const defaultOSRelease = "/etc/os-release"

// HostAdapter reports the host distribution and architecture, used as the
// container defaults.
type HostAdapter struct {
	OSReleasePath string
	Machine       func() (string, error)
}

func NewHostAdapter() HostAdapter {
	return HostAdapter{OSReleasePath: defaultOSRelease, Machine: hostMachine}
}

func (a HostAdapter) Distribution() (string, string, error) {
	path := a.OSReleasePath
	if path == "" {
		path = defaultOSRelease
	}
	env, err := gotenv.Read(path)
	if err != nil {
		return "", "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read " + path).
			WithCause(err)
	}
	id := strings.ToLower(strings.TrimSpace(env["ID"]))
	release := strings.ToLower(strings.TrimSpace(env["VERSION_CODENAME"]))
	if release == "" {
		release = strings.ToLower(strings.TrimSpace(env["UBUNTU_CODENAME"]))
	}
	if id == "" || release == "" {
		return "", "", errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("cannot determine host distribution from " + path)
	}
	return id, release, nil
}

func (a HostAdapter) Architecture() (string, error) {
	machine := a.Machine
	if machine == nil {
		machine = hostMachine
	}
	raw, err := machine()
	if err != nil {
		return "", err
	}
	arch, ok := debianArchitectures[raw]
	if !ok {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("unsupported host architecture: " + raw)
	}
	return arch, nil
}

var debianArchitectures = map[string]string{
	"x86_64":  "amd64",
	"amd64":   "amd64",
	"i386":    "i386",
	"i686":    "i386",
	"386":     "i386",
	"aarch64": "arm64",
	"arm64":   "arm64",
	"armv7l":  "armhf",
	"arm":     "armhf",
	"ppc64le": "ppc64el",
	"s390x":   "s390x",
	"riscv64": "riscv64",
}

var _ ports.HostPort = HostAdapter{}
