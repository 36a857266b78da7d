package app

import (
	"path"
	"path/filepath"
	"strings"

	"jhbuild-lxc/internal/types"
)

const (
	relHost      = "host"
	sourcesList  = "/etc/apt/sources.list"
	lxcConfName  = "lxc.conf"
	chrootSubdir = "chroot"
)

// Layout maps a part onto host and container paths. Container paths are
// slash separated regardless of the host.
type Layout struct {
	Part       types.PartSpec
	WorkDir    string
	InstallDir string
}

func newLayout(part types.PartSpec, workDir string, installDir string) (Layout, error) {
	if workDir == "" {
		workDir = filepath.Join("parts", part.Name, "src")
	}
	if installDir == "" {
		installDir = filepath.Join("parts", part.Name, "install")
	}
	absWork, err := filepath.Abs(workDir)
	if err != nil {
		return Layout{}, err
	}
	absInstall, err := filepath.Abs(installDir)
	if err != nil {
		return Layout{}, err
	}
	return Layout{Part: part, WorkDir: absWork, InstallDir: absInstall}, nil
}

// RelPrefix is snap/<snap name>/<snap revision>.
func (l Layout) RelPrefix() string {
	return path.Join("snap", l.Part.SnapName, l.Part.SnapRevision)
}

func (l Layout) Prefix() string {
	return "/" + l.RelPrefix()
}

func (l Layout) JHSource() string {
	return path.Join(l.Prefix(), "usr", "src", "jhbuild")
}

func (l Layout) JHBuildRC() string {
	return path.Join(l.Prefix(), "etc", "jhbuildrc")
}

func (l Layout) XDGDataHome() string {
	return path.Join(l.Prefix(), "usr", "share")
}

func (l Layout) LXCConfPath() string {
	return filepath.Join(l.WorkDir, lxcConfName)
}

func (l Layout) ChrootRoot() string {
	return filepath.Join(l.WorkDir, chrootSubdir, l.Part.ContainerName)
}

type hostDir struct {
	host     string
	rel      string
	explicit bool
}

func (l Layout) hostDirs() []hostDir {
	dir := func(option string, name string) hostDir {
		if option != "" {
			return hostDir{host: option, rel: path.Join(relHost, name), explicit: true}
		}
		return hostDir{host: filepath.Join(l.WorkDir, name), rel: path.Join(relHost, name)}
	}
	return []hostDir{
		dir(l.Part.JHTarballs, "jhtarballs"),
		dir(l.Part.JHMirror, "jhmirror"),
		dir(l.Part.JHCheckout, "jhcheckout"),
		dir(l.Part.CCache, "ccache"),
	}
}

// OwnedDirs are the host directories the tool creates: the work and
// install dirs plus every cache dir the part did not point elsewhere.
func (l Layout) OwnedDirs() []string {
	dirs := []string{l.WorkDir, l.InstallDir}
	for _, d := range l.hostDirs() {
		if !d.explicit {
			dirs = append(dirs, d.host)
		}
	}
	return dirs
}

// Mounts binds the install dir at the snap prefix and the cache dirs
// under /host.
func (l Layout) Mounts() []types.BindMount {
	mounts := []types.BindMount{{Source: l.InstallDir, Target: l.RelPrefix()}}
	for _, d := range l.hostDirs() {
		mounts = append(mounts, types.BindMount{Source: d.host, Target: d.rel})
	}
	return mounts
}

func (l Layout) JHBuildConfig() types.JHBuildConfig {
	return types.JHBuildConfig{
		ModuleSet:       l.Part.ModuleSet,
		TarballDir:      "/" + path.Join(relHost, "jhtarballs"),
		MirrorDir:       "/" + path.Join(relHost, "jhmirror"),
		CheckoutRoot:    "/" + path.Join(relHost, "jhcheckout"),
		Prefix:          l.Prefix(),
		XDGDataHome:     l.XDGDataHome(),
		Skip:            l.Part.Modules.Skipped(),
		DisableParallel: l.Part.DisableParallel,
		AutogenArgs:     l.Part.ModuleAutogenArgs,
	}
}

// BootstrapMirror is the archive debootstrap fetches from when a chroot is
// created behind a deb mirror, e.g. http://localhost:3142/archive.ubuntu.com/ubuntu.
// It is empty when the apt sources are rewritten after creation instead.
func (l Layout) BootstrapMirror() string {
	part := l.Part
	if part.Backend != types.BackendChroot || part.DebMirror == "" {
		return ""
	}
	var archive string
	switch part.Distribution {
	case "ubuntu":
		archive = "archive.ubuntu.com/ubuntu"
		if part.Architecture != "amd64" && part.Architecture != "i386" {
			archive = "ports.ubuntu.com/ubuntu-ports"
		}
	case "debian":
		archive = "deb.debian.org/debian"
	default:
		return ""
	}
	return strings.TrimSuffix(part.DebMirror, "/") + "/" + archive
}
