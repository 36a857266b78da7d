package adapters

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	debversion "github.com/knqyf263/go-deb-version"

	"jhbuild-lxc/internal/types"
)

const (
	DefaultLXCInclude = "/etc/lxc/default.conf"

	lxcIDMapKey       = "lxc.idmap"
	lxcLegacyIDMapKey = "lxc.id_map"
	// lxc 2.1 renamed lxc.id_map to lxc.idmap.
	lxcIDMapRenamedIn = "2.1"
)

// UnprivilegedIDMaps maps container root onto the subordinate id range and
// container id 1000 onto the invoking user, for both uids and gids.
func UnprivilegedIDMaps(uid int, gid int) []types.IDMap {
	var maps []types.IDMap
	for _, kind := range []struct {
		name string
		host int
	}{{"u", uid}, {"g", gid}} {
		maps = append(maps,
			types.IDMap{Type: kind.name, Container: 0, Host: 100000, Count: mappedUID},
			types.IDMap{Type: kind.name, Container: mappedUID, Host: kind.host, Count: 1},
			types.IDMap{Type: kind.name, Container: mappedUID + 1, Host: 101001, Count: 64535},
		)
	}
	return maps
}

// RenderLXCConfig renders cfg in lxc.conf syntax.
func RenderLXCConfig(cfg types.LXCConfig) string {
	key := cfg.IDMapKey
	if key == "" {
		key = lxcIDMapKey
	}
	include := cfg.Include
	if include == "" {
		include = DefaultLXCInclude
	}

	var b strings.Builder
	fmt.Fprintf(&b, "lxc.include = %s\n", include)
	for _, m := range cfg.IDMaps {
		fmt.Fprintf(&b, "%s = %s %d %d %d\n", key, m.Type, m.Container, m.Host, m.Count)
	}
	for _, mount := range cfg.Mounts {
		fmt.Fprintf(&b, "lxc.mount.entry = %s %s none bind,optional,create=dir\n", mount.Source, mount.Target)
	}
	return b.String()
}

// idMapKeyForVersion picks the id map key understood by the given
// lxc-create --version output.
func idMapKeyForVersion(raw string) string {
	current, err := debversion.NewVersion(strings.TrimSpace(raw))
	if err != nil {
		log.Warn().Str("version", raw).Err(err).Msg("cannot parse lxc version, assuming a current release")
		return lxcIDMapKey
	}
	renamed, err := debversion.NewVersion(lxcIDMapRenamedIn)
	if err != nil {
		return lxcIDMapKey
	}
	if current.Compare(renamed) < 0 {
		return lxcLegacyIDMapKey
	}
	return lxcIDMapKey
}
