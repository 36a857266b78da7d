package adapters

import (
	"fmt"
	"sort"
	"strings"

	"jhbuild-lxc/internal/types"
)

// RenderJHBuildRC renders cfg as a jhbuildrc python snippet.
func RenderJHBuildRC(cfg types.JHBuildConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "moduleset = %s\n", pyString(cfg.ModuleSet))
	fmt.Fprintf(&b, "tarballdir = %s\n", pyString(cfg.TarballDir))
	fmt.Fprintf(&b, "dvcs_mirror_dir = %s\n", pyString(cfg.MirrorDir))
	fmt.Fprintf(&b, "checkoutroot = %s\n", pyString(cfg.CheckoutRoot))
	fmt.Fprintf(&b, "prefix = %s\n", pyString(cfg.Prefix))
	b.WriteString("use_local_modulesets = True\n")
	b.WriteString("nonetwork = True\n")
	if len(cfg.Skip) > 0 {
		quoted := make([]string, 0, len(cfg.Skip))
		for _, module := range cfg.Skip {
			quoted = append(quoted, pyString(module))
		}
		fmt.Fprintf(&b, "skip = [%s]\n", strings.Join(quoted, ", "))
	}
	if cfg.DisableParallel {
		b.WriteString("makeargs = '-j1'\n")
	}
	if cfg.XDGDataHome != "" {
		fmt.Fprintf(&b, "os.environ['XDG_DATA_HOME'] = %s\n", pyString(cfg.XDGDataHome))
	}
	modules := make([]string, 0, len(cfg.AutogenArgs))
	for module := range cfg.AutogenArgs {
		modules = append(modules, module)
	}
	sort.Strings(modules)
	for _, module := range modules {
		fmt.Fprintf(&b, "module_autogenargs[%s] = %s\n", pyString(module), pyString(cfg.AutogenArgs[module]))
	}
	return b.String()
}

func pyString(value string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`).Replace(value)
	return "'" + escaped + "'"
}
