package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jhbuild-lxc/internal/app"
)

// partOptions are the flags every part command shares.
type partOptions struct {
	Part             string
	WorkDir          string
	InstallDir       string
	Backend          string
	ContainerName    string
	Distribution     string
	Release          string
	Architecture     string
	DebMirror        string
	Exceptions       []string
	ReadinessHost    string
	ReadinessTimeout string
	Sudo             bool
}

func addPartFlags(cmd *cobra.Command, opts *partOptions) {
	cmd.Flags().StringVar(&opts.Part, "part", "", "Part definition file")
	cmd.Flags().StringVar(&opts.WorkDir, "work-dir", "", "Host work directory (default parts/<part>/src)")
	cmd.Flags().StringVar(&opts.InstallDir, "install-dir", "", "Host install directory (default parts/<part>/install)")
	cmd.Flags().StringVar(&opts.Backend, "backend", "", "Container backend (lxc, chroot)")
	cmd.Flags().StringVar(&opts.ContainerName, "container-name", "", "Container name override")
	cmd.Flags().StringVar(&opts.Distribution, "distribution", "", "Container distribution (default host)")
	cmd.Flags().StringVar(&opts.Release, "release", "", "Container release (default host)")
	cmd.Flags().StringVar(&opts.Architecture, "architecture", "", "Container architecture (default host)")
	cmd.Flags().StringVar(&opts.DebMirror, "debmirror", "", "Deb mirror prefix for the container's apt sources")
	cmd.Flags().StringSliceVar(&opts.Exceptions, "exceptions", nil, "Extra exception table files")
	cmd.Flags().StringVar(&opts.ReadinessHost, "readiness-host", "", "Host resolved to check container networking")
	cmd.Flags().StringVar(&opts.ReadinessTimeout, "readiness-timeout", "", "Container network readiness timeout")
	cmd.Flags().BoolVar(&opts.Sudo, "sudo", false, "Run privileged chroot commands through sudo")

	_ = viper.BindPFlag("part", cmd.Flags().Lookup("part"))
	_ = viper.BindPFlag("work_dir", cmd.Flags().Lookup("work-dir"))
	_ = viper.BindPFlag("install_dir", cmd.Flags().Lookup("install-dir"))
	_ = viper.BindPFlag("backend", cmd.Flags().Lookup("backend"))
	_ = viper.BindPFlag("container_name", cmd.Flags().Lookup("container-name"))
	_ = viper.BindPFlag("distribution", cmd.Flags().Lookup("distribution"))
	_ = viper.BindPFlag("release", cmd.Flags().Lookup("release"))
	_ = viper.BindPFlag("architecture", cmd.Flags().Lookup("architecture"))
	_ = viper.BindPFlag("debmirror", cmd.Flags().Lookup("debmirror"))
	_ = viper.BindPFlag("exceptions", cmd.Flags().Lookup("exceptions"))
	_ = viper.BindPFlag("readiness_host", cmd.Flags().Lookup("readiness-host"))
	_ = viper.BindPFlag("readiness_timeout", cmd.Flags().Lookup("readiness-timeout"))
	_ = viper.BindPFlag("sudo", cmd.Flags().Lookup("sudo"))
}

func partRequest(cmd *cobra.Command, opts partOptions) app.PartRequest {
	return app.PartRequest{
		PartPath:         resolveString(cmd, opts.Part, "part", "part"),
		WorkDir:          resolveString(cmd, opts.WorkDir, "work_dir", "work-dir"),
		InstallDir:       resolveString(cmd, opts.InstallDir, "install_dir", "install-dir"),
		Backend:          resolveString(cmd, opts.Backend, "backend", "backend"),
		ContainerName:    resolveString(cmd, opts.ContainerName, "container_name", "container-name"),
		Distribution:     resolveString(cmd, opts.Distribution, "distribution", "distribution"),
		Release:          resolveString(cmd, opts.Release, "release", "release"),
		Architecture:     resolveString(cmd, opts.Architecture, "architecture", "architecture"),
		DebMirror:        resolveString(cmd, opts.DebMirror, "debmirror", "debmirror"),
		Exceptions:       resolveStrings(cmd, opts.Exceptions, "exceptions", "exceptions"),
		ReadinessHost:    resolveString(cmd, opts.ReadinessHost, "readiness_host", "readiness-host"),
		ReadinessTimeout: resolveString(cmd, opts.ReadinessTimeout, "readiness_timeout", "readiness-timeout"),
		Sudo:             resolveBool(cmd, opts.Sudo, "sudo", "sudo"),
	}
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
