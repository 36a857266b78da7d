package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jhbuild-lxc/internal/app"
)

func newValidateCommand() *cobra.Command {
	opts := partOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a part definition and its exception tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	addPartFlags(cmd, &opts)
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts partOptions) error {
	result, err := newAppService().Validate(ctx, app.ValidateRequest{PartRequest: partRequest(cmd, opts)})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "validated: %s (container %s, modules %s, %d exceptions)\n",
		result.PartName, result.ContainerName, strings.Join(result.Modules, " "), result.Exceptions)
	return nil
}

type pullOptions struct {
	partOptions
	DisableJHUpdate bool
}

func newPullCommand() *cobra.Command {
	opts := pullOptions{}
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Create the container, install build dependencies and fetch module sources",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPull(cmd.Context(), cmd, opts)
		},
	}
	addPartFlags(cmd, &opts.partOptions)
	cmd.Flags().BoolVar(&opts.DisableJHUpdate, "disable-jhupdate", false, "Skip jhbuild update after installing dependencies")
	_ = viper.BindPFlag("disable_jhupdate", cmd.Flags().Lookup("disable-jhupdate"))
	return cmd
}

func runPull(ctx context.Context, cmd *cobra.Command, opts pullOptions) error {
	req := partRequest(cmd, opts.partOptions)
	req.DisableJHUpdate = resolveBool(cmd, opts.DisableJHUpdate, "disable_jhupdate", "disable-jhupdate")
	result, err := newAppService().Pull(ctx, app.PullRequest{PartRequest: req})
	if err != nil {
		return err
	}
	if result.Skipped {
		fmt.Fprintln(cmd.OutOrStdout(), "pull disabled")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "pulled: %s (%d build packages, %d stage packages, written to %s)\n",
		result.ContainerName, len(result.BuildPackages), len(result.StagePackages), result.OutputDir)
	return nil
}

func newBuildCommand() *cobra.Command {
	opts := partOptions{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the part's modules inside its container",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd.Context(), cmd, opts)
		},
	}
	addPartFlags(cmd, &opts)
	return cmd
}

func runBuild(ctx context.Context, cmd *cobra.Command, opts partOptions) error {
	result, err := newAppService().Build(ctx, app.BuildRequest{PartRequest: partRequest(cmd, opts)})
	if err != nil {
		return err
	}
	if result.Skipped {
		fmt.Fprintln(cmd.OutOrStdout(), "build disabled")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "built: %s in %s\n", strings.Join(result.Modules, " "), result.ContainerName)
	return nil
}

func newCleanCommand() *cobra.Command {
	opts := partOptions{}
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Stop and destroy the part's container",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClean(cmd.Context(), cmd, opts)
		},
	}
	addPartFlags(cmd, &opts)
	return cmd
}

func runClean(ctx context.Context, cmd *cobra.Command, opts partOptions) error {
	result, err := newAppService().CleanPull(ctx, app.CleanRequest{PartRequest: partRequest(cmd, opts)})
	if err != nil {
		return err
	}
	if !result.Existed {
		fmt.Fprintf(cmd.OutOrStdout(), "no container %s\n", result.ContainerName)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "destroyed: %s\n", result.ContainerName)
	return nil
}

type resolveOptions struct {
	partOptions
	Report string
	Output string
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a saved sysdeps report against the container's package index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), cmd, opts)
		},
	}
	addPartFlags(cmd, &opts.partOptions)
	cmd.Flags().StringVar(&opts.Report, "report", "", "Saved `jhbuild sysdeps --dump-all` output")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Output directory (default <work-dir>/resolve)")
	_ = viper.BindPFlag("report", cmd.Flags().Lookup("report"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runResolve(ctx context.Context, cmd *cobra.Command, opts resolveOptions) error {
	result, err := newAppService().Resolve(ctx, app.ResolveRequest{
		PartRequest: partRequest(cmd, opts.partOptions),
		ReportPath:  resolveString(cmd, opts.Report, "report", "report"),
		OutputDir:   resolveString(cmd, opts.Output, "output", "output"),
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "build: %s\n", strings.Join(result.BuildPackages, " "))
	fmt.Fprintf(out, "stage: %s\n", strings.Join(result.StagePackages, " "))
	fmt.Fprintf(out, "written to %s\n", result.OutputDir)
	return nil
}

func newFilesetCommand() *cobra.Command {
	opts := partOptions{}
	cmd := &cobra.Command{
		Use:   "fileset",
		Short: "List the top-level entries of the part's install dir",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFileset(cmd.Context(), cmd, opts)
		},
	}
	addPartFlags(cmd, &opts)
	return cmd
}

func runFileset(ctx context.Context, cmd *cobra.Command, opts partOptions) error {
	result, err := newAppService().Fileset(ctx, app.FilesetRequest{PartRequest: partRequest(cmd, opts)})
	if err != nil {
		return err
	}
	for _, entry := range result.Entries {
		fmt.Fprintln(cmd.OutOrStdout(), entry)
	}
	return nil
}
