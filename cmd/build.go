package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/conneroisu/reelsmith/internal/errors"
	"github.com/conneroisu/reelsmith/internal/project"
	"github.com/spf13/cobra"
)

type buildOptions struct {
	flags  *StandardFlags
	strict bool
}

func newBuildCommand(root *rootOptions) *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:     "build NAME",
		Aliases: []string{"b"},
		Short:   "Build a project from its scenes file",
		Long: `Parse the project's scenes file, render one component file per component
type with the project theme and write VideoComposition.tsx and Root.tsx.

Component types that fail to render are reported and skipped; the rest of
the project is still written. Use --strict to exit non-zero in that case.

Examples:
  reelsmith build launch_video
  reelsmith build launch_video --scenes drafts/v2.yaml --theme finance
  reelsmith build launch_video -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, root.env, opts, args[0])
		},
	}

	opts.flags = AddStandardFlags(cmd, "scenes", "output")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail when any component type fails to render")

	return cmd
}

func runBuild(cmd *cobra.Command, env *appEnv, opts *buildOptions, name string) error {
	path := env.scenesPath(name, opts.flags.Scenes)
	result, err := env.buildProject(cmd.Context(), name, path, opts.flags.Theme)
	if err != nil {
		return err
	}

	if err := opts.flags.Write(cmd.OutOrStdout(), result, func(tw *tabwriter.Writer) {
		writeBuildTable(tw, result)
	}); err != nil {
		return err
	}

	if opts.strict && result.Partial() {
		return errors.NewBuildError(errors.ErrCodeRenderFailed,
			fmt.Sprintf("%d component type(s) failed to render", len(result.Failures)), nil)
	}
	return nil
}

func writeBuildTable(tw *tabwriter.Writer, r *project.Result) {
	status := "success"
	if r.Partial() {
		status = "partial"
	}
	fmt.Fprintf(tw, "Project:\t%s\n", r.ProjectID)
	fmt.Fprintf(tw, "Build:\t%s (%s)\n", r.BuildID, status)
	fmt.Fprintf(tw, "Duration:\t%d frames (%.2fs)\n", r.TotalFrames, r.DurationSeconds)
	fmt.Fprintf(tw, "Components:\t%s\n", joinOrDash(r.ComponentTypes))
	fmt.Fprintf(tw, "Composition:\t%s\n", r.CompositionPath)
	for _, f := range r.Failures {
		fmt.Fprintf(tw, "Failed:\t%s: %s\n", f.Component, f.Message)
	}
}
