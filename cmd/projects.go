package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newProjectsCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"p"},
		Short:   "Inspect the projects in the workspace",
	}

	cmd.AddCommand(newProjectsListCommand(root), newProjectsInfoCommand(root))
	return cmd
}

func newProjectsListCommand(root *rootOptions) *cobra.Command {
	var flags *StandardFlags

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projects, err := root.env.projects.List()
			if err != nil {
				return err
			}
			return flags.Write(cmd.OutOrStdout(), projects, func(tw *tabwriter.Writer) {
				if len(projects) == 0 {
					fmt.Fprintf(tw, "No projects in %s\n", root.env.projects.Root())
					return
				}
				fmt.Fprintln(tw, "NAME\tPATH")
				for _, p := range projects {
					fmt.Fprintf(tw, "%s\t%s\n", p.Name, p.Path)
				}
			})
		},
	}

	flags = AddStandardFlags(cmd, "output")
	return cmd
}

func newProjectsInfoCommand(root *rootOptions) *cobra.Command {
	var flags *StandardFlags

	cmd := &cobra.Command{
		Use:   "info NAME",
		Short: "Show a project's settings and generated components",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := root.env.projects.Info(args[0])
			if err != nil {
				return err
			}
			return flags.Write(cmd.OutOrStdout(), info, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "Project:\t%s\n", info.Name)
				fmt.Fprintf(tw, "Path:\t%s\n", info.Path)
				fmt.Fprintf(tw, "Theme:\t%s\n", info.Theme)
				fmt.Fprintf(tw, "Video:\t%s at %d fps, %d frames\n", info.Resolution, info.FPS, info.DurationFrames)
				if info.LastBuildID != "" {
					fmt.Fprintf(tw, "Last build:\t%s\n", info.LastBuildID)
				}
				fmt.Fprintf(tw, "Components:\t%s\n", joinOrDash(info.Components))
			})
		},
	}

	flags = AddStandardFlags(cmd, "output")
	return cmd
}
