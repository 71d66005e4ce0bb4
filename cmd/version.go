package cmd

import (
	"fmt"

	"github.com/conneroisu/reelsmith/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	var (
		flags    *StandardFlags
		short    bool
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display the reelsmith version, commit, build time, Go version and platform.

Examples:
  reelsmith version
  reelsmith version --detailed
  reelsmith version -o json`,
		Args: cobra.NoArgs,
		// Version needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			info := version.GetBuildInfo()

			switch {
			case flags.OutputFormat != OutputTable:
				return flags.Write(out, info, nil)
			case short:
				fmt.Fprintln(out, version.GetShortVersion())
			case detailed:
				fmt.Fprintln(out, info.String())
				if version.IsRelease() {
					fmt.Fprintln(out, "Build type: release")
				} else {
					fmt.Fprintln(out, "Build type: development")
				}
			default:
				fmt.Fprintf(out, "reelsmith %s\n", version.GetShortVersion())
			}
			return nil
		},
	}

	flags = AddStandardFlags(cmd, "output")
	cmd.Flags().BoolVar(&short, "short", false, "Show the version only")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "Show detailed build information")
	return cmd
}
