package cmd

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/conneroisu/reelsmith/internal/errors"
	"github.com/conneroisu/reelsmith/internal/tokens"
	"github.com/spf13/cobra"
)

func newTokensCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Inspect and export design tokens",
	}

	cmd.AddCommand(
		newTokensColorsCommand(root),
		newTokensTypographyCommand(),
		newTokensMotionCommand(),
		newTokensExportCommand(root),
		newTokensImportCommand(root),
	)
	return cmd
}

func newTokensColorsCommand(root *rootOptions) *cobra.Command {
	var (
		flags     *StandardFlags
		themeName string
	)

	cmd := &cobra.Command{
		Use:   "colors",
		Short: "List color palettes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			keys := tokens.ColorThemes()
			if themeName != "" {
				keys = []string{themeName}
			}

			palettes := make(map[string]tokens.Palette, len(keys))
			for _, k := range keys {
				p, ok := root.env.tokens.Palette(k)
				if !ok {
					return errors.ErrThemeNotFound(k)
				}
				palettes[k] = p
			}

			return flags.Write(cmd.OutOrStdout(), palettes, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "THEME\tPRIMARY\tACCENT\tBACKGROUND")
				for _, k := range keys {
					p := palettes[k]
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", k, joinOrDash(p.Primary), joinOrDash(p.Accent), p.Background.Dark)
				}
			})
		},
	}

	flags = AddStandardFlags(cmd, "output")
	cmd.Flags().StringVarP(&themeName, "theme", "t", "", "Only show this theme's palette")
	return cmd
}

func newTokensTypographyCommand() *cobra.Command {
	var flags *StandardFlags

	cmd := &cobra.Command{
		Use:   "typography",
		Short: "List font families, sizes and text styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := tokens.DefaultTypography()
			return flags.Write(cmd.OutOrStdout(), t, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "STYLE\tSIZE\tWEIGHT\tLINE HEIGHT\tFAMILY")
				for _, name := range sortedMapKeys(t.TextStyles) {
					s := t.TextStyles[name]
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", name, s.FontSize, s.FontWeight, s.LineHeight, s.FontFamily)
				}
			})
		},
	}

	flags = AddStandardFlags(cmd, "output")
	return cmd
}

func newTokensMotionCommand() *cobra.Command {
	var flags *StandardFlags

	cmd := &cobra.Command{
		Use:   "motion",
		Short: "List springs, easings and durations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := tokens.DefaultMotion()
			return flags.Write(cmd.OutOrStdout(), m, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "SPRING\tDAMPING\tMASS\tSTIFFNESS\tUSAGE")
				for _, name := range sortedMapKeys(m.Springs) {
					s := m.Springs[name]
					fmt.Fprintf(tw, "%s\t%g\t%g\t%g\t%s\n", name, s.Config.Damping, s.Config.Mass, s.Config.Stiffness, s.Usage)
				}
				fmt.Fprintln(tw, "\nEASING\tCURVE\tUSAGE")
				for _, name := range sortedMapKeys(m.Easings) {
					e := m.Easings[name]
					fmt.Fprintf(tw, "%s\t%s\t%s\n", name, e.Bezier(), e.Usage)
				}
				fmt.Fprintln(tw, "\nDURATION\tFRAMES\tSECONDS")
				for _, name := range sortedMapKeys(m.Durations) {
					d := m.Durations[name]
					fmt.Fprintf(tw, "%s\t%d\t%g\n", name, d.Frames, d.Seconds)
				}
			})
		},
	}

	flags = AddStandardFlags(cmd, "output")
	return cmd
}

func newTokensExportCommand(root *rootOptions) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "export [PATH]",
		Short: "Write tokens to JSON files",
		Long: `Write one token family to PATH, or every family into the directory PATH
when --kind is all. PATH defaults to <kind>_tokens.json or the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := tokens.ParseKind(kind)
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			files, err := root.env.tokens.Export(k, path)
			if err != nil {
				return err
			}
			kinds := make([]string, 0, len(files))
			for fk := range files {
				kinds = append(kinds, string(fk))
			}
			sort.Strings(kinds)
			for _, fk := range kinds {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %s tokens to %s\n", fk, files[tokens.Kind(fk)])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", string(tokens.KindAll), "Token family (colors, typography, motion, all)")
	return cmd
}

func newTokensImportCommand(root *rootOptions) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import KIND FILE",
		Short: "Check and load a token file",
		Long: `Load a colors, typography or motion token file as overrides of the
built-in tokens and report how many entries it defines.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := tokens.ParseKind(args[0])
			if err != nil {
				return err
			}
			n, err := root.env.tokens.Import(k, args[1], !replace)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d %s token entries from %s\n", n, k, args[1])
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Replace earlier overrides instead of merging")
	return cmd
}

func sortedMapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
