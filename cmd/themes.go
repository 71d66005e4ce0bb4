package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/conneroisu/reelsmith/internal/theme"
	"github.com/spf13/cobra"
)

// themeRow is the listing form of a theme.
type themeRow struct {
	Key         string   `json:"key" yaml:"key"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Primary     string   `json:"primary_color" yaml:"primary_color"`
	Accent      string   `json:"accent_color" yaml:"accent_color"`
	UseCases    []string `json:"use_cases" yaml:"use_cases"`
}

func themeRows(m *theme.Manager, keys []string) []themeRow {
	rows := make([]themeRow, 0, len(keys))
	for _, key := range keys {
		t, ok := m.Get(key)
		if !ok {
			continue
		}
		rows = append(rows, themeRow{
			Key:         key,
			Name:        t.Name,
			Description: t.Description,
			Primary:     t.Colors.Base(),
			Accent:      t.Colors.Highlight(),
			UseCases:    t.UseCases,
		})
	}
	return rows
}

func writeThemeTable(tw *tabwriter.Writer, rows []themeRow) {
	fmt.Fprintln(tw, "KEY\tNAME\tPRIMARY\tACCENT\tDESCRIPTION")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Key, r.Name, r.Primary, r.Accent, r.Description)
	}
}

func newThemesCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "themes",
		Aliases: []string{"t"},
		Short:   "Browse, compare and exchange themes",
	}

	cmd.AddCommand(
		newThemesListCommand(root),
		newThemesInfoCommand(root),
		newThemesSearchCommand(root),
		newThemesCompareCommand(root),
		newThemesExportCommand(root),
		newThemesImportCommand(root),
	)
	return cmd
}

func newThemesListCommand(root *rootOptions) *cobra.Command {
	var flags *StandardFlags

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List themes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows := themeRows(root.env.themes, root.env.themes.List())
			return flags.Write(cmd.OutOrStdout(), rows, func(tw *tabwriter.Writer) {
				writeThemeTable(tw, rows)
			})
		},
	}

	flags = AddStandardFlags(cmd, "output")
	return cmd
}

func newThemesInfoCommand(root *rootOptions) *cobra.Command {
	var flags *StandardFlags

	cmd := &cobra.Command{
		Use:   "info KEY",
		Short: "Show a theme's colors, typography and motion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := root.env.themes.Info(args[0])
			if err != nil {
				return err
			}
			return flags.Write(cmd.OutOrStdout(), t, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "%s (%s)\n%s\n\n", t.Name, args[0], t.Description)
				fmt.Fprintf(tw, "Primary:\t%s\n", joinOrDash(t.Colors.Primary))
				fmt.Fprintf(tw, "Accent:\t%s\n", joinOrDash(t.Colors.Accent))
				fmt.Fprintf(tw, "Gradient:\t%s\n", t.Colors.Gradient)
				fmt.Fprintf(tw, "Background:\t%s / %s\n", t.Colors.Background.Dark, t.Colors.Background.Light)
				fmt.Fprintf(tw, "Motion:\t%s spring, %s easing\n", t.Motion.DefaultSpring.Name, t.Motion.DefaultEasing.Name)
				fmt.Fprintf(tw, "Use cases:\t%s\n", joinOrDash(t.UseCases))
			})
		},
	}

	flags = AddStandardFlags(cmd, "output")
	return cmd
}

func newThemesSearchCommand(root *rootOptions) *cobra.Command {
	var flags *StandardFlags

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search themes by name, description or use case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := themeRows(root.env.themes, root.env.themes.Search(args[0]))
			return flags.Write(cmd.OutOrStdout(), rows, func(tw *tabwriter.Writer) {
				if len(rows) == 0 {
					fmt.Fprintf(tw, "No themes match %q\n", args[0])
					return
				}
				writeThemeTable(tw, rows)
			})
		},
	}

	flags = AddStandardFlags(cmd, "output")
	return cmd
}

func newThemesCompareCommand(root *rootOptions) *cobra.Command {
	var flags *StandardFlags

	cmd := &cobra.Command{
		Use:   "compare KEY KEY",
		Short: "Compare two themes side by side",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.env.themes.Compare(args[0], args[1])
			if err != nil {
				return err
			}
			return flags.Write(cmd.OutOrStdout(), c, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "\t%s\t%s\n", c.Themes[0], c.Themes[1])
				fmt.Fprintf(tw, "Name\t%s\t%s\n", c.Names[0], c.Names[1])
				fmt.Fprintf(tw, "Primary\t%s\t%s\n", joinOrDash(c.Primary[0]), joinOrDash(c.Primary[1]))
				fmt.Fprintf(tw, "Accent\t%s\t%s\n", joinOrDash(c.Accent[0]), joinOrDash(c.Accent[1]))
				fmt.Fprintf(tw, "Motion\t%s\t%s\n", c.MotionFeel[0], c.MotionFeel[1])
			})
		},
	}

	flags = AddStandardFlags(cmd, "output")
	return cmd
}

func newThemesExportCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export KEY [FILE]",
		Short: "Write a theme to a JSON file",
		Long:  "Write a theme to a JSON file. FILE defaults to <KEY>_theme.json.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 2 {
				path = args[1]
			}
			written, err := root.env.themes.Export(args[0], path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported theme %s to %s\n", args[0], written)
			return nil
		},
	}
	return cmd
}

func newThemesImportCommand(root *rootOptions) *cobra.Command {
	var (
		flags *StandardFlags
		key   string
	)

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Validate and load a theme from a JSON file",
		Long: `Validate a theme file written by "reelsmith themes export" or by hand and
print the theme it defines. The key defaults to the theme name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imported, err := root.env.themes.Import(args[0], key)
			if err != nil {
				return err
			}
			rows := themeRows(root.env.themes, []string{imported})
			return flags.Write(cmd.OutOrStdout(), rows, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "Imported theme %s from %s\n\n", imported, args[0])
				writeThemeTable(tw, rows)
			})
		},
	}

	flags = AddStandardFlags(cmd, "output")
	cmd.Flags().StringVar(&key, "key", "", "Key to register the theme under")
	return cmd
}
