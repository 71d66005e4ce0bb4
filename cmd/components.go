package cmd

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/conneroisu/reelsmith/internal/registry"
	"github.com/spf13/cobra"
)

func newComponentsCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "components",
		Aliases: []string{"c"},
		Short:   "Browse the component catalog",
	}

	cmd.AddCommand(
		newComponentsListCommand(root),
		newComponentsSearchCommand(root),
		newComponentsSchemaCommand(root),
	)
	return cmd
}

func newComponentsListCommand(root *rootOptions) *cobra.Command {
	var (
		flags    *StandardFlags
		category string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List components, optionally by category",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schemas := root.env.registry.List(category)
			return flags.Write(cmd.OutOrStdout(), schemas, func(tw *tabwriter.Writer) {
				writeSchemaTable(tw, schemas)
			})
		},
	}

	flags = AddStandardFlags(cmd, "output")
	cmd.Flags().StringVarP(&category, "category", "c", "",
		"Only list this category ("+strings.Join(registry.NewDefault().Categories(), ", ")+")")
	return cmd
}

func newComponentsSearchCommand(root *rootOptions) *cobra.Command {
	var flags *StandardFlags

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search components by name, description or category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schemas := root.env.registry.Search(args[0])
			return flags.Write(cmd.OutOrStdout(), schemas, func(tw *tabwriter.Writer) {
				if len(schemas) == 0 {
					fmt.Fprintf(tw, "No components match %q\n", args[0])
					return
				}
				writeSchemaTable(tw, schemas)
			})
		},
	}

	flags = AddStandardFlags(cmd, "output")
	return cmd
}

func newComponentsSchemaCommand(root *rootOptions) *cobra.Command {
	var flags *StandardFlags

	cmd := &cobra.Command{
		Use:   "schema NAME",
		Short: "Show the configuration schema of a component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := root.env.registry.Lookup(args[0])
			if err != nil {
				return err
			}
			return flags.Write(cmd.OutOrStdout(), schema, func(tw *tabwriter.Writer) {
				writeSchemaDetail(tw, schema)
			})
		},
	}

	flags = AddStandardFlags(cmd, "output")
	return cmd
}

func writeSchemaTable(tw *tabwriter.Writer, schemas []*registry.Schema) {
	fmt.Fprintln(tw, "NAME\tCATEGORY\tDESCRIPTION")
	for _, s := range schemas {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Name, s.Category, s.Description)
	}
}

func writeSchemaDetail(tw *tabwriter.Writer, s *registry.Schema) {
	fmt.Fprintf(tw, "%s (%s)\n%s\n\n", s.Name, s.Category, s.Description)

	fmt.Fprintln(tw, "FIELD\tTYPE\tREQUIRED\tDEFAULT\tDESCRIPTION")
	for _, name := range s.FieldNames() {
		f := s.Fields[name]
		typ := f.Type
		if len(f.Values) > 0 {
			typ += " (" + strings.Join(f.Values, "|") + ")"
		}
		def := "-"
		if f.Default != nil {
			def = fmt.Sprint(f.Default)
		}
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\t%s\n", name, typ, f.Required, def, f.Description)
	}

	for _, group := range []struct {
		label  string
		values map[string]string
	}{
		{"Variants", s.Variants},
		{"Animations", s.Animations},
		{"Positions", s.Positions},
		{"Layouts", s.Layouts},
		{"Styles", s.Styles},
	} {
		if len(group.values) == 0 {
			continue
		}
		fmt.Fprintf(tw, "\n%s:\n", group.label)
		keys := make([]string, 0, len(group.values))
		for k := range group.values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(tw, "  %s\t%s\n", k, group.values[k])
		}
	}
}
