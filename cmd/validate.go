package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/conneroisu/reelsmith/internal/errors"
	"github.com/conneroisu/reelsmith/internal/scene"
	"github.com/spf13/cobra"
)

// ValidationReport is the outcome of `reelsmith validate`.
type ValidationReport struct {
	Path            string   `json:"path" yaml:"path"`
	Valid           bool     `json:"valid" yaml:"valid"`
	Scenes          int      `json:"scenes" yaml:"scenes"`
	TotalFrames     int      `json:"total_frames" yaml:"total_frames"`
	DurationSeconds float64  `json:"duration_seconds" yaml:"duration_seconds"`
	ComponentTypes  []string `json:"component_types" yaml:"component_types"`
	Errors          []string `json:"errors" yaml:"errors"`
	Warnings        []string `json:"warnings" yaml:"warnings"`
}

func newValidateCommand(root *rootOptions) *cobra.Command {
	var flags *StandardFlags

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a scenes file without building",
		Long: `Decode a scenes file, check the nesting and timing rules and validate
every component configuration against the catalog schemas.

Component types without a catalog entry are reported as warnings, since a
build reports them as render failures without stopping.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := validateScenes(root.env, args[0])
			if err != nil {
				return err
			}
			if err := flags.Write(cmd.OutOrStdout(), report, func(tw *tabwriter.Writer) {
				writeValidationTable(tw, report)
			}); err != nil {
				return err
			}
			if !report.Valid {
				return errors.NewValidationError(errors.ErrCodeValidationFailed,
					fmt.Sprintf("%s has %d problem(s)", args[0], len(report.Errors)))
			}
			return nil
		},
	}

	flags = AddStandardFlags(cmd, "output")
	return cmd
}

func validateScenes(env *appEnv, path string) (*ValidationReport, error) {
	report := &ValidationReport{Path: path, Errors: []string{}, Warnings: []string{}}

	doc, err := env.loadScenes(path)
	if err != nil {
		if errors.IsValidation(err) {
			report.Errors = append(report.Errors, err.Error())
			return report, nil
		}
		return nil, err
	}

	nodes, err := doc.Nodes(env.projects.Slots())
	if err != nil {
		report.Errors = append(report.Errors, err.Error())
		return report, nil
	}

	for i, node := range nodes {
		node.Walk(func(n *scene.Node) {
			schema, ok := env.registry.Get(n.Type)
			if !ok {
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("scenes[%d]: %s has no catalog entry and will not be rendered", i, n.Type))
				return
			}
			if err := schema.Validate(n.Config); err != nil {
				report.Errors = append(report.Errors, fmt.Sprintf("scenes[%d]: %s", i, errorMessage(err)))
			}
		})
	}

	if doc.Theme != "" {
		if _, ok := env.themes.Get(doc.Theme); !ok {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("theme %q is unknown, the default theme will be used", doc.Theme))
		}
	}

	c := scene.NewComposition(doc.Options()...)
	if err := c.AddScenes(nodes); err != nil {
		report.Errors = append(report.Errors, err.Error())
		return report, nil
	}

	report.Scenes = c.Len()
	report.TotalFrames = c.TotalFrames()
	report.DurationSeconds = c.FramesToSeconds(report.TotalFrames)
	report.ComponentTypes = c.Types().Sorted()
	report.Valid = len(report.Errors) == 0

	return report, nil
}

// errorMessage strips the code prefix from structured errors.
func errorMessage(err error) string {
	if re, ok := err.(*errors.ReelError); ok {
		return re.Message
	}
	return err.Error()
}

func writeValidationTable(tw *tabwriter.Writer, r *ValidationReport) {
	status := "valid"
	if !r.Valid {
		status = "invalid"
	}
	fmt.Fprintf(tw, "File:\t%s (%s)\n", r.Path, status)
	if r.Valid {
		fmt.Fprintf(tw, "Scenes:\t%d\n", r.Scenes)
		fmt.Fprintf(tw, "Duration:\t%d frames (%.2fs)\n", r.TotalFrames, r.DurationSeconds)
		fmt.Fprintf(tw, "Components:\t%s\n", joinOrDash(r.ComponentTypes))
	}
	for _, e := range r.Errors {
		fmt.Fprintf(tw, "Error:\t%s\n", e)
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(tw, "Warning:\t%s\n", w)
	}
}
