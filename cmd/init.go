package cmd

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/conneroisu/reelsmith/internal/errors"
	"github.com/conneroisu/reelsmith/internal/project"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// starterScenes is written next to a new project so the first build has
// something to render.
const starterScenes = `# Scenes for %[1]s. Top-level scenes need startFrame and durationInFrames;
# nested scenes inherit their parent's timing.
theme: %[2]s
scenes:
  - type: TitleScene
    startFrame: 0
    durationInFrames: %[3]d
    config:
      text: "%[1]s"
      variant: bold
      animation: fade_zoom
  - type: LowerThird
    startFrame: %[4]d
    durationInFrames: %[3]d
    config:
      name: Presenter
      title: Host
      start_time: 1.5
      variant: glass
      position: bottom_left
`

type initOptions struct {
	flags       *StandardFlags
	fps         int
	width       int
	height      int
	transparent bool
	noScenes    bool
}

func newInitCommand(root *rootOptions) *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:     "init NAME",
		Aliases: []string{"i"},
		Short:   "Create a new video project",
		Long: `Create a Remotion project in the workspace with the package manifest,
TypeScript config, an empty composition and a starter scenes.yaml.

Video settings default to the video section of the configuration.

Examples:
  reelsmith init launch_video
  reelsmith init shorts --theme gaming --width 1080 --height 1920 --fps 60`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, root.env, opts, args[0])
		},
	}

	opts.flags = AddStandardFlags(cmd, "output")
	cmd.Flags().StringVarP(&opts.flags.Theme, "theme", "t", "", "Theme (default from config)")
	cmd.Flags().IntVar(&opts.fps, "fps", 0, "Frames per second")
	cmd.Flags().IntVar(&opts.width, "width", 0, "Frame width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", 0, "Frame height in pixels")
	cmd.Flags().BoolVar(&opts.transparent, "transparent", false, "Render with a transparent background")
	cmd.Flags().BoolVar(&opts.noScenes, "no-scenes", false, "Don't write a starter scenes file")

	return cmd
}

func runInit(cmd *cobra.Command, env *appEnv, opts *initOptions, name string) error {
	video := env.cfg.Video
	settings := project.Options{
		Theme:       firstNonEmpty(opts.flags.Theme, video.Theme),
		FPS:         firstPositive(opts.fps, video.FPS),
		Width:       firstPositive(opts.width, video.Width),
		Height:      firstPositive(opts.height, video.Height),
		Transparent: opts.transparent || video.Transparent,
	}

	p, err := env.projects.Create(cmd.Context(), name, settings)
	if err != nil {
		return err
	}

	scenesPath := ""
	if !opts.noScenes {
		scenesPath = filepath.Join(p.Path, env.cfg.Build.Scenes)
		seconds := 3 * p.Metadata.FPS
		body := fmt.Sprintf(starterScenes, p.Name, p.Metadata.Theme, seconds, seconds/2)
		if err := afero.WriteFile(env.fs, scenesPath, []byte(body), 0o644); err != nil {
			return errors.WrapIO(err, errors.ErrCodeWriteFailed, "writing starter scenes", scenesPath)
		}
	}

	env.logger.Info(cmd.Context(), "Project created", "project", p.Name, "path", p.Path)

	out := struct {
		project.Metadata `yaml:",inline"`
		Path             string `json:"path" yaml:"path"`
		Scenes           string `json:"scenes,omitempty" yaml:"scenes,omitempty"`
	}{p.Metadata, p.Path, scenesPath}

	return opts.flags.Write(cmd.OutOrStdout(), out, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "Created project %s in %s\n", p.Name, p.Path)
		fmt.Fprintf(tw, "Theme:\t%s\n", p.Metadata.Theme)
		fmt.Fprintf(tw, "Video:\t%s at %d fps\n", p.Metadata.Resolution(), p.Metadata.FPS)
		if scenesPath != "" {
			fmt.Fprintf(tw, "Scenes:\t%s\n", scenesPath)
		}
		fmt.Fprintf(tw, "\nNext: reelsmith build %s\n", p.Name)
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
