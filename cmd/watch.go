package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/conneroisu/reelsmith/internal/project"
	"github.com/conneroisu/reelsmith/internal/watcher"
	"github.com/spf13/cobra"
)

// buildReporter receives the outcome of every build triggered by a change.
type buildReporter func(ctx context.Context, result *project.Result, err error)

func newWatchCommand(root *rootOptions) *cobra.Command {
	var flags *StandardFlags

	cmd := &cobra.Command{
		Use:     "watch NAME",
		Aliases: []string{"w"},
		Short:   "Rebuild a project whenever its scenes file changes",
		Long: `Build the project once, then rebuild it every time the scenes file is
saved. Rapid saves are batched by the watch.debounce setting.

Examples:
  reelsmith watch launch_video
  reelsmith watch launch_video --scenes drafts/v2.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := root.env
			name := args[0]
			path := env.scenesPath(name, flags.Scenes)
			out := cmd.OutOrStdout()

			report := func(ctx context.Context, result *project.Result, err error) {
				printBuildLine(out, name, result, err)
			}

			rebuild := rebuildFunc(env, name, flags.Theme, report)
			_ = rebuild(cmd.Context(), path)

			fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", path)
			return watchScenes(cmd.Context(), env, path, rebuild)
		},
	}

	flags = AddStandardFlags(cmd, "scenes")
	return cmd
}

// rebuildFunc builds name from the changed file and hands the outcome to
// report. Build errors are reported, not returned, so watching continues.
func rebuildFunc(env *appEnv, name, themeOverride string, report buildReporter) watcher.BuildFunc {
	return func(ctx context.Context, path string) error {
		result, err := env.buildProject(ctx, name, path, themeOverride)
		if err != nil {
			env.logger.Warn(ctx, err, "Rebuild failed", "project", name, "scenes", path)
		} else {
			env.logger.Info(ctx, "Rebuilt project", "project", name, "build_id", result.BuildID,
				"frames", result.TotalFrames, "failures", len(result.Failures))
		}
		report(ctx, result, err)
		return nil
	}
}

// watchScenes runs build on every saved change of path until ctx ends.
func watchScenes(ctx context.Context, env *appEnv, path string, build watcher.BuildFunc) error {
	fw, err := watcher.NewFileWatcher(env.cfg.Watch.Debounce, watcher.WithLogger(env.logger))
	if err != nil {
		return err
	}
	defer fw.Stop()

	fw.AddFilter(watcher.NoTempFilter)
	if err := fw.WatchFile(path); err != nil {
		return err
	}
	fw.AddHandler(watcher.RebuildHandler(path, build))

	if err := fw.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

func printBuildLine(w io.Writer, name string, result *project.Result, err error) {
	switch {
	case err != nil:
		fmt.Fprintf(w, "%s: build failed: %v\n", name, err)
	case result.Partial():
		fmt.Fprintf(w, "%s: built %d frames, %d component type(s) failed\n", name, result.TotalFrames, len(result.Failures))
		for _, f := range result.Failures {
			fmt.Fprintf(w, "  %s: %s\n", f.Component, f.Message)
		}
	default:
		fmt.Fprintf(w, "%s: built %d frames (%s)\n", name, result.TotalFrames, joinOrDash(result.ComponentTypes))
	}
}
