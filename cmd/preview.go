package cmd

import (
	"context"
	"fmt"

	"github.com/conneroisu/reelsmith/internal/preview"
	"github.com/conneroisu/reelsmith/internal/project"
	"github.com/conneroisu/reelsmith/internal/websocket"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newPreviewCommand(root *rootOptions) *cobra.Command {
	var flags *StandardFlags

	cmd := &cobra.Command{
		Use:     "preview NAME",
		Aliases: []string{"pv"},
		Short:   "Serve a live storyboard that rebuilds on save",
		Long: `Build the project, serve its storyboard page and rebuild whenever the
scenes file changes. Open pages reload after every rebuild.

Examples:
  reelsmith preview launch_video
  reelsmith preview launch_video --port 9000 --theme education`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.ValidateFlags(); err != nil {
				return err
			}
			return runPreview(cmd, root.env, flags, args[0])
		},
	}

	flags = AddStandardFlags(cmd, "server", "scenes")
	return cmd
}

func runPreview(cmd *cobra.Command, env *appEnv, flags *StandardFlags, name string) error {
	if _, err := env.projects.Open(name); err != nil {
		return err
	}

	host := firstNonEmpty(flags.Host, env.cfg.Preview.Host)
	port := firstPositive(flags.Port, env.cfg.Preview.Port)
	addr := preview.Addr(host, port)
	path := env.scenesPath(name, flags.Scenes)
	out := cmd.OutOrStdout()

	hub := websocket.NewHub(websocket.LocalOrigins{Hosts: []string{host}}, env.logger)
	srv := preview.NewServer(env.projects, hub, env.logger)

	report := func(ctx context.Context, result *project.Result, err error) {
		printBuildLine(out, name, result, err)
		if err != nil {
			srv.PublishFailure(ctx, name, err)
			return
		}
		srv.Publish(ctx, result)
	}
	rebuild := rebuildFunc(env, name, flags.Theme, report)
	_ = rebuild(cmd.Context(), path)

	fmt.Fprintf(out, "Storyboard: http://%s/projects/%s\n", addr, name)
	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", path)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error { return srv.ListenAndServe(ctx, addr) })
	g.Go(func() error { return watchScenes(ctx, env, path, rebuild) })
	return g.Wait()
}
