package cmd

import (
	"github.com/conneroisu/reelsmith/internal/mcp"
	"github.com/conneroisu/reelsmith/internal/version"
	"github.com/spf13/cobra"
)

func newServeCommand(root *rootOptions) *cobra.Command {
	var transport, addr string

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"s", "mcp"},
		Short:   "Run the MCP tool server",
		Long: `Expose the component catalog, themes, tokens and the project builder as
Model Context Protocol tools.

The stdio transport is meant to be launched by an MCP client; logs go to
stderr. The http transport serves the streamable HTTP endpoint on --addr.

Examples:
  reelsmith serve
  reelsmith serve --transport http --addr :8090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env := root.env
			transport = firstNonEmpty(transport, env.cfg.MCP.Transport)
			addr = firstNonEmpty(addr, env.cfg.MCP.Addr)

			s := mcp.New(mcp.Deps{
				Registry: env.registry,
				Themes:   env.themes,
				Tokens:   env.tokens,
				Projects: env.projects,
				Logger:   env.logger,
				Version:  version.GetVersion(),
			})

			fields := []interface{}{"transport", transport, "workspace", env.projects.Root()}
			if transport == mcp.TransportHTTP {
				fields = append(fields, "addr", addr)
			}
			env.logger.Info(cmd.Context(), "MCP server starting", fields...)

			return mcp.Serve(cmd.Context(), s, transport, addr)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "", "Transport (stdio, http); default from config")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address for the http transport")
	return cmd
}
