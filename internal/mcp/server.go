// Package mcp exposes the component registry, themes, tokens and project
// builds as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/conneroisu/reelsmith/internal/errors"
	"github.com/conneroisu/reelsmith/internal/logging"
	"github.com/conneroisu/reelsmith/internal/project"
	"github.com/conneroisu/reelsmith/internal/registry"
	"github.com/conneroisu/reelsmith/internal/theme"
	"github.com/conneroisu/reelsmith/internal/tokens"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ServerName is reported to clients during initialization.
const ServerName = "reelsmith"

// Transports accepted by Serve.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Deps are the shared services the tools operate on.
type Deps struct {
	Registry *registry.Registry
	Themes   *theme.Manager
	Tokens   *tokens.Manager
	Projects *project.Manager
	Logger   logging.Logger
	Version  string
}

// Tool is one MCP tool: its schema and its handler.
type Tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// Tools returns every tool bound to deps and session, in registration
// order.
func Tools(deps Deps, session *Session) []Tool {
	return []Tool{
		// components
		&listComponentsTool{registry: deps.Registry},
		&searchComponentsTool{registry: deps.Registry},
		&componentSchemaTool{registry: deps.Registry},

		// projects
		&createProjectTool{projects: deps.Projects, session: session},
		&addTitleSceneTool{session: session},
		&addLowerThirdTool{session: session},
		&addSceneTool{projects: deps.Projects, session: session},
		&buildScenesTool{projects: deps.Projects, session: session},
		&generateVideoTool{projects: deps.Projects, session: session},
		&compositionInfoTool{projects: deps.Projects, session: session},
		&listProjectsTool{projects: deps.Projects},
		&infoTool{deps: deps},

		// themes
		&listThemesTool{themes: deps.Themes},
		&themeInfoTool{themes: deps.Themes},
		&searchThemesTool{themes: deps.Themes},
		&compareThemesTool{themes: deps.Themes},
		&setCurrentThemeTool{themes: deps.Themes, session: session},
		&currentThemeTool{themes: deps.Themes},
		&validateThemeTool{},
		&createCustomThemeTool{themes: deps.Themes},
		&exportThemeTool{themes: deps.Themes},
		&importThemeTool{themes: deps.Themes},

		// tokens
		&colorTokensTool{tokens: deps.Tokens},
		&typographyTokensTool{},
		&motionTokensTool{},
		&exportTokensTool{tokens: deps.Tokens},
	}
}

// New creates the MCP server with every tool registered against a fresh
// session.
func New(deps Deps) *server.MCPServer {
	if deps.Logger == nil {
		deps.Logger = logging.NewNopLogger()
	}
	if deps.Version == "" {
		deps.Version = "dev"
	}
	logger := deps.Logger.WithComponent("mcp")

	s := server.NewMCPServer(
		ServerName,
		deps.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	for _, t := range Tools(deps, NewSession()) {
		def := t.Definition()
		s.AddTool(def, logged(logger, def.Name, t.Handle))
	}

	return s
}

func logged(logger logging.Logger, name string, next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		result, err := next(ctx, req)
		fields := []interface{}{"tool", name, "duration", time.Since(start)}
		switch {
		case err != nil:
			logger.Error(ctx, err, "Tool failed", fields...)
		case result != nil && result.IsError:
			logger.Warn(ctx, nil, "Tool returned an error", fields...)
		default:
			logger.Debug(ctx, "Tool completed", fields...)
		}
		return result, err
	}
}

// Serve runs s over the named transport until ctx is cancelled or the
// transport fails. addr is only used by the HTTP transport.
func Serve(ctx context.Context, s *server.MCPServer, transport, addr string) error {
	switch transport {
	case "", TransportStdio:
		return server.NewStdioServer(s).Listen(ctx, os.Stdin, os.Stdout)
	case TransportHTTP:
		httpServer := server.NewStreamableHTTPServer(s)
		errCh := make(chan error, 1)
		go func() { errCh <- httpServer.Start(addr) }()
		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		}
	default:
		return errors.NewConfigError(errors.ErrCodeConfigInvalid,
			fmt.Sprintf("unknown MCP transport %q (want %s or %s)", transport, TransportStdio, TransportHTTP))
	}
}

const instructions = `Reelsmith generates Remotion video projects from a catalog of motion graphics components.

Typical flow:
1. list_components / get_component_schema to pick components.
2. create_project to start a project; it becomes the active project.
3. add_title_scene, add_lower_third or add_scene to append scenes, or build_scenes to build a whole scene list at once.
4. generate_video to write the component files and composition.

Themes and design tokens can be inspected with the theme and token tools.`

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding tool result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func errorResult(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

// decodeJSONArg unmarshals a JSON-encoded string argument into v.
func decodeJSONArg(req mcp.CallToolRequest, key string, v any) error {
	raw, err := req.RequireString(key)
	if err != nil {
		return errors.NewValidationError(errors.ErrCodeValidationFailed, err.Error())
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return errors.WrapValidation(err, errors.ErrCodeValidationFailed, fmt.Sprintf("%s must be valid JSON", key))
	}
	return nil
}
