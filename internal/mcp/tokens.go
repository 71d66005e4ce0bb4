package mcp

import (
	"context"

	"github.com/conneroisu/reelsmith/internal/errors"
	"github.com/conneroisu/reelsmith/internal/tokens"
	"github.com/conneroisu/reelsmith/internal/validation"
	"github.com/mark3labs/mcp-go/mcp"
)

type colorTokensTool struct {
	tokens *tokens.Manager
}

func (t *colorTokensTool) Definition() mcp.Tool {
	return mcp.NewTool("list_color_tokens",
		mcp.WithDescription("List the color palettes of every theme, or of one theme."),
		mcp.WithString("theme",
			mcp.Description("Only return this theme's palette"),
		),
	)
}

func (t *colorTokensTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if name := req.GetString("theme", ""); name != "" {
		p, ok := t.tokens.Palette(name)
		if !ok {
			return errorResult(errors.ErrThemeNotFound(name))
		}
		return jsonResult(map[string]any{name: p})
	}

	palettes := make(map[string]tokens.Palette)
	for _, name := range tokens.ColorThemes() {
		if p, ok := t.tokens.Palette(name); ok {
			palettes[name] = p
		}
	}
	return jsonResult(palettes)
}

type typographyTokensTool struct{}

func (t *typographyTokensTool) Definition() mcp.Tool {
	return mcp.NewTool("list_typography_tokens",
		mcp.WithDescription("List font families, sizes per resolution, weights, line heights and text styles."),
	)
}

func (t *typographyTokensTool) Handle(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(tokens.DefaultTypography())
}

type motionTokensTool struct{}

func (t *motionTokensTool) Definition() mcp.Tool {
	return mcp.NewTool("list_motion_tokens",
		mcp.WithDescription("List spring presets, easing curves, durations and animation presets."),
	)
}

func (t *motionTokensTool) Handle(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(tokens.DefaultMotion())
}

type exportTokensTool struct {
	tokens *tokens.Manager
}

func (t *exportTokensTool) Definition() mcp.Tool {
	return mcp.NewTool("export_tokens",
		mcp.WithDescription("Write design tokens to JSON files."),
		mcp.WithString("kind",
			mcp.Description("Token family"),
			mcp.Enum(string(tokens.KindColors), string(tokens.KindTypography), string(tokens.KindMotion), string(tokens.KindAll)),
			mcp.DefaultString(string(tokens.KindAll)),
		),
		mcp.WithString("file_path",
			mcp.Description("Destination file, or directory when kind is all"),
		),
	)
}

func (t *exportTokensTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := tokens.ParseKind(req.GetString("kind", string(tokens.KindAll)))
	if err != nil {
		return errorResult(err)
	}
	dest := req.GetString("file_path", "")
	if err := validation.OptionalPath(dest); err != nil {
		return errorResult(err)
	}
	paths, err := t.tokens.Export(kind, dest)
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(map[string]any{
		"status": "exported",
		"kind":   kind,
		"files":  paths,
	})
}
