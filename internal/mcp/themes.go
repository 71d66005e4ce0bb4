package mcp

import (
	"context"

	"github.com/conneroisu/reelsmith/internal/theme"
	"github.com/conneroisu/reelsmith/internal/validation"
	"github.com/mark3labs/mcp-go/mcp"
)

type themeSummary struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	PrimaryColor string   `json:"primary_color"`
	AccentColor  string   `json:"accent_color"`
	UseCases     []string `json:"use_cases"`
}

func summarizeThemes(m *theme.Manager, keys []string) []themeSummary {
	out := make([]themeSummary, 0, len(keys))
	for _, key := range keys {
		t, ok := m.Get(key)
		if !ok {
			continue
		}
		out = append(out, themeSummary{
			Key:          key,
			Name:         t.Name,
			Description:  t.Description,
			PrimaryColor: t.Colors.Base(),
			AccentColor:  t.Colors.Highlight(),
			UseCases:     t.UseCases,
		})
	}
	return out
}

type listThemesTool struct {
	themes *theme.Manager
}

func (t *listThemesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_themes",
		mcp.WithDescription("List every available theme with its key colors and use cases."),
	)
}

func (t *listThemesTool) Handle(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keys := t.themes.List()
	return jsonResult(map[string]any{
		"count":   len(keys),
		"current": t.themes.Current(),
		"themes":  summarizeThemes(t.themes, keys),
	})
}

type themeInfoTool struct {
	themes *theme.Manager
}

func (t *themeInfoTool) Definition() mcp.Tool {
	return mcp.NewTool("get_theme_info",
		mcp.WithDescription("Get the colors, typography and motion settings of a theme."),
		mcp.WithString("theme_name",
			mcp.Required(),
			mcp.Description("Theme key, e.g. tech"),
		),
	)
}

func (t *themeInfoTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("theme_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	th, err := t.themes.Info(key)
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(map[string]any{
		"key":        key,
		"theme":      th,
		"font_sizes": th.FontSizes(),
	})
}

type searchThemesTool struct {
	themes *theme.Manager
}

func (t *searchThemesTool) Definition() mcp.Tool {
	return mcp.NewTool("search_themes",
		mcp.WithDescription("Search themes by name, description or use case."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Case-insensitive search text"),
		),
	)
}

func (t *searchThemesTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	keys := t.themes.Search(query)
	return jsonResult(map[string]any{
		"query":   query,
		"count":   len(keys),
		"results": summarizeThemes(t.themes, keys),
	})
}

type compareThemesTool struct {
	themes *theme.Manager
}

func (t *compareThemesTool) Definition() mcp.Tool {
	return mcp.NewTool("compare_themes",
		mcp.WithDescription("Compare two themes side by side."),
		mcp.WithString("theme1",
			mcp.Required(),
			mcp.Description("First theme key"),
		),
		mcp.WithString("theme2",
			mcp.Required(),
			mcp.Description("Second theme key"),
		),
	)
}

func (t *compareThemesTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, err := req.RequireString("theme1")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, err := req.RequireString("theme2")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cmp, err := t.themes.Compare(a, b)
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(cmp)
}

type setCurrentThemeTool struct {
	themes  *theme.Manager
	session *Session
}

func (t *setCurrentThemeTool) Definition() mcp.Tool {
	return mcp.NewTool("set_current_theme",
		mcp.WithDescription("Select the current theme. The active composition, if any, switches to it."),
		mcp.WithString("theme_name",
			mcp.Required(),
			mcp.Description("Theme key"),
		),
	)
}

func (t *setCurrentThemeTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("theme_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := t.themes.SetCurrent(key); err != nil {
		return errorResult(err)
	}
	return jsonResult(map[string]any{
		"status":              "updated",
		"current":             key,
		"composition_updated": t.session.SetTheme(key),
	})
}

type currentThemeTool struct {
	themes *theme.Manager
}

func (t *currentThemeTool) Definition() mcp.Tool {
	return mcp.NewTool("get_current_theme",
		mcp.WithDescription("Get the currently selected theme."),
	)
}

func (t *currentThemeTool) Handle(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := t.themes.Current()
	if key == "" {
		key = theme.DefaultKey
	}
	th, err := t.themes.Info(key)
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(map[string]any{
		"current": key,
		"theme":   th,
	})
}

type validateThemeTool struct{}

func (t *validateThemeTool) Definition() mcp.Tool {
	return mcp.NewTool("validate_theme",
		mcp.WithDescription("Check that a theme definition has every required section."),
		mcp.WithString("theme_data",
			mcp.Required(),
			mcp.Description("Theme definition as a JSON object"),
		),
	)
}

func (t *validateThemeTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var data map[string]any
	if err := decodeJSONArg(req, "theme_data", &data); err != nil {
		return errorResult(err)
	}
	return jsonResult(theme.Validate(data))
}

type createCustomThemeTool struct {
	themes *theme.Manager
}

func (t *createCustomThemeTool) Definition() mcp.Tool {
	return mcp.NewTool("create_custom_theme",
		mcp.WithDescription("Create a theme from a base theme with replaced primary and accent colors."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Display name; the key is derived from it"),
		),
		mcp.WithString("description",
			mcp.Description("Short description"),
		),
		mcp.WithString("base_theme",
			mcp.Description("Theme key to start from"),
			mcp.DefaultString(theme.DefaultKey),
		),
		mcp.WithString("primary_colors",
			mcp.Description(`JSON array of hex colors, e.g. ["#FF0000","#CC0000"]`),
		),
		mcp.WithString("accent_colors",
			mcp.Description("JSON array of hex colors"),
		),
	)
}

func (t *createCustomThemeTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	overrides := make(map[string]any)
	for arg, key := range map[string]string{"primary_colors": "primary", "accent_colors": "accent"} {
		if req.GetString(arg, "") == "" {
			continue
		}
		var colors []string
		if err := decodeJSONArg(req, arg, &colors); err != nil {
			return errorResult(err)
		}
		values := make([]any, len(colors))
		for i, c := range colors {
			values[i] = c
		}
		overrides[key] = values
	}

	key, err := t.themes.CreateCustom(theme.CustomOptions{
		Name:           name,
		Description:    req.GetString("description", ""),
		Base:           req.GetString("base_theme", theme.DefaultKey),
		ColorOverrides: overrides,
	})
	if err != nil {
		return errorResult(err)
	}
	th, _ := t.themes.Get(key)
	return jsonResult(map[string]any{
		"status": "created",
		"key":    key,
		"theme":  th,
	})
}

type exportThemeTool struct {
	themes *theme.Manager
}

func (t *exportThemeTool) Definition() mcp.Tool {
	return mcp.NewTool("export_theme",
		mcp.WithDescription("Write a theme to a JSON file."),
		mcp.WithString("theme_name",
			mcp.Required(),
			mcp.Description("Theme key"),
		),
		mcp.WithString("file_path",
			mcp.Description("Destination; defaults to <theme>_theme.json"),
		),
	)
}

func (t *exportThemeTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("theme_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dest := req.GetString("file_path", "")
	if err := validation.OptionalPath(dest); err != nil {
		return errorResult(err)
	}
	path, err := t.themes.Export(key, dest)
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(map[string]any{
		"status": "exported",
		"theme":  key,
		"path":   path,
	})
}

type importThemeTool struct {
	themes *theme.Manager
}

func (t *importThemeTool) Definition() mcp.Tool {
	return mcp.NewTool("import_theme",
		mcp.WithDescription("Register a theme from a JSON file."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Theme JSON file"),
		),
		mcp.WithString("theme_key",
			mcp.Description("Key to register under; derived from the theme name when empty"),
		),
	)
}

func (t *importThemeTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("file_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := validation.Path(path); err != nil {
		return errorResult(err)
	}
	if err := validation.FileExtension(path, ".json"); err != nil {
		return errorResult(err)
	}
	key, err := t.themes.Import(path, req.GetString("theme_key", ""))
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(map[string]any{
		"status": "imported",
		"key":    key,
		"path":   path,
	})
}
