package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/conneroisu/reelsmith/internal/project"
	"github.com/conneroisu/reelsmith/internal/registry"
	"github.com/conneroisu/reelsmith/internal/theme"
	"github.com/conneroisu/reelsmith/internal/tokens"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const workspace = "/work"

type harness struct {
	fs      afero.Fs
	deps    Deps
	session *Session
	tools   map[string]Tool
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	fs := afero.NewMemMapFs()
	reg := registry.NewDefault()
	themes := theme.NewManager(fs)
	projects, err := project.NewManager(fs, workspace,
		project.WithRegistry(reg),
		project.WithThemes(themes),
		project.WithWorkers(2),
	)
	require.NoError(t, err)

	h := &harness{
		fs: fs,
		deps: Deps{
			Registry: reg,
			Themes:   themes,
			Tokens:   tokens.NewManager(fs),
			Projects: projects,
			Version:  "1.2.3",
		},
		session: NewSession(),
		tools:   make(map[string]Tool),
	}
	for _, tool := range Tools(h.deps, h.session) {
		h.tools[tool.Definition().Name] = tool
	}
	return h
}

// call runs the named tool and returns its text and error flag.
func (h *harness) call(t *testing.T, name string, args map[string]any) (string, bool) {
	t.Helper()

	tool, ok := h.tools[name]
	require.True(t, ok, "tool %s is not registered", name)

	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := tool.Handle(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text, result.IsError
}

// callJSON runs a tool that must succeed and decodes its JSON result.
func (h *harness) callJSON(t *testing.T, name string, args map[string]any) map[string]any {
	t.Helper()

	text, isError := h.call(t, name, args)
	require.False(t, isError, text)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &out), text)
	return out
}

func TestToolsAreUnique(t *testing.T) {
	h := newHarness(t)

	want := []string{
		"list_components", "search_components", "get_component_schema",
		"create_project", "add_title_scene", "add_lower_third", "add_scene",
		"build_scenes", "generate_video", "get_composition_info", "list_projects", "get_info",
		"list_themes", "get_theme_info", "search_themes", "compare_themes",
		"set_current_theme", "get_current_theme", "validate_theme", "create_custom_theme",
		"export_theme", "import_theme",
		"list_color_tokens", "list_typography_tokens", "list_motion_tokens", "export_tokens",
	}
	assert.Len(t, h.tools, len(want))
	for _, name := range want {
		assert.Contains(t, h.tools, name)
	}

	assert.NotNil(t, New(h.deps))
}

func TestComponentTools(t *testing.T) {
	h := newHarness(t)

	out := h.callJSON(t, "list_components", map[string]any{"category": "layout"})
	components := out["components"].([]any)
	require.NotEmpty(t, components)
	for _, c := range components {
		assert.Equal(t, "layout", c.(map[string]any)["category"])
	}

	out = h.callJSON(t, "search_components", map[string]any{"query": "lower"})
	var names []string
	for _, c := range out["results"].([]any) {
		names = append(names, c.(map[string]any)["name"].(string))
	}
	assert.Contains(t, names, "LowerThird")

	out = h.callJSON(t, "get_component_schema", map[string]any{"component_name": "TitleScene"})
	assert.Equal(t, "TitleScene", out["name"])
	assert.Contains(t, out["schema"], "text")

	text, isError := h.call(t, "get_component_schema", map[string]any{"component_name": "Hologram"})
	assert.True(t, isError)
	assert.Contains(t, text, "Hologram")

	_, isError = h.call(t, "search_components", map[string]any{})
	assert.True(t, isError)
}

func TestSceneToolsRequireProject(t *testing.T) {
	h := newHarness(t)

	for _, name := range []string{"add_title_scene", "generate_video", "get_composition_info"} {
		t.Run(name, func(t *testing.T) {
			text, isError := h.call(t, name, map[string]any{"text": "Hello"})
			assert.True(t, isError)
			assert.Contains(t, text, "no active project")
		})
	}
}

func TestIncrementalVideoBuild(t *testing.T) {
	h := newHarness(t)

	out := h.callJSON(t, "create_project", map[string]any{"name": "launch", "theme": "gaming", "fps": 30})
	assert.Equal(t, "created", out["status"])
	assert.Equal(t, "1920x1080", out["resolution"])

	out = h.callJSON(t, "add_title_scene", map[string]any{"text": "Launch Day", "duration_seconds": 2})
	assert.EqualValues(t, 0, out["start_frame"])
	assert.EqualValues(t, 60, out["duration_frames"])

	out = h.callJSON(t, "add_scene", map[string]any{
		"scene": `{"type":"SplitScreen","durationInFrames":90,` +
			`"left":{"type":"CodeBlock","config":{"code":"go run ."}},` +
			`"right":{"type":"TitleScene","config":{"text":"Output"}}}`,
	})
	assert.Equal(t, "SplitScreen", out["component"])
	assert.EqualValues(t, 60, out["start_frame"])
	assert.EqualValues(t, 150, out["total_frames"])

	out = h.callJSON(t, "add_lower_third", map[string]any{"name": "Ada", "title": "Engineer", "start_time": 1, "duration": 3})
	assert.EqualValues(t, 30, out["start_frame"])
	assert.EqualValues(t, 150, out["total_frames"])
	assert.EqualValues(t, 3, out["scenes"])

	out = h.callJSON(t, "get_composition_info", nil)
	composition := out["composition"].(map[string]any)
	assert.Equal(t, "gaming", composition["theme"])
	assert.ElementsMatch(t, []any{"CodeBlock", "LowerThird", "SplitScreen", "TitleScene"}, composition["component_types"])

	out = h.callJSON(t, "generate_video", nil)
	assert.Equal(t, "success", out["status"])
	assert.Equal(t, "launch", out["project_id"])
	assert.EqualValues(t, 150, out["total_frames"])
	assert.Len(t, out["component_files"], 4)
	assert.Contains(t, out["next_steps"], "npm install")

	for _, name := range []string{"CodeBlock", "LowerThird", "SplitScreen", "TitleScene"} {
		ok, err := afero.Exists(h.fs, filepath.Join(workspace, "launch", project.ComponentsDir, name+".tsx"))
		require.NoError(t, err)
		assert.True(t, ok, name)
	}
}

func TestAddSceneRejectsInvalidScene(t *testing.T) {
	h := newHarness(t)
	h.callJSON(t, "create_project", map[string]any{"name": "demo"})

	testCases := []struct {
		name  string
		scene string
	}{
		{"not json", `{"type":`},
		{"null", `null`},
		{"array", `[{"type":"TitleScene"}]`},
		{"timing in config", `{"type":"TitleScene","durationInFrames":30,"config":{"durationInFrames":10}}`},
		{"missing type", `{"durationInFrames":30}`},
		{"missing duration", `{"type":"TitleScene"}`},
		{"nested timing", `{"type":"SplitScreen","durationInFrames":30,"left":{"type":"CodeBlock","startFrame":5}}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, isError := h.call(t, "add_scene", map[string]any{"scene": tc.scene})
			assert.True(t, isError)
		})
	}

	text, isError := h.call(t, "add_scene", map[string]any{"scene": "null"})
	assert.True(t, isError)
	assert.Contains(t, text, "scene must be a JSON object")
}

func TestGenerateVideoRejectsEmptyComposition(t *testing.T) {
	h := newHarness(t)
	h.callJSON(t, "create_project", map[string]any{"name": "empty"})

	text, isError := h.call(t, "generate_video", nil)
	assert.True(t, isError)
	assert.Contains(t, text, "empty")
}

func TestBuildScenesReportsPartialBuild(t *testing.T) {
	h := newHarness(t)
	h.callJSON(t, "create_project", map[string]any{"name": "split"})

	out := h.callJSON(t, "build_scenes", map[string]any{
		"theme": "finance",
		"scenes": `
- type: SplitScreen
  startFrame: 0
  durationInFrames: 120
  left:
    type: CodeBlock
    config:
      code: ls
  right:
    type: Terminal
`,
	})
	assert.Equal(t, "partial", out["status"])
	assert.EqualValues(t, 120, out["total_frames"])
	failures := out["failures"].([]any)
	require.Len(t, failures, 1)
	assert.Equal(t, "Terminal", failures[0].(map[string]any)["component"])

	out = h.callJSON(t, "get_composition_info", nil)
	assert.Equal(t, "finance", out["composition"].(map[string]any)["theme"])

	out = h.callJSON(t, "list_projects", nil)
	assert.EqualValues(t, 1, out["count"])
}

func TestThemeTools(t *testing.T) {
	h := newHarness(t)

	out := h.callJSON(t, "list_themes", nil)
	assert.EqualValues(t, 7, out["count"])

	out = h.callJSON(t, "get_theme_info", map[string]any{"theme_name": "finance"})
	assert.Equal(t, "finance", out["key"])

	_, isError := h.call(t, "get_theme_info", map[string]any{"theme_name": "vaporwave"})
	assert.True(t, isError)

	out = h.callJSON(t, "search_themes", map[string]any{"query": "esports"})
	assert.EqualValues(t, 1, out["count"])

	out = h.callJSON(t, "compare_themes", map[string]any{"theme1": "tech", "theme2": "gaming"})
	assert.Equal(t, []any{"tech", "gaming"}, out["themes"])

	out = h.callJSON(t, "set_current_theme", map[string]any{"theme_name": "minimal"})
	assert.Equal(t, false, out["composition_updated"])
	out = h.callJSON(t, "get_current_theme", nil)
	assert.Equal(t, "minimal", out["current"])

	out = h.callJSON(t, "validate_theme", map[string]any{"theme_data": `{"name":"x"}`})
	assert.Equal(t, false, out["valid"])
	assert.NotEmpty(t, out["errors"])
}

func TestSetCurrentThemeUpdatesComposition(t *testing.T) {
	h := newHarness(t)
	h.callJSON(t, "create_project", map[string]any{"name": "demo"})

	out := h.callJSON(t, "set_current_theme", map[string]any{"theme_name": "education"})
	assert.Equal(t, true, out["composition_updated"])

	_, c, err := h.session.Current()
	require.NoError(t, err)
	assert.Equal(t, "education", c.ThemeKey())
}

func TestCustomThemeExportImport(t *testing.T) {
	h := newHarness(t)

	out := h.callJSON(t, "create_custom_theme", map[string]any{
		"name":           "Brand Blue",
		"base_theme":     "tech",
		"primary_colors": `["#0000FF","#0000CC"]`,
	})
	assert.Equal(t, "brand_blue", out["key"])
	colors := out["theme"].(map[string]any)["colors"].(map[string]any)
	assert.Equal(t, []any{"#0000FF", "#0000CC"}, colors["primary"])

	_, isError := h.call(t, "create_custom_theme", map[string]any{"name": "Bad", "accent_colors": "red"})
	assert.True(t, isError)

	out = h.callJSON(t, "export_theme", map[string]any{"theme_name": "brand_blue", "file_path": "/themes/brand.json"})
	assert.Equal(t, "/themes/brand.json", out["path"])

	out = h.callJSON(t, "import_theme", map[string]any{"file_path": "/themes/brand.json", "theme_key": "brand_copy"})
	assert.Equal(t, "brand_copy", out["key"])

	th, ok := h.deps.Themes.Get("brand_copy")
	require.True(t, ok)
	assert.Equal(t, "#0000FF", th.Colors.Base())

	_, isError = h.call(t, "import_theme", map[string]any{"file_path": "/themes/missing.json"})
	assert.True(t, isError)

	_, isError = h.call(t, "export_theme", map[string]any{"theme_name": "tech", "file_path": "/themes/../../escape.json"})
	assert.True(t, isError)
	_, isError = h.call(t, "import_theme", map[string]any{"file_path": "../brand.json"})
	assert.True(t, isError)
}

func TestTokenTools(t *testing.T) {
	h := newHarness(t)

	out := h.callJSON(t, "list_color_tokens", map[string]any{"theme": "tech"})
	tech := out["tech"].(map[string]any)
	assert.Equal(t, "#0066FF", tech["primary"].([]any)[0])

	out = h.callJSON(t, "list_color_tokens", nil)
	assert.Len(t, out, len(tokens.ColorThemes()))

	_, isError := h.call(t, "list_color_tokens", map[string]any{"theme": "vaporwave"})
	assert.True(t, isError)

	out = h.callJSON(t, "list_typography_tokens", nil)
	assert.Contains(t, out, "font_sizes")

	out = h.callJSON(t, "list_motion_tokens", nil)
	assert.Contains(t, out, "spring_configs")

	out = h.callJSON(t, "export_tokens", map[string]any{"kind": "colors", "file_path": "/tokens/colors.json"})
	assert.Equal(t, "/tokens/colors.json", out["files"].(map[string]any)["colors"])
	ok, err := afero.Exists(h.fs, "/tokens/colors.json")
	require.NoError(t, err)
	assert.True(t, ok)

	_, isError = h.call(t, "export_tokens", map[string]any{"kind": "sounds"})
	assert.True(t, isError)
}

func TestInfoTool(t *testing.T) {
	h := newHarness(t)

	out := h.callJSON(t, "get_info", nil)
	assert.Equal(t, ServerName, out["name"])
	assert.Equal(t, "1.2.3", out["version"])
	stats := out["statistics"].(map[string]any)
	assert.EqualValues(t, h.deps.Registry.Count(), stats["components"])
	assert.EqualValues(t, 7, stats["themes"])
}

func TestSessionStartResetsComposition(t *testing.T) {
	h := newHarness(t)

	h.callJSON(t, "create_project", map[string]any{"name": "first"})
	h.callJSON(t, "add_title_scene", map[string]any{"text": "One"})
	h.callJSON(t, "create_project", map[string]any{"name": "second"})

	p, c, err := h.session.Current()
	require.NoError(t, err)
	assert.Equal(t, "second", p.Name)
	assert.Equal(t, 0, c.Len())

	_, isError := h.call(t, "create_project", map[string]any{"name": "second"})
	assert.True(t, isError)
}
