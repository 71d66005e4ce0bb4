package mcp

import (
	"context"
	"fmt"

	"github.com/conneroisu/reelsmith/internal/errors"
	"github.com/conneroisu/reelsmith/internal/project"
	"github.com/conneroisu/reelsmith/internal/scene"
	"github.com/mark3labs/mcp-go/mcp"
)

type sceneAdded struct {
	Status         string `json:"status"`
	Component      string `json:"component"`
	StartFrame     int    `json:"start_frame"`
	DurationFrames int    `json:"duration_frames"`
	TotalFrames    int    `json:"total_frames"`
	Scenes         int    `json:"scenes"`
}

func added(c *scene.Composition, inst *scene.ComponentInstance) sceneAdded {
	return sceneAdded{
		Status:         "added",
		Component:      inst.ComponentType,
		StartFrame:     inst.StartFrame,
		DurationFrames: inst.DurationFrames,
		TotalFrames:    c.TotalFrames(),
		Scenes:         c.Len(),
	}
}

type createProjectTool struct {
	projects *project.Manager
	session  *Session
}

func (t *createProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("create_project",
		mcp.WithDescription("Create a new Remotion project and make it the active project."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Project directory name (letters, digits, '-' and '_')"),
		),
		mcp.WithString("theme",
			mcp.Description("Theme key"),
			mcp.DefaultString("tech"),
		),
		mcp.WithNumber("fps",
			mcp.Description("Frames per second"),
			mcp.DefaultNumber(30),
		),
		mcp.WithNumber("width",
			mcp.Description("Video width in pixels"),
			mcp.DefaultNumber(1920),
		),
		mcp.WithNumber("height",
			mcp.Description("Video height in pixels"),
			mcp.DefaultNumber(1080),
		),
		mcp.WithBoolean("transparent",
			mcp.Description("Render with a transparent background"),
		),
	)
}

func (t *createProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	p, err := t.projects.Create(ctx, name, project.Options{
		Theme:       req.GetString("theme", ""),
		FPS:         req.GetInt("fps", 0),
		Width:       req.GetInt("width", 0),
		Height:      req.GetInt("height", 0),
		Transparent: req.GetBool("transparent", false),
	})
	if err != nil {
		return errorResult(err)
	}
	t.session.Start(p)

	return jsonResult(map[string]any{
		"status":     "created",
		"project":    p.Metadata,
		"path":       p.Path,
		"resolution": p.Metadata.Resolution(),
	})
}

type addTitleSceneTool struct {
	session *Session
}

func (t *addTitleSceneTool) Definition() mcp.Tool {
	return mcp.NewTool("add_title_scene",
		mcp.WithDescription("Append a TitleScene to the active composition, after the last scene."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Main title text"),
		),
		mcp.WithString("subtitle",
			mcp.Description("Optional subtitle"),
		),
		mcp.WithNumber("duration_seconds",
			mcp.Description("Scene length in seconds"),
			mcp.DefaultNumber(3),
		),
		mcp.WithString("variant",
			mcp.Description("Visual variant"),
			mcp.Enum("minimal", "standard", "bold", "kinetic"),
			mcp.DefaultString("bold"),
		),
		mcp.WithString("animation",
			mcp.Description("Entrance animation"),
			mcp.Enum("fade_zoom", "slide_up", "typewriter", "blur_in", "split"),
			mcp.DefaultString("fade_zoom"),
		),
	)
}

func (t *addTitleSceneTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	duration := req.GetFloat("duration_seconds", 3)
	if duration <= 0 {
		return mcp.NewToolResultError("duration_seconds must be positive"), nil
	}

	_, c, err := t.session.Current()
	if err != nil {
		return errorResult(err)
	}
	inst := c.AddTitleScene(
		text,
		req.GetString("subtitle", ""),
		duration,
		req.GetString("variant", "bold"),
		req.GetString("animation", "fade_zoom"),
	)
	return jsonResult(added(c, inst))
}

type addLowerThirdTool struct {
	session *Session
}

func (t *addLowerThirdTool) Definition() mcp.Tool {
	return mcp.NewTool("add_lower_third",
		mcp.WithDescription("Overlay a LowerThird name plate on the active composition."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Person's name"),
		),
		mcp.WithString("title",
			mcp.Description("Person's title or role"),
		),
		mcp.WithNumber("start_time",
			mcp.Description("Start time in seconds"),
			mcp.DefaultNumber(0),
		),
		mcp.WithNumber("duration",
			mcp.Description("Display time in seconds"),
			mcp.DefaultNumber(5),
		),
		mcp.WithString("variant",
			mcp.Description("Visual variant"),
			mcp.Enum("minimal", "standard", "glass", "bold", "animated"),
			mcp.DefaultString("glass"),
		),
		mcp.WithString("position",
			mcp.Description("Screen position"),
			mcp.Enum("bottom_left", "bottom_center", "bottom_right", "top_left", "top_center"),
			mcp.DefaultString("bottom_left"),
		),
	)
}

func (t *addLowerThirdTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	start := req.GetFloat("start_time", 0)
	duration := req.GetFloat("duration", 5)
	if start < 0 || duration <= 0 {
		return mcp.NewToolResultError("start_time must not be negative and duration must be positive"), nil
	}

	_, c, err := t.session.Current()
	if err != nil {
		return errorResult(err)
	}
	inst := c.AddLowerThird(
		name,
		req.GetString("title", ""),
		start,
		duration,
		req.GetString("variant", "glass"),
		req.GetString("position", "bottom_left"),
	)
	return jsonResult(added(c, inst))
}

type addSceneTool struct {
	projects *project.Manager
	session  *Session
}

func (t *addSceneTool) Definition() mcp.Tool {
	return mcp.NewTool("add_scene",
		mcp.WithDescription("Add a scene described as JSON to the active composition. "+
			"Scenes may nest components in slots such as left/right or children. "+
			"Without startFrame the scene is appended after the last scene."),
		mcp.WithString("scene",
			mcp.Required(),
			mcp.Description(`Scene JSON, e.g. {"type":"TitleScene","durationInFrames":90,"config":{"text":"Hi"}}`),
		),
	)
}

func (t *addSceneTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var raw map[string]any
	if err := decodeJSONArg(req, "scene", &raw); err != nil {
		return errorResult(err)
	}
	if raw == nil {
		return errorResult(errors.NewValidationError(errors.ErrCodeInvalidScene, "scene must be a JSON object"))
	}

	_, c, err := t.session.Current()
	if err != nil {
		return errorResult(err)
	}
	if _, ok := raw["startFrame"]; !ok {
		raw["startFrame"] = c.NextStartFrame()
	}

	node, err := scene.Parse(raw, t.projects.Slots())
	if err != nil {
		return errorResult(err)
	}
	inst, err := c.AddScene(node)
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(added(c, inst))
}

type buildScenesTool struct {
	projects *project.Manager
	session  *Session
}

func (t *buildScenesTool) Definition() mcp.Tool {
	return mcp.NewTool("build_scenes",
		mcp.WithDescription("Build the active project from a complete scene list. "+
			"Every distinct component type is rendered once; types that fail are reported without stopping the build."),
		mcp.WithString("scenes",
			mcp.Required(),
			mcp.Description("JSON or YAML scene list, or a document with a scenes key plus fps/width/height/theme"),
		),
		mcp.WithString("theme",
			mcp.Description("Theme key overriding the project and document theme"),
		),
	)
}

func (t *buildScenesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("scenes")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	p, _, err := t.session.Current()
	if err != nil {
		return errorResult(err)
	}

	doc, err := scene.DecodeBytes([]byte(raw))
	if err != nil {
		return errorResult(err)
	}
	if theme := req.GetString("theme", ""); theme != "" {
		doc.Theme = theme
	}

	result, err := t.projects.BuildDocument(ctx, p.Name, doc)
	if err != nil {
		return errorResult(err)
	}
	t.session.Replace(result.Composition)

	return jsonResult(buildReport(result))
}

type buildReportView struct {
	*project.Result
	Status    string   `json:"status"`
	NextSteps []string `json:"next_steps"`
}

func buildReport(r *project.Result) buildReportView {
	status := "success"
	if r.Partial() {
		status = "partial"
	}
	return buildReportView{
		Result: r,
		Status: status,
		NextSteps: []string{
			fmt.Sprintf("cd %s", r.ProjectPath),
			"npm install",
			"npx remotion studio",
			"npm run build",
		},
	}
}

type generateVideoTool struct {
	projects *project.Manager
	session  *Session
}

func (t *generateVideoTool) Definition() mcp.Tool {
	return mcp.NewTool("generate_video",
		mcp.WithDescription("Write the component files and the composition of the active project."),
	)
}

func (t *generateVideoTool) Handle(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, c, err := t.session.Current()
	if err != nil {
		return errorResult(err)
	}
	if c.Len() == 0 {
		return errorResult(errors.NewValidationError(errors.ErrCodeInvalidScene, "composition is empty, add scenes first"))
	}

	result, err := t.projects.Assemble(ctx, p.Name, c)
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(buildReport(result))
}

type compositionInfoTool struct {
	projects *project.Manager
	session  *Session
}

func (t *compositionInfoTool) Definition() mcp.Tool {
	return mcp.NewTool("get_composition_info",
		mcp.WithDescription("Describe the active project and its composition."),
	)
}

func (t *compositionInfoTool) Handle(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, c, err := t.session.Current()
	if err != nil {
		return errorResult(err)
	}
	info, err := t.projects.Info(p.Name)
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(map[string]any{
		"project":     info,
		"composition": c.Summary(),
	})
}

type listProjectsTool struct {
	projects *project.Manager
}

func (t *listProjectsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_projects",
		mcp.WithDescription("List the projects in the workspace."),
	)
}

func (t *listProjectsTool) Handle(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := t.projects.List()
	if err != nil {
		return errorResult(err)
	}
	if projects == nil {
		projects = []project.Summary{}
	}
	return jsonResult(map[string]any{
		"workspace": t.projects.Root(),
		"count":     len(projects),
		"projects":  projects,
	})
}

type infoTool struct {
	deps Deps
}

func (t *infoTool) Definition() mcp.Tool {
	return mcp.NewTool("get_info",
		mcp.WithDescription("Describe this server: version, component and theme counts, and build metrics."),
	)
}

func (t *infoTool) Handle(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	version := t.deps.Version
	if version == "" {
		version = "dev"
	}
	return jsonResult(map[string]any{
		"name":    ServerName,
		"version": version,
		"statistics": map[string]any{
			"components": t.deps.Registry.Count(),
			"themes":     len(t.deps.Themes.List()),
			"categories": t.deps.Registry.Categories(),
		},
		"build_metrics": t.deps.Projects.Metrics().Snapshot(),
	})
}
