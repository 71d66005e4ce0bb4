package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/conneroisu/reelsmith/internal/project"
	"github.com/conneroisu/reelsmith/internal/scene"
)

// Storyboard is everything the project page shows.
type Storyboard struct {
	Info  *project.Info
	Build *project.Result
}

// timelineRow is one scene bar, positioned in percent of the video length.
type timelineRow struct {
	Type     string
	Start    int
	Duration int
	Layer    int
	Left     float64
	Width    float64
	Children []string
}

func timeline(instances []*scene.ComponentInstance, total int) []timelineRow {
	if total <= 0 {
		return nil
	}
	rows := make([]timelineRow, 0, len(instances))
	for _, inst := range instances {
		row := timelineRow{
			Type:     inst.ComponentType,
			Start:    inst.StartFrame,
			Duration: inst.DurationFrames,
			Layer:    inst.Layer,
			Left:     100 * float64(inst.StartFrame) / float64(total),
			Width:    100 * float64(inst.DurationFrames) / float64(total),
		}
		for _, child := range inst.Children() {
			row.Children = append(row.Children, child.ComponentType)
		}
		rows = append(rows, row)
	}
	return rows
}

const stylesheet = `
body{font-family:system-ui,sans-serif;margin:2rem;background:#0A0E1A;color:#E6E9F0}
a{color:#00D9FF}
table{border-collapse:collapse;margin-top:1rem}
td,th{padding:.25rem .75rem;border-bottom:1px solid #2A2F3F;text-align:left}
.timeline{position:relative;background:#151A2A;border-radius:6px;margin-top:1rem}
.track{position:relative;height:2rem;margin:.25rem 0}
.scene{position:absolute;top:0;bottom:0;background:#0066FF;border-radius:4px;padding:0 .4rem;overflow:hidden;white-space:nowrap;font-size:.8rem;line-height:2rem}
.scene.overlay{background:#00B8D4}
.failure{color:#FF3D00}
.muted{color:#8B92A4}
`

// layout wraps body in the shared page chrome.
func layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			"<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\"><title>%s</title><style>%s</style></head><body>",
			templ.EscapeString(title), stylesheet,
		); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}

// IndexPage lists the workspace projects.
func IndexPage(projects []project.Summary) templ.Component {
	return layout("Reelsmith projects", templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<h1>Projects</h1>")
		if len(projects) == 0 {
			b.WriteString(`<p class="muted">No projects yet. Run <code>reelsmith init</code> to create one.</p>`)
		} else {
			b.WriteString(`<ul id="projects">`)
			for _, p := range projects {
				fmt.Fprintf(&b, `<li><a href="/projects/%s">%s</a> <span class="muted">%s</span></li>`,
					templ.EscapeString(p.Name), templ.EscapeString(p.Name), templ.EscapeString(p.Path))
			}
			b.WriteString("</ul>")
		}
		_, err := io.WriteString(w, b.String())
		return err
	}))
}

// StoryboardPage renders the project summary, the latest build and its
// scene timeline, and reloads itself when a build event for the project
// arrives.
func StoryboardPage(sb Storyboard) templ.Component {
	return layout(sb.Info.Name+" storyboard", templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		info := sb.Info

		fmt.Fprintf(&b, `<h1 id="project">%s</h1>`, templ.EscapeString(info.Name))
		fmt.Fprintf(&b, `<p id="settings">%s at %d fps, theme <strong>%s</strong>, %d frames</p>`,
			templ.EscapeString(info.Resolution), info.FPS, templ.EscapeString(info.Theme), info.DurationFrames)

		writeBuild(&b, sb.Build)
		writeComponents(&b, info.Components)

		name, err := json.Marshal(info.Name)
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, `<script>
(() => {
  const project = %s;
  const scheme = location.protocol === "https:" ? "wss://" : "ws://";
  const ws = new WebSocket(scheme + location.host + "/ws");
  ws.onmessage = (e) => {
    const msg = JSON.parse(e.data);
    if (msg.project === project) location.reload();
  };
})();
</script>`, name)

		_, err = io.WriteString(w, b.String())
		return err
	}))
}

func writeBuild(b *strings.Builder, build *project.Result) {
	if build == nil {
		b.WriteString(`<p id="build" class="muted">No build in this session yet. Save the scenes file to trigger one.</p>`)
		return
	}

	fmt.Fprintf(b, `<p id="build">Build <code>%s</code>: %d frames (%.2fs), %d component types</p>`,
		templ.EscapeString(build.BuildID), build.TotalFrames, build.DurationSeconds, len(build.ComponentTypes))

	if len(build.Failures) > 0 {
		b.WriteString(`<ul id="failures">`)
		for _, f := range build.Failures {
			fmt.Fprintf(b, `<li class="failure"><strong>%s</strong>: %s</li>`,
				templ.EscapeString(f.Component), templ.EscapeString(f.Message))
		}
		b.WriteString("</ul>")
	}

	if build.Composition == nil {
		return
	}
	rows := timeline(build.Composition.Layered(), build.TotalFrames)
	if len(rows) == 0 {
		return
	}

	b.WriteString(`<div class="timeline" id="timeline">`)
	for _, r := range rows {
		class := "scene"
		if r.Layer >= scene.LayerOverlay {
			class += " overlay"
		}
		fmt.Fprintf(b, `<div class="track"><div class="%s" data-type="%s" style="left:%.2f%%;width:%.2f%%">%s</div></div>`,
			class, templ.EscapeString(r.Type), r.Left, r.Width, templ.EscapeString(r.Type))
	}
	b.WriteString("</div>")

	b.WriteString(`<table id="scenes"><thead><tr><th>Component</th><th>Start</th><th>Frames</th><th>Layer</th><th>Nested</th></tr></thead><tbody>`)
	for _, r := range rows {
		fmt.Fprintf(b, "<tr><td>%s</td><td>%d</td><td>%d</td><td>%d</td><td>%s</td></tr>",
			templ.EscapeString(r.Type), r.Start, r.Duration, r.Layer, templ.EscapeString(strings.Join(r.Children, ", ")))
	}
	b.WriteString("</tbody></table>")
}

func writeComponents(b *strings.Builder, components []string) {
	b.WriteString("<h2>Component files</h2>")
	if len(components) == 0 {
		b.WriteString(`<p class="muted">None generated yet.</p>`)
		return
	}
	b.WriteString(`<ul id="components">`)
	for _, c := range components {
		fmt.Fprintf(b, `<li class="component">%s.tsx</li>`, templ.EscapeString(c))
	}
	b.WriteString("</ul>")
}
