// Package composition serializes a scene.Composition into the Remotion
// entry files of a project: VideoComposition.tsx and Root.tsx.
package composition

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/conneroisu/reelsmith/internal/errors"
	"github.com/conneroisu/reelsmith/internal/scene"
)

// Project-relative paths of the generated entry files.
const (
	CompositionFile = "src/VideoComposition.tsx"
	RootFile        = "src/Root.tsx"
)

// ChildrenSlot is rendered as JSX element children rather than a prop.
const ChildrenSlot = "children"

const topIndent = 6

//go:embed root.tsx.tmpl
var rootSource string

var rootTemplate = template.Must(template.New("root").Delims("[[", "]]").Parse(rootSource))

// Render produces VideoComposition.tsx for c. Imports cover every type
// reachable from the top-level instances, and instances are emitted by
// ascending layer.
func Render(c *scene.Composition) string {
	instances := c.Layered()

	seen := scene.NewTypeSet()
	for _, inst := range instances {
		inst.Walk(func(ci *scene.ComponentInstance) { seen.Add(ci.ComponentType) })
	}

	var b strings.Builder
	b.WriteString("import React from 'react';\n")
	b.WriteString("import { AbsoluteFill } from 'remotion';\n")
	for _, typ := range seen.Sorted() {
		fmt.Fprintf(&b, "import { %s } from './components/%s';\n", typ, typ)
	}

	background := "#000"
	if c.Transparent {
		background = "transparent"
	}

	b.WriteString("\ninterface VideoCompositionProps {\n  theme: string;\n}\n\n")
	b.WriteString("export const VideoComposition: React.FC<VideoCompositionProps> = ({ theme }) => {\n")
	b.WriteString("  return (\n")
	fmt.Fprintf(&b, "    <AbsoluteFill style={{ backgroundColor: '%s' }}>\n", background)
	for _, inst := range instances {
		b.WriteString(Element(inst, topIndent))
		b.WriteString("\n")
	}
	b.WriteString("    </AbsoluteFill>\n")
	b.WriteString("  );\n")
	b.WriteString("};\n")

	return b.String()
}

// Element renders one instance and everything nested in it as JSX,
// indented by indent spaces.
func Element(inst *scene.ComponentInstance, indent int) string {
	pad := strings.Repeat(" ", indent)

	lines := []string{
		pad + "<" + inst.ComponentType,
		fmt.Sprintf("%s  startFrame={%d}", pad, inst.StartFrame),
		fmt.Sprintf("%s  durationInFrames={%d}", pad, inst.DurationFrames),
	}
	attrs, spread := propKeys(inst)
	for _, key := range attrs {
		lines = append(lines, fmt.Sprintf("%s  %s=%s", pad, key, FormatProp(inst.Props[key])))
	}
	if len(spread) > 0 {
		fields := make([]string, len(spread))
		for i, key := range spread {
			fields[i] = mustJSON(key) + ": " + mustJSON(inst.Props[key])
		}
		lines = append(lines, fmt.Sprintf("%s  {...{%s}}", pad, strings.Join(fields, ", ")))
	}

	var body []string
	for _, slot := range inst.Slots {
		switch v := inst.Props[slot].(type) {
		case *scene.ComponentInstance:
			child := Element(v, indent+4)
			if slot == ChildrenSlot {
				body = append(body, child)
				continue
			}
			lines = append(lines, pad+"  "+slot+"={", child, pad+"  }")
		case []*scene.ComponentInstance:
			if len(v) == 0 {
				if slot == ChildrenSlot {
					body = append(body, pad+"  {[]}")
				} else {
					lines = append(lines, pad+"  "+slot+"={[]}")
				}
				continue
			}
			items := make([]string, len(v))
			for i, item := range v {
				items[i] = Element(item, indent+4)
			}
			list := strings.Join(items, ",\n")
			if slot == ChildrenSlot {
				body = append(body, pad+"  {[", list, pad+"  ]}")
				continue
			}
			lines = append(lines, pad+"  "+slot+"={[", list, pad+"  ]}")
		}
	}

	if len(body) == 0 {
		lines = append(lines, pad+"/>")
		return strings.Join(lines, "\n")
	}

	lines = append(lines, pad+">")
	lines = append(lines, body...)
	lines = append(lines, pad+"</"+inst.ComponentType+">")

	return strings.Join(lines, "\n")
}

// jsxName matches keys that can be written as a JSX attribute name.
var jsxName = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// propKeys returns the non-slot, non-nil prop keys in lexical order, split
// into plain attribute names and keys that need an object spread. Timing
// keys are skipped; Element writes them from the instance.
func propKeys(inst *scene.ComponentInstance) (attrs, spread []string) {
	for key, value := range inst.Props {
		if value == nil || inst.IsSlot(key) || key == scene.KeyStart || key == scene.KeyDuration {
			continue
		}
		if jsxName.MatchString(key) {
			attrs = append(attrs, key)
		} else {
			spread = append(spread, key)
		}
	}
	sort.Strings(attrs)
	sort.Strings(spread)
	return attrs, spread
}

// FormatProp renders a prop value as a JSX attribute value.
func FormatProp(value any) string {
	switch v := value.(type) {
	case string:
		if strings.ContainsAny(v, "\"\n\r") {
			return "{" + mustJSON(v) + "}"
		}
		return `"` + v + `"`
	case bool:
		return "{" + strconv.FormatBool(v) + "}"
	case int:
		return "{" + strconv.Itoa(v) + "}"
	case int64:
		return "{" + strconv.FormatInt(v, 10) + "}"
	case uint64:
		return "{" + strconv.FormatUint(v, 10) + "}"
	case float64:
		return "{" + strconv.FormatFloat(v, 'f', -1, 64) + "}"
	default:
		return "{" + mustJSON(v) + "}"
	}
}

func mustJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return strconv.Quote(fmt.Sprint(v))
	}
	return strings.TrimRight(buf.String(), "\n")
}

// RootParams configures Root.tsx.
type RootParams struct {
	ID             string
	DurationFrames int
	FPS            int
	Width          int
	Height         int
	Theme          string
}

// DefaultDurationFrames is the Root.tsx duration of a project without scenes.
const DefaultDurationFrames = 300

// RootFor derives Root.tsx parameters for project name from c.
func RootFor(name string, c *scene.Composition) RootParams {
	total := c.TotalFrames()
	if total == 0 {
		total = DefaultDurationFrames
	}
	return RootParams{
		ID:             CompositionID(name),
		DurationFrames: total,
		FPS:            c.FPS,
		Width:          c.Width,
		Height:         c.Height,
		Theme:          c.ThemeKey(),
	}
}

// RenderRoot produces Root.tsx, which registers the composition with Remotion.
func RenderRoot(p RootParams) (string, error) {
	var buf bytes.Buffer
	if err := rootTemplate.Execute(&buf, p); err != nil {
		return "", errors.NewBuildError(errors.ErrCodeRenderFailed, "rendering Root.tsx", err)
	}
	return buf.String(), nil
}

// CompositionID converts a project name into a Remotion composition id,
// which may only hold letters, digits and hyphens.
func CompositionID(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}
