package composition

import (
	"strings"
	"testing"

	"github.com/conneroisu/reelsmith/internal/scene"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

// launchVideo exercises every slot shape: a children sequence, a single
// Container child, named single slots at depth and a named sequence.
func launchVideo(t *testing.T) *scene.Composition {
	t.Helper()

	raws := []any{
		map[string]any{
			"type": "TitleScene", "startFrame": 0, "durationInFrames": 90,
			"config": map[string]any{"text": "Reelsmith", "variant": "bold"},
		},
		map[string]any{
			"type": "Grid", "startFrame": 90, "durationInFrames": 150,
			"config": map[string]any{"layout": "2x2", "gap": 24},
			"children": []any{
				map[string]any{
					"type":   "CodeBlock",
					"config": map[string]any{"code": `fmt.Println("hi")`, "language": "go"},
				},
				map[string]any{
					"type":     "Container",
					"children": map[string]any{"type": "DemoBox", "config": map[string]any{"label": "A"}},
				},
			},
		},
		map[string]any{
			"type": "PiPLayout", "startFrame": 240, "durationInFrames": 120,
			"config": map[string]any{"pip_position": "top-left"},
			"mainContent": map[string]any{
				"type": "SplitScreen",
				"left": map[string]any{
					"type":   "CodeBlock",
					"config": map[string]any{"code": "ls", "show_line_numbers": false},
				},
				"right": map[string]any{"type": "Terminal"},
			},
			"pipContent": map[string]any{"type": "DemoBox"},
		},
		map[string]any{
			"type": "TimelineLayout", "startFrame": 360, "durationInFrames": 60,
			"milestones": []any{
				map[string]any{"type": "Counter", "config": map[string]any{"end_value": 2.5}},
				map[string]any{"type": "DemoBox", "label": "B"},
			},
		},
	}

	nodes, err := scene.ParseScenes(raws, scene.DefaultSlots())
	require.NoError(t, err)

	c := scene.NewComposition(scene.WithTheme("gaming"))
	require.NoError(t, c.AddScenes(nodes))
	c.AddLowerThird("Ada Lovelace", "Engineer", 1, 3, "glass", "bottom_left")

	return c
}

func TestRenderGolden(t *testing.T) {
	out := Render(launchVideo(t))

	newGoldie(t).Assert(t, "video_composition", []byte(out))
}

func TestRenderRootGolden(t *testing.T) {
	c := launchVideo(t)

	params := RootFor("launch_video", c)
	assert.Equal(t, "launch-video", params.ID)
	assert.Equal(t, 420, params.DurationFrames)

	out, err := RenderRoot(params)
	require.NoError(t, err)

	newGoldie(t).Assert(t, "root", []byte(out))
}

func TestRenderEmptyComposition(t *testing.T) {
	out := Render(scene.NewComposition(scene.WithTransparent(true)))

	assert.Contains(t, out, "import { AbsoluteFill } from 'remotion';\n\ninterface VideoCompositionProps")
	assert.Contains(t, out, "<AbsoluteFill style={{ backgroundColor: 'transparent' }}>\n    </AbsoluteFill>")
	assert.NotContains(t, out, "./components/")
}

func TestRootForEmptyCompositionUsesDefaultDuration(t *testing.T) {
	params := RootFor("demo", scene.NewComposition())
	assert.Equal(t, DefaultDurationFrames, params.DurationFrames)
	assert.Equal(t, "tech", params.Theme)
}

func TestRenderImportsAreUniqueAndSorted(t *testing.T) {
	c := scene.NewComposition()
	c.AddTitleScene("One", "", 2, "bold", "fade_zoom")
	c.AddTitleScene("Two", "", 2, "bold", "fade_zoom")
	c.AddLowerThird("Name", "", 0, 2, "glass", "bottom_left")

	out := Render(c)
	assert.Equal(t, 1, strings.Count(out, "import { TitleScene }"))

	lower := strings.Index(out, "import { LowerThird }")
	title := strings.Index(out, "import { TitleScene }")
	require.NotEqual(t, -1, lower)
	assert.Less(t, lower, title)
}

func TestRenderOrdersByLayer(t *testing.T) {
	c := scene.NewComposition()
	c.AddLowerThird("First Added", "", 0, 2, "glass", "bottom_left")
	c.AddTitleScene("Base", "", 2, "bold", "fade_zoom")

	out := Render(c)
	assert.Less(t, strings.Index(out, "<TitleScene"), strings.Index(out, "<LowerThird"))
}

func TestEmptySequences(t *testing.T) {
	grid := &scene.ComponentInstance{
		ComponentType:  "Grid",
		DurationFrames: 10,
		Props:          map[string]any{"children": []*scene.ComponentInstance{}},
		Slots:          []string{"children"},
	}
	assert.Equal(t, "<Grid\n  startFrame={0}\n  durationInFrames={10}\n>\n  {[]}\n</Grid>", Element(grid, 0))

	mosaic := &scene.ComponentInstance{
		ComponentType:  "MosaicLayout",
		DurationFrames: 10,
		Props:          map[string]any{"clips": []*scene.ComponentInstance{}},
		Slots:          []string{"clips"},
	}
	assert.Equal(t, "<MosaicLayout\n  startFrame={0}\n  durationInFrames={10}\n  clips={[]}\n/>", Element(mosaic, 0))
}

func TestElementWritesTimingOnce(t *testing.T) {
	inst := &scene.ComponentInstance{
		ComponentType:  "CodeBlock",
		DurationFrames: 150,
		Props:          map[string]any{"durationInFrames": 30, "startFrame": 4, "language": "go"},
	}

	out := Element(inst, 0)
	assert.Equal(t, 1, strings.Count(out, "durationInFrames="))
	assert.Equal(t, 1, strings.Count(out, "startFrame="))
	assert.Contains(t, out, "durationInFrames={150}")
	assert.Contains(t, out, `language="go"`)
}

func TestElementSpreadsNonIdentifierKeys(t *testing.T) {
	inst := &scene.ComponentInstance{
		ComponentType:  "CodeBlock",
		DurationFrames: 10,
		Props:          map[string]any{"my key": "x", "data-id": 7, "title": "ok"},
	}

	assert.Equal(t,
		"<CodeBlock\n  startFrame={0}\n  durationInFrames={10}\n  title=\"ok\"\n  {...{\"data-id\": 7, \"my key\": \"x\"}}\n/>",
		Element(inst, 0))
}

func TestRenderSpreadsNestedConfigKeys(t *testing.T) {
	nodes, err := scene.ParseScenes([]any{
		map[string]any{
			"type": "SplitScreen", "startFrame": 0, "durationInFrames": 150,
			"left": map[string]any{"type": "CodeBlock", "config": map[string]any{"my key": "x"}},
		},
	}, scene.DefaultSlots())
	require.NoError(t, err)

	c := scene.NewComposition()
	require.NoError(t, c.AddScenes(nodes))

	out := Render(c)
	assert.Contains(t, out, `{...{"my key": "x"}}`)
	assert.NotContains(t, out, " my key=")
}

func TestFormatProp(t *testing.T) {
	testCases := []struct {
		name     string
		value    any
		expected string
	}{
		{"string", "hello", `"hello"`},
		{"string with quote", `say "hi"`, `{"say \"hi\""}`},
		{"multiline string", "a\nb", `{"a\nb"}`},
		{"bool", true, "{true}"},
		{"int", 42, "{42}"},
		{"int64", int64(-7), "{-7}"},
		{"whole float", 3.0, "{3}"},
		{"float", 0.25, "{0.25}"},
		{"object", map[string]any{"b": 1, "a": "x"}, `{{"a":"x","b":1}}`},
		{"list", []any{1, "two"}, `{[1,"two"]}`},
		{"html stays literal", "<b>&</b>", `"<b>&</b>"`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatProp(tc.value))
		})
	}
}

func TestCompositionID(t *testing.T) {
	assert.Equal(t, "my-first-video", CompositionID("my_first_video"))
	assert.Equal(t, "already-ok", CompositionID("already-ok"))
}
