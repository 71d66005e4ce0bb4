package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw map[string]any) *Node {
	t.Helper()
	node, err := Parse(raw, DefaultSlots())
	require.NoError(t, err)
	return node
}

func TestFlattenSplitScreen(t *testing.T) {
	node := mustParse(t, map[string]any{
		"type":             "SplitScreen",
		"startFrame":       0,
		"durationInFrames": 150,
		"left":             map[string]any{"type": "CodeBlock"},
		"right":            map[string]any{"type": "Terminal"},
	})

	seen := make(TypeSet)
	root := Flatten(node, 0, 0, seen)

	assert.Equal(t, "SplitScreen", root.ComponentType)
	assert.Equal(t, 0, root.StartFrame)
	assert.Equal(t, 150, root.DurationFrames)
	assert.Equal(t, LayerBase, root.Layer)

	left, ok := root.Props["left"].(*ComponentInstance)
	require.True(t, ok)
	right, ok := root.Props["right"].(*ComponentInstance)
	require.True(t, ok)

	for _, child := range []*ComponentInstance{left, right} {
		assert.Equal(t, 0, child.StartFrame)
		assert.Equal(t, 150, child.DurationFrames)
		assert.Equal(t, LayerChild, child.Layer)
	}
	assert.Equal(t, "CodeBlock", left.ComponentType)
	assert.Equal(t, "Terminal", right.ComponentType)
	assert.Equal(t, []string{"CodeBlock", "SplitScreen", "Terminal"}, seen.Sorted())
}

func TestFlattenInheritsTopLevelTiming(t *testing.T) {
	node := mustParse(t, map[string]any{
		"type":             "SplitScreen",
		"startFrame":       90,
		"durationInFrames": 150,
		"left":             map[string]any{"type": "DemoBox"},
		"right":            map[string]any{"type": "DemoBox"},
	})

	root := Flatten(node, 0, 0, make(TypeSet))

	for _, child := range root.Children() {
		assert.Equal(t, 90, child.StartFrame)
		assert.Equal(t, 150, child.DurationFrames)
	}
}

func TestFlattenUsesInheritedTimingWithoutOwnTiming(t *testing.T) {
	node := &Node{
		Type:   "Container",
		Config: map[string]any{},
		Slots: []SlotValue{
			{Name: "children", Cardinality: Single, Node: &Node{Type: "DemoBox", Config: map[string]any{}}},
		},
	}

	root := Flatten(node, 42, 17, make(TypeSet))

	assert.Equal(t, 42, root.StartFrame)
	assert.Equal(t, 17, root.DurationFrames)
	child := root.Props["children"].(*ComponentInstance)
	assert.Equal(t, 42, child.StartFrame)
	assert.Equal(t, 17, child.DurationFrames)
}

func TestFlattenPreservesSequenceOrder(t *testing.T) {
	node := mustParse(t, map[string]any{
		"type":             "Grid",
		"startFrame":       0,
		"durationInFrames": 30,
		"children": []any{
			map[string]any{"type": "A"},
			map[string]any{"type": "B"},
			map[string]any{"type": "C"},
		},
	})

	root := Flatten(node, 0, 0, make(TypeSet))

	children, ok := root.Props["children"].([]*ComponentInstance)
	require.True(t, ok)
	require.Len(t, children, 3)
	var types []string
	for _, c := range children {
		types = append(types, c.ComponentType)
	}
	assert.Equal(t, []string{"A", "B", "C"}, types)
}

func TestFlattenLayers(t *testing.T) {
	node := mustParse(t, map[string]any{
		"type":             "Stage",
		"startFrame":       10,
		"durationInFrames": 20,
		"overlay":          map[string]any{"type": "LowerThird", "config": map[string]any{"name": "Ada"}},
		"left":             map[string]any{"type": "X"},
	})

	root := Flatten(node, 0, 0, make(TypeSet))

	assert.Equal(t, LayerBase, root.Layer)
	assert.Equal(t, LayerOverlay, root.Props["overlay"].(*ComponentInstance).Layer)
	assert.Equal(t, LayerChild, root.Props["left"].(*ComponentInstance).Layer)
	assert.Equal(t, "Ada", root.Props["overlay"].(*ComponentInstance).Props["name"])
}

func TestFlattenDeepNesting(t *testing.T) {
	node := mustParse(t, map[string]any{
		"type":             "Grid",
		"startFrame":       300,
		"durationInFrames": 60,
		"children": []any{
			map[string]any{
				"type": "SplitScreen",
				"left": map[string]any{
					"type": "PiPLayout",
					"mainContent": map[string]any{
						"type":     "Container",
						"children": map[string]any{"type": "CodeBlock", "config": map[string]any{"code": "x := 1"}},
					},
					"pipContent": map[string]any{"type": "DemoBox"},
				},
			},
		},
	})

	seen := make(TypeSet)
	root := Flatten(node, 0, 0, seen)

	assert.Equal(t, []string{"CodeBlock", "Container", "DemoBox", "Grid", "PiPLayout", "SplitScreen"}, seen.Sorted())

	split := root.Props["children"].([]*ComponentInstance)[0]
	pip := split.Props["left"].(*ComponentInstance)
	container := pip.Props["mainContent"].(*ComponentInstance)
	code := container.Props["children"].(*ComponentInstance)

	assert.Equal(t, "CodeBlock", code.ComponentType)
	assert.Equal(t, "x := 1", code.Props["code"])
	assert.Equal(t, 300, code.StartFrame)
	assert.Equal(t, 60, code.DurationFrames)
	assert.Equal(t, LayerChild, code.Layer)

	var count int
	root.Walk(func(*ComponentInstance) { count++ })
	assert.Equal(t, 6, count)
}

func TestFlattenKeepsConfigAsProps(t *testing.T) {
	node := mustParse(t, map[string]any{
		"type":             "TitleScene",
		"startFrame":       0,
		"durationInFrames": 90,
		"config":           map[string]any{"text": "Hello", "variant": "bold"},
	})

	root := Flatten(node, 0, 0, make(TypeSet))

	assert.Equal(t, map[string]any{"text": "Hello", "variant": "bold"}, root.Props)
	assert.Empty(t, root.Slots)
	assert.Empty(t, root.Children())
}

func TestTypeSet(t *testing.T) {
	s := NewTypeSet("b", "a", "b")
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("c"))

	s.Merge(NewTypeSet("c"))
	assert.Equal(t, []string{"a", "b", "c"}, s.Sorted())
}
