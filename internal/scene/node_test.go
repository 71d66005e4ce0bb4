package scene

import (
	stderrors "errors"
	"testing"

	"github.com/conneroisu/reelsmith/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorCode(t *testing.T, err error) string {
	t.Helper()
	var re *errors.ReelError
	require.True(t, stderrors.As(err, &re), "expected a ReelError, got %T", err)
	return re.Code
}

func errorPath(t *testing.T, err error) string {
	t.Helper()
	var re *errors.ReelError
	require.True(t, stderrors.As(err, &re))
	return re.Path
}

func TestParseRejects(t *testing.T) {
	testCases := []struct {
		name     string
		raw      map[string]any
		wantCode string
		wantPath string
	}{
		{
			name:     "missing type",
			raw:      map[string]any{"startFrame": 0, "durationInFrames": 10},
			wantCode: errors.ErrCodeInvalidScene,
			wantPath: "scene",
		},
		{
			name:     "blank type",
			raw:      map[string]any{"type": "  ", "startFrame": 0, "durationInFrames": 10},
			wantCode: errors.ErrCodeInvalidScene,
			wantPath: "scene",
		},
		{
			name:     "missing duration",
			raw:      map[string]any{"type": "TitleScene", "startFrame": 0},
			wantCode: errors.ErrCodeMissingTiming,
			wantPath: "scene",
		},
		{
			name:     "negative start",
			raw:      map[string]any{"type": "TitleScene", "startFrame": -1, "durationInFrames": 10},
			wantCode: errors.ErrCodeInvalidScene,
			wantPath: "scene.startFrame",
		},
		{
			name:     "zero duration",
			raw:      map[string]any{"type": "TitleScene", "startFrame": 0, "durationInFrames": 0},
			wantCode: errors.ErrCodeInvalidScene,
			wantPath: "scene.durationInFrames",
		},
		{
			name:     "fractional duration",
			raw:      map[string]any{"type": "TitleScene", "startFrame": 0, "durationInFrames": 2.5},
			wantCode: errors.ErrCodeInvalidScene,
			wantPath: "scene.durationInFrames",
		},
		{
			name:     "config not a mapping",
			raw:      map[string]any{"type": "TitleScene", "startFrame": 0, "durationInFrames": 10, "config": "bold"},
			wantCode: errors.ErrCodeInvalidScene,
			wantPath: "scene.config",
		},
		{
			name: "single slot holding a string",
			raw: map[string]any{
				"type": "SplitScreen", "startFrame": 0, "durationInFrames": 10,
				"left": "CodeBlock",
			},
			wantCode: errors.ErrCodeInvalidSlot,
			wantPath: "scene.left",
		},
		{
			name: "single slot holding a list",
			raw: map[string]any{
				"type": "SplitScreen", "startFrame": 0, "durationInFrames": 10,
				"left": []any{map[string]any{"type": "CodeBlock"}},
			},
			wantCode: errors.ErrCodeInvalidSlot,
			wantPath: "scene.left",
		},
		{
			name: "sequence slot holding a mapping",
			raw: map[string]any{
				"type": "Grid", "startFrame": 0, "durationInFrames": 10,
				"children": map[string]any{"type": "CodeBlock"},
			},
			wantCode: errors.ErrCodeInvalidSlot,
			wantPath: "scene.children",
		},
		{
			name: "sequence item not a mapping",
			raw: map[string]any{
				"type": "Grid", "startFrame": 0, "durationInFrames": 10,
				"children": []any{map[string]any{"type": "A"}, 7},
			},
			wantCode: errors.ErrCodeInvalidSlot,
			wantPath: "scene.children[1]",
		},
		{
			name: "nested timing",
			raw: map[string]any{
				"type": "SplitScreen", "startFrame": 0, "durationInFrames": 10,
				"left": map[string]any{"type": "CodeBlock", "startFrame": 5},
			},
			wantCode: errors.ErrCodeInvalidScene,
			wantPath: "scene.left",
		},
		{
			name: "timing inside config",
			raw: map[string]any{
				"type": "TitleScene", "startFrame": 0, "durationInFrames": 10,
				"config": map[string]any{"durationInFrames": 30},
			},
			wantCode: errors.ErrCodeInvalidScene,
			wantPath: "scene.config",
		},
		{
			name: "nested timing inside config",
			raw: map[string]any{
				"type": "SplitScreen", "startFrame": 0, "durationInFrames": 150,
				"left": map[string]any{"type": "CodeBlock", "config": map[string]any{"startFrame": 5}},
			},
			wantCode: errors.ErrCodeInvalidScene,
			wantPath: "scene.left.config",
		},
		{
			name: "nested missing type",
			raw: map[string]any{
				"type": "SplitScreen", "startFrame": 0, "durationInFrames": 10,
				"left": map[string]any{"type": "PiPLayout", "pipContent": map[string]any{"config": map[string]any{}}},
			},
			wantCode: errors.ErrCodeInvalidScene,
			wantPath: "scene.left.pipContent",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.raw, DefaultSlots())
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))
			assert.Equal(t, tc.wantCode, errorCode(t, err))
			assert.Equal(t, tc.wantPath, errorPath(t, err))
		})
	}
}

func TestParseMergesLooseKeysIntoConfig(t *testing.T) {
	node, err := Parse(map[string]any{
		"type":             "TitleScene",
		"startFrame":       0,
		"durationInFrames": 90,
		"text":             "loose",
		"variant":          "loose",
		"config":           map[string]any{"variant": "bold"},
	}, DefaultSlots())
	require.NoError(t, err)

	assert.Equal(t, "loose", node.Config["text"])
	assert.Equal(t, "bold", node.Config["variant"])
	assert.NotContains(t, node.Config, "startFrame")
	assert.True(t, node.IsLeaf())
	require.NotNil(t, node.Timing)
	assert.Equal(t, Timing{StartFrame: 0, DurationFrames: 90}, *node.Timing)
}

func TestParseNullSlotIsAbsent(t *testing.T) {
	node, err := Parse(map[string]any{
		"type":             "SplitScreen",
		"startFrame":       0,
		"durationInFrames": 30,
		"left":             map[string]any{"type": "CodeBlock"},
		"right":            nil,
	}, DefaultSlots())
	require.NoError(t, err)

	require.Len(t, node.Slots, 1)
	assert.Equal(t, "left", node.Slots[0].Name)
	assert.NotContains(t, node.Config, "right")
}

func TestParseContainerChildrenIsSingle(t *testing.T) {
	node, err := Parse(map[string]any{
		"type":             "Container",
		"startFrame":       0,
		"durationInFrames": 30,
		"children":         map[string]any{"type": "CodeBlock"},
	}, DefaultSlots())
	require.NoError(t, err)

	require.Len(t, node.Slots, 1)
	assert.Equal(t, Single, node.Slots[0].Cardinality)
	assert.Equal(t, "CodeBlock", node.Slots[0].Node.Type)
}

func TestParseContainerChildrenAcceptsList(t *testing.T) {
	node, err := Parse(map[string]any{
		"type":             "Container",
		"startFrame":       0,
		"durationInFrames": 30,
		"children": []any{
			map[string]any{"type": "CodeBlock"},
			map[string]any{"type": "DemoBox"},
		},
	}, DefaultSlots())
	require.NoError(t, err)

	require.Len(t, node.Slots, 1)
	assert.Equal(t, Sequence, node.Slots[0].Cardinality)
	require.Len(t, node.Slots[0].Items, 2)
	assert.Equal(t, "DemoBox", node.Slots[0].Items[1].Type)

	inst := Flatten(node, 0, 0, NewTypeSet())
	children, ok := inst.Props[ChildrenSlot].([]*ComponentInstance)
	require.True(t, ok)
	require.Len(t, children, 2)
	assert.Equal(t, 30, children[0].DurationFrames)
}

func TestParseAcceptsYAMLMapShapes(t *testing.T) {
	node, err := Parse(map[string]any{
		"type":             "Grid",
		"startFrame":       int64(0),
		"durationInFrames": float64(60),
		"children": []any{
			map[any]any{"type": "A", "config": map[any]any{"label": "x"}},
		},
	}, DefaultSlots())
	require.NoError(t, err)

	require.Len(t, node.Slots, 1)
	require.Len(t, node.Slots[0].Items, 1)
	assert.Equal(t, "x", node.Slots[0].Items[0].Config["label"])
	assert.Equal(t, 60, node.Timing.DurationFrames)
}

func TestParseDepthLimit(t *testing.T) {
	leaf := map[string]any{"type": "DemoBox"}
	for i := 0; i < MaxDepth+1; i++ {
		leaf = map[string]any{"type": "Container", "children": leaf}
	}
	leaf["startFrame"] = 0
	leaf["durationInFrames"] = 10

	_, err := Parse(leaf, DefaultSlots())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidScene, errorCode(t, err))
}

func TestParseScenes(t *testing.T) {
	nodes, err := ParseScenes([]any{
		map[string]any{"type": "A", "startFrame": 0, "durationInFrames": 30},
		map[string]any{"type": "B", "startFrame": 30, "durationInFrames": 30},
	}, DefaultSlots())
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "B", nodes[1].Type)

	_, err = ParseScenes([]any{
		map[string]any{"type": "A", "startFrame": 0, "durationInFrames": 30},
		"B",
	}, DefaultSlots())
	require.Error(t, err)
	assert.Equal(t, "scenes[1]", errorPath(t, err))
}

func TestNodeWalk(t *testing.T) {
	node, err := Parse(map[string]any{
		"type":             "ThreeColumnLayout",
		"startFrame":       0,
		"durationInFrames": 30,
		"left":             map[string]any{"type": "A"},
		"center":           map[string]any{"type": "B"},
		"right":            map[string]any{"type": "C"},
	}, DefaultSlots())
	require.NoError(t, err)

	var visited []string
	node.Walk(func(n *Node) { visited = append(visited, n.Type) })
	assert.Equal(t, []string{"ThreeColumnLayout", "A", "B", "C"}, visited)
}
