package scene

import (
	"strings"
	"testing"

	"github.com/conneroisu/reelsmith/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeYAMLDocument(t *testing.T) {
	input := `
theme: finance
fps: 60
width: 1280
height: 720
scenes:
  - type: SplitScreen
    startFrame: 0
    durationInFrames: 150
    left:
      type: CodeBlock
      config:
        language: go
    right:
      type: Terminal
  - type: TitleScene
    startFrame: 150
    durationInFrames: 90
    config:
      text: Thanks
`
	doc, err := Decode(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "finance", doc.Theme)
	require.Len(t, doc.Scenes, 2)

	nodes, err := doc.Nodes(DefaultSlots())
	require.NoError(t, err)

	c := NewComposition(doc.Options()...)
	require.NoError(t, c.AddScenes(nodes))

	assert.Equal(t, 60, c.FPS)
	assert.Equal(t, 1280, c.Width)
	assert.Equal(t, 720, c.Height)
	assert.Equal(t, "finance", c.Theme)
	assert.Equal(t, 240, c.TotalFrames())
	assert.Equal(t, []string{"CodeBlock", "SplitScreen", "Terminal", "TitleScene"}, c.Types().Sorted())

	left := c.Instances()[0].Props["left"].(*ComponentInstance)
	assert.Equal(t, "go", left.Props["language"])
}

func TestDecodeBareList(t *testing.T) {
	doc, err := DecodeBytes([]byte(`- {type: Counter, startFrame: 0, durationInFrames: 30, config: {to: 100}}`))
	require.NoError(t, err)

	nodes, err := doc.Nodes(DefaultSlots())
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, 100, nodes[0].Config["to"])
	assert.Empty(t, doc.Options())
}

func TestDecodeJSON(t *testing.T) {
	input := `{"scenes": [{"type": "Grid", "startFrame": 0, "durationInFrames": 60,
		"children": [{"type": "A"}, {"type": "B"}]}]}`

	doc, err := DecodeBytes([]byte(input))
	require.NoError(t, err)

	nodes, err := doc.Nodes(DefaultSlots())
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	require.Len(t, nodes[0].Slots, 1)
	assert.Len(t, nodes[0].Slots[0].Items, 2)
}

func TestDecodeErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"empty", "   \n"},
		{"scalar", "hello"},
		{"malformed", "scenes: [unclosed"},
		{"scenes not a list", "scenes: 3"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeBytes([]byte(tc.input))
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))
		})
	}
}
