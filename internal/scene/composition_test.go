package scene

import (
	"sync"
	"testing"

	"github.com/conneroisu/reelsmith/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompositionDefaults(t *testing.T) {
	c := NewComposition()
	assert.Equal(t, 30, c.FPS)
	assert.Equal(t, 1920, c.Width)
	assert.Equal(t, 1080, c.Height)
	assert.Equal(t, "tech", c.Theme)
	assert.False(t, c.Transparent)
	assert.Zero(t, c.TotalFrames())

	c = NewComposition(WithFPS(60), WithSize(1280, 720), WithTheme("gaming"), WithTransparent(true))
	assert.Equal(t, 60, c.FPS)
	assert.Equal(t, 1280, c.Width)
	assert.Equal(t, "gaming", c.Theme)
	assert.True(t, c.Transparent)
}

func TestAddSceneAppendsOnlyTopLevel(t *testing.T) {
	c := NewComposition()
	node := mustParse(t, map[string]any{
		"type":             "SplitScreen",
		"startFrame":       0,
		"durationInFrames": 150,
		"left":             map[string]any{"type": "CodeBlock"},
		"right":            map[string]any{"type": "Terminal"},
	})

	instance, err := c.AddScene(node)
	require.NoError(t, err)

	assert.Equal(t, 1, c.Len())
	assert.Same(t, instance, c.Instances()[0])
	assert.Equal(t, []string{"CodeBlock", "SplitScreen", "Terminal"}, c.Types().Sorted())
	assert.Equal(t, 150, c.TotalFrames())
}

func TestAddSceneRequiresTiming(t *testing.T) {
	c := NewComposition()
	_, err := c.AddScene(&Node{Type: "TitleScene", Config: map[string]any{}})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Equal(t, errors.ErrCodeMissingTiming, errorCode(t, err))
	assert.Zero(t, c.Len())
}

func TestAddScenesStopsAtFirstError(t *testing.T) {
	c := NewComposition()
	err := c.AddScenes([]*Node{
		{Type: "A", Config: map[string]any{}, Timing: &Timing{StartFrame: 0, DurationFrames: 10}},
		{Type: "B", Config: map[string]any{}},
		{Type: "C", Config: map[string]any{}, Timing: &Timing{StartFrame: 10, DurationFrames: 10}},
	})
	require.Error(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestSequentialTitleScenes(t *testing.T) {
	c := NewComposition()

	first := c.AddTitleScene("Intro", "", 3, "bold", "fade_zoom")
	second := c.AddTitleScene("Part Two", "Details", 2.5, "minimal", "slide_up")

	assert.Equal(t, 0, first.StartFrame)
	assert.Equal(t, 90, first.DurationFrames)
	assert.Equal(t, 90, second.StartFrame)
	assert.Equal(t, 75, second.DurationFrames)
	assert.NotContains(t, first.Props, "subtitle")
	assert.Equal(t, "Details", second.Props["subtitle"])
	assert.Equal(t, 165, c.NextStartFrame())
}

func TestLowerThirdDoesNotAdvanceSequence(t *testing.T) {
	c := NewComposition()
	c.AddTitleScene("Intro", "", 2, "bold", "fade_zoom")

	lt := c.AddLowerThird("Ada Lovelace", "Engineer", 1, 5, "glass", "bottom_left")

	assert.Equal(t, LayerOverlay, lt.Layer)
	assert.Equal(t, 30, lt.StartFrame)
	assert.Equal(t, 150, lt.DurationFrames)
	assert.Equal(t, 60, c.NextStartFrame())
	assert.Equal(t, 180, c.TotalFrames())
}

func TestLayeredIsStable(t *testing.T) {
	c := NewComposition()
	c.AddLowerThird("a", "", 0, 1, "glass", "bottom_left")
	c.AddTitleScene("one", "", 1, "bold", "fade_zoom")
	c.AddTitleScene("two", "", 1, "bold", "fade_zoom")

	var order []string
	for _, inst := range c.Layered() {
		order = append(order, inst.ComponentType)
	}
	assert.Equal(t, []string{"TitleScene", "TitleScene", "LowerThird"}, order)
	assert.Equal(t, "one", c.Layered()[0].Props["text"])
}

func TestSecondsToFrames(t *testing.T) {
	testCases := []struct {
		fps     int
		seconds float64
		want    int
	}{
		{30, 0, 0},
		{30, 1, 30},
		{30, 2.5, 75},
		{30, 0.1, 3},
		{24, 0.7, 16},
		{60, 1.0 / 3.0, 20},
	}

	for _, tc := range testCases {
		c := NewComposition(WithFPS(tc.fps))
		assert.Equal(t, tc.want, c.SecondsToFrames(tc.seconds), "fps=%d seconds=%v", tc.fps, tc.seconds)
	}
}

func TestSummary(t *testing.T) {
	c := NewComposition()
	c.AddTitleScene("Intro", "", 2, "bold", "fade_zoom")
	c.AddLowerThird("Ada", "", 1, 1, "glass", "bottom_left")

	s := c.Summary()

	assert.Equal(t, 60, s.DurationFrames)
	assert.InDelta(t, 2.0, s.DurationSeconds, 1e-9)
	assert.Equal(t, []string{"LowerThird", "TitleScene"}, s.Types)
	require.Len(t, s.Components, 2)
	assert.Equal(t, "LowerThird", s.Components[1].Type)
	assert.InDelta(t, 1.0, s.Components[1].StartTime, 1e-9)
	assert.Equal(t, LayerOverlay, s.Components[1].Layer)
}

func TestCompositionConcurrentAdds(t *testing.T) {
	c := NewComposition()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := c.AddScene(&Node{
				Type:   "DemoBox",
				Config: map[string]any{"i": i},
				Timing: &Timing{StartFrame: i * 10, DurationFrames: 10},
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, c.Len())
	assert.Equal(t, 500, c.TotalFrames())
	assert.Equal(t, 1, c.Types().Len())
}

func TestSetThemeConcurrentWithReaders(t *testing.T) {
	c := NewComposition(WithTheme("tech"))
	themes := []string{"gaming", "finance", "minimal"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			c.SetTheme(themes[i%len(themes)])
		}(i)
		go func() {
			defer wg.Done()
			_ = c.ThemeKey()
			_ = c.Summary()
		}()
	}
	wg.Wait()

	assert.Contains(t, themes, c.ThemeKey())
	c.SetTheme("business")
	assert.Equal(t, "business", c.Summary().Theme)
}
