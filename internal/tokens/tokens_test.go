package tokens

import (
	"encoding/json"
	"testing"

	"github.com/conneroisu/reelsmith/internal/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColors(t *testing.T) {
	colors := Colors()
	assert.Equal(t, []string{"business", "education", "finance", "gaming", "lifestyle", "minimal", "tech"}, ColorThemes())

	for key, p := range colors {
		t.Run(key, func(t *testing.T) {
			require.Len(t, p.Primary, 3)
			require.Len(t, p.Accent, 3)
			assert.Contains(t, p.Gradient, p.Base())
			assert.Contains(t, p.Gradient, p.Highlight())
			assert.Equal(t, "#FFFFFF", p.Text.OnDark)
			assert.NotEmpty(t, p.Semantic.Error)
		})
	}

	assert.Equal(t, "linear-gradient(135deg, #0066FF 0%, #00D9FF 100%)", colors["tech"].Gradient)
	assert.Equal(t, "rgba(15, 15, 26, 0.9)", colors["gaming"].Background.Glass)
}

func TestTypographyResolve(t *testing.T) {
	typo := DefaultTypography()

	style, err := typo.Resolve("hero_title", Resolution1080p)
	require.NoError(t, err)
	assert.Equal(t, ResolvedStyle{
		FontSize:      "120px",
		FontWeight:    900,
		LineHeight:    1.1,
		LetterSpacing: "-0.025em",
		FontFamily:    "Inter, 'SF Pro Display', system-ui, sans-serif",
	}, style)

	style, err = typo.Resolve("caption", Resolution4K)
	require.NoError(t, err)
	assert.Equal(t, "64px", style.FontSize)

	_, err = typo.Resolve("poster", Resolution1080p)
	assert.True(t, errors.IsNotFound(err))
	_, err = typo.Resolve("body", "video_8k")
	assert.True(t, errors.IsNotFound(err))
}

func TestMotion(t *testing.T) {
	motion := DefaultMotion()

	assert.True(t, motion.Springs["snappy"].Config.OvershootClamping)
	assert.Equal(t, "0.175, 0.885, 0.32, 1.275", motion.Easings["ease_out_back"].Bezier())
	assert.Equal(t, "bouncy", motion.Presets["bounce_in"].Spring)

	frames, ok := motion.FramesAt("moderate", 60)
	assert.True(t, ok)
	assert.Equal(t, 60, frames)
	_, ok = motion.FramesAt("forever", 30)
	assert.False(t, ok)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, KindAll, k)

	k, err = ParseKind("motion")
	require.NoError(t, err)
	assert.Equal(t, KindMotion, k)

	_, err = ParseKind("sounds")
	assert.True(t, errors.IsValidation(err))
}

func readJSON(t *testing.T, fs afero.Fs, path string) map[string]any {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestExportColors(t *testing.T) {
	fs := afero.NewMemMapFs()
	m := NewManager(fs)

	path, err := m.ExportColors("", "finance")
	require.NoError(t, err)
	assert.Equal(t, "colors_tokens.json", path)

	data := readJSON(t, fs, path)
	assert.Len(t, data, 1)
	finance := data["finance"].(map[string]any)
	assert.Equal(t, "Finance", finance["name"])

	_, err = m.ExportColors("out.json", "neon")
	assert.True(t, errors.IsNotFound(err))
}

func TestExportSections(t *testing.T) {
	fs := afero.NewMemMapFs()
	m := NewManager(fs)

	_, err := m.ExportMotion("tokens/springs.json", "spring_configs")
	require.NoError(t, err)
	data := readJSON(t, fs, "tokens/springs.json")
	assert.Len(t, data, 1)
	assert.Contains(t, data, "spring_configs")

	_, err = m.ExportTypography("t.json", "nope")
	assert.True(t, errors.IsNotFound(err))
}

func TestExportAll(t *testing.T) {
	fs := afero.NewMemMapFs()
	m := NewManager(fs)

	paths, err := m.Export(KindAll, "design")
	require.NoError(t, err)
	assert.Equal(t, map[Kind]string{
		KindTypography: "design/typography_tokens.json",
		KindColors:     "design/colors_tokens.json",
		KindMotion:     "design/motion_tokens.json",
	}, paths)

	for _, p := range paths {
		exists, err := afero.Exists(fs, p)
		require.NoError(t, err)
		assert.True(t, exists, p)
	}
}

func TestImportColorsOverridesPalette(t *testing.T) {
	fs := afero.NewMemMapFs()
	m := NewManager(fs)

	custom := `{"tech": {"name": "Tech Alt", "primary": ["#111111", "#222222", "#333333"], "accent": ["#444444"]},
		"neon": {"name": "Neon", "primary": ["#39FF14"]}}`
	require.NoError(t, afero.WriteFile(fs, "custom.json", []byte(custom), 0o644))

	n, err := m.Import(KindColors, "custom.json", true)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	p, ok := m.Palette("tech")
	require.True(t, ok)
	assert.Equal(t, "Tech Alt", p.Name)
	_, ok = m.Palette("neon")
	assert.True(t, ok)
	assert.Equal(t, []string{"neon", "tech"}, m.CustomKeys()[KindColors])

	// Exported files carry overrides under "custom" and round back in.
	_, err = m.ExportColors("all.json", "")
	require.NoError(t, err)
	m.Clear(KindAll)
	_, ok = m.Palette("neon")
	assert.False(t, ok)

	n, err = m.Import(KindColors, "all.json", false)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	p, _ = m.Palette("neon")
	assert.Equal(t, "Neon", p.Name)
	p, _ = m.Palette("tech")
	assert.Equal(t, "Tech Alt", p.Name)
}

func TestImportErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	m := NewManager(fs)
	require.NoError(t, afero.WriteFile(fs, "list.json", []byte(`[1, 2]`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "bad.json", []byte(`{"x": {"name": "no colors"}}`), 0o644))

	_, err := m.Import(KindColors, "missing.json", true)
	assert.Equal(t, errors.ErrorTypeIO, errors.TypeOf(err))

	_, err = m.Import(KindMotion, "list.json", true)
	assert.True(t, errors.IsValidation(err))

	_, err = m.Import(KindColors, "bad.json", true)
	assert.True(t, errors.IsValidation(err))
}

func TestImportTypographyReplace(t *testing.T) {
	fs := afero.NewMemMapFs()
	m := NewManager(fs)
	require.NoError(t, afero.WriteFile(fs, "a.json", []byte(`{"font_weights": {"bold": 650}}`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "b.json", []byte(`{"line_heights": {"tight": 1.0}}`), 0o644))

	_, err := m.Import(KindTypography, "a.json", true)
	require.NoError(t, err)
	_, err = m.Import(KindTypography, "b.json", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"font_weights", "line_heights"}, m.CustomKeys()[KindTypography])

	_, err = m.Import(KindTypography, "b.json", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"line_heights"}, m.CustomKeys()[KindTypography])
}
