// Package theme combines color, typography and motion tokens into named
// video themes and manages built-in and custom themes.
package theme

import "github.com/conneroisu/reelsmith/internal/tokens"

// DefaultKey is the theme used when none is given or the given one is unknown.
const DefaultKey = "tech"

// Typography is the font selection of a theme.
type Typography struct {
	PrimaryFont       tokens.FontFamily `json:"primary_font" yaml:"primary_font"`
	BodyFont          tokens.FontFamily `json:"body_font" yaml:"body_font"`
	CodeFont          tokens.FontFamily `json:"code_font" yaml:"code_font"`
	DefaultResolution string            `json:"default_resolution" yaml:"default_resolution"`
}

// Motion is the default animation feel of a theme.
type Motion struct {
	DefaultSpring   tokens.Spring   `json:"default_spring" yaml:"default_spring"`
	DefaultEasing   tokens.Easing   `json:"default_easing" yaml:"default_easing"`
	DefaultDuration tokens.Duration `json:"default_duration" yaml:"default_duration"`
}

// Theme is a complete visual language for a video.
type Theme struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	Colors      tokens.Palette `json:"colors" yaml:"colors"`
	Typography  Typography     `json:"typography" yaml:"typography"`
	Motion      Motion         `json:"motion" yaml:"motion"`
	UseCases    []string       `json:"use_cases" yaml:"use_cases"`
}

// FontSizes returns the size scale for the theme's default resolution.
func (t *Theme) FontSizes() map[string]string {
	sizes := tokens.DefaultTypography().FontSizes
	if s, ok := sizes[t.Typography.DefaultResolution]; ok {
		return s
	}
	return sizes[tokens.Resolution1080p]
}

type builtinSpec struct {
	key, name, description string
	spring, easing, dur    string
	useCases               []string
}

var builtinSpecs = []builtinSpec{
	{"tech", "Tech", "Modern tech aesthetic - perfect for tech reviews, tutorials, coding",
		"smooth", "ease_out", "normal",
		[]string{"Tech reviews", "Coding tutorials", "Software demos", "Tech news", "Product launches"}},
	{"finance", "Finance", "Professional finance theme - ideal for investing, trading, business",
		"snappy", "ease_in_out", "normal",
		[]string{"Stock market analysis", "Investing advice", "Business news", "Financial education", "Crypto analysis"}},
	{"education", "Education", "Friendly education theme - great for teaching, explainers, courses",
		"bouncy", "ease_out_back", "moderate",
		[]string{"Educational content", "Explainer videos", "Course content", "Study guides", "Academic lectures"}},
	{"lifestyle", "Lifestyle", "Warm lifestyle theme - perfect for vlogs, lifestyle, wellness",
		"gentle", "ease_in_out", "slow",
		[]string{"Vlogs", "Lifestyle content", "Wellness videos", "Travel vlogs", "Daily routines"}},
	{"gaming", "Gaming", "High-energy gaming theme - ideal for gaming, esports, streams",
		"elastic", "ease_out_back", "fast",
		[]string{"Gaming videos", "Esports highlights", "Stream overlays", "Gaming reviews", "Let's plays"}},
	{"minimal", "Minimal", "Clean minimal theme - universal, professional, timeless",
		"smooth", "ease_in_out", "normal",
		[]string{"Professional content", "Corporate videos", "Documentaries", "Interviews", "Clean aesthetics"}},
	{"business", "Business", "Professional business theme - corporate, presentations, B2B",
		"snappy", "ease_in_out", "normal",
		[]string{"Corporate videos", "Business presentations", "B2B content", "Company updates", "Professional training"}},
}

// Builtin returns fresh copies of the built-in themes keyed by theme key.
func Builtin() map[string]*Theme {
	colors := tokens.Colors()
	typo := tokens.DefaultTypography()
	motion := tokens.DefaultMotion()

	themes := make(map[string]*Theme, len(builtinSpecs))
	for _, spec := range builtinSpecs {
		themes[spec.key] = &Theme{
			Name:        spec.name,
			Description: spec.description,
			Colors:      colors[spec.key],
			Typography: Typography{
				PrimaryFont:       typo.FontFamilies["display"],
				BodyFont:          typo.FontFamilies["body"],
				CodeFont:          typo.FontFamilies["mono"],
				DefaultResolution: tokens.Resolution1080p,
			},
			Motion: Motion{
				DefaultSpring:   motion.Springs[spec.spring],
				DefaultEasing:   motion.Easings[spec.easing],
				DefaultDuration: motion.Durations[spec.dur],
			},
			UseCases: append([]string(nil), spec.useCases...),
		}
	}
	return themes
}
