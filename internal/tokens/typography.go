package tokens

import (
	"fmt"
	"strings"

	"github.com/conneroisu/reelsmith/internal/errors"
)

// Resolutions with a font size scale.
const (
	Resolution720p  = "video_720p"
	Resolution1080p = "video_1080p"
	Resolution4K    = "video_4k"
)

// FontFamily is a named font stack.
type FontFamily struct {
	Name        string   `json:"name" yaml:"name"`
	Fonts       []string `json:"fonts" yaml:"fonts"`
	Description string   `json:"description" yaml:"description"`
	Usage       string   `json:"usage" yaml:"usage"`
}

// Stack returns the CSS font-family value.
func (f FontFamily) Stack() string {
	quoted := make([]string, len(f.Fonts))
	for i, font := range f.Fonts {
		if strings.Contains(font, " ") {
			font = "'" + font + "'"
		}
		quoted[i] = font
	}
	return strings.Join(quoted, ", ")
}

// TextStyle refers to other typography tokens by key.
type TextStyle struct {
	FontSize      string `json:"fontSize" yaml:"fontSize"`
	FontWeight    string `json:"fontWeight" yaml:"fontWeight"`
	LineHeight    string `json:"lineHeight" yaml:"lineHeight"`
	LetterSpacing string `json:"letterSpacing" yaml:"letterSpacing"`
	FontFamily    string `json:"fontFamily" yaml:"fontFamily"`
}

// Typography holds every typography token.
type Typography struct {
	FontFamilies  map[string]FontFamily        `json:"font_families" yaml:"font_families"`
	FontSizes     map[string]map[string]string `json:"font_sizes" yaml:"font_sizes"`
	FontWeights   map[string]int               `json:"font_weights" yaml:"font_weights"`
	LineHeights   map[string]float64           `json:"line_heights" yaml:"line_heights"`
	LetterSpacing map[string]string            `json:"letter_spacing" yaml:"letter_spacing"`
	TextStyles    map[string]TextStyle         `json:"text_styles" yaml:"text_styles"`
}

// ResolvedStyle is a text style with every reference replaced by its value.
type ResolvedStyle struct {
	FontSize      string  `json:"fontSize"`
	FontWeight    int     `json:"fontWeight"`
	LineHeight    float64 `json:"lineHeight"`
	LetterSpacing string  `json:"letterSpacing"`
	FontFamily    string  `json:"fontFamily"`
}

func scale(xs, sm, base, lg, xl, xxl, xxxl, xxxxl int) map[string]string {
	px := func(n int) string { return fmt.Sprintf("%dpx", n) }
	return map[string]string{
		"xs": px(xs), "sm": px(sm), "base": px(base), "lg": px(lg),
		"xl": px(xl), "2xl": px(xxl), "3xl": px(xxxl), "4xl": px(xxxxl),
	}
}

// DefaultTypography returns the built-in typography tokens.
func DefaultTypography() Typography {
	return Typography{
		FontFamilies: map[string]FontFamily{
			"display": {
				Name:        "Display",
				Fonts:       []string{"Inter", "SF Pro Display", "system-ui", "sans-serif"},
				Description: "Large headings and titles",
				Usage:       "Video titles, main headings",
			},
			"body": {
				Name:        "Body",
				Fonts:       []string{"Inter", "SF Pro Text", "system-ui", "sans-serif"},
				Description: "Body text and subtitles",
				Usage:       "Captions, descriptions, body content",
			},
			"mono": {
				Name:        "Monospace",
				Fonts:       []string{"JetBrains Mono", "Fira Code", "Monaco", "monospace"},
				Description: "Code and technical content",
				Usage:       "Code blocks, technical text",
			},
			"decorative": {
				Name:        "Decorative",
				Fonts:       []string{"Poppins", "Montserrat", "Raleway", "sans-serif"},
				Description: "Special emphasis and style",
				Usage:       "Stylized text, special callouts",
			},
		},
		FontSizes: map[string]map[string]string{
			Resolution1080p: scale(24, 32, 40, 48, 64, 80, 96, 120),
			Resolution4K:    scale(48, 64, 80, 96, 128, 160, 192, 240),
			Resolution720p:  scale(18, 24, 30, 36, 48, 60, 72, 90),
		},
		FontWeights: map[string]int{
			"thin": 100, "extralight": 200, "light": 300, "regular": 400, "medium": 500,
			"semibold": 600, "bold": 700, "extrabold": 800, "black": 900,
		},
		LineHeights: map[string]float64{
			"tight": 1.1, "snug": 1.25, "normal": 1.5, "relaxed": 1.75, "loose": 2.0,
		},
		LetterSpacing: map[string]string{
			"tighter": "-0.05em", "tight": "-0.025em", "normal": "0",
			"wide": "0.025em", "wider": "0.05em", "widest": "0.1em",
		},
		TextStyles: map[string]TextStyle{
			"hero_title": {FontSize: "4xl", FontWeight: "black", LineHeight: "tight", LetterSpacing: "tight", FontFamily: "display"},
			"title":      {FontSize: "3xl", FontWeight: "bold", LineHeight: "tight", LetterSpacing: "tight", FontFamily: "display"},
			"heading":    {FontSize: "2xl", FontWeight: "semibold", LineHeight: "snug", LetterSpacing: "normal", FontFamily: "display"},
			"subheading": {FontSize: "xl", FontWeight: "medium", LineHeight: "snug", LetterSpacing: "normal", FontFamily: "display"},
			"body":       {FontSize: "base", FontWeight: "regular", LineHeight: "normal", LetterSpacing: "normal", FontFamily: "body"},
			"caption":    {FontSize: "sm", FontWeight: "medium", LineHeight: "relaxed", LetterSpacing: "wide", FontFamily: "body"},
			"small":      {FontSize: "xs", FontWeight: "regular", LineHeight: "relaxed", LetterSpacing: "normal", FontFamily: "body"},
		},
	}
}

// Resolve expands a named text style at a resolution.
func (t Typography) Resolve(style, resolution string) (ResolvedStyle, error) {
	ts, ok := t.TextStyles[style]
	if !ok {
		return ResolvedStyle{}, errors.NewNotFoundError(errors.ErrCodeTokenNotFound,
			fmt.Sprintf("text style '%s' not found", style))
	}
	sizes, ok := t.FontSizes[resolution]
	if !ok {
		return ResolvedStyle{}, errors.NewNotFoundError(errors.ErrCodeTokenNotFound,
			fmt.Sprintf("resolution '%s' not found", resolution))
	}

	return ResolvedStyle{
		FontSize:      sizes[ts.FontSize],
		FontWeight:    t.FontWeights[ts.FontWeight],
		LineHeight:    t.LineHeights[ts.LineHeight],
		LetterSpacing: t.LetterSpacing[ts.LetterSpacing],
		FontFamily:    t.FontFamilies[ts.FontFamily].Stack(),
	}, nil
}
