// Package tokens defines the design tokens (colors, typography and motion)
// that themes and component templates are built from.
package tokens

import (
	"fmt"
	"sort"
)

// Background colors of a palette.
type Background struct {
	Dark  string `json:"dark" yaml:"dark"`
	Light string `json:"light" yaml:"light"`
	Glass string `json:"glass" yaml:"glass"`
}

// TextColors of a palette.
type TextColors struct {
	OnDark  string `json:"on_dark" yaml:"on_dark"`
	OnLight string `json:"on_light" yaml:"on_light"`
	Muted   string `json:"muted" yaml:"muted"`
}

// Semantic status colors.
type Semantic struct {
	Success string `json:"success" yaml:"success"`
	Warning string `json:"warning" yaml:"warning"`
	Error   string `json:"error" yaml:"error"`
	Info    string `json:"info" yaml:"info"`
}

// Palette is the color set of one theme. Primary and Accent run from the
// base shade to the darkest.
type Palette struct {
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Primary     []string   `json:"primary" yaml:"primary"`
	Accent      []string   `json:"accent" yaml:"accent"`
	Gradient    string     `json:"gradient" yaml:"gradient"`
	Background  Background `json:"background" yaml:"background"`
	Text        TextColors `json:"text" yaml:"text"`
	Semantic    Semantic   `json:"semantic" yaml:"semantic"`
}

// Base returns the first primary shade, or "" for an empty palette.
func (p Palette) Base() string {
	if len(p.Primary) == 0 {
		return ""
	}
	return p.Primary[0]
}

// Highlight returns the first accent shade, or "" for an empty palette.
func (p Palette) Highlight() string {
	if len(p.Accent) == 0 {
		return ""
	}
	return p.Accent[0]
}

func palette(name, description string, primary, accent [3]string, bg Background, onLight, muted string, sem Semantic) Palette {
	return Palette{
		Name:        name,
		Description: description,
		Primary:     primary[:],
		Accent:      accent[:],
		Gradient:    fmt.Sprintf("linear-gradient(135deg, %s 0%%, %s 100%%)", primary[0], accent[0]),
		Background:  bg,
		Text:        TextColors{OnDark: "#FFFFFF", OnLight: onLight, Muted: muted},
		Semantic:    sem,
	}
}

// Colors returns the built-in palettes keyed by theme.
func Colors() map[string]Palette {
	return map[string]Palette{
		"tech": palette("Tech", "Modern tech aesthetic with blue/cyan palette",
			[3]string{"#0066FF", "#0052CC", "#003D99"},
			[3]string{"#00D9FF", "#00B8D4", "#0097A7"},
			Background{Dark: "#0A0E1A", Light: "#F5F7FA", Glass: "rgba(10, 14, 26, 0.85)"},
			"#1A1A1A", "#8B92A4",
			Semantic{Success: "#00C853", Warning: "#FFB300", Error: "#FF3D00", Info: "#00B8D4"}),
		"finance": palette("Finance", "Professional finance theme with green/gold",
			[3]string{"#00C853", "#00A843", "#008833"},
			[3]string{"#FFD600", "#FFAB00", "#FF6F00"},
			Background{Dark: "#0D1B0D", Light: "#F8FAF8", Glass: "rgba(13, 27, 13, 0.85)"},
			"#1A1A1A", "#7A8A7A",
			Semantic{Success: "#00C853", Warning: "#FFB300", Error: "#D32F2F", Info: "#1976D2"}),
		"education": palette("Education", "Friendly education theme with purple/orange",
			[3]string{"#7C4DFF", "#651FFF", "#6200EA"},
			[3]string{"#FF6E40", "#FF5722", "#F4511E"},
			Background{Dark: "#1A0F2E", Light: "#FAF7FC", Glass: "rgba(26, 15, 46, 0.85)"},
			"#1A1A1A", "#9B8AA9",
			Semantic{Success: "#4CAF50", Warning: "#FF9800", Error: "#F44336", Info: "#7C4DFF"}),
		"lifestyle": palette("Lifestyle", "Warm lifestyle theme with coral/pink",
			[3]string{"#FF6B9D", "#E91E63", "#C2185B"},
			[3]string{"#FFB74D", "#FFA726", "#FF9800"},
			Background{Dark: "#2E1A26", Light: "#FFF9FA", Glass: "rgba(46, 26, 38, 0.85)"},
			"#2E1A26", "#B39AA6",
			Semantic{Success: "#66BB6A", Warning: "#FFA726", Error: "#EF5350", Info: "#29B6F6"}),
		"gaming": palette("Gaming", "High-energy gaming theme with neon accents",
			[3]string{"#00E676", "#00C853", "#00BFA5"},
			[3]string{"#E040FB", "#D500F9", "#AA00FF"},
			Background{Dark: "#0F0F1A", Light: "#F0F0F5", Glass: "rgba(15, 15, 26, 0.9)"},
			"#1A1A1A", "#8B8BA0",
			Semantic{Success: "#00E676", Warning: "#FFD740", Error: "#FF1744", Info: "#00E5FF"}),
		"minimal": palette("Minimal", "Clean minimal theme with monochrome palette",
			[3]string{"#212121", "#424242", "#616161"},
			[3]string{"#FFFFFF", "#F5F5F5", "#EEEEEE"},
			Background{Dark: "#000000", Light: "#FFFFFF", Glass: "rgba(0, 0, 0, 0.8)"},
			"#000000", "#757575",
			Semantic{Success: "#4CAF50", Warning: "#FFC107", Error: "#F44336", Info: "#2196F3"}),
		"business": palette("Business", "Professional business theme with navy/teal",
			[3]string{"#1565C0", "#0D47A1", "#01579B"},
			[3]string{"#00ACC1", "#0097A7", "#00838F"},
			Background{Dark: "#0A1929", Light: "#F5F8FA", Glass: "rgba(10, 25, 41, 0.85)"},
			"#0A1929", "#718096",
			Semantic{Success: "#10B981", Warning: "#F59E0B", Error: "#EF4444", Info: "#0EA5E9"}),
	}
}

// ColorThemes returns the keys of the built-in palettes, sorted.
func ColorThemes() []string {
	colors := Colors()
	keys := make([]string, 0, len(colors))
	for k := range colors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
