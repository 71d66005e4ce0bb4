package tokens

import "fmt"

// SpringConfig is passed to Remotion's spring().
type SpringConfig struct {
	Damping           float64 `json:"damping" yaml:"damping"`
	Mass              float64 `json:"mass" yaml:"mass"`
	Stiffness         float64 `json:"stiffness" yaml:"stiffness"`
	OvershootClamping bool    `json:"overshootClamping" yaml:"overshootClamping"`
}

// Spring is a named spring preset.
type Spring struct {
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description" yaml:"description"`
	Config      SpringConfig `json:"config" yaml:"config"`
	Usage       string       `json:"usage" yaml:"usage"`
}

// Easing is a cubic-bezier curve.
type Easing struct {
	Name        string     `json:"name" yaml:"name"`
	Curve       [4]float64 `json:"curve" yaml:"curve"`
	CSS         string     `json:"css" yaml:"css"`
	Description string     `json:"description" yaml:"description"`
	Usage       string     `json:"usage" yaml:"usage"`
}

// Bezier returns the curve as a JS array literal for Easing.bezier.
func (e Easing) Bezier() string {
	return fmt.Sprintf("%g, %g, %g, %g", e.Curve[0], e.Curve[1], e.Curve[2], e.Curve[3])
}

// Duration is a named animation length, in frames at 30fps.
type Duration struct {
	Frames      int     `json:"frames" yaml:"frames"`
	Seconds     float64 `json:"seconds" yaml:"seconds"`
	Description string  `json:"description" yaml:"description"`
	Usage       string  `json:"usage" yaml:"usage"`
}

// Preset is a ready-made entrance or exit animation.
type Preset struct {
	Name       string         `json:"name" yaml:"name"`
	Properties []string       `json:"properties" yaml:"properties"`
	From       map[string]any `json:"from" yaml:"from"`
	To         map[string]any `json:"to" yaml:"to"`
	Easing     string         `json:"easing,omitempty" yaml:"easing,omitempty"`
	Spring     string         `json:"spring,omitempty" yaml:"spring,omitempty"`
	Duration   string         `json:"duration" yaml:"duration"`
}

// Motion holds every motion token.
type Motion struct {
	Springs   map[string]Spring   `json:"spring_configs" yaml:"spring_configs"`
	Easings   map[string]Easing   `json:"easing_curves" yaml:"easing_curves"`
	Durations map[string]Duration `json:"durations" yaml:"durations"`
	Presets   map[string]Preset   `json:"animation_presets" yaml:"animation_presets"`
}

func bezier(name string, a, b, c, d float64, css, description, usage string) Easing {
	return Easing{Name: name, Curve: [4]float64{a, b, c, d}, CSS: css, Description: description, Usage: usage}
}

func slide(name, axis, from, easing string) Preset {
	return Preset{
		Name:       name,
		Properties: []string{"transform"},
		From:       map[string]any{axis: from},
		To:         map[string]any{axis: "0"},
		Easing:     easing,
		Duration:   "normal",
	}
}

// DefaultMotion returns the built-in motion tokens.
func DefaultMotion() Motion {
	return Motion{
		Springs: map[string]Spring{
			"gentle":  {"Gentle", "Soft, slow spring motion", SpringConfig{100, 1.0, 100, false}, "Subtle entrances, background elements"},
			"smooth":  {"Smooth", "Balanced, natural motion", SpringConfig{200, 0.5, 200, false}, "General purpose animations"},
			"bouncy":  {"Bouncy", "Playful spring with overshoot", SpringConfig{15, 1.0, 300, false}, "Attention-grabbing elements, playful UI"},
			"snappy":  {"Snappy", "Quick, responsive motion", SpringConfig{300, 0.3, 400, true}, "UI interactions, quick transitions"},
			"elastic": {"Elastic", "Strong elastic overshoot", SpringConfig{8, 1.5, 200, false}, "Emphasis, call-to-action elements"},
		},
		Easings: map[string]Easing{
			"linear":           bezier("Linear", 0, 0, 1, 1, "linear", "Constant speed", "Progress bars, mechanical motion"),
			"ease_in":          bezier("Ease In", 0.42, 0, 1, 1, "ease-in", "Starts slow, accelerates", "Exits, disappearing elements"),
			"ease_out":         bezier("Ease Out", 0, 0, 0.58, 1, "ease-out", "Starts fast, decelerates", "Entrances, appearing elements"),
			"ease_in_out":      bezier("Ease In Out", 0.42, 0, 0.58, 1, "ease-in-out", "Slow start and end", "Transitions, transformations"),
			"ease_in_back":     bezier("Ease In Back", 0.6, -0.28, 0.735, 0.045, "cubic-bezier(0.6, -0.28, 0.735, 0.045)", "Pulls back before moving forward", "Dramatic exits"),
			"ease_out_back":    bezier("Ease Out Back", 0.175, 0.885, 0.32, 1.275, "cubic-bezier(0.175, 0.885, 0.32, 1.275)", "Overshoots then settles", "Attention-grabbing entrances"),
			"ease_in_out_back": bezier("Ease In Out Back", 0.68, -0.55, 0.265, 1.55, "cubic-bezier(0.68, -0.55, 0.265, 1.55)", "Pulls back and overshoots", "Playful transitions"),
			"ease_out_expo":    bezier("Ease Out Exponential", 0.16, 1, 0.3, 1, "cubic-bezier(0.16, 1, 0.3, 1)", "Sharp deceleration", "Impactful entrances"),
		},
		Durations: map[string]Duration{
			"instant":    {1, 0.033, "Instant (1 frame at 30fps)", "Cuts, instant changes"},
			"ultra_fast": {5, 0.167, "Ultra fast", "Micro-interactions"},
			"fast":       {10, 0.333, "Fast", "Quick UI transitions"},
			"normal":     {20, 0.667, "Normal", "Standard animations"},
			"moderate":   {30, 1.0, "Moderate (1 second)", "Scene elements"},
			"slow":       {45, 1.5, "Slow", "Emphasis, important elements"},
			"very_slow":  {60, 2.0, "Very slow (2 seconds)", "Hero animations, cinematic"},
			"dramatic":   {90, 3.0, "Dramatic (3 seconds)", "Title reveals, special moments"},
		},
		Presets: map[string]Preset{
			"fade_in": {
				Name: "Fade In", Properties: []string{"opacity"},
				From: map[string]any{"opacity": 0}, To: map[string]any{"opacity": 1},
				Easing: "ease_out", Duration: "normal",
			},
			"fade_out": {
				Name: "Fade Out", Properties: []string{"opacity"},
				From: map[string]any{"opacity": 1}, To: map[string]any{"opacity": 0},
				Easing: "ease_in", Duration: "normal",
			},
			"slide_up":    slide("Slide Up", "translateY", "100px", "ease_out_back"),
			"slide_down":  slide("Slide Down", "translateY", "-100px", "ease_out_back"),
			"slide_left":  slide("Slide Left", "translateX", "100px", "ease_out"),
			"slide_right": slide("Slide Right", "translateX", "-100px", "ease_out"),
			"scale_in": {
				Name: "Scale In", Properties: []string{"transform"},
				From: map[string]any{"scale": 0}, To: map[string]any{"scale": 1},
				Easing: "ease_out_back", Duration: "normal",
			},
			"scale_out": {
				Name: "Scale Out", Properties: []string{"transform"},
				From: map[string]any{"scale": 1}, To: map[string]any{"scale": 0},
				Easing: "ease_in", Duration: "fast",
			},
			"bounce_in": {
				Name: "Bounce In", Spring: "bouncy", Properties: []string{"transform"},
				From: map[string]any{"scale": 0}, To: map[string]any{"scale": 1},
				Duration: "moderate",
			},
		},
	}
}

// FramesAt converts a named duration to frames at fps.
func (m Motion) FramesAt(duration string, fps int) (int, bool) {
	d, ok := m.Durations[duration]
	if !ok {
		return 0, false
	}
	return d.Frames * fps / 30, true
}
