package registry

// Categories of the built-in components.
const (
	CategoryScene     = "scene"
	CategoryOverlay   = "overlay"
	CategoryChart     = "chart"
	CategoryAnimation = "animation"
	CategoryCode      = "code"
	CategoryLayout    = "layout"
	CategoryContent   = "content"
)

func required(typ, desc string) Field { return Field{Type: typ, Required: true, Description: desc} }

func optional(typ string, def any, desc string) Field {
	return Field{Type: typ, Default: def, Description: desc}
}

func enum(def string, values []string, desc string) Field {
	return Field{Type: FieldEnum, Default: def, Values: values, Description: desc}
}

func slot(desc string) Field { return Field{Type: FieldComponent, Description: desc} }

func startTime(desc string) Field { return required(FieldFloat, desc) }

// Builtin returns fresh copies of the built-in component schemas.
func Builtin() []*Schema {
	schemas := []*Schema{
		{
			Name:        "TitleScene",
			Description: "Full-screen animated title card for video openings",
			Category:    CategoryScene,
			Variants: map[string]string{
				"minimal":  "Clean, simple text on solid background",
				"standard": "Text with gradient background",
				"bold":     "Large text with animated gradient and effects",
				"kinetic":  "Dynamic text with motion typography",
			},
			Animations: map[string]string{
				"fade_zoom":  "Fade in with subtle zoom",
				"slide_up":   "Slide up from bottom with blur",
				"typewriter": "Character-by-character reveal",
				"blur_in":    "Blur to sharp focus",
				"split":      "Text splits from center",
			},
			Fields: map[string]Field{
				"text":             required(FieldString, "Main title text"),
				"subtitle":         optional(FieldString, nil, "Optional subtitle text"),
				"variant":          enum("standard", []string{"minimal", "standard", "bold", "kinetic"}, "Visual style variant"),
				"animation":        enum("fade_zoom", []string{"fade_zoom", "slide_up", "typewriter", "blur_in", "split"}, "Animation style"),
				"duration_seconds": optional(FieldFloat, 3.0, "Duration in seconds"),
			},
			Example: map[string]any{
				"text":             "The Future of AI",
				"subtitle":         "Transforming Technology",
				"variant":          "bold",
				"animation":        "fade_zoom",
				"duration_seconds": 3.0,
			},
		},
		{
			Name:        "LowerThird",
			Description: "Name plate overlay with title and subtitle (like TV graphics)",
			Category:    CategoryOverlay,
			Variants: map[string]string{
				"minimal":  "Simple text on subtle background",
				"standard": "Text with clean bar background",
				"glass":    "Glassmorphism effect with blur",
				"bold":     "High contrast with accent colors",
				"animated": "Dynamic sliding animation",
			},
			Positions: map[string]string{
				"bottom_left":   "Bottom left corner (standard TV position)",
				"bottom_center": "Bottom center",
				"bottom_right":  "Bottom right corner",
				"top_left":      "Top left corner",
				"top_center":    "Top center",
			},
			Fields: map[string]Field{
				"name":       required(FieldString, "Main name/text (larger)"),
				"title":      optional(FieldString, nil, "Subtitle/title (smaller, below name)"),
				"variant":    enum("glass", []string{"minimal", "standard", "glass", "bold", "animated"}, "Visual style"),
				"position":   enum("bottom_left", []string{"bottom_left", "bottom_center", "bottom_right", "top_left", "top_center"}, "Screen position"),
				"start_time": startTime("When to show (seconds)"),
				"duration":   optional(FieldFloat, 5.0, "How long to show (seconds)"),
			},
			Example: map[string]any{
				"name":       "Dr. Sarah Chen",
				"title":      "AI Researcher, Stanford",
				"variant":    "glass",
				"position":   "bottom_left",
				"start_time": 2.0,
				"duration":   5.0,
			},
		},
		{
			Name:        "TextOverlay",
			Description: "Animated text overlay for emphasis and captions",
			Category:    CategoryOverlay,
			Styles: map[string]string{
				"emphasis": "Large text for key points",
				"caption":  "Subtitle-style text at bottom",
				"callout":  "Attention-grabbing highlight",
				"subtitle": "Standard subtitle formatting",
				"quote":    "Quotation styling with attribution",
			},
			Animations: map[string]string{
				"blur_in":    "Blur to focus",
				"slide_up":   "Slide from bottom",
				"fade":       "Simple fade in/out",
				"typewriter": "Character reveal",
				"scale_in":   "Scale from center",
			},
			Fields: map[string]Field{
				"text":       required(FieldString, "Text content"),
				"style":      enum("emphasis", []string{"emphasis", "caption", "callout", "subtitle", "quote"}, "Text style"),
				"animation":  enum("blur_in", []string{"blur_in", "slide_up", "fade", "typewriter", "scale_in"}, "Animation style"),
				"start_time": startTime("When to show (seconds)"),
				"duration":   optional(FieldFloat, 3.0, "How long to show (seconds)"),
				"position":   optional(FieldString, "center", "Position (center, top, bottom, custom)"),
			},
			Example: map[string]any{
				"text":       "Mind. Blown.",
				"style":      "emphasis",
				"animation":  "scale_in",
				"start_time": 5.0,
				"duration":   2.0,
				"position":   "center",
			},
		},
		{
			Name:        "SubscribeButton",
			Description: "Animated subscribe button overlay (YouTube-specific)",
			Category:    CategoryOverlay,
			Animations: map[string]string{
				"bounce": "Bouncy spring animation",
				"glow":   "Pulsing glow effect",
				"pulse":  "Scale pulse",
				"slide":  "Slide in from side",
				"wiggle": "Attention-grabbing wiggle",
			},
			Positions: map[string]string{
				"bottom_right":  "Bottom right (standard)",
				"bottom_center": "Bottom center",
				"center":        "Center of screen",
				"top_right":     "Top right",
			},
			Fields: map[string]Field{
				"variant":     enum("standard", []string{"minimal", "standard", "animated", "3d"}, "Button style"),
				"animation":   enum("bounce", []string{"bounce", "glow", "pulse", "slide", "wiggle"}, "Animation style"),
				"position":    enum("bottom_right", []string{"bottom_right", "bottom_center", "center", "top_right"}, "Screen position"),
				"start_time":  startTime("When to show (seconds)"),
				"duration":    optional(FieldFloat, 3.0, "How long to show (seconds)"),
				"custom_text": optional(FieldString, "SUBSCRIBE", "Custom button text"),
			},
			Example: map[string]any{
				"variant":     "animated",
				"animation":   "bounce",
				"position":    "bottom_right",
				"start_time":  10.0,
				"duration":    3.0,
				"custom_text": "SUBSCRIBE",
			},
		},
		{
			Name:        "LineChart",
			Description: "Animated line chart for data visualization",
			Category:    CategoryChart,
			Animations: map[string]string{
				"draw":            "Line draws from left to right",
				"fade_in":         "Chart fades in",
				"scale_in":        "Chart scales from center",
				"points_sequence": "Points appear sequentially",
			},
			Fields: map[string]Field{
				"data":         required(FieldArray, "Array of data points [x, y] or {x, y, label}"),
				"title":        optional(FieldString, "", "Chart title"),
				"xlabel":       optional(FieldString, "", "X-axis label"),
				"ylabel":       optional(FieldString, "", "Y-axis label"),
				"animate_draw": optional(FieldBoolean, true, "Animate line drawing"),
				"start_time":   startTime("When to show (seconds)"),
				"duration":     optional(FieldFloat, 4.0, "How long to animate (seconds)"),
			},
			Example: map[string]any{
				"data":         []any{[]any{0, 10}, []any{1, 25}, []any{2, 45}, []any{3, 70}, []any{4, 90}},
				"title":        "User Growth",
				"xlabel":       "Month",
				"ylabel":       "Users (thousands)",
				"animate_draw": true,
				"start_time":   8.0,
				"duration":     4.0,
			},
		},
		{
			Name:        "Counter",
			Description: "Animated number counter for statistics and metrics",
			Category:    CategoryAnimation,
			Animations: map[string]string{
				"count_up":     "Count from start to end value",
				"flip":         "Digit flip animation",
				"slot_machine": "Slot machine roll effect",
				"digital":      "Digital display style",
			},
			Fields: map[string]Field{
				"start_value": optional(FieldNumber, 0, "Starting number"),
				"end_value":   required(FieldNumber, "Ending number"),
				"prefix":      optional(FieldString, "", "Text before number (e.g., '$')"),
				"suffix":      optional(FieldString, "", "Text after number (e.g., 'M', '%')"),
				"decimals":    optional(FieldInteger, 0, "Number of decimal places"),
				"animation":   enum("count_up", []string{"count_up", "flip", "slot_machine", "digital"}, "Animation style"),
				"start_time":  startTime("When to start (seconds)"),
				"duration":    optional(FieldFloat, 2.0, "Animation duration (seconds)"),
			},
			Example: map[string]any{
				"start_value": 0,
				"end_value":   1000000,
				"prefix":      "",
				"suffix":      "+ users",
				"decimals":    0,
				"animation":   "count_up",
				"start_time":  5.0,
				"duration":    2.0,
			},
		},
		{
			Name:        "EndScreen",
			Description: "YouTube end screen with CTAs and video suggestions",
			Category:    CategoryScene,
			Variants: map[string]string{
				"standard": "Simple layout with video thumbnail and subscribe",
				"split":    "Split screen with multiple CTAs",
				"carousel": "Sliding carousel of videos",
				"minimal":  "Clean single CTA",
			},
			Fields: map[string]Field{
				"cta_text":         required(FieldString, "Call-to-action text"),
				"thumbnail_url":    optional(FieldString, nil, "Video thumbnail URL"),
				"variant":          enum("standard", []string{"standard", "split", "carousel", "minimal"}, "Layout variant"),
				"duration_seconds": optional(FieldFloat, 10.0, "Duration (seconds)"),
			},
			Example: map[string]any{
				"cta_text":         "Watch Next",
				"thumbnail_url":    "https://example.com/thumb.jpg",
				"variant":          "split",
				"duration_seconds": 10.0,
			},
		},
		{
			Name:        "CodeBlock",
			Description: "Syntax-highlighted code display with animated entrance",
			Category:    CategoryCode,
			Variants: map[string]string{
				"minimal":  "Clean code with subtle background",
				"terminal": "Terminal/console styling",
				"editor":   "IDE/editor styling with line numbers",
				"glass":    "Glassmorphism effect",
			},
			Animations: map[string]string{
				"fade_in":  "Simple fade in",
				"slide_up": "Slide from bottom",
				"scale_in": "Scale from center",
				"blur_in":  "Blur to focus",
			},
			Fields: map[string]Field{
				"code":              required(FieldString, "Code content to display"),
				"language":          optional(FieldString, "javascript", "Programming language (for syntax highlighting)"),
				"title":             optional(FieldString, "", "Optional title/filename"),
				"variant":           enum("editor", []string{"minimal", "terminal", "editor", "glass"}, "Visual style"),
				"animation":         enum("fade_in", []string{"fade_in", "slide_up", "scale_in", "blur_in"}, "Entrance animation"),
				"show_line_numbers": optional(FieldBoolean, true, "Show line numbers"),
				"start_time":        startTime("When to show (seconds)"),
				"duration":          optional(FieldFloat, 5.0, "How long to show (seconds)"),
			},
			Example: map[string]any{
				"code":              "const greeting = 'Hello, World!';\nconsole.log(greeting);",
				"language":          "javascript",
				"title":             "hello.js",
				"variant":           "editor",
				"animation":         "slide_up",
				"show_line_numbers": true,
				"start_time":        3.0,
				"duration":          5.0,
			},
		},
		{
			Name:        "TypingCode",
			Description: "Animated typing code effect with cursor",
			Category:    CategoryCode,
			Variants: map[string]string{
				"minimal":  "Clean typing effect",
				"terminal": "Terminal-style with cursor",
				"editor":   "IDE-style typing",
				"hacker":   "Matrix/hacker style",
			},
			Options: map[string]map[string]string{
				"cursor_styles": {
					"block":     "Solid block cursor",
					"line":      "Vertical line cursor",
					"underline": "Underscore cursor",
					"none":      "No cursor",
				},
			},
			Fields: map[string]Field{
				"code":              required(FieldString, "Code to type out"),
				"language":          optional(FieldString, "javascript", "Programming language"),
				"title":             optional(FieldString, "", "Optional title/filename"),
				"variant":           enum("editor", []string{"minimal", "terminal", "editor", "hacker"}, "Visual style"),
				"cursor_style":      enum("line", []string{"block", "line", "underline", "none"}, "Cursor appearance"),
				"typing_speed":      enum("normal", []string{"slow", "normal", "fast", "instant"}, "Typing animation speed"),
				"show_line_numbers": optional(FieldBoolean, true, "Show line numbers"),
				"start_time":        startTime("When to start (seconds)"),
				"duration":          optional(FieldFloat, 10.0, "How long to type (seconds)"),
			},
			Example: map[string]any{
				"code":              "function fibonacci(n) {\n  if (n <= 1) return n;\n  return fibonacci(n-1) + fibonacci(n-2);\n}",
				"language":          "javascript",
				"title":             "fibonacci.js",
				"variant":           "editor",
				"cursor_style":      "line",
				"typing_speed":      "normal",
				"show_line_numbers": true,
				"start_time":        2.0,
				"duration":          8.0,
			},
		},
		{
			Name:        "DemoBox",
			Description: "Labelled placeholder box for blocking out layouts",
			Category:    CategoryContent,
			Fields: map[string]Field{
				"label": optional(FieldString, "DEMO", "Text shown in the box"),
				"color": enum("primary", []string{"primary", "secondary", "accent"}, "Theme color"),
			},
			Example: map[string]any{"label": "Camera 1", "color": "accent"},
		},
		{
			Name:        "SplitScreen",
			Description: "Layout component for side-by-side content",
			Category:    CategoryLayout,
			Layouts: map[string]string{
				"50-50": "Equal split",
				"60-40": "Larger left side",
				"40-60": "Larger right side",
				"70-30": "Emphasis on left",
				"30-70": "Emphasis on right",
			},
			Options: map[string]map[string]string{
				"orientations": {
					"horizontal": "Left and right panels",
					"vertical":   "Top and bottom panels",
				},
			},
			Fields: map[string]Field{
				"orientation": enum("horizontal", []string{"horizontal", "vertical"}, "Split direction"),
				"layout":      enum("50-50", []string{"50-50", "60-40", "40-60", "70-30", "30-70"}, "Size ratio"),
				"gap":         optional(FieldNumber, 20, "Gap between panels (pixels)"),
				"left":        slot("Component for left panel"),
				"right":       slot("Component for right panel"),
				"top":         slot("Component for top panel"),
				"bottom":      slot("Component for bottom panel"),
			},
			Example: map[string]any{
				"orientation": "horizontal",
				"layout":      "50-50",
				"gap":         20,
				"left":        map[string]any{"type": "CodeBlock", "config": map[string]any{"code": "..."}},
				"right":       map[string]any{"type": "Terminal"},
			},
		},
		{
			Name:        "Grid",
			Description: "Grid layout for multiple items",
			Category:    CategoryLayout,
			Layouts: map[string]string{
				"1x2": "1 column, 2 rows (simple stack)",
				"2x1": "2 columns, 1 row (side-by-side)",
				"2x2": "2 columns, 2 rows (4 items)",
				"3x2": "3 columns, 2 rows (6 items)",
				"2x3": "2 columns, 3 rows (6 items)",
				"3x3": "3 columns, 3 rows (9 items) - Instagram style",
				"4x2": "4 columns, 2 rows (8 items)",
				"2x4": "2 columns, 4 rows (8 items)",
			},
			Fields: map[string]Field{
				"layout":   enum("3x3", []string{"1x2", "2x1", "2x2", "3x2", "2x3", "3x3", "4x2", "2x4"}, "Grid dimensions"),
				"gap":      optional(FieldNumber, 20, "Gap between items (pixels)"),
				"padding":  optional(FieldNumber, 40, "Padding around grid (pixels)"),
				"children": slot("Components to display, in order"),
			},
			Example: map[string]any{
				"layout":  "2x2",
				"gap":     20,
				"padding": 40,
				"children": []any{
					map[string]any{"type": "CodeBlock", "config": map[string]any{"code": "Python"}},
					map[string]any{"type": "CodeBlock", "config": map[string]any{"code": "Go"}},
				},
			},
		},
		{
			Name:        "Container",
			Description: "Flexible positioning container for components",
			Category:    CategoryLayout,
			Positions: map[string]string{
				"center":        "Center of screen",
				"top-left":      "Top left corner",
				"top-center":    "Top center",
				"top-right":     "Top right corner",
				"middle-left":   "Middle left",
				"middle-right":  "Middle right",
				"bottom-left":   "Bottom left corner",
				"bottom-center": "Bottom center",
				"bottom-right":  "Bottom right corner",
			},
			Fields: map[string]Field{
				"position": enum("center", []string{
					"center", "top-left", "top-center", "top-right",
					"middle-left", "middle-right", "bottom-left",
					"bottom-center", "bottom-right",
				}, "Position on screen"),
				"width":    optional(FieldString, "auto", "Width (px, %, or auto)"),
				"height":   optional(FieldString, "auto", "Height (px, %, or auto)"),
				"padding":  optional(FieldNumber, 40, "Internal padding (pixels)"),
				"children": slot("Component to position"),
			},
			Example: map[string]any{
				"position": "top-right",
				"width":    "400px",
				"height":   "auto",
				"padding":  20,
				"children": map[string]any{"type": "CodeBlock", "config": map[string]any{"code": "..."}},
			},
		},
	}

	return append(schemas, layoutSchemas()...)
}

// layoutSchemas describes the slot-based layouts. Their fields are mostly
// the slots that hold nested scenes.
func layoutSchemas() []*Schema {
	type layout struct {
		name, desc string
		slots      []string
		extra      map[string]Field
	}
	layouts := []layout{
		{"ThreeByThreeGrid", "Fixed 3x3 grid of nine items", []string{"children"}, map[string]Field{
			"gap": optional(FieldNumber, 20, "Gap between items (pixels)"),
		}},
		{"MosaicLayout", "Irregular collage of clips with varied tile sizes", []string{"children", "clips"}, map[string]Field{
			"style": enum("hero-corners", []string{"hero-corners", "stacked-left", "spotlight"}, "Mosaic arrangement"),
		}},
		{"ThreeColumnLayout", "Three side-by-side columns", []string{"left", "center", "right"}, map[string]Field{
			"gap": optional(FieldNumber, 20, "Gap between columns (pixels)"),
		}},
		{"ThreeRowLayout", "Three stacked rows", []string{"top", "middle", "bottom"}, map[string]Field{
			"gap": optional(FieldNumber, 20, "Gap between rows (pixels)"),
		}},
		{"AsymmetricLayout", "Large main feed with two stacked demo panels", []string{"mainFeed", "demo1", "demo2", "overlay"}, nil},
		{"OverTheShoulderLayout", "Host view with the screen they are looking at", []string{"hostView", "screenContent"}, map[string]Field{
			"screen_position": enum("right", []string{"left", "right"}, "Side the screen content sits on"),
		}},
		{"DialogueFrameLayout", "Two speakers facing each other", []string{"characterA", "characterB"}, nil},
		{"StackedReactionLayout", "Original clip above a reactor's face", []string{"originalClip", "reactorFace"}, nil},
		{"HUDStyleLayout", "Gameplay with webcam and chat overlays", []string{"gameplay", "webcam", "chatOverlay"}, nil},
		{"PerformanceMultiCamLayout", "Up to four camera angles of one performance", []string{"frontCam", "overheadCam", "handCam", "detailCam"}, nil},
		{"FocusStripLayout", "Host strip over background content", []string{"hostStrip", "backgroundContent"}, nil},
		{"PiPLayout", "Picture-in-picture with a small inset over main content", []string{"mainContent", "pipContent"}, map[string]Field{
			"pip_position": enum("bottom-right", []string{"bottom-right", "bottom-left", "top-right", "top-left"}, "Inset corner"),
		}},
		{"VerticalLayout", "Portrait 9:16 layout for shorts and reels", []string{"topContent", "bottomContent", "captionBar"}, nil},
		{"TimelineLayout", "Main content with a milestone timeline", []string{"mainContent", "milestones"}, nil},
	}

	out := make([]*Schema, 0, len(layouts))
	for _, l := range layouts {
		fields := make(map[string]Field, len(l.slots)+len(l.extra))
		for _, s := range l.slots {
			fields[s] = slot("Nested scene for " + s)
		}
		for k, f := range l.extra {
			fields[k] = f
		}
		out = append(out, &Schema{
			Name:        l.name,
			Description: l.desc,
			Category:    CategoryLayout,
			Fields:      fields,
		})
	}
	return out
}
