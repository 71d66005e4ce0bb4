package scene

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/conneroisu/reelsmith/internal/errors"
)

// Composition owns the ordered top-level instances of one video and the
// distinct types they reference. It is safe for concurrent use.
type Composition struct {
	FPS         int
	Width       int
	Height      int
	Theme       string
	Transparent bool

	mu        sync.RWMutex
	instances []*ComponentInstance
	types     TypeSet
}

// Option configures a Composition.
type Option func(*Composition)

// WithFPS sets the frame rate.
func WithFPS(fps int) Option { return func(c *Composition) { c.FPS = fps } }

// WithSize sets the frame dimensions.
func WithSize(width, height int) Option {
	return func(c *Composition) {
		c.Width = width
		c.Height = height
	}
}

// WithTheme sets the theme key used for rendering.
func WithTheme(theme string) Option { return func(c *Composition) { c.Theme = theme } }

// WithTransparent renders the composition over a transparent background.
func WithTransparent(transparent bool) Option {
	return func(c *Composition) { c.Transparent = transparent }
}

// NewComposition creates an empty 1920x1080 composition at 30fps on the tech theme.
func NewComposition(opts ...Option) *Composition {
	c := &Composition{
		FPS:    30,
		Width:  1920,
		Height: 1080,
		Theme:  "tech",
		types:  make(TypeSet),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddScene flattens a top-level node and appends the resulting instance.
// Nested instances are reachable through the returned instance's Props and
// are not appended separately.
func (c *Composition) AddScene(node *Node) (*ComponentInstance, error) {
	if node.Timing == nil {
		return nil, errors.NewValidationError(
			errors.ErrCodeMissingTiming,
			fmt.Sprintf("scene %q has no timing", node.Type),
		).WithComponent(node.Type)
	}

	seen := make(TypeSet)
	instance := Flatten(node, node.Timing.StartFrame, node.Timing.DurationFrames, seen)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.instances = append(c.instances, instance)
	c.types.Merge(seen)

	return instance, nil
}

// AddScenes adds every node in order, stopping at the first error.
func (c *Composition) AddScenes(nodes []*Node) error {
	for _, node := range nodes {
		if _, err := c.AddScene(node); err != nil {
			return err
		}
	}
	return nil
}

// AddInstance appends a prebuilt top-level instance.
func (c *Composition) AddInstance(instance *ComponentInstance) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.instances = append(c.instances, instance)
	instance.Walk(func(ci *ComponentInstance) { c.types.Add(ci.ComponentType) })
}

// AddTitleScene appends a TitleScene on the base layer directly after the
// last base-layer instance.
func (c *Composition) AddTitleScene(text, subtitle string, durationSeconds float64, variant, animation string) *ComponentInstance {
	props := map[string]any{
		"text":      text,
		"variant":   variant,
		"animation": animation,
	}
	if subtitle != "" {
		props["subtitle"] = subtitle
	}

	instance := &ComponentInstance{
		ComponentType:  "TitleScene",
		StartFrame:     c.NextStartFrame(),
		DurationFrames: c.SecondsToFrames(durationSeconds),
		Props:          props,
		Layer:          LayerBase,
	}
	c.AddInstance(instance)

	return instance
}

// AddLowerThird appends a LowerThird overlay at an absolute time.
func (c *Composition) AddLowerThird(name, title string, startSeconds, durationSeconds float64, variant, position string) *ComponentInstance {
	props := map[string]any{
		"name":     name,
		"variant":  variant,
		"position": position,
	}
	if title != "" {
		props["title"] = title
	}

	instance := &ComponentInstance{
		ComponentType:  "LowerThird",
		StartFrame:     c.SecondsToFrames(startSeconds),
		DurationFrames: c.SecondsToFrames(durationSeconds),
		Props:          props,
		Layer:          LayerOverlay,
	}
	c.AddInstance(instance)

	return instance
}

// Instances returns the top-level instances in insertion order.
func (c *Composition) Instances() []*ComponentInstance {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*ComponentInstance, len(c.instances))
	copy(out, c.instances)
	return out
}

// Layered returns the top-level instances ordered by layer, keeping
// insertion order within a layer.
func (c *Composition) Layered() []*ComponentInstance {
	out := c.Instances()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Layer < out[j].Layer })
	return out
}

// Types returns a copy of the distinct-type set.
func (c *Composition) Types() TypeSet {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(TypeSet, len(c.types))
	out.Merge(c.types)
	return out
}

// Len returns the number of top-level instances.
func (c *Composition) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.instances)
}

// TotalFrames is the maximum end frame over the top-level instances.
func (c *Composition) TotalFrames() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := 0
	for _, inst := range c.instances {
		if end := inst.EndFrame(); end > total {
			total = end
		}
	}
	return total
}

// NextStartFrame is where the next sequential base-layer scene begins.
func (c *Composition) NextStartFrame() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	next := 0
	for _, inst := range c.instances {
		if inst.Layer != LayerBase {
			continue
		}
		if end := inst.EndFrame(); end > next {
			next = end
		}
	}
	return next
}

// SecondsToFrames converts seconds to whole frames, truncating.
func (c *Composition) SecondsToFrames(seconds float64) int {
	return int(math.Floor(seconds*float64(c.FPS) + 1e-9))
}

// FramesToSeconds converts frames to seconds.
func (c *Composition) FramesToSeconds(frames int) float64 {
	if c.FPS == 0 {
		return 0
	}
	return float64(frames) / float64(c.FPS)
}

// InstanceSummary describes one top-level instance for callers.
type InstanceSummary struct {
	Type           string         `json:"type" yaml:"type"`
	StartFrame     int            `json:"start_frame" yaml:"start_frame"`
	DurationFrames int            `json:"duration_frames" yaml:"duration_frames"`
	StartTime      float64        `json:"start_time" yaml:"start_time"`
	Duration       float64        `json:"duration" yaml:"duration"`
	Layer          int            `json:"layer" yaml:"layer"`
	Props          map[string]any `json:"props" yaml:"props"`
}

// Summary is a serializable view of a Composition.
type Summary struct {
	FPS             int               `json:"fps" yaml:"fps"`
	Width           int               `json:"width" yaml:"width"`
	Height          int               `json:"height" yaml:"height"`
	Theme           string            `json:"theme" yaml:"theme"`
	DurationFrames  int               `json:"duration_frames" yaml:"duration_frames"`
	DurationSeconds float64           `json:"duration_seconds" yaml:"duration_seconds"`
	Types           []string          `json:"component_types" yaml:"component_types"`
	Components      []InstanceSummary `json:"components" yaml:"components"`
}

// SetTheme changes the theme key used for rendering.
func (c *Composition) SetTheme(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = key
}

// ThemeKey returns the theme key used for rendering. Readers that may run
// alongside SetTheme use it instead of the Theme field.
func (c *Composition) ThemeKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// Summary builds a serializable view of the composition.
func (c *Composition) Summary() Summary {
	total := c.TotalFrames()
	instances := c.Instances()

	s := Summary{
		FPS:             c.FPS,
		Width:           c.Width,
		Height:          c.Height,
		Theme:           c.ThemeKey(),
		DurationFrames:  total,
		DurationSeconds: c.FramesToSeconds(total),
		Types:           c.Types().Sorted(),
		Components:      make([]InstanceSummary, 0, len(instances)),
	}
	for _, inst := range instances {
		s.Components = append(s.Components, InstanceSummary{
			Type:           inst.ComponentType,
			StartFrame:     inst.StartFrame,
			DurationFrames: inst.DurationFrames,
			StartTime:      c.FramesToSeconds(inst.StartFrame),
			Duration:       c.FramesToSeconds(inst.DurationFrames),
			Layer:          inst.Layer,
			Props:          inst.Props,
		})
	}

	return s
}
