package scene

import (
	"sort"
)

// Layer hints for render z-order.
const (
	LayerBase    = 0
	LayerChild   = 5
	LayerOverlay = 10
)

// ComponentInstance is a flattened, timing-resolved scene node. Child
// instances live in Props under their slot key, as *ComponentInstance for
// single slots and []*ComponentInstance for sequence slots.
type ComponentInstance struct {
	ComponentType  string         `json:"type" yaml:"type"`
	StartFrame     int            `json:"start_frame" yaml:"start_frame"`
	DurationFrames int            `json:"duration_frames" yaml:"duration_frames"`
	Props          map[string]any `json:"props" yaml:"props"`
	Layer          int            `json:"layer" yaml:"layer"`
	// Slots lists the slot keys of Props, in slot order.
	Slots []string `json:"slots,omitempty" yaml:"slots,omitempty"`
}

// EndFrame is the first frame after the instance.
func (c *ComponentInstance) EndFrame() int {
	return c.StartFrame + c.DurationFrames
}

// IsSlot reports whether key holds nested instances.
func (c *ComponentInstance) IsSlot(key string) bool {
	for _, s := range c.Slots {
		if s == key {
			return true
		}
	}
	return false
}

// Children returns the nested instances in slot order.
func (c *ComponentInstance) Children() []*ComponentInstance {
	var out []*ComponentInstance
	for _, key := range c.Slots {
		switch v := c.Props[key].(type) {
		case *ComponentInstance:
			out = append(out, v)
		case []*ComponentInstance:
			out = append(out, v...)
		}
	}
	return out
}

// Walk visits c and every nested instance depth-first.
func (c *ComponentInstance) Walk(visit func(*ComponentInstance)) {
	visit(c)
	for _, child := range c.Children() {
		child.Walk(visit)
	}
}

// TypeSet is the set of distinct component types seen during flattening.
type TypeSet map[string]struct{}

// NewTypeSet creates a set holding types.
func NewTypeSet(types ...string) TypeSet {
	s := make(TypeSet, len(types))
	for _, t := range types {
		s.Add(t)
	}
	return s
}

// Add inserts t.
func (s TypeSet) Add(t string) { s[t] = struct{}{} }

// Has reports whether t is present.
func (s TypeSet) Has(t string) bool {
	_, ok := s[t]
	return ok
}

// Len returns the number of distinct types.
func (s TypeSet) Len() int { return len(s) }

// Merge adds every type of other.
func (s TypeSet) Merge(other TypeSet) {
	for t := range other {
		s.Add(t)
	}
}

// Sorted returns the types in lexical order.
func (s TypeSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Flatten converts node into a ComponentInstance on the base layer. The
// node's own Timing wins when present; otherwise the inherited start and
// duration apply to it and to every nested node. Every type reached is
// added to seen.
func Flatten(node *Node, inheritedStart, inheritedDuration int, seen TypeSet) *ComponentInstance {
	return flattenAt(node, inheritedStart, inheritedDuration, LayerBase, seen)
}

func flattenAt(node *Node, start, duration, layer int, seen TypeSet) *ComponentInstance {
	if node.Timing != nil {
		start = node.Timing.StartFrame
		duration = node.Timing.DurationFrames
	}

	seen.Add(node.Type)

	props := make(map[string]any, len(node.Config)+len(node.Slots))
	for k, v := range node.Config {
		props[k] = v
	}

	instance := &ComponentInstance{
		ComponentType:  node.Type,
		StartFrame:     start,
		DurationFrames: duration,
		Props:          props,
		Layer:          layer,
	}

	for _, slot := range node.Slots {
		childLayer := LayerChild
		if slot.Name == OverlaySlot {
			childLayer = LayerOverlay
		}

		switch slot.Cardinality {
		case Single:
			props[slot.Name] = flattenAt(slot.Node, start, duration, childLayer, seen)
		case Sequence:
			items := make([]*ComponentInstance, 0, len(slot.Items))
			for _, item := range slot.Items {
				items = append(items, flattenAt(item, start, duration, childLayer, seen))
			}
			props[slot.Name] = items
		}
		instance.Slots = append(instance.Slots, slot.Name)
	}

	return instance
}
