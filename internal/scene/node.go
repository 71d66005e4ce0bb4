package scene

import (
	"fmt"
	"math"
	"strings"

	"github.com/conneroisu/reelsmith/internal/errors"
)

// Reserved scene keys.
const (
	KeyType     = "type"
	KeyConfig   = "config"
	KeyStart    = "startFrame"
	KeyDuration = "durationInFrames"
)

// MaxDepth bounds scene nesting.
const MaxDepth = 64

// Timing is the explicit timeline placement of a top-level scene.
type Timing struct {
	StartFrame     int
	DurationFrames int
}

// Node is a parsed scene description. A node without slots is a leaf.
type Node struct {
	Type   string
	Config map[string]any
	Slots  []SlotValue
	// Timing is set on top-level nodes only.
	Timing *Timing
}

// SlotValue holds the nested scenes stored under one slot key. Exactly one
// of Node and Items is meaningful, selected by Cardinality.
type SlotValue struct {
	Name        string
	Cardinality Cardinality
	Node        *Node
	Items       []*Node
}

// IsLeaf reports whether n has no populated slots.
func (n *Node) IsLeaf() bool {
	return len(n.Slots) == 0
}

// Walk visits n and every nested node depth-first in slot order.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, slot := range n.Slots {
		if slot.Cardinality == Single {
			slot.Node.Walk(visit)
			continue
		}
		for _, item := range slot.Items {
			item.Walk(visit)
		}
	}
}

// Parse converts one top-level raw scene into a Node. Top-level scenes must
// carry startFrame and durationInFrames; nested scenes inherit and must not.
func Parse(raw map[string]any, slots *SlotRegistry) (*Node, error) {
	return parseNode(raw, slots, "scene", 0, true)
}

// ParseScenes parses a list of top-level scenes.
func ParseScenes(raws []any, slots *SlotRegistry) ([]*Node, error) {
	nodes := make([]*Node, 0, len(raws))
	for i, raw := range raws {
		path := fmt.Sprintf("scenes[%d]", i)
		m, ok := asMap(raw)
		if !ok {
			return nil, invalidScene(path, "scene must be a mapping, got %s", describe(raw))
		}
		node, err := parseNode(m, slots, path, 0, true)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}

	return nodes, nil
}

func parseNode(raw map[string]any, slots *SlotRegistry, path string, depth int, top bool) (*Node, error) {
	if depth > MaxDepth {
		return nil, invalidScene(path, "scene nesting exceeds %d levels", MaxDepth)
	}

	typ, ok := raw[KeyType].(string)
	if !ok || strings.TrimSpace(typ) == "" {
		return nil, invalidScene(path, "missing or empty %q", KeyType)
	}

	node := &Node{Type: typ, Config: make(map[string]any)}

	if rawConfig, present := raw[KeyConfig]; present && rawConfig != nil {
		config, ok := asMap(rawConfig)
		if !ok {
			return nil, invalidScene(path+"."+KeyConfig, "config must be a mapping, got %s", describe(rawConfig))
		}
		for k, v := range config {
			if k == KeyStart || k == KeyDuration {
				return nil, invalidScene(path+"."+KeyConfig, "%s belongs on the scene, not in config", k)
			}
			node.Config[k] = v
		}
	}

	timing, err := parseTiming(raw, path, top)
	if err != nil {
		return nil, err
	}
	node.Timing = timing

	for _, desc := range slots.Slots(typ) {
		value, present := raw[desc.Name]
		if !present || value == nil {
			continue
		}
		slot, err := parseSlot(value, desc, slots, path+"."+desc.Name, depth)
		if err != nil {
			return nil, err
		}
		node.Slots = append(node.Slots, slot)
	}

	// Remaining keys are configuration; explicit config entries win.
	for k, v := range raw {
		switch k {
		case KeyType, KeyConfig, KeyStart, KeyDuration:
			continue
		}
		if _, isSlot := slots.Lookup(typ, k); isSlot {
			continue
		}
		if _, exists := node.Config[k]; !exists {
			node.Config[k] = v
		}
	}

	return node, nil
}

func parseSlot(value any, desc SlotDescriptor, slots *SlotRegistry, path string, depth int) (SlotValue, error) {
	cardinality := desc.Cardinality
	if _, isList := value.([]any); isList && desc.Name == ChildrenSlot {
		cardinality = Sequence
	}
	slot := SlotValue{Name: desc.Name, Cardinality: cardinality}

	switch cardinality {
	case Single:
		m, ok := asMap(value)
		if !ok {
			return slot, invalidSlot(path, "slot %q expects a nested scene, got %s", desc.Name, describe(value))
		}
		child, err := parseNode(m, slots, path, depth+1, false)
		if err != nil {
			return slot, err
		}
		slot.Node = child
	case Sequence:
		items, ok := value.([]any)
		if !ok {
			return slot, invalidSlot(path, "slot %q expects a list of nested scenes, got %s", desc.Name, describe(value))
		}
		slot.Items = make([]*Node, 0, len(items))
		for i, item := range items {
			itemPath := fmt.Sprintf("%s[%d]", path, i)
			m, ok := asMap(item)
			if !ok {
				return slot, invalidSlot(itemPath, "slot %q item must be a nested scene, got %s", desc.Name, describe(item))
			}
			child, err := parseNode(m, slots, itemPath, depth+1, false)
			if err != nil {
				return slot, err
			}
			slot.Items = append(slot.Items, child)
		}
	}

	return slot, nil
}

func parseTiming(raw map[string]any, path string, top bool) (*Timing, error) {
	startRaw, hasStart := raw[KeyStart]
	durRaw, hasDur := raw[KeyDuration]

	if !top {
		if hasStart || hasDur {
			return nil, invalidScene(path, "nested scenes inherit timing and must not set %s or %s", KeyStart, KeyDuration)
		}
		return nil, nil
	}

	if !hasStart || !hasDur {
		return nil, errors.NewValidationError(
			errors.ErrCodeMissingTiming,
			fmt.Sprintf("top-level scene requires %s and %s", KeyStart, KeyDuration),
		).WithPath(path)
	}

	start, ok := asInt(startRaw)
	if !ok || start < 0 {
		return nil, invalidScene(path+"."+KeyStart, "%s must be a non-negative integer, got %v", KeyStart, startRaw)
	}
	dur, ok := asInt(durRaw)
	if !ok || dur <= 0 {
		return nil, invalidScene(path+"."+KeyDuration, "%s must be a positive integer, got %v", KeyDuration, durRaw)
	}

	return &Timing{StartFrame: start, DurationFrames: dur}, nil
}

// asMap accepts both decoder map shapes.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint64:
		if n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.Abs(n) > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case int, int32, int64, uint64, float64:
		return "a number"
	case []any:
		return "a list"
	default:
		if _, ok := asMap(v); ok {
			return "a mapping"
		}
		return fmt.Sprintf("%T", v)
	}
}

func invalidScene(path, format string, args ...any) error {
	return errors.NewValidationError(errors.ErrCodeInvalidScene, fmt.Sprintf(format, args...)).WithPath(path)
}

func invalidSlot(path, format string, args ...any) error {
	return errors.NewValidationError(errors.ErrCodeInvalidSlot, fmt.Sprintf(format, args...)).WithPath(path)
}
