package scene

import (
	"sort"
	"sync"
)

// Cardinality says whether a slot holds one nested scene or an ordered list.
type Cardinality int

const (
	Single Cardinality = iota
	Sequence
)

// String returns the string representation of the cardinality
func (c Cardinality) String() string {
	switch c {
	case Single:
		return "single"
	case Sequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// SlotDescriptor names a key of a scene that holds nested scenes.
type SlotDescriptor struct {
	Name        string
	Cardinality Cardinality
}

// SingleSlot describes a slot holding exactly one nested scene.
func SingleSlot(name string) SlotDescriptor {
	return SlotDescriptor{Name: name, Cardinality: Single}
}

// SequenceSlot describes a slot holding an ordered list of nested scenes.
func SequenceSlot(name string) SlotDescriptor {
	return SlotDescriptor{Name: name, Cardinality: Sequence}
}

// OverlaySlot is the slot whose child renders above its siblings.
const OverlaySlot = "overlay"

// ChildrenSlot accepts a list of scenes even where it is declared Single.
const ChildrenSlot = "children"

// SlotRegistry maps component types to the keys that carry nested scenes.
// Generic descriptors apply to every type; a type-specific descriptor with
// the same name takes precedence.
type SlotRegistry struct {
	mu      sync.RWMutex
	generic []SlotDescriptor
	byType  map[string][]SlotDescriptor
}

// NewSlotRegistry creates a registry with the given generic descriptors.
func NewSlotRegistry(generic ...SlotDescriptor) *SlotRegistry {
	return &SlotRegistry{
		generic: append([]SlotDescriptor(nil), generic...),
		byType:  make(map[string][]SlotDescriptor),
	}
}

// GenericSlots are recognized on every component type.
func GenericSlots() []SlotDescriptor {
	return []SlotDescriptor{
		SequenceSlot(ChildrenSlot),
		SingleSlot("left"),
		SingleSlot("right"),
		SingleSlot("top"),
		SingleSlot("bottom"),
		SingleSlot(OverlaySlot),
	}
}

// DefaultSlots returns a registry populated with the built-in layouts.
func DefaultSlots() *SlotRegistry {
	r := NewSlotRegistry(GenericSlots()...)

	r.Register("Grid", SequenceSlot("children"))
	r.Register("ThreeByThreeGrid", SequenceSlot("children"))
	r.Register("MosaicLayout", SequenceSlot("children"), SequenceSlot("clips"))
	r.Register("Container", SingleSlot("children"), SingleSlot("content"))
	r.Register("SplitScreen",
		SingleSlot("left"), SingleSlot("right"), SingleSlot("top"), SingleSlot("bottom"),
		SingleSlot("leftPanel"), SingleSlot("rightPanel"), SingleSlot("topPanel"), SingleSlot("bottomPanel"),
	)
	r.Register("ThreeColumnLayout", SingleSlot("left"), SingleSlot("center"), SingleSlot("right"))
	r.Register("ThreeRowLayout", SingleSlot("top"), SingleSlot("middle"), SingleSlot("bottom"))
	r.Register("AsymmetricLayout", SingleSlot("mainFeed"), SingleSlot("demo1"), SingleSlot("demo2"), SingleSlot(OverlaySlot))
	r.Register("OverTheShoulderLayout", SingleSlot("hostView"), SingleSlot("screenContent"))
	r.Register("DialogueFrameLayout", SingleSlot("characterA"), SingleSlot("characterB"))
	r.Register("StackedReactionLayout", SingleSlot("originalClip"), SingleSlot("reactorFace"))
	r.Register("HUDStyleLayout", SingleSlot("gameplay"), SingleSlot("webcam"), SingleSlot("chatOverlay"))
	r.Register("PerformanceMultiCamLayout",
		SingleSlot("frontCam"), SingleSlot("overheadCam"), SingleSlot("handCam"), SingleSlot("detailCam"),
	)
	r.Register("FocusStripLayout", SingleSlot("hostStrip"), SingleSlot("backgroundContent"))
	r.Register("PiPLayout", SingleSlot("mainContent"), SingleSlot("pipContent"))
	r.Register("VerticalLayout", SingleSlot("topContent"), SingleSlot("bottomContent"), SingleSlot("captionBar"))
	r.Register("TimelineLayout", SingleSlot("mainContent"), SequenceSlot("milestones"))

	return r
}

// Register adds or replaces the type-specific slots of componentType.
func (r *SlotRegistry) Register(componentType string, slots ...SlotDescriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byType[componentType] = append([]SlotDescriptor(nil), slots...)
}

// Lookup returns the descriptor for key on componentType.
func (r *SlotRegistry) Lookup(componentType, key string) (SlotDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.byType[componentType] {
		if d.Name == key {
			return d, true
		}
	}
	for _, d := range r.generic {
		if d.Name == key {
			return d, true
		}
	}

	return SlotDescriptor{}, false
}

// Slots returns every descriptor recognized on componentType: the
// type-specific ones in registration order, then unshadowed generic ones.
func (r *SlotRegistry) Slots(componentType string) []SlotDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specific := r.byType[componentType]
	result := make([]SlotDescriptor, 0, len(specific)+len(r.generic))
	seen := make(map[string]bool, len(specific))
	for _, d := range specific {
		result = append(result, d)
		seen[d.Name] = true
	}
	for _, d := range r.generic {
		if !seen[d.Name] {
			result = append(result, d)
		}
	}

	return result
}

// IsSlot reports whether key names a slot anywhere in the registry.
func (r *SlotRegistry) IsSlot(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.generic {
		if d.Name == key {
			return true
		}
	}
	for _, slots := range r.byType {
		for _, d := range slots {
			if d.Name == key {
				return true
			}
		}
	}

	return false
}

// Types returns the component types with type-specific slots, sorted.
func (r *SlotRegistry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.byType))
	for t := range r.byType {
		types = append(types, t)
	}
	sort.Strings(types)

	return types
}
