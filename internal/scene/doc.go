// Package scene turns declarative scene descriptions into timing-resolved
// component instances.
//
// Raw scenes (decoded YAML or JSON mappings) are parsed at the boundary into
// Node values. Which keys of a scene hold nested scenes is declared by a
// SlotRegistry, so a new layout is a registration rather than a code change.
// Flatten walks a Node with the inherited start frame and duration passed
// explicitly, producing a ComponentInstance tree and collecting the set of
// distinct component types. A Composition owns the top-level instances of
// one video.
package scene
