// Package registry holds the component schemas that describe which
// components exist, how they are configured, and what they look like.
package registry

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/conneroisu/reelsmith/internal/errors"
)

// Registry manages component schemas
type Registry struct {
	schemas  map[string]*Schema
	mutex    sync.RWMutex
	watchers []chan Event
}

// EventType represents the type of registry change.
type EventType string

const (
	EventTypeAdded   EventType = "added"
	EventTypeUpdated EventType = "updated"
	EventTypeRemoved EventType = "removed"
)

// Event represents a change in the registry
type Event struct {
	Type      EventType
	Schema    *Schema
	Timestamp time.Time
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		schemas:  make(map[string]*Schema),
		watchers: make([]chan Event, 0),
	}
}

// NewDefault creates a registry holding the built-in components
func NewDefault() *Registry {
	r := New()
	for _, s := range Builtin() {
		r.Register(s)
	}
	return r
}

// Register adds or updates a schema in the registry
func (r *Registry) Register(schema *Schema) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	eventType := EventTypeAdded
	if _, exists := r.schemas[schema.Name]; exists {
		eventType = EventTypeUpdated
	}

	r.schemas[schema.Name] = schema
	r.notify(Event{Type: eventType, Schema: schema, Timestamp: time.Now()})
}

// Get retrieves a schema by component name
func (r *Registry) Get(name string) (*Schema, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	schema, exists := r.schemas[name]
	return schema, exists
}

// Lookup is Get returning a not-found error for unknown components.
func (r *Registry) Lookup(name string) (*Schema, error) {
	schema, ok := r.Get(name)
	if !ok {
		return nil, errors.ErrComponentNotFound(name)
	}
	return schema, nil
}

// List returns the schemas of category sorted by name. An empty category
// lists everything.
func (r *Registry) List(category string) []*Schema {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]*Schema, 0, len(r.schemas))
	for _, s := range r.schemas {
		if category == "" || s.Category == category {
			result = append(result, s)
		}
	}
	sortByName(result)
	return result
}

// Search returns schemas whose name, description or category contains
// query, ignoring case.
func (r *Registry) Search(query string) []*Schema {
	q := strings.ToLower(strings.TrimSpace(query))

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]*Schema, 0)
	for _, s := range r.schemas {
		if strings.Contains(strings.ToLower(s.Name), q) ||
			strings.Contains(strings.ToLower(s.Description), q) ||
			strings.Contains(strings.ToLower(s.Category), q) {
			result = append(result, s)
		}
	}
	sortByName(result)
	return result
}

// Categories returns the distinct categories, sorted.
func (r *Registry) Categories() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	seen := make(map[string]bool)
	for _, s := range r.schemas {
		seen[s.Category] = true
	}
	result := make([]string, 0, len(seen))
	for c := range seen {
		result = append(result, c)
	}
	sort.Strings(result)
	return result
}

// ValidateConfig checks config against the named component's schema.
func (r *Registry) ValidateConfig(name string, config map[string]any) error {
	schema, err := r.Lookup(name)
	if err != nil {
		return err
	}
	return schema.Validate(config)
}

// Remove removes a schema from the registry
func (r *Registry) Remove(name string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	schema, exists := r.schemas[name]
	if !exists {
		return
	}

	delete(r.schemas, name)
	r.notify(Event{Type: EventTypeRemoved, Schema: schema, Timestamp: time.Now()})
}

// Watch returns a channel that receives registry events
func (r *Registry) Watch() <-chan Event {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	ch := make(chan Event, 100)
	r.watchers = append(r.watchers, ch)
	return ch
}

// UnWatch removes a watcher channel and closes it
func (r *Registry) UnWatch(ch <-chan Event) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for i, watcher := range r.watchers {
		if watcher == ch {
			close(watcher)
			r.watchers = append(r.watchers[:i], r.watchers[i+1:]...)
			break
		}
	}
}

// Count returns the number of registered schemas
func (r *Registry) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.schemas)
}

// notify must be called with the write lock held.
func (r *Registry) notify(event Event) {
	for _, watcher := range r.watchers {
		select {
		case watcher <- event:
		default:
			// Skip if channel is full
		}
	}
}

func sortByName(schemas []*Schema) {
	sort.Slice(schemas, func(i, j int) bool { return schemas[i].Name < schemas[j].Name })
}
