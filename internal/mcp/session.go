package mcp

import (
	"sync"

	"github.com/conneroisu/reelsmith/internal/errors"
	"github.com/conneroisu/reelsmith/internal/project"
	"github.com/conneroisu/reelsmith/internal/scene"
)

// Session tracks the project and composition that incremental tools such
// as add_title_scene work on. A client connection owns one session.
type Session struct {
	mu          sync.Mutex
	project     *project.Project
	composition *scene.Composition
}

// NewSession returns a session without an active project.
func NewSession() *Session {
	return &Session{}
}

// Start makes p the active project with an empty composition built from
// the project settings.
func (s *Session) Start(p *project.Project) *scene.Composition {
	c := p.NewComposition()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.project = p
	s.composition = c
	return c
}

// Replace swaps the active composition, typically after a scenes build.
func (s *Session) Replace(c *scene.Composition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.composition = c
}

// Current returns the active project and composition.
func (s *Session) Current() (*project.Project, *scene.Composition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.project == nil {
		return nil, nil, errNoProject()
	}
	return s.project, s.composition, nil
}

// SetTheme changes the theme of the active composition, if any, and
// reports whether one was updated.
func (s *Session) SetTheme(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.composition == nil {
		return false
	}
	s.composition.SetTheme(key)
	return true
}

func errNoProject() error {
	return errors.NewNotFoundError(errors.ErrCodeProjectNotFound, "no active project, create a project first")
}
