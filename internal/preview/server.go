// Package preview serves a live storyboard of workspace projects and
// pushes build events to open pages.
package preview

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/conneroisu/reelsmith/internal/errors"
	"github.com/conneroisu/reelsmith/internal/logging"
	"github.com/conneroisu/reelsmith/internal/middleware"
	"github.com/conneroisu/reelsmith/internal/project"
	"github.com/conneroisu/reelsmith/internal/websocket"
)

// BuildEvent is the payload of build messages on /ws.
type BuildEvent struct {
	ProjectID       string                    `json:"project_id"`
	BuildID         string                    `json:"build_id,omitempty"`
	TotalFrames     int                       `json:"total_frames"`
	DurationSeconds float64                   `json:"duration_seconds"`
	ComponentTypes  []string                  `json:"component_types,omitempty"`
	Failures        []errors.ComponentFailure `json:"failures,omitempty"`
	Error           string                    `json:"error,omitempty"`
}

// Server renders project pages and relays build events.
type Server struct {
	projects *project.Manager
	hub      *websocket.Hub
	logger   logging.Logger

	mu     sync.RWMutex
	builds map[string]*project.Result
}

// NewServer creates a preview server. A nil hub gets a loopback-only hub.
func NewServer(projects *project.Manager, hub *websocket.Hub, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	logger = logger.WithComponent("preview")
	if hub == nil {
		hub = websocket.NewHub(nil, logger)
	}
	return &Server{
		projects: projects,
		hub:      hub,
		logger:   logger,
		builds:   make(map[string]*project.Result),
	}
}

// Hub returns the event hub.
func (s *Server) Hub() *websocket.Hub { return s.hub }

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /projects/{name}", s.handleStoryboard)
	mux.HandleFunc("GET /api/projects/{name}", s.handleProjectJSON)
	mux.HandleFunc("GET /ws", s.hub.HandleWebSocket)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return middleware.Default(s.logger.WithComponent("http"), s.hub.Origins()).Apply(mux)
}

// Publish records result as the latest build of its project and notifies
// connected pages.
func (s *Server) Publish(ctx context.Context, result *project.Result) {
	s.mu.Lock()
	s.builds[result.ProjectID] = result
	s.mu.Unlock()

	s.broadcast(ctx, websocket.Message{
		Type:    websocket.MessageBuild,
		Project: result.ProjectID,
		Payload: BuildEvent{
			ProjectID:       result.ProjectID,
			BuildID:         result.BuildID,
			TotalFrames:     result.TotalFrames,
			DurationSeconds: result.DurationSeconds,
			ComponentTypes:  result.ComponentTypes,
			Failures:        result.Failures,
		},
	})
}

// PublishFailure notifies connected pages that a build of name failed
// before producing a result.
func (s *Server) PublishFailure(ctx context.Context, name string, err error) {
	s.broadcast(ctx, websocket.Message{
		Type:    websocket.MessageBuildFailed,
		Project: name,
		Payload: BuildEvent{ProjectID: name, Error: err.Error()},
	})
}

func (s *Server) broadcast(ctx context.Context, msg websocket.Message) {
	if err := s.hub.Broadcast(msg); err != nil {
		s.logger.Warn(ctx, err, "Failed to broadcast build event", "project", msg.Project)
	}
}

// Latest returns the last published build of name.
func (s *Server) Latest(name string) (*project.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.builds[name]
	return r, ok
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	projects, err := s.projects.List()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, IndexPage(projects))
}

func (s *Server) handleStoryboard(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	info, err := s.projects.Info(name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	build, _ := s.Latest(name)
	s.render(w, r, StoryboardPage(Storyboard{Info: info, Build: build}))
}

func (s *Server) handleProjectJSON(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	info, err := s.projects.Info(name)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	body := map[string]any{"project": info}
	if build, ok := s.Latest(name); ok {
		body["build"] = build
		if build.Composition != nil {
			body["composition"] = build.Composition.Summary()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn(r.Context(), err, "Failed to write project JSON", "project", name)
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, page templ.Component) {
	templ.Handler(page).ServeHTTP(w, r)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.IsNotFound(err):
		status = http.StatusNotFound
	case errors.IsValidation(err):
		status = http.StatusBadRequest
	default:
		s.logger.Error(r.Context(), err, "Preview request failed", "path", r.URL.Path)
	}
	http.Error(w, err.Error(), status)
}

// Addr joins host and port.
func Addr(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// ListenAndServe serves until ctx is cancelled, then shuts the HTTP server
// and the hub down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Preview server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return errors.NewIOError(errors.ErrCodeInternalError, "preview server stopped", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.hub.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn(shutdownCtx, err, "Hub shutdown incomplete")
	}
	return srv.Shutdown(shutdownCtx)
}
