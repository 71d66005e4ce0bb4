// Package project creates and assembles Remotion projects inside a
// workspace directory.
//
// A project is a directory holding the scaffold files, one rendered
// component per distinct type under src/components, and the generated
// VideoComposition.tsx and Root.tsx entry files. The Manager works through
// an afero.Fs so the whole pipeline runs against memory in tests.
package project

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/conneroisu/reelsmith/internal/build"
	"github.com/conneroisu/reelsmith/internal/composition"
	"github.com/conneroisu/reelsmith/internal/errors"
	"github.com/conneroisu/reelsmith/internal/logging"
	"github.com/conneroisu/reelsmith/internal/registry"
	"github.com/conneroisu/reelsmith/internal/renderer"
	"github.com/conneroisu/reelsmith/internal/scaffolding"
	"github.com/conneroisu/reelsmith/internal/scene"
	"github.com/conneroisu/reelsmith/internal/theme"
	"github.com/spf13/afero"
)

const (
	// MetadataFile records the settings a project was created with.
	MetadataFile = "reelsmith.json"
	// ComponentsDir holds one rendered file per component type.
	ComponentsDir = "src/components"

	packageFile = "package.json"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)

// Options are the video settings of a new project. Zero values use the
// composition defaults.
type Options struct {
	Theme       string
	FPS         int
	Width       int
	Height      int
	Transparent bool
}

// Metadata is persisted in every project directory.
type Metadata struct {
	Name           string    `json:"name" yaml:"name"`
	Theme          string    `json:"theme" yaml:"theme"`
	FPS            int       `json:"fps" yaml:"fps"`
	Width          int       `json:"width" yaml:"width"`
	Height         int       `json:"height" yaml:"height"`
	Transparent    bool      `json:"transparent,omitempty" yaml:"transparent,omitempty"`
	CreatedAt      time.Time `json:"created_at" yaml:"created_at"`
	DurationFrames int       `json:"duration_frames" yaml:"duration_frames"`
	LastBuildID    string    `json:"last_build_id,omitempty" yaml:"last_build_id,omitempty"`
}

// Resolution formats the frame size as WIDTHxHEIGHT.
func (m Metadata) Resolution() string {
	return fmt.Sprintf("%dx%d", m.Width, m.Height)
}

// CompositionOptions returns scene options matching the project settings.
func (m Metadata) CompositionOptions() []scene.Option {
	return []scene.Option{
		scene.WithFPS(m.FPS),
		scene.WithSize(m.Width, m.Height),
		scene.WithTheme(m.Theme),
		scene.WithTransparent(m.Transparent),
	}
}

// Project is an opened project.
type Project struct {
	Name     string
	Path     string
	Metadata Metadata
}

// NewComposition returns an empty composition with the project settings.
func (p *Project) NewComposition() *scene.Composition {
	return scene.NewComposition(p.Metadata.CompositionOptions()...)
}

// Summary identifies a project in a listing.
type Summary struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// Info describes a project on disk.
type Info struct {
	Metadata       `yaml:",inline"`
	Path           string   `json:"path" yaml:"path"`
	Resolution     string   `json:"resolution" yaml:"resolution"`
	Components     []string `json:"components" yaml:"components"`
	HasComposition bool     `json:"has_composition" yaml:"has_composition"`
}

// Manager owns a workspace of projects.
type Manager struct {
	fs       afero.Fs
	root     string
	registry *registry.Registry
	themes   *theme.Manager
	renderer *renderer.Renderer
	pool     *build.Pool
	scaffold *scaffolding.Generator
	slots    *scene.SlotRegistry
	logger   logging.Logger

	workers int
	cache   *build.Cache
}

// Option configures a Manager.
type Option func(*Manager)

// WithRegistry sets the component registry used for schema defaults.
func WithRegistry(r *registry.Registry) Option {
	return func(m *Manager) { m.registry = r }
}

// WithThemes shares a theme manager, so custom themes are renderable.
func WithThemes(t *theme.Manager) Option {
	return func(m *Manager) { m.themes = t }
}

// WithSlots sets the slot table scenes are parsed against.
func WithSlots(s *scene.SlotRegistry) Option {
	return func(m *Manager) { m.slots = s }
}

// WithWorkers bounds concurrent component renders.
func WithWorkers(n int) Option {
	return func(m *Manager) { m.workers = n }
}

// WithCache reuses identical renders across builds.
func WithCache(c *build.Cache) Option {
	return func(m *Manager) { m.cache = c }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// NewManager creates a manager rooted at root on fs. The root directory is
// created if needed.
func NewManager(fs afero.Fs, root string, opts ...Option) (*Manager, error) {
	m := &Manager{fs: fs, root: root}
	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = logging.NewNopLogger()
	}
	m.logger = m.logger.WithComponent("project")
	if m.registry == nil {
		m.registry = registry.NewDefault()
	}
	if m.themes == nil {
		m.themes = theme.NewManager(fs)
	}
	if m.slots == nil {
		m.slots = scene.DefaultSlots()
	}

	scaffold, err := scaffolding.NewGenerator()
	if err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeInternalError, "loading project scaffold", err)
	}
	m.scaffold = scaffold

	m.renderer = renderer.New(m.registry, m.themes, m.logger)

	poolOpts := []build.Option{build.WithWorkers(m.workers), build.WithLogger(m.logger)}
	if m.cache != nil {
		poolOpts = append(poolOpts, build.WithCache(m.cache))
	}
	m.pool = build.NewPool(m.renderer, poolOpts...)

	if err := fs.MkdirAll(root, 0o755); err != nil {
		return nil, errors.WrapIO(err, errors.ErrCodeWriteFailed, "creating workspace", root)
	}

	return m, nil
}

// Root returns the workspace directory.
func (m *Manager) Root() string { return m.root }

// Slots returns the slot table scenes are parsed against.
func (m *Manager) Slots() *scene.SlotRegistry { return m.slots }

// Renderer returns the template renderer.
func (m *Manager) Renderer() *renderer.Renderer { return m.renderer }

// Metrics returns the render metrics accumulated across builds.
func (m *Manager) Metrics() *build.Metrics { return m.pool.Metrics() }

// Path returns the directory of project name.
func (m *Manager) Path(name string) string {
	return filepath.Join(m.root, name)
}

// ValidateName checks that name is usable as a directory and composition id.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return errors.NewValidationError(
			errors.ErrCodeInvalidName,
			fmt.Sprintf("invalid project name %q: use letters, digits, '_' or '-' and start with a letter or digit", name),
		)
	}
	return nil
}

// Exists reports whether name is a project in the workspace.
func (m *Manager) Exists(name string) bool {
	ok, err := afero.Exists(m.fs, filepath.Join(m.Path(name), packageFile))
	return err == nil && ok
}

// Create scaffolds a new project. The directory must not exist yet.
func (m *Manager) Create(ctx context.Context, name string, opts Options) (*Project, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	dir := m.Path(name)
	if exists, _ := afero.DirExists(m.fs, dir); exists {
		return nil, errors.ErrProjectExists(name)
	}

	meta, err := m.metadataFor(name, opts)
	if err != nil {
		return nil, err
	}

	files, err := m.scaffold.Generate(scaffolding.TemplateContext{
		ProjectName:   name,
		CompositionID: composition.CompositionID(name),
	})
	if err != nil {
		return nil, errors.NewBuildError(errors.ErrCodeRenderFailed, "generating scaffold", err)
	}

	if err := m.fs.MkdirAll(filepath.Join(dir, ComponentsDir), 0o755); err != nil {
		return nil, errors.WrapIO(err, errors.ErrCodeWriteFailed, "creating project directory", dir)
	}
	for _, f := range files {
		if err := m.writeFile(filepath.Join(dir, f.Path), f.Content); err != nil {
			return nil, err
		}
	}

	p := &Project{Name: name, Path: dir, Metadata: meta}
	empty := p.NewComposition()
	if err := m.writeEntryFiles(p, empty); err != nil {
		return nil, err
	}
	if err := m.saveMetadata(p); err != nil {
		return nil, err
	}

	m.logger.Info(ctx, "Created project", "name", name, "path", dir, "theme", meta.Theme)

	return p, nil
}

func (m *Manager) metadataFor(name string, opts Options) (Metadata, error) {
	c := scene.NewComposition()
	meta := Metadata{
		Name:        name,
		Theme:       opts.Theme,
		FPS:         opts.FPS,
		Width:       opts.Width,
		Height:      opts.Height,
		Transparent: opts.Transparent,
		CreatedAt:   time.Now().UTC(),
	}
	if meta.Theme == "" {
		meta.Theme = c.Theme
	}
	if meta.FPS <= 0 {
		meta.FPS = c.FPS
	}
	if meta.Width <= 0 || meta.Height <= 0 {
		meta.Width, meta.Height = c.Width, c.Height
	}
	if _, ok := m.themes.Get(meta.Theme); !ok {
		return Metadata{}, errors.NewValidationError(
			errors.ErrCodeInvalidTheme,
			fmt.Sprintf("unknown theme %q, available: %s", meta.Theme, strings.Join(m.themes.List(), ", ")),
		)
	}
	meta.DurationFrames = composition.DefaultDurationFrames

	return meta, nil
}

// Open loads an existing project.
func (m *Manager) Open(name string) (*Project, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if !m.Exists(name) {
		return nil, errors.ErrProjectNotFound(name)
	}

	dir := m.Path(name)
	meta, err := m.loadMetadata(dir)
	if err != nil {
		return nil, err
	}
	if meta.Name == "" {
		meta.Name = name
	}

	return &Project{Name: name, Path: dir, Metadata: meta}, nil
}

// List returns every directory in the workspace that holds a package.json,
// sorted by name.
func (m *Manager) List() ([]Summary, error) {
	entries, err := afero.ReadDir(m.fs, m.root)
	if err != nil {
		if os.IsNotExist(err) {
			return []Summary{}, nil
		}
		return nil, errors.WrapIO(err, errors.ErrCodeReadFailed, "listing workspace", m.root)
	}

	projects := make([]Summary, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() || !m.Exists(e.Name()) {
			continue
		}
		projects = append(projects, Summary{Name: e.Name(), Path: m.Path(e.Name())})
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })

	return projects, nil
}

// Info describes project name from its files on disk.
func (m *Manager) Info(name string) (*Info, error) {
	p, err := m.Open(name)
	if err != nil {
		return nil, err
	}

	components, err := m.components(p)
	if err != nil {
		return nil, err
	}
	hasComposition, _ := afero.Exists(m.fs, filepath.Join(p.Path, composition.CompositionFile))

	return &Info{
		Metadata:       p.Metadata,
		Path:           p.Path,
		Resolution:     p.Metadata.Resolution(),
		Components:     components,
		HasComposition: hasComposition,
	}, nil
}

func (m *Manager) components(p *Project) ([]string, error) {
	dir := filepath.Join(p.Path, ComponentsDir)
	entries, err := afero.ReadDir(m.fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, errors.WrapIO(err, errors.ErrCodeReadFailed, "listing components", dir)
	}

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".tsx" {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), ".tsx"))
	}
	sort.Strings(out)

	return out, nil
}

// AddComponent renders componentType into the project's components
// directory and returns the written path. An empty theme uses the project
// theme.
func (m *Manager) AddComponent(ctx context.Context, name, componentType string, config map[string]any, themeName string) (string, error) {
	p, err := m.Open(name)
	if err != nil {
		return "", err
	}
	if themeName == "" {
		themeName = p.Metadata.Theme
	}

	source, err := m.renderer.RenderContext(ctx, componentType, config, themeName)
	if err != nil {
		return "", err
	}

	path := m.componentPath(p, componentType)
	if err := m.writeFile(path, source); err != nil {
		return "", err
	}

	m.logger.Info(ctx, "Added component", "project", name, "type", componentType, "path", path)

	return path, nil
}

// GenerateComposition writes VideoComposition.tsx for c and re-renders
// Root.tsx with the composition's total length. It returns the composition
// path.
func (m *Manager) GenerateComposition(ctx context.Context, name string, c *scene.Composition) (string, error) {
	p, err := m.Open(name)
	if err != nil {
		return "", err
	}

	if err := m.writeEntryFiles(p, c); err != nil {
		return "", err
	}

	p.Metadata.DurationFrames = composition.RootFor(p.Name, c).DurationFrames
	if err := m.saveMetadata(p); err != nil {
		return "", err
	}

	path := filepath.Join(p.Path, composition.CompositionFile)
	m.logger.Info(ctx, "Generated composition",
		"project", name,
		"instances", c.Len(),
		"frames", p.Metadata.DurationFrames,
	)

	return path, nil
}

func (m *Manager) writeEntryFiles(p *Project, c *scene.Composition) error {
	if err := m.writeFile(filepath.Join(p.Path, composition.CompositionFile), composition.Render(c)); err != nil {
		return err
	}

	root, err := composition.RenderRoot(composition.RootFor(p.Name, c))
	if err != nil {
		return err
	}
	return m.writeFile(filepath.Join(p.Path, composition.RootFile), root)
}

func (m *Manager) componentPath(p *Project, componentType string) string {
	return filepath.Join(p.Path, ComponentsDir, componentType+".tsx")
}

func (m *Manager) writeFile(path, content string) error {
	if err := m.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapIO(err, errors.ErrCodeWriteFailed, "creating directory", filepath.Dir(path))
	}
	if err := afero.WriteFile(m.fs, path, []byte(content), 0o644); err != nil {
		return errors.WrapIO(err, errors.ErrCodeWriteFailed, "writing file", path)
	}
	return nil
}

func (m *Manager) saveMetadata(p *Project) error {
	data, err := json.MarshalIndent(p.Metadata, "", "  ")
	if err != nil {
		return errors.NewInternalError(errors.ErrCodeInternalError, "encoding project metadata", err)
	}
	return m.writeFile(filepath.Join(p.Path, MetadataFile), string(data)+"\n")
}

// loadMetadata reads the metadata file. Projects without one (scaffolded
// by hand) get the composition defaults.
func (m *Manager) loadMetadata(dir string) (Metadata, error) {
	path := filepath.Join(dir, MetadataFile)
	data, err := afero.ReadFile(m.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			c := scene.NewComposition()
			return Metadata{
				Theme:          c.Theme,
				FPS:            c.FPS,
				Width:          c.Width,
				Height:         c.Height,
				DurationFrames: composition.DefaultDurationFrames,
			}, nil
		}
		return Metadata{}, errors.WrapIO(err, errors.ErrCodeReadFailed, "reading project metadata", path)
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return Metadata{}, errors.WrapValidation(err, errors.ErrCodeConfigInvalid, "decoding "+MetadataFile)
	}
	return meta, nil
}
