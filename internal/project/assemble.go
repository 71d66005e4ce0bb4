package project

import (
	"context"
	"path/filepath"

	"github.com/conneroisu/reelsmith/internal/build"
	"github.com/conneroisu/reelsmith/internal/composition"
	"github.com/conneroisu/reelsmith/internal/errors"
	"github.com/conneroisu/reelsmith/internal/logging"
	"github.com/conneroisu/reelsmith/internal/scene"
	"github.com/google/uuid"
)

// Result describes one assembled build of a project.
type Result struct {
	ProjectID       string                    `json:"project_id" yaml:"project_id"`
	BuildID         string                    `json:"build_id" yaml:"build_id"`
	ProjectPath     string                    `json:"project_path" yaml:"project_path"`
	CompositionPath string                    `json:"composition_path" yaml:"composition_path"`
	ComponentFiles  []string                  `json:"component_files" yaml:"component_files"`
	ComponentTypes  []string                  `json:"component_types" yaml:"component_types"`
	TotalFrames     int                       `json:"total_frames" yaml:"total_frames"`
	DurationSeconds float64                   `json:"duration_seconds" yaml:"duration_seconds"`
	Failures        []errors.ComponentFailure `json:"failures,omitempty" yaml:"failures,omitempty"`

	Composition *scene.Composition `json:"-" yaml:"-"`
}

// Partial reports whether some component types could not be rendered.
func (r *Result) Partial() bool {
	return len(r.Failures) > 0
}

// BuildFromScenes flattens nodes into a fresh composition using the
// project settings, renders every distinct component type once and writes
// the entry files. A non-empty themeName overrides the project theme.
//
// Types that fail to render are reported in Result.Failures and do not stop
// the build; the aggregate file is written after every render has settled.
func (m *Manager) BuildFromScenes(ctx context.Context, name string, nodes []*scene.Node, themeName string) (*Result, error) {
	var opts []scene.Option
	if themeName != "" {
		opts = append(opts, scene.WithTheme(themeName))
	}
	return m.build(ctx, name, nodes, opts)
}

// BuildDocument builds a decoded scenes document. Settings in the document
// override the project settings.
func (m *Manager) BuildDocument(ctx context.Context, name string, doc *scene.Document) (*Result, error) {
	nodes, err := doc.Nodes(m.slots)
	if err != nil {
		return nil, err
	}
	return m.build(ctx, name, nodes, doc.Options())
}

func (m *Manager) build(ctx context.Context, name string, nodes []*scene.Node, overrides []scene.Option) (*Result, error) {
	p, err := m.Open(name)
	if err != nil {
		return nil, err
	}

	perf := logging.StartOperation(m.logger, "build_project")

	opts := append(p.Metadata.CompositionOptions(), overrides...)
	c := scene.NewComposition(opts...)
	if err := c.AddScenes(nodes); err != nil {
		perf.EndWithError(ctx, err)
		return nil, err
	}

	return m.assemble(ctx, p, c, perf)
}

// Assemble renders and writes an already built composition.
func (m *Manager) Assemble(ctx context.Context, name string, c *scene.Composition) (*Result, error) {
	p, err := m.Open(name)
	if err != nil {
		return nil, err
	}
	return m.assemble(ctx, p, c, logging.StartOperation(m.logger, "build_project"))
}

func (m *Manager) assemble(ctx context.Context, p *Project, c *scene.Composition, perf *logging.PerfLogger) (*Result, error) {
	buildID := uuid.Must(uuid.NewV7()).String()
	types := c.Types().Sorted()

	write := func(componentType, source string) (string, error) {
		path := m.componentPath(p, componentType)
		return path, m.writeFile(path, source)
	}
	poolOpts := []build.Option{
		build.WithWorkers(m.pool.Workers()),
		build.WithWriter(write),
		build.WithMetrics(m.pool.Metrics()),
		build.WithLogger(m.logger),
	}
	if m.cache != nil {
		poolOpts = append(poolOpts, build.WithCache(m.cache))
	}
	results := build.NewPool(m.renderer, poolOpts...).RenderTypes(ctx, types, c.ThemeKey())

	collector := errors.NewErrorCollector()
	files := make([]string, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			collector.Add(r.Type, r.Err)
			continue
		}
		files = append(files, r.Path)
	}

	if err := ctx.Err(); err != nil {
		perf.EndWithError(ctx, err)
		return nil, err
	}

	if err := m.writeEntryFiles(p, c); err != nil {
		perf.EndWithError(ctx, err)
		return nil, err
	}

	total := c.TotalFrames()
	p.Metadata.DurationFrames = composition.RootFor(p.Name, c).DurationFrames
	p.Metadata.LastBuildID = buildID
	if err := m.saveMetadata(p); err != nil {
		perf.EndWithError(ctx, err)
		return nil, err
	}

	result := &Result{
		ProjectID:       p.Name,
		BuildID:         buildID,
		ProjectPath:     p.Path,
		CompositionPath: filepath.Join(p.Path, composition.CompositionFile),
		ComponentFiles:  files,
		ComponentTypes:  types,
		TotalFrames:     total,
		DurationSeconds: c.FramesToSeconds(total),
		Failures:        collector.Failures(),
		Composition:     c,
	}

	perf.End(ctx,
		"project", p.Name,
		"build_id", buildID,
		"types", len(types),
		"failed", collector.Len(),
		"frames", total,
	)

	return result, nil
}
