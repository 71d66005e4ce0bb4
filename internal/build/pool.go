// Package build renders component types concurrently.
//
// A Pool renders each job once, bounded by a worker limit. A failing job is
// recorded in its Result and never cancels its siblings, so callers always
// get one Result per distinct component type.
package build

import (
	"context"
	"runtime"
	"sort"
	"time"

	"github.com/conneroisu/reelsmith/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Renderer produces the source of one component type.
type Renderer interface {
	RenderContext(ctx context.Context, componentType string, config map[string]any, themeName string) (string, error)
}

// WriteFunc persists a rendered component and returns where it went.
type WriteFunc func(componentType, source string) (path string, err error)

// Job is one component type to render.
type Job struct {
	Type   string
	Config map[string]any
}

// Result is the outcome of one Job.
type Result struct {
	Type     string
	Path     string
	Output   string
	Err      error
	Duration time.Duration
	CacheHit bool
}

// OK reports whether the job rendered and, when a writer is set, was written.
func (r Result) OK() bool {
	return r.Err == nil
}

// Pool renders jobs with bounded parallelism.
type Pool struct {
	renderer Renderer
	workers  int
	write    WriteFunc
	cache    *Cache
	metrics  *Metrics
	logger   logging.Logger
}

// Option configures a Pool.
type Option func(*Pool)

// WithWorkers bounds the number of concurrent renders. Values below one
// are ignored.
func WithWorkers(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithWriter persists every successful render.
func WithWriter(write WriteFunc) Option {
	return func(p *Pool) { p.write = write }
}

// WithCache reuses earlier renders of identical jobs.
func WithCache(c *Cache) Option {
	return func(p *Pool) { p.cache = c }
}

// WithMetrics records every result into m.
func WithMetrics(m *Metrics) Option {
	return func(p *Pool) { p.metrics = m }
}

// WithLogger sets the pool logger.
func WithLogger(l logging.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPool creates a pool over r. Workers default to the CPU count.
func NewPool(r Renderer, opts ...Option) *Pool {
	p := &Pool{
		renderer: r,
		workers:  runtime.NumCPU(),
		metrics:  NewMetrics(),
		logger:   logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.WithComponent("build")

	return p
}

// Metrics returns the pool's metrics tracker.
func (p *Pool) Metrics() *Metrics {
	return p.metrics
}

// Workers returns the concurrency limit.
func (p *Pool) Workers() int {
	return p.workers
}

// Render runs every job and returns the results sorted by type. Jobs that
// repeat an earlier type are dropped. Jobs not yet started when ctx is done
// fail with the context error.
func (p *Pool) Render(ctx context.Context, jobs []Job, themeName string) []Result {
	jobs = dedupe(jobs)
	results := make([]Result, len(jobs))

	perf := logging.StartOperation(p.logger, "render_components")

	var g errgroup.Group
	g.SetLimit(p.workers)
	for i, job := range jobs {
		g.Go(func() error {
			results[i] = p.run(ctx, job, themeName)
			return nil
		})
	}
	_ = g.Wait()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Type < results[j].Type
	})

	failed := 0
	for _, r := range results {
		p.metrics.Record(r)
		if r.Err != nil {
			failed++
			p.logger.Warn(ctx, r.Err, "Component render failed", "type", r.Type)
		}
	}
	perf.End(ctx, "jobs", len(jobs), "failed", failed, "theme", themeName)

	return results
}

// RenderTypes renders each type with an empty configuration, so every
// component falls back to its schema defaults.
func (p *Pool) RenderTypes(ctx context.Context, types []string, themeName string) []Result {
	jobs := make([]Job, len(types))
	for i, typ := range types {
		jobs[i] = Job{Type: typ}
	}
	return p.Render(ctx, jobs, themeName)
}

func (p *Pool) run(ctx context.Context, job Job, themeName string) Result {
	start := time.Now()
	result := Result{Type: job.Type}

	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	key, cacheable := "", false
	if p.cache != nil {
		key, cacheable = Key(job.Type, job.Config, themeName)
	}
	if cacheable {
		result.Output, result.CacheHit = p.cache.Get(key)
	}

	if !result.CacheHit {
		out, err := p.renderer.RenderContext(ctx, job.Type, job.Config, themeName)
		if err != nil {
			result.Err = err
			result.Duration = time.Since(start)
			return result
		}
		result.Output = out
		if cacheable {
			p.cache.Set(key, out)
		}
	}

	if p.write != nil {
		result.Path, result.Err = p.write(job.Type, result.Output)
	}
	result.Duration = time.Since(start)

	return result
}

func dedupe(jobs []Job) []Job {
	seen := make(map[string]struct{}, len(jobs))
	out := make([]Job, 0, len(jobs))
	for _, job := range jobs {
		if _, ok := seen[job.Type]; ok {
			continue
		}
		seen[job.Type] = struct{}{}
		out = append(out, job)
	}
	return out
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
