// Package scaffolding renders the static files of a new Remotion project.
package scaffolding

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"
)

//go:embed templates
var templateFS embed.FS

const (
	templateRoot = "templates"
	templateExt  = ".tmpl"

	// DefaultRemotionVersion is pinned into package.json.
	DefaultRemotionVersion = "^4.0.0"
	// DefaultMaxConcurrency caps Remotion's render concurrency.
	DefaultMaxConcurrency = 8
)

// dotfiles are stored without their leading dot since embed skips them.
var dotfiles = map[string]string{
	"gitignore": ".gitignore",
}

// TemplateContext is what every scaffold template is executed with.
type TemplateContext struct {
	ProjectName     string
	CompositionID   string
	RemotionVersion string
	MaxConcurrency  int
}

// File is one generated project file.
type File struct {
	Path    string
	Content string
}

// Generator renders the embedded scaffold.
type Generator struct {
	templates map[string]*template.Template
	paths     []string
}

// NewGenerator parses the embedded scaffold templates.
func NewGenerator() (*Generator, error) {
	g := &Generator{templates: make(map[string]*template.Template)}

	err := fs.WalkDir(templateFS, templateRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, templateExt) {
			return nil
		}

		src, err := fs.ReadFile(templateFS, p)
		if err != nil {
			return err
		}
		tmpl, err := template.New(p).
			Delims("[[", "]]").
			Funcs(template.FuncMap{"lower": strings.ToLower}).
			Option("missingkey=error").
			Parse(string(src))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", p, err)
		}

		out := outputPath(p)
		g.templates[out] = tmpl
		g.paths = append(g.paths, out)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return g, nil
}

func outputPath(p string) string {
	rel := strings.TrimSuffix(strings.TrimPrefix(p, templateRoot+"/"), templateExt)
	dir, base := path.Split(rel)
	if dot, ok := dotfiles[base]; ok {
		base = dot
	}
	return dir + base
}

// Paths lists the project-relative files the generator produces, in walk
// order.
func (g *Generator) Paths() []string {
	out := make([]string, len(g.paths))
	copy(out, g.paths)
	return out
}

// Generate renders every scaffold file for ctx. Zero fields fall back to
// the package defaults.
func (g *Generator) Generate(ctx TemplateContext) ([]File, error) {
	if ctx.ProjectName == "" {
		return nil, fmt.Errorf("project name is required")
	}
	if ctx.CompositionID == "" {
		ctx.CompositionID = strings.ReplaceAll(ctx.ProjectName, "_", "-")
	}
	if ctx.RemotionVersion == "" {
		ctx.RemotionVersion = DefaultRemotionVersion
	}
	if ctx.MaxConcurrency <= 0 {
		ctx.MaxConcurrency = DefaultMaxConcurrency
	}

	files := make([]File, 0, len(g.paths))
	for _, p := range g.paths {
		var buf bytes.Buffer
		if err := g.templates[p].Execute(&buf, ctx); err != nil {
			return nil, fmt.Errorf("failed to generate %s: %w", p, err)
		}
		files = append(files, File{Path: p, Content: buf.String()})
	}

	return files, nil
}
