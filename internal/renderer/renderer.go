// Package renderer turns a component type, its configuration and a theme
// into the TSX source of a Remotion component.
//
// Templates are embedded and use [[ ]] delimiters so JSX braces pass
// through untouched. Each template lives under templates/<category>/ and
// is named after the component type it renders.
package renderer

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/conneroisu/reelsmith/internal/errors"
	"github.com/conneroisu/reelsmith/internal/logging"
	"github.com/conneroisu/reelsmith/internal/registry"
	"github.com/conneroisu/reelsmith/internal/theme"
	"github.com/conneroisu/reelsmith/internal/tokens"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates
var templateFS embed.FS

const templateExt = ".tsx.tmpl"

// Data is what every component template is executed with.
type Data struct {
	Type       string
	Config     map[string]any
	ThemeKey   string
	Theme      *theme.Theme
	Colors     tokens.Palette
	Typography theme.Typography
	Motion     theme.Motion
	FontSizes  map[string]string
}

// Renderer renders component templates. It is safe for concurrent use once
// constructed.
type Renderer struct {
	registry *registry.Registry
	themes   *theme.Manager
	logger   logging.Logger

	tmpl       *template.Template
	categories map[string]string
}

// New creates a renderer over the embedded template set. A nil registry
// disables default values; a nil theme manager uses the built-in themes.
func New(reg *registry.Registry, themes *theme.Manager, logger logging.Logger) *Renderer {
	if themes == nil {
		themes = theme.NewManager(nil)
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	tmpl, categories, err := parseTemplates(templateFS)
	if err != nil {
		panic(fmt.Sprintf("renderer: embedded templates: %v", err))
	}

	return &Renderer{
		registry:   reg,
		themes:     themes,
		logger:     logger.WithComponent("renderer"),
		tmpl:       tmpl,
		categories: categories,
	}
}

func parseTemplates(fsys fs.FS) (*template.Template, map[string]string, error) {
	root := template.New("reelsmith").Delims("[[", "]]").Funcs(funcMap())

	partials, err := fs.ReadFile(fsys, "templates/partials.tmpl")
	if err != nil {
		return nil, nil, err
	}
	if _, err := root.New("partials").Parse(string(partials)); err != nil {
		return nil, nil, fmt.Errorf("parsing partials: %w", err)
	}

	categories := make(map[string]string)
	err = fs.WalkDir(fsys, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, templateExt) {
			return nil
		}

		typ := strings.TrimSuffix(path.Base(p), templateExt)
		src, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		if _, err := root.New(typ).Parse(string(src)); err != nil {
			return fmt.Errorf("parsing %s: %w", p, err)
		}
		categories[typ] = path.Base(path.Dir(p))

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return root, categories, nil
}

// Has reports whether a template exists for componentType.
func (r *Renderer) Has(componentType string) bool {
	_, ok := r.categories[componentType]
	return ok
}

// Category returns the template directory of componentType.
func (r *Renderer) Category(componentType string) (string, bool) {
	c, ok := r.categories[componentType]
	return c, ok
}

// Types lists every renderable component type in lexical order.
func (r *Renderer) Types() []string {
	out := make([]string, 0, len(r.categories))
	for typ := range r.categories {
		out = append(out, typ)
	}
	sort.Strings(out)
	return out
}

// Render produces the TSX source for componentType.
func (r *Renderer) Render(componentType string, config map[string]any, themeName string) (string, error) {
	return r.RenderContext(context.Background(), componentType, config, themeName)
}

// RenderContext is Render with a context for logging.
func (r *Renderer) RenderContext(ctx context.Context, componentType string, config map[string]any, themeName string) (string, error) {
	if !r.Has(componentType) {
		return "", errors.ErrTemplateNotFound(componentType)
	}

	data := r.data(ctx, componentType, config, themeName)

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, componentType, data); err != nil {
		return "", errors.NewBuildError(
			errors.ErrCodeRenderFailed,
			fmt.Sprintf("rendering %s", componentType),
			err,
		).WithComponent(componentType)
	}

	r.logger.Debug(ctx, "Rendered component", "type", componentType, "theme", data.ThemeKey, "bytes", buf.Len())

	return buf.String(), nil
}

func (r *Renderer) data(ctx context.Context, componentType string, config map[string]any, themeName string) *Data {
	if config == nil {
		config = map[string]any{}
	}
	if r.registry != nil {
		if schema, ok := r.registry.Get(componentType); ok {
			config = schema.ApplyDefaults(config)
		}
	}

	key := themeName
	if key == "" {
		key = theme.DefaultKey
	}
	th, found := r.themes.Resolve(key)
	if !found {
		r.logger.Warn(ctx, nil, "Unknown theme, using default", "theme", themeName, "default", theme.DefaultKey)
		key = theme.DefaultKey
	}

	return &Data{
		Type:       componentType,
		Config:     config,
		ThemeKey:   key,
		Theme:      th,
		Colors:     th.Colors,
		Typography: th.Typography,
		Motion:     th.Motion,
		FontSizes:  th.FontSizes(),
	}
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"pascal":  Pascal,
		"camel":   Camel,
		"json":    toJSON,
		"default": defaultValue,
		"quote":   quote,
		"list":    list,
		"shade":   shade,
	}
}

func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})
}

// Pascal converts snake, kebab or spaced names to PascalCase, keeping
// existing inner capitals.
func Pascal(s string) string {
	title := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	for _, w := range words(s) {
		b.WriteString(title.String(w))
	}
	return b.String()
}

// Camel converts names to camelCase.
func Camel(s string) string {
	p := Pascal(s)
	if p == "" {
		return p
	}
	r, size := utf8.DecodeRuneInString(p)
	return string(unicode.ToLower(r)) + p[size:]
}

func toJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// defaultValue returns v unless it is nil or the empty string. Zero numbers
// and false are real values and are kept.
func defaultValue(def, v any) any {
	switch val := v.(type) {
	case nil:
		return def
	case string:
		if val == "" {
			return def
		}
	}
	return v
}

func list(items ...any) []any {
	if items == nil {
		return []any{}
	}
	return items
}

// shade returns shades[i], falling back to the nearest earlier shade.
func shade(shades []string, i int) string {
	if len(shades) == 0 {
		return ""
	}
	if i >= len(shades) {
		i = len(shades) - 1
	}
	return shades[i]
}

var quoteReplacer = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`)

// quote renders v as a single-quoted JS string literal.
func quote(v any) string {
	if v == nil {
		return "''"
	}
	return "'" + quoteReplacer.Replace(fmt.Sprint(v)) + "'"
}
