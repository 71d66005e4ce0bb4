package theme

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/conneroisu/reelsmith/internal/errors"
	"github.com/spf13/afero"
)

// ValidationResult reports whether raw theme data is complete.
type ValidationResult struct {
	Valid  bool     `json:"valid" yaml:"valid"`
	Errors []string `json:"errors" yaml:"errors"`
}

// Comparison puts two themes side by side.
type Comparison struct {
	Themes       [2]string   `json:"themes" yaml:"themes"`
	Names        [2]string   `json:"names" yaml:"names"`
	Descriptions [2]string   `json:"descriptions" yaml:"descriptions"`
	Primary      [2][]string `json:"primary_colors" yaml:"primary_colors"`
	Accent       [2][]string `json:"accent_colors" yaml:"accent_colors"`
	MotionFeel   [2]string   `json:"motion_feel" yaml:"motion_feel"`
	UseCases     [2][]string `json:"use_cases" yaml:"use_cases"`
}

// CustomOptions describes a theme derived from a base theme. Overrides
// replace whole keys of the corresponding section.
type CustomOptions struct {
	Name                string
	Description         string
	Base                string
	ColorOverrides      map[string]any
	TypographyOverrides map[string]any
	MotionOverrides     map[string]any
}

// Manager holds the registered themes and the current theme selection.
type Manager struct {
	fs afero.Fs

	mu      sync.RWMutex
	themes  map[string]*Theme
	current string
}

// NewManager creates a manager with the built-in themes registered.
func NewManager(fs afero.Fs) *Manager {
	return &Manager{fs: fs, themes: Builtin()}
}

// Register adds or replaces a theme under key.
func (m *Manager) Register(key string, t *Theme) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.themes[key] = t
}

// List returns every theme key, sorted.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.themes))
	for k := range m.themes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the theme registered under key.
func (m *Manager) Get(key string) (*Theme, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.themes[key]
	return t, ok
}

// Info returns the theme under key or a not-found error.
func (m *Manager) Info(key string) (*Theme, error) {
	t, ok := m.Get(key)
	if !ok {
		return nil, errors.ErrThemeNotFound(key)
	}
	return t, nil
}

// Resolve returns the theme under key, falling back to the default theme.
// The boolean is false when the fallback was used.
func (m *Manager) Resolve(key string) (*Theme, bool) {
	if t, ok := m.Get(key); ok {
		return t, true
	}
	t, _ := m.Get(DefaultKey)
	return t, false
}

// SetCurrent selects the active theme.
func (m *Manager) SetCurrent(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.themes[key]; !ok {
		return errors.ErrThemeNotFound(key)
	}
	m.current = key
	return nil
}

// Current returns the active theme key, or "" when none is selected.
func (m *Manager) Current() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Search returns the keys of themes whose name, description or use cases
// contain query, ignoring case.
func (m *Manager) Search(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))

	m.mu.RLock()
	defer m.mu.RUnlock()

	var matches []string
	for key, t := range m.themes {
		if matchesTheme(t, q) {
			matches = append(matches, key)
		}
	}
	sort.Strings(matches)
	return matches
}

func matchesTheme(t *Theme, q string) bool {
	if strings.Contains(strings.ToLower(t.Name), q) || strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	for _, uc := range t.UseCases {
		if strings.Contains(strings.ToLower(uc), q) {
			return true
		}
	}
	return false
}

// Compare puts the themes under a and b side by side.
func (m *Manager) Compare(a, b string) (*Comparison, error) {
	ta, err := m.Info(a)
	if err != nil {
		return nil, err
	}
	tb, err := m.Info(b)
	if err != nil {
		return nil, err
	}

	return &Comparison{
		Themes:       [2]string{a, b},
		Names:        [2]string{ta.Name, tb.Name},
		Descriptions: [2]string{ta.Description, tb.Description},
		Primary:      [2][]string{ta.Colors.Primary, tb.Colors.Primary},
		Accent:       [2][]string{ta.Colors.Accent, tb.Colors.Accent},
		MotionFeel:   [2]string{springName(ta), springName(tb)},
		UseCases:     [2][]string{ta.UseCases, tb.UseCases},
	}, nil
}

func springName(t *Theme) string {
	if t.Motion.DefaultSpring.Name == "" {
		return "Unknown"
	}
	return t.Motion.DefaultSpring.Name
}

var requiredSections = map[string][]string{
	"colors":     {"primary", "accent", "background", "text", "semantic"},
	"typography": {"primary_font", "body_font"},
	"motion":     {"default_spring", "default_easing", "default_duration"},
}

var sectionLabel = map[string]string{
	"colors":     "color",
	"typography": "typography",
	"motion":     "motion",
}

// Validate checks raw theme data for the keys a theme needs.
func Validate(data map[string]any) ValidationResult {
	var problems []string
	for _, key := range []string{"name", "description", "colors", "typography", "motion"} {
		if _, ok := data[key]; !ok {
			problems = append(problems, "Missing required key: "+key)
		}
	}
	if len(problems) > 0 {
		return ValidationResult{Valid: false, Errors: problems}
	}

	for _, section := range []string{"colors", "typography", "motion"} {
		values, ok := data[section].(map[string]any)
		if !ok {
			problems = append(problems, fmt.Sprintf("%s must be an object", section))
			continue
		}
		for _, key := range requiredSections[section] {
			if _, ok := values[key]; !ok {
				problems = append(problems, fmt.Sprintf("Missing %s token: %s", sectionLabel[section], key))
			}
		}
	}

	return ValidationResult{Valid: len(problems) == 0, Errors: nonNil(problems)}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// KeyFor derives a theme key from a display name.
func KeyFor(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// CreateCustom registers a theme built from opts and returns its key.
func (m *Manager) CreateCustom(opts CustomOptions) (string, error) {
	if strings.TrimSpace(opts.Name) == "" {
		return "", errors.NewValidationError(errors.ErrCodeInvalidTheme, "custom theme needs a name")
	}

	var data map[string]any
	if base, ok := m.Get(opts.Base); ok && opts.Base != "" {
		var err error
		if data, err = toMap(base); err != nil {
			return "", err
		}
	} else {
		data = map[string]any{
			"colors":     map[string]any{"primary": []any{}, "accent": []any{}, "background": map[string]any{}, "text": map[string]any{}, "semantic": map[string]any{}},
			"typography": map[string]any{"primary_font": map[string]any{}, "body_font": map[string]any{}, "default_resolution": "video_1080p"},
			"motion":     map[string]any{"default_spring": map[string]any{}, "default_easing": map[string]any{}, "default_duration": map[string]any{}},
		}
	}
	data["name"] = opts.Name
	data["description"] = opts.Description
	data["use_cases"] = []any{}

	overlay(data, "colors", opts.ColorOverrides)
	overlay(data, "typography", opts.TypographyOverrides)
	overlay(data, "motion", opts.MotionOverrides)

	t, err := fromMap(data)
	if err != nil {
		return "", err
	}

	key := KeyFor(opts.Name)
	m.Register(key, t)
	return key, nil
}

func overlay(data map[string]any, section string, overrides map[string]any) {
	if len(overrides) == 0 {
		return
	}
	values, _ := data[section].(map[string]any)
	if values == nil {
		values = make(map[string]any)
	}
	for k, v := range overrides {
		values[k] = v
	}
	data[section] = values
}

// Export writes the theme under key as JSON. An empty path defaults to
// "<key>_theme.json".
func (m *Manager) Export(key, path string) (string, error) {
	t, err := m.Info(key)
	if err != nil {
		return "", err
	}
	if path == "" {
		path = key + "_theme.json"
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return "", errors.NewInternalError(errors.ErrCodeInternalError, "encoding theme", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := m.fs.MkdirAll(dir, 0o755); err != nil {
			return "", errors.WrapIO(err, errors.ErrCodeWriteFailed, "creating theme directory", dir)
		}
	}
	if err := afero.WriteFile(m.fs, path, data, 0o644); err != nil {
		return "", errors.WrapIO(err, errors.ErrCodeWriteFailed, "writing theme", path)
	}
	return path, nil
}

// Import reads and registers a theme file. An empty key is derived from
// the theme's name.
func (m *Manager) Import(path, key string) (string, error) {
	raw, err := afero.ReadFile(m.fs, path)
	if err != nil {
		return "", errors.WrapIO(err, errors.ErrCodeReadFailed, "reading theme", path)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", errors.WrapValidation(err, errors.ErrCodeInvalidTheme, "theme file must be a JSON object")
	}

	t, err := fromMap(data)
	if err != nil {
		return "", err
	}
	if key == "" {
		key = KeyFor(t.Name)
	}
	m.Register(key, t)
	return key, nil
}

func fromMap(data map[string]any) (*Theme, error) {
	if result := Validate(data); !result.Valid {
		return nil, errors.NewValidationError(
			errors.ErrCodeInvalidTheme,
			"invalid theme - "+strings.Join(result.Errors, ", "),
		).WithContext("errors", result.Errors)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeInternalError, "encoding theme", err)
	}
	var t Theme
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, errors.WrapValidation(err, errors.ErrCodeInvalidTheme, "theme tokens have the wrong shape")
	}
	return &t, nil
}

func toMap(t *Theme) (map[string]any, error) {
	raw, err := json.Marshal(t)
	if err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeInternalError, "encoding theme", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeInternalError, "decoding theme", err)
	}
	return out, nil
}
