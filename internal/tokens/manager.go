package tokens

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/conneroisu/reelsmith/internal/errors"
	"github.com/spf13/afero"
)

// Kind selects a token family.
type Kind string

const (
	KindColors     Kind = "colors"
	KindTypography Kind = "typography"
	KindMotion     Kind = "motion"
	KindAll        Kind = "all"
)

// ParseKind validates a token family name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindColors, KindTypography, KindMotion, KindAll:
		return k, nil
	case "":
		return KindAll, nil
	default:
		return "", errors.NewValidationError(errors.ErrCodeValidationFailed,
			fmt.Sprintf("unknown token kind %q (want colors, typography, motion or all)", s))
	}
}

// DefaultFile is the file name used when an export path is empty.
func (k Kind) DefaultFile() string {
	return string(k) + "_tokens.json"
}

const customKey = "custom"

// Manager exports and imports design tokens and keeps imported tokens as
// overrides of the built-in ones.
type Manager struct {
	fs afero.Fs

	mu               sync.RWMutex
	customColors     map[string]Palette
	customTypography map[string]json.RawMessage
	customMotion     map[string]json.RawMessage
}

// NewManager creates a token manager that reads and writes through fs.
func NewManager(fs afero.Fs) *Manager {
	return &Manager{
		fs:               fs,
		customColors:     make(map[string]Palette),
		customTypography: make(map[string]json.RawMessage),
		customMotion:     make(map[string]json.RawMessage),
	}
}

// Palette returns the palette for theme, preferring imported palettes.
func (m *Manager) Palette(theme string) (Palette, bool) {
	m.mu.RLock()
	custom, ok := m.customColors[theme]
	m.mu.RUnlock()
	if ok {
		return custom, true
	}
	p, ok := Colors()[theme]
	return p, ok
}

// Export writes one token family (or all of them) to path.
func (m *Manager) Export(kind Kind, path string) (map[Kind]string, error) {
	switch kind {
	case KindColors:
		p, err := m.ExportColors(path, "")
		return map[Kind]string{kind: p}, err
	case KindTypography:
		p, err := m.ExportTypography(path, "")
		return map[Kind]string{kind: p}, err
	case KindMotion:
		p, err := m.ExportMotion(path, "")
		return map[Kind]string{kind: p}, err
	default:
		return m.ExportAll(path)
	}
}

// ExportColors writes the palettes, or only theme's palette, as JSON.
func (m *Manager) ExportColors(path, theme string) (string, error) {
	if path == "" {
		path = KindColors.DefaultFile()
	}

	data := make(map[string]any)
	colors := Colors()
	if theme != "" {
		p, ok := m.Palette(theme)
		if !ok {
			return "", errors.ErrThemeNotFound(theme)
		}
		data[theme] = p
	} else {
		for k, p := range colors {
			data[k] = p
		}
	}

	m.mu.RLock()
	if len(m.customColors) > 0 {
		data[customKey] = copyPalettes(m.customColors)
	}
	m.mu.RUnlock()

	return path, m.writeJSON(path, data)
}

// ExportTypography writes the typography tokens. A non-empty section
// (font_families, font_sizes, text_styles, ...) limits the output.
func (m *Manager) ExportTypography(path, section string) (string, error) {
	if path == "" {
		path = KindTypography.DefaultFile()
	}
	m.mu.RLock()
	custom := copyRaw(m.customTypography)
	m.mu.RUnlock()
	return path, m.exportSection(path, DefaultTypography(), section, custom)
}

// ExportMotion writes the motion tokens. A non-empty section
// (spring_configs, easing_curves, durations, animation_presets) limits the
// output.
func (m *Manager) ExportMotion(path, section string) (string, error) {
	if path == "" {
		path = KindMotion.DefaultFile()
	}
	m.mu.RLock()
	custom := copyRaw(m.customMotion)
	m.mu.RUnlock()
	return path, m.exportSection(path, DefaultMotion(), section, custom)
}

// ExportAll writes each token family to its default file name under dir.
func (m *Manager) ExportAll(dir string) (map[Kind]string, error) {
	results := make(map[Kind]string, 3)

	var err error
	if results[KindTypography], err = m.ExportTypography(filepath.Join(dir, KindTypography.DefaultFile()), ""); err != nil {
		return nil, err
	}
	if results[KindColors], err = m.ExportColors(filepath.Join(dir, KindColors.DefaultFile()), ""); err != nil {
		return nil, err
	}
	if results[KindMotion], err = m.ExportMotion(filepath.Join(dir, KindMotion.DefaultFile()), ""); err != nil {
		return nil, err
	}

	return results, nil
}

func (m *Manager) exportSection(path string, tokens any, section string, custom map[string]json.RawMessage) error {
	all, err := toMap(tokens)
	if err != nil {
		return err
	}

	data := all
	if section != "" {
		value, ok := all[section]
		if !ok {
			return errors.NewNotFoundError(errors.ErrCodeTokenNotFound,
				fmt.Sprintf("token section '%s' not found", section))
		}
		data = map[string]any{section: value}
	}
	if len(custom) > 0 {
		data[customKey] = custom
	}

	return m.writeJSON(path, data)
}

// Import reads a token file of kind and records its entries as overrides.
// With merge false existing overrides of that kind are replaced. It returns
// the number of top-level entries imported.
func (m *Manager) Import(kind Kind, path string, merge bool) (int, error) {
	raw, err := m.readJSON(path)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch kind {
	case KindColors:
		palettes, err := decodePalettes(raw)
		if err != nil {
			return 0, errors.WrapValidation(err, errors.ErrCodeValidationFailed, "invalid color token format")
		}
		if !merge {
			m.customColors = make(map[string]Palette)
		}
		for k, p := range palettes {
			m.customColors[k] = p
		}
		return len(palettes), nil
	case KindTypography:
		if !merge {
			m.customTypography = make(map[string]json.RawMessage)
		}
		for k, v := range raw {
			m.customTypography[k] = v
		}
	case KindMotion:
		if !merge {
			m.customMotion = make(map[string]json.RawMessage)
		}
		for k, v := range raw {
			m.customMotion[k] = v
		}
	default:
		return 0, errors.NewValidationError(errors.ErrCodeValidationFailed,
			fmt.Sprintf("cannot import token kind %q", kind))
	}

	return len(raw), nil
}

// CustomKeys lists the imported override keys per family, sorted.
func (m *Manager) CustomKeys() map[Kind][]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	colors := make([]string, 0, len(m.customColors))
	for k := range m.customColors {
		colors = append(colors, k)
	}
	sort.Strings(colors)

	return map[Kind][]string{
		KindColors:     colors,
		KindTypography: sortedKeys(m.customTypography),
		KindMotion:     sortedKeys(m.customMotion),
	}
}

// Clear drops imported overrides of kind, or of every family for KindAll.
func (m *Manager) Clear(kind Kind) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if kind == KindColors || kind == KindAll {
		m.customColors = make(map[string]Palette)
	}
	if kind == KindTypography || kind == KindAll {
		m.customTypography = make(map[string]json.RawMessage)
	}
	if kind == KindMotion || kind == KindAll {
		m.customMotion = make(map[string]json.RawMessage)
	}
}

func (m *Manager) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.NewInternalError(errors.ErrCodeInternalError, "encoding tokens", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := m.fs.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapIO(err, errors.ErrCodeWriteFailed, "creating token directory", dir)
		}
	}
	if err := afero.WriteFile(m.fs, path, data, 0o644); err != nil {
		return errors.WrapIO(err, errors.ErrCodeWriteFailed, "writing tokens", path)
	}
	return nil
}

func (m *Manager) readJSON(path string) (map[string]json.RawMessage, error) {
	data, err := afero.ReadFile(m.fs, path)
	if err != nil {
		return nil, errors.WrapIO(err, errors.ErrCodeReadFailed, "reading tokens", path)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapValidation(err, errors.ErrCodeValidationFailed, "token file must be a JSON object")
	}
	return raw, nil
}

func decodePalettes(raw map[string]json.RawMessage) (map[string]Palette, error) {
	out := make(map[string]Palette, len(raw))
	for k, v := range raw {
		if k == customKey {
			continue
		}
		var p Palette
		if err := json.Unmarshal(v, &p); err != nil {
			return nil, fmt.Errorf("palette %q: %w", k, err)
		}
		if len(p.Primary) == 0 {
			return nil, fmt.Errorf("palette %q has no primary colors", k)
		}
		out[k] = p
	}

	// Overrides carried under "custom" win over plain entries.
	if v, ok := raw[customKey]; ok {
		var nested map[string]Palette
		if err := json.Unmarshal(v, &nested); err != nil {
			return nil, fmt.Errorf("custom palettes: %w", err)
		}
		for k, p := range nested {
			out[k] = p
		}
	}

	return out, nil
}

func toMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeInternalError, "encoding tokens", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeInternalError, "decoding tokens", err)
	}
	return out, nil
}

func copyPalettes(in map[string]Palette) map[string]Palette {
	out := make(map[string]Palette, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyRaw(in map[string]json.RawMessage) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
