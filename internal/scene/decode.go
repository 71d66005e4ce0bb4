package scene

import (
	"bytes"
	"fmt"
	"io"

	"github.com/conneroisu/reelsmith/internal/errors"
	"gopkg.in/yaml.v3"
)

// Document is a decoded scenes file. Files are either a bare list of
// scenes or a mapping with a scenes list plus optional video settings.
type Document struct {
	Theme       string `yaml:"theme,omitempty"`
	FPS         int    `yaml:"fps,omitempty"`
	Width       int    `yaml:"width,omitempty"`
	Height      int    `yaml:"height,omitempty"`
	Transparent bool   `yaml:"transparent,omitempty"`
	Scenes      []any  `yaml:"scenes"`
}

// Decode reads a YAML or JSON scenes document.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewIOError(errors.ErrCodeReadFailed, "reading scenes", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes decodes a YAML or JSON scenes document held in memory.
func DecodeBytes(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidScene, "scenes document is empty")
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.WrapValidation(err, errors.ErrCodeInvalidScene, "scenes document is not valid YAML or JSON")
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidScene, "scenes document is empty")
	}

	doc := &Document{}
	body := root.Content[0]
	switch body.Kind {
	case yaml.SequenceNode:
		if err := body.Decode(&doc.Scenes); err != nil {
			return nil, errors.WrapValidation(err, errors.ErrCodeInvalidScene, "decoding scene list")
		}
	case yaml.MappingNode:
		if err := body.Decode(doc); err != nil {
			return nil, errors.WrapValidation(err, errors.ErrCodeInvalidScene, "decoding scenes document")
		}
	default:
		return nil, errors.NewValidationError(
			errors.ErrCodeInvalidScene,
			fmt.Sprintf("scenes document must be a list or mapping, got %s", kindName(body.Kind)),
		)
	}

	return doc, nil
}

// Nodes parses the document's scenes against slots.
func (d *Document) Nodes(slots *SlotRegistry) ([]*Node, error) {
	return ParseScenes(d.Scenes, slots)
}

// Options returns composition options for the settings the document sets.
func (d *Document) Options() []Option {
	var opts []Option
	if d.FPS > 0 {
		opts = append(opts, WithFPS(d.FPS))
	}
	if d.Width > 0 && d.Height > 0 {
		opts = append(opts, WithSize(d.Width, d.Height))
	}
	if d.Theme != "" {
		opts = append(opts, WithTheme(d.Theme))
	}
	if d.Transparent {
		opts = append(opts, WithTransparent(true))
	}
	return opts
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.ScalarNode:
		return "a scalar"
	case yaml.AliasNode:
		return "an alias"
	case yaml.DocumentNode:
		return "a document"
	default:
		return "an unknown node"
	}
}
