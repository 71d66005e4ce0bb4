package cmd

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/conneroisu/reelsmith/internal/build"
	"github.com/conneroisu/reelsmith/internal/config"
	"github.com/conneroisu/reelsmith/internal/errors"
	"github.com/conneroisu/reelsmith/internal/logging"
	"github.com/conneroisu/reelsmith/internal/project"
	"github.com/conneroisu/reelsmith/internal/registry"
	"github.com/conneroisu/reelsmith/internal/scene"
	"github.com/conneroisu/reelsmith/internal/theme"
	"github.com/conneroisu/reelsmith/internal/tokens"
	"github.com/spf13/afero"
)

const (
	renderCacheSize = 8 << 20
	renderCacheTTL  = time.Hour
)

// appEnv is the set of services a command works with.
type appEnv struct {
	cfg    *config.Config
	logger logging.Logger
	fs     afero.Fs

	registry *registry.Registry
	themes   *theme.Manager
	tokens   *tokens.Manager
	projects *project.Manager
}

func newAppEnv(fs afero.Fs, cfg *config.Config, logFormat string, logOut io.Writer) (*appEnv, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.WrapConfig(err, errors.ErrCodeConfigInvalid, "parsing log level")
	}
	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:  level,
		Format: logFormat,
		Output: logOut,
	})

	reg := registry.NewDefault()
	themes := theme.NewManager(fs)
	projects, err := project.NewManager(fs, cfg.Workspace.Dir,
		project.WithRegistry(reg),
		project.WithThemes(themes),
		project.WithWorkers(cfg.Build.Workers),
		project.WithCache(build.NewCache(renderCacheSize, renderCacheTTL)),
		project.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	return &appEnv{
		cfg:      cfg,
		logger:   logger,
		fs:       fs,
		registry: reg,
		themes:   themes,
		tokens:   tokens.NewManager(fs),
		projects: projects,
	}, nil
}

// scenesPath returns the scenes file of project name: override when set,
// otherwise the configured file name inside the project directory.
func (e *appEnv) scenesPath(name, override string) string {
	if override != "" {
		return override
	}
	return filepath.Join(e.projects.Path(name), e.cfg.Build.Scenes)
}

// loadScenes reads and decodes the scenes document at path.
func (e *appEnv) loadScenes(path string) (*scene.Document, error) {
	data, err := afero.ReadFile(e.fs, path)
	if err != nil {
		return nil, errors.WrapIO(err, errors.ErrCodeReadFailed, "reading scenes file", path)
	}
	doc, err := scene.DecodeBytes(data)
	if err != nil {
		if re, ok := err.(*errors.ReelError); ok {
			return nil, re.WithPath(path)
		}
		return nil, err
	}
	return doc, nil
}

// buildProject builds name from the scenes file at path.
func (e *appEnv) buildProject(ctx context.Context, name, path, themeOverride string) (*project.Result, error) {
	doc, err := e.loadScenes(path)
	if err != nil {
		return nil, err
	}
	if themeOverride != "" {
		doc.Theme = themeOverride
	}
	return e.projects.BuildDocument(ctx, name, doc)
}
