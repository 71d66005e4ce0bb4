package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(v *viper.Viper)
		expectError bool
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:  "defaults",
			setup: func(v *viper.Viper) {},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultWorkspaceDir, cfg.Workspace.Dir)
				assert.Equal(t, 30, cfg.Video.FPS)
				assert.Equal(t, 1920, cfg.Video.Width)
				assert.Equal(t, 1080, cfg.Video.Height)
				assert.Equal(t, "tech", cfg.Video.Theme)
				assert.Equal(t, DefaultWorkers, cfg.Build.Workers)
				assert.Equal(t, "stdio", cfg.MCP.Transport)
				assert.Equal(t, DefaultDebounce, cfg.Watch.Debounce)
			},
		},
		{
			name: "overrides",
			setup: func(v *viper.Viper) {
				v.Set("video.fps", 60)
				v.Set("video.theme", "gaming")
				v.Set("mcp.transport", "http")
				v.Set("watch.debounce", "1s")
				v.Set("workspace.dir", "videos")
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 60, cfg.Video.FPS)
				assert.Equal(t, "gaming", cfg.Video.Theme)
				assert.Equal(t, "http", cfg.MCP.Transport)
				assert.Equal(t, time.Second, cfg.Watch.Debounce)
				assert.Equal(t, "videos", cfg.Workspace.Dir)
			},
		},
		{
			name: "unparseable fps",
			setup: func(v *viper.Viper) {
				v.Set("video.fps", "fast")
			},
			expectError: true,
		},
		{
			name: "unknown transport",
			setup: func(v *viper.Viper) {
				v.Set("mcp.transport", "carrier-pigeon")
			},
			expectError: true,
		},
		{
			name: "workspace traversal",
			setup: func(v *viper.Viper) {
				v.Set("workspace.dir", "../elsewhere")
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			tt.setup(v)

			cfg, err := LoadFrom(v)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadUsesGlobalViper(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("video.width", 1280)
	viper.Set("video.height", 720)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1280, cfg.Video.Width)
	assert.Equal(t, 720, cfg.Video.Height)
}

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	assert.Equal(t, DefaultScenesFile, v.GetString("build.scenes"))
	assert.Equal(t, DefaultPreviewPort, v.GetInt("preview.port"))

	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidateVideoConfig(t *testing.T) {
	testCases := []struct {
		name    string
		video   VideoConfig
		wantErr string
	}{
		{"valid", VideoConfig{FPS: 30, Width: 1920, Height: 1080, Theme: "tech"}, ""},
		{"zero fps", VideoConfig{FPS: 0, Width: 1920, Height: 1080, Theme: "tech"}, "fps"},
		{"huge width", VideoConfig{FPS: 30, Width: 10000, Height: 1080, Theme: "tech"}, "width"},
		{"tiny height", VideoConfig{FPS: 30, Width: 1920, Height: 4, Theme: "tech"}, "height"},
		{"bad theme key", VideoConfig{FPS: 30, Width: 1920, Height: 1080, Theme: "Tech Theme"}, "theme"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateVideoConfig(&tc.video)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tc.wantErr))
		})
	}
}
