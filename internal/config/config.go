// Package config provides configuration management for reelsmith using
// Viper for loading from files, environment variables, and command-line
// flags.
//
// Settings cover the project workspace, default video parameters, the
// render pool, the MCP transport, the preview server, and the scene
// watcher. Environment variables use the REELSMITH_ prefix with dots
// replaced by underscores (REELSMITH_VIDEO_FPS, REELSMITH_MCP_TRANSPORT).
package config

import (
	"fmt"
	"regexp"
	"time"

	"github.com/conneroisu/reelsmith/internal/validation"
	"github.com/spf13/viper"
)

type Config struct {
	Workspace WorkspaceConfig `mapstructure:"workspace" yaml:"workspace"`
	Video     VideoConfig     `mapstructure:"video" yaml:"video"`
	Build     BuildConfig     `mapstructure:"build" yaml:"build"`
	MCP       MCPConfig       `mapstructure:"mcp" yaml:"mcp"`
	Preview   PreviewConfig   `mapstructure:"preview" yaml:"preview"`
	Watch     WatchConfig     `mapstructure:"watch" yaml:"watch"`
	LogLevel  string          `mapstructure:"log-level" yaml:"log-level"`
}

type WorkspaceConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

type VideoConfig struct {
	FPS         int    `mapstructure:"fps" yaml:"fps"`
	Width       int    `mapstructure:"width" yaml:"width"`
	Height      int    `mapstructure:"height" yaml:"height"`
	Theme       string `mapstructure:"theme" yaml:"theme"`
	Transparent bool   `mapstructure:"transparent" yaml:"transparent"`
}

type BuildConfig struct {
	Workers int    `mapstructure:"workers" yaml:"workers"`
	Scenes  string `mapstructure:"scenes" yaml:"scenes"`
}

type MCPConfig struct {
	Transport string `mapstructure:"transport" yaml:"transport"`
	Addr      string `mapstructure:"addr" yaml:"addr"`
}

type PreviewConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

const (
	DefaultWorkspaceDir = "remotion-projects"
	DefaultFPS          = 30
	DefaultWidth        = 1920
	DefaultHeight       = 1080
	DefaultTheme        = "tech"
	DefaultWorkers      = 4
	DefaultScenesFile   = "scenes.yaml"
	DefaultTransport    = "stdio"
	DefaultMCPAddr      = ":8090"
	DefaultPreviewHost  = "localhost"
	DefaultPreviewPort  = 8091
	DefaultDebounce     = 300 * time.Millisecond
)

// SetDefaults registers default values on v so that IsSet-independent
// lookups see them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("workspace.dir", DefaultWorkspaceDir)
	v.SetDefault("video.fps", DefaultFPS)
	v.SetDefault("video.width", DefaultWidth)
	v.SetDefault("video.height", DefaultHeight)
	v.SetDefault("video.theme", DefaultTheme)
	v.SetDefault("video.transparent", false)
	v.SetDefault("build.workers", DefaultWorkers)
	v.SetDefault("build.scenes", DefaultScenesFile)
	v.SetDefault("mcp.transport", DefaultTransport)
	v.SetDefault("mcp.addr", DefaultMCPAddr)
	v.SetDefault("preview.host", DefaultPreviewHost)
	v.SetDefault("preview.port", DefaultPreviewPort)
	v.SetDefault("watch.debounce", DefaultDebounce)
	v.SetDefault("log-level", "info")
}

// Load reads the global viper instance into a validated Config.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads v into a validated Config, filling zero values with defaults.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	applyDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration used when no file or environment is present.
func Default() *Config {
	config := &Config{}
	applyDefaults(config)
	return config
}

func applyDefaults(config *Config) {
	if config.Workspace.Dir == "" {
		config.Workspace.Dir = DefaultWorkspaceDir
	}
	if config.Video.FPS == 0 {
		config.Video.FPS = DefaultFPS
	}
	if config.Video.Width == 0 {
		config.Video.Width = DefaultWidth
	}
	if config.Video.Height == 0 {
		config.Video.Height = DefaultHeight
	}
	if config.Video.Theme == "" {
		config.Video.Theme = DefaultTheme
	}
	if config.Build.Workers == 0 {
		config.Build.Workers = DefaultWorkers
	}
	if config.Build.Scenes == "" {
		config.Build.Scenes = DefaultScenesFile
	}
	if config.MCP.Transport == "" {
		config.MCP.Transport = DefaultTransport
	}
	if config.MCP.Addr == "" {
		config.MCP.Addr = DefaultMCPAddr
	}
	if config.Preview.Host == "" {
		config.Preview.Host = DefaultPreviewHost
	}
	if config.Preview.Port == 0 {
		config.Preview.Port = DefaultPreviewPort
	}
	if config.Watch.Debounce == 0 {
		config.Watch.Debounce = DefaultDebounce
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
}

// validateConfig validates configuration values for correctness
func validateConfig(config *Config) error {
	if err := validateWorkspaceConfig(&config.Workspace); err != nil {
		return fmt.Errorf("workspace config: %w", err)
	}

	if err := validateVideoConfig(&config.Video); err != nil {
		return fmt.Errorf("video config: %w", err)
	}

	if config.Build.Workers < 1 || config.Build.Workers > 64 {
		return fmt.Errorf("build config: workers %d is not in range 1-64", config.Build.Workers)
	}

	if err := validateMCPConfig(&config.MCP); err != nil {
		return fmt.Errorf("mcp config: %w", err)
	}

	if config.Preview.Port < 0 || config.Preview.Port > 65535 {
		return fmt.Errorf("preview config: port %d is not in valid range 0-65535", config.Preview.Port)
	}

	if config.Watch.Debounce < 0 {
		return fmt.Errorf("watch config: debounce must not be negative")
	}

	return nil
}

func validateWorkspaceConfig(config *WorkspaceConfig) error {
	if validation.HasTraversal(config.Dir) {
		return fmt.Errorf("dir contains path traversal: %s", config.Dir)
	}
	return nil
}

var themeKeyPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

func validateVideoConfig(config *VideoConfig) error {
	if config.FPS < 1 || config.FPS > 240 {
		return fmt.Errorf("fps %d is not in range 1-240", config.FPS)
	}
	if config.Width < 16 || config.Width > 7680 {
		return fmt.Errorf("width %d is not in range 16-7680", config.Width)
	}
	if config.Height < 16 || config.Height > 4320 {
		return fmt.Errorf("height %d is not in range 16-4320", config.Height)
	}
	if !themeKeyPattern.MatchString(config.Theme) {
		return fmt.Errorf("theme key %q must be lowercase letters, digits, or underscores", config.Theme)
	}

	return nil
}

func validateMCPConfig(config *MCPConfig) error {
	switch config.Transport {
	case "stdio", "http":
	default:
		return fmt.Errorf("transport %q must be stdio or http", config.Transport)
	}

	return nil
}
