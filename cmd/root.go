// Package cmd implements the reelsmith command line.
//
// Configuration is resolved from, highest priority first:
//  1. command-line flags (--workspace, --log-level, per-command flags)
//  2. REELSMITH_* environment variables (REELSMITH_VIDEO_FPS, REELSMITH_MCP_TRANSPORT)
//  3. the file named by --config or REELSMITH_CONFIG_FILE
//  4. .reelsmith.yml in the current directory
//  5. built-in defaults
package cmd

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/conneroisu/reelsmith/internal/config"
	"github.com/conneroisu/reelsmith/internal/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "REELSMITH"

// rootOptions carries the global flags and the environment built from them
// before any subcommand runs.
type rootOptions struct {
	cfgFile   string
	logFormat string

	v   *viper.Viper
	fs  afero.Fs
	env *appEnv
}

// Execute runs the command line until it completes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the full command tree on the host filesystem.
func NewRootCommand() *cobra.Command {
	return newRootCommand(afero.NewOsFs())
}

func newRootCommand(fs afero.Fs) *cobra.Command {
	opts := &rootOptions{v: viper.New(), fs: fs}

	root := &cobra.Command{
		Use:   "reelsmith",
		Short: "Generate Remotion video projects from scene descriptions",
		Long: `Reelsmith turns a list of scenes into a ready-to-render Remotion project.

Scenes are YAML or JSON documents naming components from the built-in
catalog (title scenes, lower thirds, charts, code blocks, layouts) with
their timing and configuration. Reelsmith renders one component file per
type with the selected theme, assembles the composition and keeps the
project scaffold up to date.

Quick Start:
  reelsmith init launch_video --theme tech     Create a project with a starter scenes.yaml
  reelsmith build launch_video                 Render components and the composition
  reelsmith preview launch_video               Rebuild on save with a live storyboard
  reelsmith serve                              Expose the catalog and builder over MCP

Configuration is read from .reelsmith.yml and REELSMITH_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.cfgFile, "config", "", "config file (default is .reelsmith.yml, can also use REELSMITH_CONFIG_FILE)")
	pf.StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&opts.logFormat, "log-format", "text", "log format (text, json)")
	pf.StringP("workspace", "w", config.DefaultWorkspaceDir, "directory holding the projects")
	_ = opts.v.BindPFlag("log-level", pf.Lookup("log-level"))
	_ = opts.v.BindPFlag("workspace.dir", pf.Lookup("workspace"))

	root.AddCommand(
		newInitCommand(opts),
		newBuildCommand(opts),
		newValidateCommand(opts),
		newComponentsCommand(opts),
		newThemesCommand(opts),
		newTokensCommand(opts),
		newProjectsCommand(opts),
		newServeCommand(opts),
		newPreviewCommand(opts),
		newWatchCommand(opts),
		newVersionCommand(),
	)

	return root
}

// load reads the configuration sources and builds the command environment.
func (o *rootOptions) load(cmd *cobra.Command) error {
	v := o.v
	config.SetDefaults(v)

	switch {
	case o.cfgFile != "":
		v.SetConfigFile(o.cfgFile)
	case os.Getenv(EnvPrefix+"_CONFIG_FILE") != "":
		v.SetConfigFile(os.Getenv(EnvPrefix + "_CONFIG_FILE"))
	default:
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".reelsmith")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrors.As(err, &notFound) {
			return errors.WrapConfig(err, errors.ErrCodeConfigInvalid, "reading config file")
		}
	}

	cfg, err := config.LoadFrom(v)
	if err != nil {
		return errors.WrapConfig(err, errors.ErrCodeConfigInvalid, "loading configuration")
	}

	env, err := newAppEnv(o.fs, cfg, o.logFormat, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if used := v.ConfigFileUsed(); used != "" {
		env.logger.Debug(cmd.Context(), "Using config file", "path", used)
	}
	o.env = env

	return nil
}
