package cli

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hxmidi/midimap/pkg/buildinfo"
	"github.com/hxmidi/midimap/pkg/cache"
	"github.com/hxmidi/midimap/pkg/config"
	"github.com/hxmidi/midimap/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "midimap draws the routing of a 15-port MIDI router",
		Long: `midimap reads a MIDI router's saved routing table and draws it as a
node-link diagram and as an adjacency matrix, labeled with the device names
from a names file.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/midimap/config.toml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration file selected by --config.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}
	for _, k := range cfg.Unknown {
		c.Logger.Warn("unknown config key", "key", k, "path", cfg.Path)
	}
	c.cfg = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// cacheConnectTimeout bounds the initial PING of a Redis cache.
const cacheConnectTimeout = 3 * time.Second

// artifactCache opens the artifact cache: Redis when the config names one,
// otherwise the user cache directory. Failures only disable caching.
func (c *CLI) artifactCache() cache.Cache {
	dir, err := cache.Dir(appName)
	if err != nil && c.cfg.CacheURL == "" {
		c.Logger.Debug("no cache directory", "err", err)
		return cache.NewNullCache()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cacheConnectTimeout)
	defer cancel()
	cc, err := cache.Open(ctx, c.cfg.CacheURL, dir)
	if err != nil {
		c.Logger.Warn("cache unavailable, rendering everything", "err", err)
		return cache.NewNullCache()
	}
	return cc
}

// =============================================================================
// Options Helpers
// =============================================================================

// inputFlags are the flags shared by every command that reads a router file.
type inputFlags struct {
	names string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.names, "names", "n", "", "names file (default from config, then $XDG_CONFIG_HOME/midimap/MIDI-Names.json)")
	_ = cmd.MarkFlagFilename("names", "json")
	cmd.ValidArgsFunction = completeRouterFile
}

// outputFlags are the flags shared by render and watch.
type outputFlags struct {
	output  string
	formats string
	kinds   string
	noCache bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output base path (default: router file path without extension)")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): png (default), svg (comma-separated)")
	cmd.Flags().StringVarP(&f.kinds, "type", "t", "", "artifact type(s): diagram, matrix (default both, comma-separated)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "always re-render instead of reusing cached images")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	_ = cmd.RegisterFlagCompletionFunc("type", completeKinds)
}

// pipelineOptions builds run options from flags, falling back to the config.
func (c *CLI) pipelineOptions(routerPath string, in inputFlags, out outputFlags) (pipeline.Options, error) {
	opts := pipeline.Options{
		RouterPath: routerPath,
		NamesPath:  in.names,
		Formats:    parseList(out.formats),
		Kinds:      parseList(out.kinds),
	}
	if !out.noCache {
		opts.Cache = c.artifactCache()
	}
	c.cfg.Apply(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// parseList splits a comma-separated flag value, dropping blanks.
func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
