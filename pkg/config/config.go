// Package config loads the optional TOML configuration file.
//
// The file lives at $XDG_CONFIG_HOME/midimap/config.toml (falling back to
// ~/.config/midimap/config.toml) unless a path is given explicitly:
//
//	names_file = "/data/HxMIDI/MIDI-Names.json"
//	router_key = "Router"
//	formats    = ["png", "svg"]
//	kinds      = ["diagram", "matrix"]
//	cache_url  = "redis://localhost:6379/0"
//	serve_addr = "localhost:8080"
//
//	[diagram]
//	width  = 1000
//	height = 1200
//
//	[matrix]
//	width  = 400
//	height = 400
//
// Command-line flags override the file; the file overrides built-in defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/hxmidi/midimap/pkg/errors"
	pkgio "github.com/hxmidi/midimap/pkg/io"
	"github.com/hxmidi/midimap/pkg/pipeline"
	"github.com/hxmidi/midimap/pkg/render/matrix"
	"github.com/hxmidi/midimap/pkg/render/nodelink"
)

const (
	// AppName names the configuration directory.
	AppName = "midimap"

	// FileName is the configuration file name inside Dir.
	FileName = "config.toml"

	// NamesFileName is the default names file inside Dir.
	NamesFileName = "MIDI-Names.json"

	// DefaultServeAddr is where "midimap serve" listens.
	DefaultServeAddr = "localhost:8080"
)

// Config is the decoded configuration file.
type Config struct {
	NamesFile string        `toml:"names_file"`
	RouterKey string        `toml:"router_key"`
	Formats   []string      `toml:"formats"`
	Kinds     []string      `toml:"kinds"`
	Diagram   pipeline.Size `toml:"diagram"`
	Matrix    pipeline.Size `toml:"matrix"`

	// CacheURL selects a Redis server for rendered images; empty keeps them
	// on disk under the user cache directory.
	CacheURL  string `toml:"cache_url"`
	ServeAddr string `toml:"serve_addr"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`

	// Unknown lists keys present in the file that no field consumed.
	Unknown []string `toml:"-"`
}

// Default returns the built-in configuration. NamesFile is left empty and
// resolved by NamesPath.
func Default() Config {
	return Config{
		RouterKey: pkgio.DefaultRouterKey,
		Formats:   []string{pipeline.FormatPNG},
		Kinds:     []string{pipeline.KindDiagram, pipeline.KindMatrix},
		Diagram:   pipeline.Size{Width: nodelink.DefaultWidth, Height: nodelink.DefaultHeight},
		Matrix:    pipeline.Size{Width: matrix.DefaultWidth, Height: matrix.DefaultHeight},
		ServeAddr: DefaultServeAddr,
	}
}

// Dir returns the configuration directory using the XDG standard
// (~/.config/midimap/).
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// DefaultPath returns the location of the configuration file.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the configuration at path over the defaults. With an empty path
// the default location is tried and a missing file yields Default(); an
// explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			if explicit {
				return Default(), errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
			}
			return Default(), nil
		}
		return Default(), errors.Wrap(errors.ErrCodeInvalidFormat, err, "config file %s", path)
	}
	cfg.Path = path
	for _, k := range md.Undecoded() {
		cfg.Unknown = append(cfg.Unknown, k.String())
	}

	if err := cfg.Validate(); err != nil {
		return Default(), errors.Wrap(errors.ErrCodeInvalidInput, err, "config file %s", path)
	}
	return cfg, nil
}

// Validate checks the formats, kinds and frame sizes.
func (c Config) Validate() error {
	if err := pipeline.ValidateFormats(c.Formats); err != nil {
		return err
	}
	if err := pipeline.ValidateKinds(c.Kinds); err != nil {
		return err
	}
	for name, s := range map[string]pipeline.Size{"diagram": c.Diagram, "matrix": c.Matrix} {
		if s.Width < 0 || s.Height < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "%s size %dx%d must not be negative", name, s.Width, s.Height)
		}
	}
	if c.CacheURL != "" && !strings.HasPrefix(c.CacheURL, "redis://") && !strings.HasPrefix(c.CacheURL, "rediss://") {
		return errors.New(errors.ErrCodeInvalidInput, "cache_url %q must be a redis:// or rediss:// URL", c.CacheURL)
	}
	return nil
}

// NamesPath returns the names file to use: NamesFile when set, otherwise
// MIDI-Names.json in Dir.
func (c Config) NamesPath() string {
	if c.NamesFile != "" {
		return c.NamesFile
	}
	dir, err := Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, NamesFileName)
}

// Apply fills the unset fields of opts from the configuration.
func (c Config) Apply(opts *pipeline.Options) {
	if opts.NamesPath == "" {
		opts.NamesPath = c.NamesPath()
	}
	if opts.RouterKey == "" {
		opts.RouterKey = c.RouterKey
	}
	if len(opts.Formats) == 0 {
		opts.Formats = c.Formats
	}
	if len(opts.Kinds) == 0 {
		opts.Kinds = c.Kinds
	}
	if opts.Diagram == (pipeline.Size{}) {
		opts.Diagram = c.Diagram
	}
	if opts.Matrix == (pipeline.Size{}) {
		opts.Matrix = c.Matrix
	}
}
