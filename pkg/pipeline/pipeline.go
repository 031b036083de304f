// Package pipeline runs the load → decode → resolve → project → render flow
// that turns a router file into diagram and matrix images.
//
// # Stages
//
//  1. Load: read the router list (fatal on failure) and the names file
//     (any failure degrades to an empty table and no order).
//  2. Decode: turn router entries into a mapping; bad entries are skipped
//     and reported as warnings.
//  3. Project: the node-link layout over the resolved display order, and the
//     matrix layout restricted to the names file's order.
//  4. Render: one [Artifact] per requested kind and format. A failure is
//     recorded on its artifact and does not affect the others.
//
// Writing is a separate step so callers can inspect artifacts first:
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Run(ctx, pipeline.Options{
//	    RouterPath: "studio.json",
//	    NamesPath:  "MIDI-Names.json",
//	})
//	if err != nil {
//	    return err // router file unusable
//	}
//	base, _ := pipeline.BasePath("studio.json", "")
//	err = result.Write(base) // studio_diagram.png, studio_matrix.png
package pipeline

import (
	"fmt"
	"time"

	"github.com/hxmidi/midimap/pkg/cache"
	pkgio "github.com/hxmidi/midimap/pkg/io"
	"github.com/hxmidi/midimap/pkg/names"
	"github.com/hxmidi/midimap/pkg/order"
	"github.com/hxmidi/midimap/pkg/router"
)

// Artifact kinds.
const (
	KindDiagram = "diagram"
	KindMatrix  = "matrix"
)

// Output formats. The matrix view has no SVG form.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// TitlePrefix precedes the router name in the diagram title.
const TitlePrefix = "MIDI Mappings: "

// ValidKinds is the set of supported artifact kinds.
var ValidKinds = map[string]bool{
	KindDiagram: true,
	KindMatrix:  true,
}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG: true,
	FormatSVG: true,
}

// Size is a frame size in pixels. Zero fields select the renderer's default.
type Size struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Options configures a run.
type Options struct {
	RouterPath string
	RouterKey  string // default pkgio.DefaultRouterKey
	NamesPath  string // empty means no names file

	Kinds   []string // default: diagram and matrix
	Formats []string // default: png

	Diagram Size
	Matrix  Size

	// Cache stores rendered artifacts across runs; nil disables caching.
	Cache cache.Cache

	validated bool
}

// Artifact is one rendered output. Exactly one of Data and Err is set after
// a run; Path is set once the artifact has been written.
type Artifact struct {
	Kind     string
	Format   string
	Data     []byte
	Err      error
	Path     string
	Duration time.Duration
	Cached   bool // served from the cache instead of rendered
}

// Name returns "<kind>.<format>".
func (a *Artifact) Name() string { return a.Kind + "." + a.Format }

// OK reports whether the artifact rendered.
func (a *Artifact) OK() bool { return a.Err == nil && a.Data != nil }

// Result contains the outputs of a run.
type Result struct {
	// Name is the router file's base name without extension.
	Name string

	// Digest identifies the contents of the router and names files.
	Digest string

	Mapping router.Mapping
	Names   names.Table
	Order   order.Spec
	Display order.Display

	// Warnings collects every non-fatal problem in the order it was met.
	Warnings []string

	Artifacts []*Artifact
	Stats     Stats
}

// Stats contains counts and timings of a run.
type Stats struct {
	Inputs     int // decoded router inputs
	Edges      int // connections in the mapping
	Drawn      int // connections kept by the node-link view
	Suppressed int // connections hidden because an endpoint is unnamed
	LoadTime   time.Duration
	RenderTime time.Duration
}

// Artifact returns the artifact of the given kind and format, if requested.
func (r *Result) Artifact(kind, format string) (*Artifact, bool) {
	for _, a := range r.Artifacts {
		if a.Kind == kind && a.Format == format {
			return a, true
		}
	}
	return nil, false
}

// Title returns the diagram title for this run.
func (r *Result) Title() string { return TitlePrefix + r.Name }

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: png, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateKind checks that an artifact kind is valid.
func ValidateKind(kind string) error {
	if !ValidKinds[kind] {
		return fmt.Errorf("invalid kind: %q (must be one of: diagram, matrix)", kind)
	}
	return nil
}

// ValidateKinds checks that all artifact kinds are valid.
func ValidateKinds(kinds []string) error {
	for _, k := range kinds {
		if err := ValidateKind(k); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.RouterPath == "" {
		return fmt.Errorf("router path is required")
	}
	if o.RouterKey == "" {
		o.RouterKey = pkgio.DefaultRouterKey
	}
	if len(o.Kinds) == 0 {
		o.Kinds = []string{KindDiagram, KindMatrix}
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if err := ValidateKinds(o.Kinds); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Cache == nil {
		o.Cache = cache.NewNullCache()
	}
	o.validated = true
	return nil
}
