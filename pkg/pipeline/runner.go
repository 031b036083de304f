package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hxmidi/midimap/pkg/buildinfo"
	"github.com/hxmidi/midimap/pkg/cache"
	"github.com/hxmidi/midimap/pkg/errors"
	"github.com/hxmidi/midimap/pkg/layout"
	"github.com/hxmidi/midimap/pkg/observability"
	"github.com/hxmidi/midimap/pkg/order"
	"github.com/hxmidi/midimap/pkg/slot"
)

// Runner executes the pipeline. It holds no per-run state, so one Runner
// may serve repeated runs (the watch loop reuses it).
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger selects log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Run loads the inputs and renders every requested artifact.
//
// Only an unusable router file (or invalid options) makes Run fail. Every
// other problem is recorded in Result.Warnings or on the affected Artifact.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	res, err := r.Load(ctx, &opts)
	if err != nil {
		return nil, err
	}

	renderStart := time.Now()
	for _, kind := range opts.Kinds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch kind {
		case KindDiagram:
			r.renderDiagrams(ctx, opts, res)
		case KindMatrix:
			r.renderMatrices(ctx, opts, res)
		}
	}
	res.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"artifacts", len(res.Artifacts),
		"duration", res.Stats.RenderTime)
	return res, nil
}

// Load validates opts, reads the router and names files, decodes the
// mapping and resolves the display order. Nothing is rendered.
func (r *Runner) Load(ctx context.Context, opts *Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Name: RouterName(opts.RouterPath)}
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, res.Name)

	start := time.Now()
	if err := r.loadMapping(*opts, res); err != nil {
		hooks.OnLoadComplete(ctx, res.Name, 0, time.Since(start), err)
		return nil, err
	}
	r.loadNames(*opts, res)
	res.Display = order.Resolve(res.Order, slot.All())

	digest, err := cache.HashFiles(opts.RouterPath, opts.NamesPath)
	if err != nil {
		r.Logger.Debug("inputs not hashed, cache disabled for this run", "err", err)
	}
	if digest != "" {
		res.Digest = cache.Hash([]byte(digest + ":" + opts.RouterKey))
	}

	res.Stats.LoadTime = time.Since(start)
	res.Stats.Inputs = res.Mapping.Len()
	res.Stats.Edges = res.Mapping.EdgeCount()
	hooks.OnLoadComplete(ctx, res.Name, res.Stats.Inputs, res.Stats.LoadTime, nil)

	r.Logger.Info("loaded router",
		"name", res.Name,
		"inputs", res.Stats.Inputs,
		"connections", res.Stats.Edges,
		"named", res.Names.NamedCount(),
		"duration", res.Stats.LoadTime)
	return res, nil
}

func (r *Runner) renderDiagrams(ctx context.Context, opts Options, res *Result) {
	l := layout.NodeLink(res.Mapping, res.Display, res.Names)
	res.Stats.Drawn = len(l.Edges)
	res.Stats.Suppressed = l.Suppressed
	if l.Suppressed > 0 {
		r.Logger.Debug("hid connections with unnamed endpoints", "count", l.Suppressed)
	}

	for _, format := range opts.Formats {
		r.produce(ctx, opts, res, KindDiagram, format, opts.Diagram, func() ([]byte, error) {
			return renderDiagram(l, format, res.Title(), opts.Diagram)
		})
	}
}

func (r *Runner) renderMatrices(ctx context.Context, opts Options, res *Result) {
	l, err := layout.Matrix(res.Mapping, res.Order, res.Names)
	if err != nil {
		r.Logger.Warn("matrix skipped", "reason", errors.UserMessage(err))
		res.warnf("matrix: %s", errors.UserMessage(err))
		for _, format := range opts.Formats {
			if !hasRenderer(KindMatrix, format) {
				continue
			}
			res.Artifacts = append(res.Artifacts, &Artifact{Kind: KindMatrix, Format: format, Err: err})
		}
		return
	}

	for _, format := range opts.Formats {
		r.produce(ctx, opts, res, KindMatrix, format, opts.Matrix, func() ([]byte, error) {
			return renderMatrix(l, format, res.Name, opts.Matrix)
		})
	}
}

// produce renders one artifact, or takes it from the cache, and records the
// outcome on res. Cache failures only cost a re-render.
func (r *Runner) produce(ctx context.Context, opts Options, res *Result, kind, format string, size Size, render func() ([]byte, error)) {
	if !hasRenderer(kind, format) {
		r.Logger.Debug("no renderer", "artifact", kind+"."+format)
		return
	}
	a := &Artifact{Kind: kind, Format: format}
	key := artifactKey(res, kind, format, size)

	if key != "" {
		data, ok, err := opts.Cache.Get(ctx, key)
		switch {
		case err != nil:
			r.Logger.Debug("cache read failed", "artifact", a.Name(), "err", err)
		case ok:
			observability.Cache().OnCacheHit(ctx, a.Name())
			a.Data, a.Cached = data, true
			r.Logger.Debug("cached", "artifact", a.Name(), "bytes", len(data))
			res.Artifacts = append(res.Artifacts, a)
			return
		default:
			observability.Cache().OnCacheMiss(ctx, a.Name())
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, a.Name())
	start := time.Now()
	data, err := render()
	a.Duration = time.Since(start)
	hooks.OnRenderComplete(ctx, a.Name(), len(data), a.Duration, err)

	switch {
	case stderrors.Is(err, errSkipFormat):
		r.Logger.Debug("no renderer", "artifact", a.Name())
		return
	case err != nil:
		a.Err = renderFailed(a, err)
		r.Logger.Error("render failed", "artifact", a.Name(), "err", err)
		res.warnf("%s", errors.UserMessage(a.Err))
	default:
		a.Data = data
		r.Logger.Debug("rendered", "artifact", a.Name(), "bytes", len(data), "duration", a.Duration)
		if key != "" {
			if err := opts.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
				r.Logger.Debug("cache write failed", "artifact", a.Name(), "err", err)
			} else {
				observability.Cache().OnCacheSet(ctx, a.Name(), len(data))
			}
		}
	}
	res.Artifacts = append(res.Artifacts, a)
}

// artifactKey returns the cache key of an artifact, or "" when the inputs
// could not be hashed.
func artifactKey(res *Result, kind, format string, size Size) string {
	if res.Digest == "" {
		return ""
	}
	return cache.ArtifactKey(res.Digest, cache.ArtifactOpts{
		Kind:    kind,
		Format:  format,
		Width:   size.Width,
		Height:  size.Height,
		Title:   res.Title(),
		Version: buildinfo.Version,
	})
}

// String summarizes the run for logs.
func (s Stats) String() string {
	return fmt.Sprintf("%d inputs, %d connections (%d drawn, %d hidden)", s.Inputs, s.Edges, s.Drawn, s.Suppressed)
}
