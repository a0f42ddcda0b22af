package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/strukto/strukto/pkg/cache"
	"github.com/strukto/strukto/pkg/controlflow"
	"github.com/strukto/strukto/pkg/errors"
	"github.com/strukto/strukto/pkg/layout"
	"github.com/strukto/strukto/pkg/observability"
	"github.com/strukto/strukto/pkg/render"
)

// cacheTTL is how long cached layouts and artifacts live.
const cacheTTL = 24 * time.Hour

// Runner executes pipeline stages with caching support.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses the default SHA-256 keyer.
func NewRunner(c cache.Cache, k cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if k == nil {
		k = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: k, Logger: logger}
}

// Parse decodes a raw document.
func (r *Runner) Parse(raw []byte) (*controlflow.Document, error) {
	doc, err := controlflow.ParseDocument(raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "parse document")
	}
	if len(doc.Methods) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "document contains no methods")
	}
	return doc, nil
}

// ResolveMethod selects the method to lay out. An empty name picks the
// single method of a one-method document.
func (r *Runner) ResolveMethod(doc *controlflow.Document, name string) (*controlflow.Method, error) {
	if name == "" {
		if len(doc.Methods) == 1 {
			return &doc.Methods[0], nil
		}
		return nil, errors.New(errors.ErrCodeMethodNotFound,
			"document has %d methods, select one with --method", len(doc.Methods))
	}
	m, ok := doc.Method(name)
	if !ok {
		return nil, errors.New(errors.ErrCodeMethodNotFound, "no method %q in document", name)
	}
	return m, nil
}

// Layout computes the layout for one method, consulting the cache.
// Returns the diagram and whether it came from cache.
func (r *Runner) Layout(ctx context.Context, docHash string, method *controlflow.Method, opts *Options) (*layout.Diagram, bool, error) {
	key := r.Keyer.LayoutKey(docHash, opts.LayoutKeyOpts())

	if opts.Cacheable() {
		if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
			var d layout.Diagram
			if err := json.Unmarshal(data, &d); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return &d, true, nil
			}
			// Corrupt entry, recompute and overwrite.
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	b := layout.NewBuilder(opts.Measurer)
	d := b.BuildMethod(method)
	if d == nil {
		return nil, false, errors.New(errors.ErrCodeInvalidDocument,
			"method %q has no control-flow tree", method.Name)
	}

	if opts.Cacheable() {
		if data, err := json.Marshal(d); err == nil {
			if err := r.Cache.Set(ctx, key, data, cacheTTL); err != nil {
				r.Logger.Debug("cache set failed", "key", key, "error", err)
			} else {
				observability.Cache().OnCacheSet(ctx, "layout", len(data))
			}
		}
	}
	return d, false, nil
}

// Render produces the requested artifacts for a diagram, consulting the
// cache per format. The second return is true when every artifact came
// from cache.
func (r *Runner) Render(ctx context.Context, docHash string, d *layout.Diagram, opts *Options) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	allHit := true

	var theme render.Theme
	if opts.ThemeValue != nil {
		theme = *opts.ThemeValue
	} else {
		t, err := render.ThemeByName(opts.Theme)
		if err != nil {
			return nil, false, errors.Wrap(errors.ErrCodeInvalidTheme, err, "resolve theme")
		}
		theme = t
	}

	svgOpts := []render.SVGOption{render.WithTheme(theme)}
	if opts.Measurer != nil {
		svgOpts = append(svgOpts, render.WithMeasurer(opts.Measurer))
	}

	var svg []byte // rendered at most once, shared by png and pdf
	renderSVG := func() []byte {
		if svg == nil {
			svg = render.RenderSVG(d, svgOpts...)
		}
		return svg
	}

	for _, format := range opts.Formats {
		cacheable := opts.Cacheable() && (format != FormatPNG || opts.PNGScale == DefaultPNGScale)
		key := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))

		if cacheable {
			if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		allHit = false

		var data []byte
		var err error
		switch format {
		case FormatJSON:
			data, err = json.MarshalIndent(d, "", "  ")
		case FormatSVG:
			data = renderSVG()
		case FormatPNG:
			data, err = render.ToPNG(renderSVG(), opts.PNGScale)
		case FormatPDF:
			data, err = render.ToPDF(renderSVG())
		default:
			return nil, false, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
		}
		if err != nil {
			return nil, false, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
		}
		artifacts[format] = data

		if cacheable {
			if err := r.Cache.Set(ctx, key, data, cacheTTL); err != nil {
				r.Logger.Debug("cache set failed", "key", key, "error", err)
			} else {
				observability.Cache().OnCacheSet(ctx, "artifact", len(data))
			}
		}
	}
	return artifacts, allHit, nil
}

// Execute runs the complete pipeline on a raw document.
func (r *Runner) Execute(ctx context.Context, raw []byte, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{DocHash: cache.Hash(raw)}

	start := time.Now()
	observability.Pipeline().OnParseStart(ctx)
	doc, err := r.Parse(raw)
	if err != nil {
		observability.Pipeline().OnParseComplete(ctx, 0, time.Since(start), err)
		return nil, err
	}
	observability.Pipeline().OnParseComplete(ctx, len(doc.Methods), time.Since(start), nil)
	result.Document = doc
	result.Stats.MethodCount = len(doc.Methods)
	result.Stats.ParseTime = time.Since(start)
	r.Logger.Debug("parsed document",
		"methods", len(doc.Methods), "duration", result.Stats.ParseTime)

	method, err := r.ResolveMethod(doc, opts.Method)
	if err != nil {
		return nil, err
	}
	// Pin the resolved name so cache keys stay stable whether the
	// caller named the method or let it default.
	opts.Method = method.Name

	start = time.Now()
	observability.Pipeline().OnLayoutStart(ctx, method.Name)
	diagram, layoutHit, err := r.Layout(ctx, result.DocHash, method, &opts)
	observability.Pipeline().OnLayoutComplete(ctx, method.Name, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	result.Diagram = diagram
	result.CacheInfo.LayoutHit = layoutHit
	result.Stats.LayoutTime = time.Since(start)
	r.Logger.Debug("computed layout",
		"method", method.Name, "cached", layoutHit, "duration", result.Stats.LayoutTime)

	start = time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.Render(ctx, result.DocHash, diagram, &opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit
	result.Stats.RenderTime = time.Since(start)
	r.Logger.Debug("rendered artifacts",
		"formats", opts.Formats, "cached", renderHit, "duration", result.Stats.RenderTime)

	return result, nil
}
