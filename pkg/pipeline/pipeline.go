// Package pipeline provides the core structogram pipeline for strukto.
//
// This package implements the complete parse → layout → render flow
// shared by the CLI and the HTTP API, so both entry points behave
// identically and cache each other's work.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: decode the document emitted by the external source parser
//  2. Layout: build the structogram layout tree for one method
//  3. Render: produce output artifacts (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete
// pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Method:  "main",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, docJSON, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/strukto/strukto/pkg/cache"
	"github.com/strukto/strukto/pkg/controlflow"
	"github.com/strukto/strukto/pkg/errors"
	"github.com/strukto/strukto/pkg/layout"
	"github.com/strukto/strukto/pkg/render"
)

// DefaultTheme is the default visual theme.
const DefaultTheme = "light"

// DefaultPNGScale is the raster scale factor for PNG export.
const DefaultPNGScale = 2.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// Options contains all configuration for the structogram pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Method selects the method to lay out. Empty selects the only
	// method of a single-method document.
	Method string `json:"method,omitempty"`

	// Layout options
	Theme string `json:"theme,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	PNGScale float64  `json:"png_scale,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger     `json:"-"`
	Measurer layout.Measurer `json:"-"`
	// ThemeValue overrides Theme with an explicit theme, e.g. one
	// loaded from a TOML file. Renders using it are not cached.
	ThemeValue *render.Theme `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the parsed input.
	Document *controlflow.Document

	// DocHash is the content hash of the raw document, used in cache
	// keys.
	DocHash string

	// Diagram is the computed layout.
	Diagram *layout.Diagram

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	MethodCount int
	ParseTime   time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json)", format)
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

// ValidateTheme checks that a theme name is valid.
func ValidateTheme(theme string) error {
	if _, err := render.ThemeByName(theme); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidTheme, err, "invalid theme %q", theme)
	}
	return nil
}

// ValidateAndSetDefaults checks fields and applies defaults for the
// full pipeline. Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.ThemeValue == nil {
		if err := ValidateTheme(o.Theme); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Cacheable reports whether results under these options may be cached.
// A caller-supplied theme value or measurer has no stable cache key.
func (o *Options) Cacheable() bool {
	return o.ThemeValue == nil && o.Measurer == nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Method: o.Method}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Method: o.Method,
		Format: format,
		Theme:  o.Theme,
	}
}
