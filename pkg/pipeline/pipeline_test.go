package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/strukto/strukto/pkg/cache"
	"github.com/strukto/strukto/pkg/errors"
	"github.com/strukto/strukto/pkg/layout"
)

const testDocument = `{
  "name": "Demo",
  "methods": [
    {
      "name": "run",
      "returnType": "void",
      "visibility": "public",
      "controlTree": {
        "kind": "sequence",
        "children": [
          {"kind": "statement", "text": "int i = 0;"},
          {
            "kind": "loop",
            "loopKind": "while",
            "condition": "i < 10",
            "children": [{"kind": "statement", "text": "i = i + 1;"}]
          }
        ]
      }
    }
  ]
}`

const twoMethodDocument = `{
  "methods": [
    {"name": "a", "controlTree": {"kind": "statement", "text": "x();"}},
    {"name": "b", "controlTree": {"kind": "statement", "text": "y();"}}
  ]
}`

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}

	if opts.Theme != DefaultTheme {
		t.Errorf("Theme = %q, want %q", opts.Theme, DefaultTheme)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.PNGScale != DefaultPNGScale {
		t.Errorf("PNGScale = %v, want %v", opts.PNGScale, DefaultPNGScale)
	}
	if opts.Logger == nil {
		t.Error("Logger not defaulted")
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantCode errors.Code
	}{
		{
			name:     "invalid format",
			opts:     Options{Formats: []string{"gif"}},
			wantCode: errors.ErrCodeInvalidFormat,
		},
		{
			name:     "invalid theme",
			opts:     Options{Theme: "sepia"},
			wantCode: errors.ErrCodeInvalidTheme,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("ValidateAndSetDefaults() should fail")
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error code = %q, want %q", errors.GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) error = %v", f, err)
		}
	}
	if err := ValidateFormat("bmp"); err == nil {
		t.Error("ValidateFormat(bmp) should fail")
	}
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)

	result, err := runner.Execute(ctx, []byte(testDocument), Options{
		Formats: []string{FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.Document == nil || len(result.Document.Methods) != 1 {
		t.Fatal("parsed document missing")
	}
	if result.Diagram == nil || result.Diagram.Title != "public void run()" {
		t.Errorf("Diagram.Title = %v", result.Diagram)
	}
	if result.DocHash == "" {
		t.Error("DocHash not set")
	}

	svg, ok := result.Artifacts[FormatSVG]
	if !ok || !strings.Contains(string(svg), "<svg") {
		t.Error("svg artifact missing or malformed")
	}

	var d layout.Diagram
	if err := json.Unmarshal(result.Artifacts[FormatJSON], &d); err != nil {
		t.Errorf("json artifact does not decode: %v", err)
	}
	if d.Root == nil || d.Root.Kind != layout.KindSequence {
		t.Errorf("json artifact root = %+v", d.Root)
	}
}

func TestRunnerExecuteErrors(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)

	tests := []struct {
		name     string
		raw      string
		opts     Options
		wantCode errors.Code
	}{
		{
			name:     "malformed document",
			raw:      "{broken",
			wantCode: errors.ErrCodeInvalidDocument,
		},
		{
			name:     "no methods",
			raw:      `{"methods": []}`,
			wantCode: errors.ErrCodeInvalidDocument,
		},
		{
			name:     "unknown method",
			raw:      testDocument,
			opts:     Options{Method: "missing"},
			wantCode: errors.ErrCodeMethodNotFound,
		},
		{
			name:     "ambiguous method",
			raw:      twoMethodDocument,
			wantCode: errors.ErrCodeMethodNotFound,
		},
		{
			name:     "method without control tree",
			raw:      `{"methods": [{"name": "empty"}]}`,
			wantCode: errors.ErrCodeInvalidDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runner.Execute(ctx, []byte(tt.raw), tt.opts)
			if err == nil {
				t.Fatal("Execute() should fail")
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error code = %q, want %q", errors.GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestRunnerExecuteCaching(t *testing.T) {
	ctx := context.Background()
	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(store, nil, nil)

	opts := Options{Formats: []string{FormatSVG}}

	first, err := runner.Execute(ctx, []byte(testDocument), opts)
	if err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should not hit the cache")
	}

	second, err := runner.Execute(ctx, []byte(testDocument), Options{Formats: []string{FormatSVG}})
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run should hit the layout cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs from computed one")
	}
}

func TestRunnerExecuteExplicitMethodSharesCache(t *testing.T) {
	// Naming the single method and letting it default must produce the
	// same cache keys.
	ctx := context.Background()
	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(store, nil, nil)

	if _, err := runner.Execute(ctx, []byte(testDocument), Options{Formats: []string{FormatSVG}}); err != nil {
		t.Fatal(err)
	}
	result, err := runner.Execute(ctx, []byte(testDocument), Options{Method: "run", Formats: []string{FormatSVG}})
	if err != nil {
		t.Fatal(err)
	}
	if !result.CacheInfo.LayoutHit {
		t.Error("explicit method name should reuse the defaulted run's cache entry")
	}
}

func TestRunnerExecuteCustomMeasurerSkipsCache(t *testing.T) {
	ctx := context.Background()
	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(store, nil, nil)

	wide := func(s string) float64 { return float64(len(s)) * 20 }

	if _, err := runner.Execute(ctx, []byte(testDocument), Options{Measurer: wide}); err != nil {
		t.Fatal(err)
	}
	result, err := runner.Execute(ctx, []byte(testDocument), Options{Measurer: wide})
	if err != nil {
		t.Fatal(err)
	}
	if result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Error("custom measurer results must not be cached")
	}
}
