// Package pkg provides the core libraries for Strukto structogram generation.
//
// # Overview
//
// Strukto turns control-flow trees of parsed methods into Nassi–Shneiderman
// structograms: nested box diagrams where sequences stack vertically, branches
// split the row with diagonal headers, and loops frame their bodies. The pkg
// directory is organized into these areas:
//
//  1. [controlflow] - Input model (documents, methods, control-flow trees)
//  2. [layout] - Geometry computation (text normalization, box solving)
//  3. [render] - SVG output, themes, and PDF/PNG conversion
//  4. [pipeline] - Orchestration (parse → layout → render, with caching)
//  5. [cache] - Content-addressed caching (file, Redis, null backends)
//  6. [errors] - Coded errors shared by the CLI and the HTTP API
//  7. [observability] - Optional instrumentation hooks
//
// # Architecture
//
// The typical data flow through Strukto:
//
//	JSON document (methods + control trees)
//	         ↓
//	    [controlflow] package (parse, select method)
//	         ↓
//	    [layout] package (measure text, solve geometry)
//	         ↓
//	    [render] package (SVG, themes, PDF/PNG)
//	         ↓
//	    SVG/PDF/PNG/JSON output
//
// # Quick Start
//
// Run the whole pipeline through [pipeline.Runner]:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, raw, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG},
//	})
//
// Or use the stages directly:
//
//	doc, err := controlflow.ParseDocument(raw)
//	d := layout.NewBuilder(nil).BuildMethod(&doc.Methods[0])
//	svg := render.RenderSVG(d)
package pkg
