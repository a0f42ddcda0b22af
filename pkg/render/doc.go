// Package render turns computed structogram layouts into visual output.
//
// # Overview
//
// This package contains the rendering half of the pipeline. It provides:
//
//   - SVG generation from a layout diagram ([RenderSVG])
//   - Color themes, built-in and loadable from TOML ([Theme], [LoadThemeFile])
//   - Generic format conversion (SVG to PDF/PNG)
//
// # SVG Generation
//
// [RenderSVG] walks the diagram tree and emits one SVG element group per
// layout node: rectangles for statement rows, diagonal polygons for branch
// headers, L-shaped loop frames, and so on. Geometry comes entirely from the
// layout package; this package only decides colors, strokes, and text
// placement.
//
//	d := layout.NewBuilder(nil).BuildMethod(method)
//	svg := render.RenderSVG(d, render.WithTheme(theme))
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
package render
