// Package render turns automata into pictures.
//
// # Overview
//
// The [nodelink] subpackage produces Graphviz DOT source for an automaton
// and renders it to SVG in-process. This package holds the format
// conversions shared by every renderer:
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [ToPDF] and [ToPNG] use the external rsvg-convert tool (from librsvg).
// [Available] reports whether it is installed.
//
// [nodelink]: github.com/matzehuels/dfamin/pkg/render/nodelink
package render
