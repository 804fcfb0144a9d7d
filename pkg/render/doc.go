// Package render holds the output backends for search results.
//
// # Overview
//
//   - [svg]: the hand-placed canvas with CSS-keyframe animation
//   - [nodelink]: Graphviz DOT export and neato-rendered SVG
//
// [ToPDF] and [ToPNG] convert any SVG produced by either backend using the
// external rsvg-convert tool (from librsvg):
//
//	pdf, err := render.ToPDF(ctx, svgBytes)
//	png, err := render.ToPNG(ctx, svgBytes, 2.0)
//
// [svg]: github.com/matzehuels/pathviz/pkg/render/svg
// [nodelink]: github.com/matzehuels/pathviz/pkg/render/nodelink
package render
