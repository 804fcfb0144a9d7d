// Package nodelink renders search results as Graphviz node-link diagrams.
//
// # Overview
//
// The SVG canvas in package svg reproduces the fixed hand-placed drawing. This
// package is the alternative for users who want Graphviz to style the
// diagram: it emits an undirected DOT graph with weight labels, colors visited
// nodes, and draws the shortest path in bold.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Path: res.Path, Visited: res.Visited})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Layout
//
// With Options.Pinned the node positions from the graph literal are passed
// as fixed neato coordinates (pos="x,y!"), so the Graphviz output matches the
// canvas geometry. Without it neato places nodes freely.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
