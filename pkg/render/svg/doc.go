// Package svg draws weighted graphs and search progress as standalone SVG.
//
// A [Canvas] is the rendering surface for a query: the graph is drawn once
// with [Canvas.Draw], and node states ("visited", "path") are added with
// [Canvas.Mark]. States accumulate and repeated marks are no-ops, so a node on
// the shortest path carries both classes.
//
// Canvas satisfies search.Marker, so it can be passed straight to the engine:
//
//	c := svg.NewCanvas()
//	c.Draw(g.Nodes(), g.Edges())
//	res, _ := search.New(g, search.WithMarker(c)).ShortestPath(ctx, "A", "E")
//	for _, st := range res.Animation {
//	    c.Mark(st.Node, st.State)
//	}
//	out := c.Bytes()
//
// # Animation
//
// SVG files cannot run timers, so [WithTimeline] turns an anim.Schedule into
// CSS animations: each step becomes an animation on its node's circle whose
// delay equals the step offset. A browser then replays the search exactly as
// the schedule describes, without any script.
//
// # Geometry
//
// Nodes are circles of radius 20 centered on their position, with the id
// drawn at y+4. Edge weights sit at the edge midpoint, shifted by any
// per-edge offset given with [WithLabelOffset].
package svg
