// Package search finds shortest paths in a [graph.Graph] with Dijkstra's
// algorithm and reports the order in which nodes were finalized.
//
// # Algorithm
//
// The frontier starts as every node id. Each iteration takes the frontier node
// with the smallest tentative distance, finalizes it, and relaxes its edges to
// nodes that are not finalized yet. The search stops as soon as the end node is
// finalized. Selection is a linear scan; the graphs this package targets are
// small enough that an indexed priority queue would only add noise.
//
// # Tie-Breaking
//
// The frontier is scanned in node declaration order and the first node that
// attains the minimum distance wins. Visit order is therefore a pure function
// of the graph literal and the query.
//
// # Unreachable Targets
//
// A query whose end cannot be reached is not an error. The reconstructed path
// degenerates to a single element that is not the start; [Result.Found]
// reports that case and [Result.Distance] is +Inf.
//
// # Visual Side Effects
//
// A [Marker] passed with [WithMarker] is told about every finalized node
// immediately, in visit order. Path highlighting is not performed by the
// engine: [Result.Animation] carries the deferred steps, spaced by the
// engine's interval, for a harness to play.
package search
