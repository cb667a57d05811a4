// Package graph implements the small compositing node graph that exposes
// a drawable's pixels as a composable visual output. Nodes form a pull
// pipeline: asking a node to render a region recursively renders its
// inputs.
//
// The graph is deliberately tiny: buffer source, crop, translate,
// blend/mode compose, filter, and write-buffer sink are the only node
// kinds. Topology changes are made by swapping a Graph's output node,
// never by patching edges in place.
package graph

import "github.com/gopix/pixed"

// Node is one element of a compositing graph.
//
// Render returns a FormatRGBA8 buffer of exactly r's dimensions whose
// (0,0) pixel corresponds to r's top-left corner in graph space. Pixels
// the node has no content for are transparent.
type Node interface {
	// Extent returns the region of graph space the node produces
	// content for.
	Extent() pixed.Region

	// Render computes the node's output for the given region.
	Render(r pixed.Region) *pixed.Buffer
}

// newOutput allocates the transparent result buffer for a render call.
func newOutput(r pixed.Region) *pixed.Buffer {
	return pixed.NewBuffer(pixed.FormatRGBA8, r.Width, r.Height)
}

// renderOrBlank renders n for r, or returns a transparent buffer when n
// is nil.
func renderOrBlank(n Node, r pixed.Region) *pixed.Buffer {
	if n == nil {
		return newOutput(r)
	}
	return n.Render(r)
}
