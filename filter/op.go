// Package filter provides the filter operations driven by the preview
// engine. An operation transforms pixels inside a bounds rectangle; it
// never blends with existing destination content and never writes
// outside the bounds.
package filter

import "github.com/gopix/pixed"

// Op is a filter operation pluggable into a graph filter node.
//
// Apply reads src and writes the transformed pixels for bounds into dst.
// src and dst share one local coordinate space and equal dimensions; src
// is guaranteed to hold valid content for at least ExpandBounds(bounds)
// clipped to the buffer.
type Op interface {
	// Name identifies the operation, e.g. for undo descriptions.
	Name() string

	// ExpandBounds returns the input region required to compute output
	// for bounds. Point operations return bounds unchanged; area
	// operations (blurs) grow it by their support radius.
	ExpandBounds(bounds pixed.Region) pixed.Region

	// Apply computes output pixels for bounds.
	Apply(src, dst *pixed.Buffer, bounds pixed.Region)
}

// clipBounds restricts bounds to the area both buffers cover.
func clipBounds(src, dst *pixed.Buffer, bounds pixed.Region) (pixed.Region, bool) {
	b, ok := bounds.Intersect(src.Bounds())
	if !ok {
		return pixed.Region{}, false
	}
	return b.Intersect(dst.Bounds())
}
