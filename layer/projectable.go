package layer

import "github.com/gopix/pixed/graph"

// Projectable is the renderable-container abstraction a parent visual
// stack exposes (e.g. a whole image). Drawable graphs plug into a
// parent-supplied output proxy conforming to this shape; this core only
// consumes the interface and never implements the projection itself.
//
// Implementations emit update(x, y, w, h) when content changes,
// flush(previewInvalidated) when buffered changes should reach the
// display, and structureChanged() when the stack's composition changes.
type Projectable interface {
	// Size returns the container's pixel dimensions.
	Size() (width, height int)

	// Graph returns the container's compositing graph as a node a
	// drawable's item graph input can be wired to.
	Graph() graph.Node

	// InvalidatePreview drops any cached preview representation.
	InvalidatePreview()
}
