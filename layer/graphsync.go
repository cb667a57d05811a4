package layer

import (
	"github.com/gopix/pixed"
	"github.com/gopix/pixed/graph"
)

// SourceGraph returns the drawable's source graph, building it on first
// use. The graph exposes the backing buffer as a composable node; while
// an overlay is attached, the overlay's content is blended in by an
// internal crop/translate/compose triple.
//
// Building the graph on a drawable without a backing buffer is a
// programmer error.
func (d *Drawable) SourceGraph() *graph.Graph {
	if d.sourceGraph != nil {
		return d.sourceGraph
	}
	if d.buffer == nil {
		panic("pixed/layer: SourceGraph requires a backing buffer")
	}
	d.sourceGraph = graph.New()
	d.bufferSource = graph.NewSource(d.buffer)
	d.syncSourceGraph(false)
	return d.sourceGraph
}

// syncSourceGraph re-derives the source graph topology from the current
// drawable state. The desired topology is recomputed wholesale and the
// output swapped; edges are never patched piecemeal.
//
//	overlay bound, detachOverlay=false: source -> (overlay triple) -> out
//	otherwise:                          source -> out
//
// With detachOverlay=true the overlay triple is torn down even though
// the overlay reference is still set; DetachOverlay uses this to unwire
// before clearing the binding.
func (d *Drawable) syncSourceGraph(detachOverlay bool) {
	if d.sourceGraph == nil {
		return
	}
	ov := d.overlay

	if ov != nil && !detachOverlay {
		if d.fsCrop == nil {
			d.fsCrop = graph.NewCrop(ov.SourceGraph(), pixed.Region{})
			d.fsTranslate = graph.NewTranslate(d.fsCrop, 0, 0)
			d.fsMode = graph.NewCompose(d.bufferSource, d.fsTranslate, ov.Mode(), ov.Opacity())
		}

		// The overlay is cropped to exactly the target's footprint in
		// overlay-local coordinates, then translated into target-local
		// space.
		ox, oy := ov.Offset()
		d.fsCrop.SetRect(pixed.Rect(d.offsetX-ox, d.offsetY-oy, d.Width(), d.Height()))
		d.fsTranslate.SetOffset(ox-d.offsetX, oy-d.offsetY)
		d.fsMode.SetMode(ov.Mode())
		opacity := ov.Opacity()
		if !ov.Visible() {
			opacity = 0
		}
		d.fsMode.SetOpacity(opacity)

		d.sourceGraph.SetOutput(d.fsMode)
		pixed.Logger().Debug("source graph synced with overlay",
			"drawable", d.name, "overlay", ov.Name())
		return
	}

	if d.fsCrop != nil {
		d.fsCrop = nil
		d.fsTranslate = nil
		d.fsMode = nil
	}
	d.sourceGraph.SetOutput(d.bufferSource)
	pixed.Logger().Debug("source graph synced direct", "drawable", d.name)
}

// ItemGraph returns the drawable's externally visible graph, building it
// on first use: an input proxy for the composite below, a mode node
// blending this drawable's source output over it, and the output. While
// the drawable is invisible the mode node is bypassed entirely, so
// hidden content contributes nothing and the blend is not evaluated.
func (d *Drawable) ItemGraph() *graph.Graph {
	if d.itemGraph != nil {
		return d.itemGraph
	}
	d.itemGraph = graph.New()
	d.itemInput = graph.NewProxy(nil)
	d.modeNode = graph.NewCompose(d.itemInput, d.SourceGraph(), pixed.BlendNormal, 1)
	d.wireVisibility()
	return d.itemGraph
}

// ItemInput returns the item graph's input proxy, which a parent stack
// wires the underlying composite into.
func (d *Drawable) ItemInput() *graph.Proxy {
	d.ItemGraph()
	return d.itemInput
}

// Visible reports whether the drawable contributes to its ancestors'
// composite.
func (d *Drawable) Visible() bool { return d.visible }

// SetVisible toggles visibility, rewiring the item graph bypass and
// flagging the whole drawable dirty.
func (d *Drawable) SetVisible(v bool) {
	if d.visible == v {
		return
	}
	d.visible = v
	d.wireVisibility()
	d.Update(d.Bounds())
}

// wireVisibility applies the visibility bypass to the item graph.
func (d *Drawable) wireVisibility() {
	if d.itemGraph == nil {
		return
	}
	if d.visible {
		d.itemGraph.SetOutput(d.modeNode)
	} else {
		d.itemGraph.SetOutput(d.itemInput)
	}
}
