// Package layer implements Drawable, the editable pixel-bearing entity,
// together with its compositing graph and the floating-overlay binding.
package layer

import (
	"github.com/gopix/pixed"
	"github.com/gopix/pixed/graph"
	"github.com/gopix/pixed/internal/blend"
)

// handler is a registered callback with a stable identity so it can be
// removed without comparing functions.
type handler[T any] struct {
	id int
	fn T
}

// Drawable is an editable pixel-bearing entity: exactly one backing
// buffer, an offset in the parent coordinate space, a visibility flag,
// and lazily built compositing graphs. At most one floating overlay may
// be attached at a time.
//
// A Drawable is not safe for concurrent use; the whole pipeline runs on
// one logical thread.
type Drawable struct {
	name     string
	buffer   *pixed.Buffer
	offsetX  int
	offsetY  int
	visible  bool
	attached bool

	selection pixed.Selection
	undoSink  pixed.UndoSink

	shadow *pixed.Buffer

	// Source graph: buffer source plus the floating-overlay triple.
	sourceGraph  *graph.Graph
	bufferSource *graph.Source
	fsCrop       *graph.Crop
	fsTranslate  *graph.Translate
	fsMode       *graph.Compose

	// Item graph: input proxy -> mode node -> output, with the
	// visibility bypass.
	itemGraph *graph.Graph
	itemInput *graph.Proxy
	modeNode  *graph.Compose

	overlay      *Overlay
	overlayUnsub func()

	updateHandlers []handler[func(pixed.Region)]
	alphaHandlers  []handler[func()]
	nextHandlerID  int
}

// New creates a drawable with a freshly allocated buffer of the given
// format and size, positioned at the origin, visible, and detached.
func New(name string, format pixed.Format, width, height int) *Drawable {
	return NewFromBuffer(name, pixed.NewBuffer(format, width, height), 0, 0)
}

// NewFromBuffer creates a drawable owning buf, positioned at
// (offsetX, offsetY) in parent space.
func NewFromBuffer(name string, buf *pixed.Buffer, offsetX, offsetY int) *Drawable {
	if buf == nil {
		panic("pixed/layer: NewFromBuffer with nil buffer")
	}
	return &Drawable{
		name:    name,
		buffer:  buf,
		offsetX: offsetX,
		offsetY: offsetY,
		visible: true,
	}
}

// Name returns the drawable's name.
func (d *Drawable) Name() string { return d.name }

// Width returns the buffer width in pixels.
func (d *Drawable) Width() int { return d.buffer.Width() }

// Height returns the buffer height in pixels.
func (d *Drawable) Height() int { return d.buffer.Height() }

// Bounds returns the drawable's extent in its local coordinate space.
func (d *Drawable) Bounds() pixed.Region {
	return pixed.Rect(0, 0, d.Width(), d.Height())
}

// Offset returns the drawable's position in parent coordinate space.
func (d *Drawable) Offset() (x, y int) { return d.offsetX, d.offsetY }

// SetOffset moves the drawable in parent space. The source graph is
// resynced so an attached overlay stays aligned.
func (d *Drawable) SetOffset(x, y int) {
	if x == d.offsetX && y == d.offsetY {
		return
	}
	d.offsetX, d.offsetY = x, y
	d.syncSourceGraph(false)
}

// Attach marks the drawable as part of a container. Edits that record
// undo or mutate pixels through the preview pipeline require attachment.
func (d *Drawable) Attach() { d.attached = true }

// Detach marks the drawable as removed from its container and frees the
// shadow buffer. Pending previews degrade to no-ops afterwards.
func (d *Drawable) Detach() {
	d.attached = false
	d.FreeShadow()
}

// IsAttached reports whether the drawable belongs to a container.
func (d *Drawable) IsAttached() bool { return d.attached }

// Buffer returns the backing pixel buffer.
func (d *Drawable) Buffer() *pixed.Buffer { return d.buffer }

// SetBuffer replaces the backing buffer, keeping the current offset.
func (d *Drawable) SetBuffer(buf *pixed.Buffer) {
	d.SetBufferWithOffset(buf, d.offsetX, d.offsetY)
}

// SetBufferWithOffset replaces the backing buffer and moves the drawable
// to (offsetX, offsetY). The drawable's dimensions follow the buffer.
// Update notifications cover the old extent (when geometry changes) and
// the new extent; an alpha-changed notification fires when the format's
// alpha support differs.
func (d *Drawable) SetBufferWithOffset(buf *pixed.Buffer, offsetX, offsetY int) {
	if buf == nil {
		panic("pixed/layer: SetBuffer with nil buffer")
	}
	oldHasAlpha := d.buffer.Format().HasAlpha()
	geometryChanged := buf.Width() != d.Width() || buf.Height() != d.Height() ||
		offsetX != d.offsetX || offsetY != d.offsetY
	if geometryChanged {
		d.Update(d.Bounds())
	}

	d.buffer = buf
	d.offsetX = offsetX
	d.offsetY = offsetY

	if oldHasAlpha != buf.Format().HasAlpha() {
		d.alphaChanged()
	}
	if d.bufferSource != nil {
		d.bufferSource.SetBuffer(buf)
	}
	d.syncSourceGraph(false)
	d.Update(d.Bounds())
}

// Update flags a region of the drawable dirty, notifying all registered
// update handlers (redraw, preview-cache invalidation).
func (d *Drawable) Update(r pixed.Region) {
	for _, h := range d.updateHandlers {
		h.fn(r)
	}
}

// OnUpdate registers a handler for region-dirty notifications and
// returns a function that removes it.
func (d *Drawable) OnUpdate(fn func(pixed.Region)) (remove func()) {
	d.nextHandlerID++
	id := d.nextHandlerID
	d.updateHandlers = append(d.updateHandlers, handler[func(pixed.Region)]{id: id, fn: fn})
	return func() {
		for i, h := range d.updateHandlers {
			if h.id == id {
				d.updateHandlers = append(d.updateHandlers[:i], d.updateHandlers[i+1:]...)
				return
			}
		}
	}
}

// OnAlphaChanged registers a handler fired when a buffer swap changes
// transparency support, and returns a removal function.
func (d *Drawable) OnAlphaChanged(fn func()) (remove func()) {
	d.nextHandlerID++
	id := d.nextHandlerID
	d.alphaHandlers = append(d.alphaHandlers, handler[func()]{id: id, fn: fn})
	return func() {
		for i, h := range d.alphaHandlers {
			if h.id == id {
				d.alphaHandlers = append(d.alphaHandlers[:i], d.alphaHandlers[i+1:]...)
				return
			}
		}
	}
}

func (d *Drawable) alphaChanged() {
	for _, h := range d.alphaHandlers {
		h.fn()
	}
}

// Fill sets every pixel to a solid color and flags the whole drawable
// dirty.
func (d *Drawable) Fill(c pixed.RGBA) {
	if !d.buffer.Format().HasAlpha() {
		c.A = 1
	}
	d.buffer.Fill(d.Bounds(), c)
	d.Update(d.Bounds())
}

// FillPattern tiles a pattern across the drawable and flags it dirty.
func (d *Drawable) FillPattern(pattern *pixed.Buffer) {
	d.buffer.FillPattern(d.Bounds(), pattern)
	d.Update(d.Bounds())
}

// PixelAt samples the backing buffer. ok is false outside the drawable.
func (d *Drawable) PixelAt(x, y int) (pixed.RGBA, bool) {
	return d.buffer.PixelAt(x, y)
}

// Selection returns the active selection mask, or nil when none is set.
func (d *Drawable) Selection() pixed.Selection { return d.selection }

// SetSelection installs the selection mask provider.
func (d *Drawable) SetSelection(s pixed.Selection) { d.selection = s }

// UndoSink returns the installed undo sink, or nil.
func (d *Drawable) UndoSink() pixed.UndoSink { return d.undoSink }

// SetUndoSink installs the undo sink receiving committed edits.
func (d *Drawable) SetUndoSink(s pixed.UndoSink) { d.undoSink = s }

// MaskIntersect returns the drawable bounds restricted to the active
// selection's bounding box. ok is false when the intersection is empty,
// meaning no pixels may be edited. Without a selection (or with an empty
// one) the whole drawable is editable.
func (d *Drawable) MaskIntersect() (pixed.Region, bool) {
	if d.selection == nil || d.selection.IsEmpty() {
		return d.Bounds(), true
	}
	return d.Bounds().Intersect(d.selection.Bounds())
}

// PushUndo hands a snapshot of pre-edit pixels to the undo sink. A nil
// snapshot captures the current content of region r instead. Pushing an
// empty or fully out-of-bounds region is reported as a warning and
// skipped. Calling PushUndo on a detached drawable is a programmer
// error.
func (d *Drawable) PushUndo(desc string, snapshot *pixed.Buffer, r pixed.Region) {
	if !d.attached {
		panic("pixed/layer: PushUndo on a detached drawable")
	}
	if snapshot == nil {
		clipped, ok := r.Intersect(d.Bounds())
		if !ok {
			pixed.Logger().Warn("tried to push empty undo region",
				"drawable", d.name, "region", r)
			return
		}
		snapshot = pixed.NewBuffer(d.buffer.Format(), clipped.Width, clipped.Height)
		snapshot.Copy(0, 0, d.buffer, clipped)
		r = clipped
	}
	if d.undoSink == nil {
		return
	}
	err := d.undoSink.Push(pixed.UndoRecord{
		Description: desc,
		Snapshot:    snapshot,
		Anchor:      r,
	})
	if err != nil {
		pixed.Logger().Warn("undo sink rejected record",
			"drawable", d.name, "desc", desc, "error", err)
	}
}

// ShadowBuffer returns the drawable's shadow buffer, the write
// destination for incremental filter output. It is allocated lazily at
// the drawable's size and reallocated if the size changed since the last
// use.
func (d *Drawable) ShadowBuffer() *pixed.Buffer {
	if d.shadow == nil ||
		d.shadow.Width() != d.Width() || d.shadow.Height() != d.Height() {
		d.shadow = pixed.NewBuffer(d.buffer.Format(), d.Width(), d.Height())
	}
	return d.shadow
}

// FreeShadow releases the shadow buffer.
func (d *Drawable) FreeShadow() { d.shadow = nil }

// ApplyBuffer composites src's srcRegion onto the drawable's buffer at
// (destX, destY) with the given opacity and blend mode, then flags the
// touched region dirty.
func (d *Drawable) ApplyBuffer(src *pixed.Buffer, srcRegion pixed.Region, opacity float64, mode pixed.BlendMode, destX, destY int) {
	sr, ok := srcRegion.Intersect(src.Bounds())
	if !ok {
		return
	}
	destX += sr.X - srcRegion.X
	destY += sr.Y - srcRegion.Y
	for y := 0; y < sr.Height; y++ {
		for x := 0; x < sr.Width; x++ {
			base, ok := d.buffer.PixelAt(destX+x, destY+y)
			if !ok {
				continue
			}
			aux, _ := src.PixelAt(sr.X+x, sr.Y+y)
			d.buffer.SetPixel(destX+x, destY+y, blend.Compose(base, aux, mode, opacity))
		}
	}
	d.Update(pixed.Rect(destX, destY, sr.Width, sr.Height))
}

// SwapPixels exchanges the contents of buf with the drawable's pixels at
// (x, y). Undo implementations use this to flip between before and after
// states without extra copies.
func (d *Drawable) SwapPixels(buf *pixed.Buffer, x, y int) {
	r := pixed.Rect(x, y, buf.Width(), buf.Height())
	tmp := buf.Clone()
	buf.Copy(0, 0, d.buffer, r)
	d.buffer.Copy(x, y, tmp, tmp.Bounds())
	d.Update(r)
}

// Duplicate returns an independent copy of the drawable: cloned buffer,
// same offset and visibility, detached, without overlay, selection, or
// undo sink.
func (d *Drawable) Duplicate(name string) *Drawable {
	dup := NewFromBuffer(name, d.buffer.Clone(), d.offsetX, d.offsetY)
	dup.visible = d.visible
	return dup
}

// EstimateMemSize estimates the storage cost of this drawable at the
// given dimensions.
func (d *Drawable) EstimateMemSize(width, height int) int64 {
	return pixed.EstimateByteSize(d.buffer.Format(), width, height)
}

// Overlay returns the attached floating overlay, or nil.
func (d *Drawable) Overlay() *Overlay { return d.overlay }
