package layer

import "github.com/gopix/pixed"

// PropertyEvent identifies which overlay property changed. Overlay
// mutators enqueue events instead of resyncing the target's graph
// directly; the binding drains the queue and syncs once per batch,
// which keeps graph edits out of the mutators and avoids reentrancy.
type PropertyEvent int

const (
	// OffsetChanged reports a moved overlay.
	OffsetChanged PropertyEvent = iota
	// VisibilityChanged reports a shown or hidden overlay.
	VisibilityChanged
	// ModeChanged reports a changed blend mode.
	ModeChanged
	// OpacityChanged reports a changed opacity.
	OpacityChanged
)

// String returns the event name.
func (e PropertyEvent) String() string {
	switch e {
	case OffsetChanged:
		return "offset"
	case VisibilityChanged:
		return "visibility"
	case ModeChanged:
		return "mode"
	case OpacityChanged:
		return "opacity"
	default:
		return "unknown"
	}
}

// Overlay is a transient drawable-like entity composited on top of
// exactly one target drawable (a floating selection). It carries its own
// buffer, offset, visibility, blend mode, and opacity. The overlay is
// owned by the container holding it; the target drawable keeps only a
// non-owning back-reference.
type Overlay struct {
	*Drawable

	mode    pixed.BlendMode
	opacity float64

	target  *Drawable
	pending []PropertyEvent
}

// NewOverlay creates an overlay with a fresh buffer of the given format
// and size, normal blend mode, and full opacity.
func NewOverlay(name string, format pixed.Format, width, height int) *Overlay {
	return &Overlay{
		Drawable: New(name, format, width, height),
		mode:     pixed.BlendNormal,
		opacity:  1,
	}
}

// Mode returns the overlay's blend mode.
func (o *Overlay) Mode() pixed.BlendMode { return o.mode }

// SetMode changes the blend mode, queueing a ModeChanged event.
func (o *Overlay) SetMode(m pixed.BlendMode) {
	if o.mode == m {
		return
	}
	o.mode = m
	o.enqueue(ModeChanged)
}

// Opacity returns the overlay's opacity in [0, 1].
func (o *Overlay) Opacity() float64 { return o.opacity }

// SetOpacity changes the opacity, queueing an OpacityChanged event.
func (o *Overlay) SetOpacity(op float64) {
	if o.opacity == op {
		return
	}
	o.opacity = op
	o.enqueue(OpacityChanged)
}

// SetOffset moves the overlay, queueing an OffsetChanged event.
func (o *Overlay) SetOffset(x, y int) {
	ox, oy := o.Drawable.Offset()
	if ox == x && oy == y {
		return
	}
	o.Drawable.SetOffset(x, y)
	o.enqueue(OffsetChanged)
}

// SetVisible toggles overlay visibility, queueing a VisibilityChanged
// event.
func (o *Overlay) SetVisible(v bool) {
	if o.Drawable.Visible() == v {
		return
	}
	o.Drawable.SetVisible(v)
	o.enqueue(VisibilityChanged)
}

// Target returns the drawable this overlay is attached to, or nil.
func (o *Overlay) Target() *Drawable { return o.target }

// Pending returns the queued property events not yet flushed.
func (o *Overlay) Pending() []PropertyEvent { return o.pending }

// Flush drains the queued property events and, if any were pending,
// resyncs the target's source graph exactly once. A detached overlay
// just drops its queue.
func (o *Overlay) Flush() {
	if len(o.pending) == 0 {
		return
	}
	o.pending = o.pending[:0]
	if o.target != nil {
		o.target.syncSourceGraph(false)
	}
}

func (o *Overlay) enqueue(ev PropertyEvent) {
	if o.target == nil {
		return
	}
	o.pending = append(o.pending, ev)
}

// AttachOverlay binds ov as the drawable's floating overlay: the source
// graph gains the crop/translate/compose triple, the overlay's region
// updates are forwarded into target space, and the whole overlay
// footprint is flagged dirty.
//
// Attaching to a detached drawable, attaching a second overlay, or
// attaching an overlay that is already bound elsewhere are programmer
// errors.
func (d *Drawable) AttachOverlay(ov *Overlay) {
	if !d.attached {
		panic("pixed/layer: AttachOverlay on a detached drawable")
	}
	if d.overlay != nil {
		panic("pixed/layer: drawable already has an overlay attached")
	}
	if ov == nil {
		panic("pixed/layer: AttachOverlay with nil overlay")
	}
	if ov.target != nil {
		panic("pixed/layer: overlay is already attached")
	}
	if ov.Drawable == d {
		panic("pixed/layer: overlay must be independent of its target")
	}

	d.overlay = ov
	ov.target = d

	d.syncSourceGraph(false)

	d.overlayUnsub = ov.OnUpdate(func(r pixed.Region) {
		d.forwardOverlayUpdate(ov, r)
	})
	d.forwardOverlayUpdate(ov, ov.Bounds())
}

// DetachOverlay removes the bound overlay: the graph triple is torn
// down, update forwarding stops, and the overlay's former footprint is
// flagged dirty. Detaching when nothing is bound is a programmer error.
func (d *Drawable) DetachOverlay() {
	if d.overlay == nil {
		panic("pixed/layer: DetachOverlay without an attached overlay")
	}
	ov := d.overlay

	d.syncSourceGraph(true)

	if d.overlayUnsub != nil {
		d.overlayUnsub()
		d.overlayUnsub = nil
	}
	d.forwardOverlayUpdate(ov, ov.Bounds())

	ov.target = nil
	ov.pending = nil
	d.overlay = nil
}

// forwardOverlayUpdate translates an overlay-local dirty region into
// target space, restricted to the target's footprint, and re-emits it as
// a target update.
func (d *Drawable) forwardOverlayUpdate(ov *Overlay, r pixed.Region) {
	ox, oy := ov.Offset()
	parentRect := r.Translate(ox, oy)
	footprint := pixed.Rect(d.offsetX, d.offsetY, d.Width(), d.Height())
	if hit, ok := parentRect.Intersect(footprint); ok {
		d.Update(hit.Translate(-d.offsetX, -d.offsetY))
	}
}
