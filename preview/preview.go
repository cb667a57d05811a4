package preview

import (
	"github.com/gopix/pixed"
	"github.com/gopix/pixed/filter"
	"github.com/gopix/pixed/graph"
	"github.com/gopix/pixed/internal/blend"
	"github.com/gopix/pixed/layer"
)

// State describes where a Preview is in its lifecycle.
type State int

const (
	// StateIdle means no processing is scheduled and no partial result
	// is outstanding.
	StateIdle State = iota
	// StateRunning means chunks are still being processed.
	StateRunning
	// StateCompleted means the last Apply has delivered every chunk.
	StateCompleted
	// StateAborted means processing stopped because the drawable was
	// detached mid-run.
	StateAborted
)

// String returns a debug name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Option configures a Preview.
type Option func(*Preview)

// WithChunksPerTick sets how many chunks each scheduler tick processes.
// Values below one are ignored.
func WithChunksPerTick(n int) Option {
	return func(p *Preview) {
		if n >= 1 {
			p.chunksPerTick = n
		}
	}
}

// WithBinaryMask makes selection coverage all-or-nothing: a pixel is
// either fully filtered or left untouched. The default blends the
// filtered result with the original by the selection's per-pixel
// coverage weight.
func WithBinaryMask() Option {
	return func(p *Preview) { p.binaryMask = true }
}

// Preview runs a filter over a region of a drawable incrementally,
// writing partial results into the drawable as chunks complete while a
// private snapshot keeps the original pixels recoverable. The result is
// discardable until Commit records it as a single undo step.
//
// A Preview drives exactly one drawable and one filter op; re-Applying
// with a different region restarts processing against fresh state.
type Preview struct {
	drawable *layer.Drawable
	undoDesc string
	op       filter.Op
	sched    Scheduler

	scratch Scratch
	rect    pixed.Region

	source     *graph.Source
	translate  *graph.Translate
	filterNode *graph.Filter
	sink       *graph.Sink

	proc   *processor
	cancel func()
	state  State

	chunksPerTick int
	binaryMask    bool

	flushHandlers    []handler
	progressHandlers []progressHandler
	nextHandlerID    int
}

type handler struct {
	id int
	fn func(pixed.Region)
}

type progressHandler struct {
	id int
	fn func()
}

// New creates a preview of op on d. desc labels the eventual undo step.
// New panics if d is detached or any argument is nil.
func New(d *layer.Drawable, desc string, op filter.Op, sched Scheduler, opts ...Option) *Preview {
	if d == nil {
		panic("pixed/preview: New called with nil drawable")
	}
	if !d.IsAttached() {
		panic("pixed/preview: New on a detached drawable")
	}
	if op == nil {
		panic("pixed/preview: New called with nil op")
	}
	if sched == nil {
		panic("pixed/preview: New called with nil scheduler")
	}
	p := &Preview{
		drawable:      d,
		undoDesc:      desc,
		op:            op,
		sched:         sched,
		chunksPerTick: 4,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Drawable returns the drawable the preview writes into.
func (p *Preview) Drawable() *layer.Drawable { return p.drawable }

// Op returns the filter operation being previewed.
func (p *Preview) Op() filter.Op { return p.op }

// State returns the current lifecycle state.
func (p *Preview) State() State { return p.state }

// Region returns the drawable-local region the last Apply targeted.
func (p *Preview) Region() pixed.Region { return p.rect }

// OnFlush registers fn to run after each chunk of filtered pixels lands
// in the drawable, with the chunk's drawable-local region. The returned
// function removes the handler.
func (p *Preview) OnFlush(fn func(pixed.Region)) (remove func()) {
	p.nextHandlerID++
	id := p.nextHandlerID
	p.flushHandlers = append(p.flushHandlers, handler{id: id, fn: fn})
	return func() {
		for i, h := range p.flushHandlers {
			if h.id == id {
				p.flushHandlers = append(p.flushHandlers[:i], p.flushHandlers[i+1:]...)
				return
			}
		}
	}
}

// OnProgress registers fn to run after every scheduler tick, whether or
// not the tick delivered pixels; the tick that finishes (or aborts) a
// run notifies too. A host can hook throttled redraws here. The returned
// function removes the handler.
func (p *Preview) OnProgress(fn func()) (remove func()) {
	p.nextHandlerID++
	id := p.nextHandlerID
	p.progressHandlers = append(p.progressHandlers, progressHandler{id: id, fn: fn})
	return func() {
		for i, h := range p.progressHandlers {
			if h.id == id {
				p.progressHandlers = append(p.progressHandlers[:i], p.progressHandlers[i+1:]...)
				return
			}
		}
	}
}

// Apply starts (or restarts) processing op over r. An empty r means the
// whole drawable. The effective region is clipped to the drawable's
// selection-intersected footprint; if nothing remains the call is a
// no-op. Apply on a detached drawable is silently ignored.
func (p *Preview) Apply(r pixed.Region) {
	p.stopTicking()
	if !p.drawable.IsAttached() {
		return
	}

	if r.Empty() {
		r = p.drawable.Bounds()
	}
	clip, ok := p.drawable.MaskIntersect()
	if !ok {
		p.state = StateIdle
		return
	}
	rect, ok := r.Intersect(clip)
	if !ok {
		p.state = StateIdle
		return
	}

	// A region change invalidates partial results from the previous
	// run; restore them before snapshotting the new region.
	if p.scratch.Held() && p.scratch.Anchor() != rect {
		p.scratch.Restore(p.drawable)
	}

	p.rect = rect
	p.scratch.Ensure(p.drawable, rect)
	p.syncGraph()

	p.proc = newProcessor(p.sink, rect)
	p.state = StateRunning
	p.cancel = p.sched.Schedule(p.tick)

	pixed.Logger().Debug("preview apply",
		"drawable", p.drawable.Name(),
		"op", p.op.Name(),
		"region", rect)
}

// syncGraph builds the filter graph on first use and points it at the
// current snapshot and shadow buffer.
func (p *Preview) syncGraph() {
	if p.source == nil {
		p.source = graph.NewSource(p.scratch.Buffer())
		p.translate = graph.NewTranslate(p.source, p.scratch.Anchor().X, p.scratch.Anchor().Y)
		p.filterNode = graph.NewFilter(p.translate, p.op)
		p.sink = graph.NewSink(p.filterNode, p.drawable.ShadowBuffer())
		p.sink.SetOnWritten(p.spliceChunk)
		return
	}
	p.source.SetBuffer(p.scratch.Buffer())
	p.translate.SetOffset(p.scratch.Anchor().X, p.scratch.Anchor().Y)
	p.sink.SetBuffer(p.drawable.ShadowBuffer())
}

// tick processes one scheduler slice. Progress fires once per tick
// regardless of outcome.
func (p *Preview) tick() bool {
	more := false
	switch {
	case !p.drawable.IsAttached():
		p.state = StateAborted
		p.cancel = nil
	case p.proc.Step(p.chunksPerTick):
		more = true
	default:
		p.state = StateCompleted
		p.cancel = nil
		pixed.Logger().Debug("preview completed",
			"drawable", p.drawable.Name(),
			"op", p.op.Name())
	}
	for _, h := range p.progressHandlers {
		h.fn()
	}
	return more
}

// spliceChunk merges one chunk of filtered pixels from the shadow
// buffer into the drawable. Where a selection is active, the filtered
// result is blended against the snapshot original by per-pixel coverage
// so unselected pixels stay pristine.
func (p *Preview) spliceChunk(r pixed.Region) {
	d := p.drawable
	shadow := d.ShadowBuffer()
	sel := d.Selection()

	if sel == nil || sel.IsEmpty() {
		d.Buffer().Copy(r.X, r.Y, shadow, r)
	} else {
		anchor := p.scratch.Anchor()
		orig := p.scratch.Buffer()
		for y := r.Y; y < r.Bottom(); y++ {
			for x := r.X; x < r.Right(); x++ {
				w := sel.CoverageAt(x, y)
				if p.binaryMask {
					if w >= 0.5 {
						w = 1
					} else {
						w = 0
					}
				}
				if w == 0 {
					continue
				}
				filtered, ok := shadow.PixelAt(x, y)
				if !ok {
					continue
				}
				base, ok := orig.PixelAt(x-anchor.X, y-anchor.Y)
				if !ok {
					continue
				}
				d.Buffer().SetPixel(x, y, blend.Compose(base, filtered, pixed.BlendReplace, w))
			}
		}
	}

	d.Update(r)
	for _, h := range p.flushHandlers {
		h.fn(r)
	}
}

// Commit finishes any remaining processing synchronously, keeps the
// filtered pixels in the drawable, and pushes the snapshot to the undo
// sink as the pre-change record. Committing with nothing outstanding is
// a no-op. Committing a detached drawable skips the edit entirely but
// keeps the snapshot, so a Clear after re-attachment can still roll
// back.
func (p *Preview) Commit() {
	p.stopTicking()
	if !p.drawable.IsAttached() {
		p.proc = nil
		p.state = StateIdle
		return
	}
	if p.proc != nil {
		p.proc.Drain()
		p.proc = nil
	}
	if p.scratch.Held() {
		p.drawable.PushUndo(p.undoDesc, p.scratch.Buffer(), p.scratch.Anchor())
		p.scratch.Discard()
	}
	p.drawable.FreeShadow()
	p.state = StateIdle
}

// Clear stops processing and restores the snapshot into the drawable,
// discarding the preview result. Clearing a detached drawable only
// releases the snapshot.
func (p *Preview) Clear() {
	p.stopTicking()
	if p.drawable.IsAttached() {
		p.scratch.Restore(p.drawable)
		p.drawable.FreeShadow()
	} else {
		p.scratch.Discard()
	}
	p.proc = nil
	p.state = StateIdle
}

// Abort cancels processing and rolls the drawable back, equivalent to
// Clear. It exists so callers can state intent when tearing down.
func (p *Preview) Abort() {
	p.Clear()
}

// PixelAt reads the pixel the user perceives as original: inside the
// snapshot region it comes from the snapshot, elsewhere from the
// drawable.
func (p *Preview) PixelAt(x, y int) (pixed.RGBA, bool) {
	if p.scratch.Held() && p.scratch.Anchor().Contains(x, y) {
		a := p.scratch.Anchor()
		return p.scratch.Buffer().PixelAt(x-a.X, y-a.Y)
	}
	return p.drawable.PixelAt(x, y)
}

func (p *Preview) stopTicking() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}
