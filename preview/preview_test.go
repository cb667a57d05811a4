package preview

import (
	"math"
	"testing"

	"github.com/gopix/pixed"
	"github.com/gopix/pixed/filter"
	"github.com/gopix/pixed/layer"
)

var cyan = pixed.RGBA{R: 0, G: 1, B: 1, A: 1}

func attachedDrawable(w, h int) *layer.Drawable {
	d := layer.New("background", pixed.FormatRGBA8, w, h)
	d.Fill(pixed.Red)
	d.Attach()
	return d
}

func newInvertPreview(d *layer.Drawable, sched *IdleScheduler, opts ...Option) *Preview {
	return New(d, "invert", filter.Invert(), sched, opts...)
}

func TestNewPanics(t *testing.T) {
	sched := &IdleScheduler{}
	d := attachedDrawable(4, 4)

	tests := []struct {
		name string
		fn   func()
	}{
		{"nil drawable", func() { New(nil, "x", filter.Invert(), sched) }},
		{"detached drawable", func() {
			det := layer.New("det", pixed.FormatRGBA8, 4, 4)
			New(det, "x", filter.Invert(), sched)
		}},
		{"nil op", func() { New(d, "x", nil, sched) }},
		{"nil scheduler", func() { New(d, "x", filter.Invert(), nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestPreviewDeliversChunksIncrementally(t *testing.T) {
	d := attachedDrawable(128, 64)
	sched := &IdleScheduler{}
	pv := newInvertPreview(d, sched, WithChunksPerTick(1))

	pv.Apply(pixed.Region{})
	if pv.State() != StateRunning {
		t.Fatalf("state after Apply = %v, want running", pv.State())
	}

	// First tick: the left 64x64 chunk is filtered, the rest untouched.
	sched.Pump()
	if got, _ := d.PixelAt(0, 0); got != cyan {
		t.Errorf("first chunk pixel = %v, want cyan", got)
	}
	if got, _ := d.PixelAt(64, 0); got != pixed.Red {
		t.Errorf("second chunk pixel = %v, want still red", got)
	}

	// Second tick finishes.
	sched.Drain()
	if got, _ := d.PixelAt(64, 0); got != cyan {
		t.Errorf("second chunk pixel after drain = %v, want cyan", got)
	}
	if pv.State() != StateCompleted {
		t.Errorf("state after drain = %v, want completed", pv.State())
	}
}

func TestPreviewChunksArriveInReadingOrder(t *testing.T) {
	d := attachedDrawable(70, 70)
	sched := &IdleScheduler{}
	pv := newInvertPreview(d, sched, WithChunksPerTick(1))

	var flushed []pixed.Region
	pv.OnFlush(func(r pixed.Region) { flushed = append(flushed, r) })

	pv.Apply(pixed.Region{})
	sched.Drain()

	want := []pixed.Region{
		pixed.Rect(0, 0, 64, 64),
		pixed.Rect(64, 0, 6, 64),
		pixed.Rect(0, 64, 64, 6),
		pixed.Rect(64, 64, 6, 6),
	}
	if len(flushed) != len(want) {
		t.Fatalf("flushed %d chunks, want %d: %v", len(flushed), len(want), flushed)
	}
	for i := range want {
		if flushed[i] != want[i] {
			t.Errorf("chunk %d = %v, want %v", i, flushed[i], want[i])
		}
	}
}

func TestPreviewUpdatesNotifyDrawableObservers(t *testing.T) {
	d := attachedDrawable(16, 16)
	sched := &IdleScheduler{}
	pv := newInvertPreview(d, sched)

	dirty := 0
	d.OnUpdate(func(pixed.Region) { dirty++ })

	pv.Apply(pixed.Region{})
	sched.Drain()
	if dirty == 0 {
		t.Error("no update notifications during preview")
	}
}

func TestPreviewClearRestoresOriginal(t *testing.T) {
	d := attachedDrawable(128, 64)
	sched := &IdleScheduler{}
	pv := newInvertPreview(d, sched, WithChunksPerTick(1))

	pv.Apply(pixed.Region{})
	sched.Pump()
	if got, _ := d.PixelAt(0, 0); got != cyan {
		t.Fatalf("pixel before clear = %v, want filtered", got)
	}

	pv.Clear()
	if got, _ := d.PixelAt(0, 0); got != pixed.Red {
		t.Errorf("pixel after clear = %v, want restored red", got)
	}
	if pv.State() != StateIdle {
		t.Errorf("state after clear = %v, want idle", pv.State())
	}

	// No further ticks run.
	if sched.Pump() {
		t.Error("work still scheduled after clear")
	}
}

func TestPreviewCommit(t *testing.T) {
	d := attachedDrawable(70, 70)
	var stack pixed.UndoStack
	d.SetUndoSink(&stack)

	sched := &IdleScheduler{}
	pv := newInvertPreview(d, sched, WithChunksPerTick(1))

	pv.Apply(pixed.Region{})
	sched.Pump()

	// Commit drains the remaining chunks synchronously.
	pv.Commit()

	if got, _ := d.PixelAt(69, 69); got != cyan {
		t.Errorf("last pixel after commit = %v, want cyan", got)
	}
	if stack.Len() != 1 {
		t.Fatalf("undo records = %d, want 1", stack.Len())
	}
	rec, _ := stack.Pop()
	if rec.Description != "invert" {
		t.Errorf("undo description = %q, want \"invert\"", rec.Description)
	}
	if rec.Anchor != pixed.Rect(0, 0, 70, 70) {
		t.Errorf("undo anchor = %v, want full bounds", rec.Anchor)
	}
	if got, _ := rec.Snapshot.PixelAt(0, 0); got != pixed.Red {
		t.Errorf("undo snapshot pixel = %v, want the pre-filter red", got)
	}
	if pv.State() != StateIdle {
		t.Errorf("state after commit = %v, want idle", pv.State())
	}

	// A second commit has nothing left to record.
	pv.Commit()
	if stack.Len() != 0 {
		t.Errorf("second commit pushed a record, Len = %d", stack.Len())
	}
}

func TestPreviewReapplyRestartsAgainstOriginal(t *testing.T) {
	d := attachedDrawable(128, 64)
	sched := &IdleScheduler{}
	pv := newInvertPreview(d, sched, WithChunksPerTick(1))

	pv.Apply(pixed.Region{})
	sched.Pump()
	if got, _ := d.PixelAt(0, 0); got != cyan {
		t.Fatalf("pixel after partial run = %v, want cyan", got)
	}

	// Re-applying to a different region first rolls back the partial
	// result, then filters only the new region.
	pv.Apply(pixed.Rect(64, 0, 10, 10))
	sched.Drain()

	if got, _ := d.PixelAt(0, 0); got != pixed.Red {
		t.Errorf("pixel outside new region = %v, want rolled-back red", got)
	}
	if got, _ := d.PixelAt(64, 0); got != cyan {
		t.Errorf("pixel inside new region = %v, want cyan", got)
	}
	if got := pv.Region(); got != pixed.Rect(64, 0, 10, 10) {
		t.Errorf("Region = %v, want the re-applied rect", got)
	}
}

func TestPreviewReapplySameRegionRefilters(t *testing.T) {
	d := attachedDrawable(16, 16)
	sched := &IdleScheduler{}

	brighter := New(d, "brightness", filter.Brightness(0.5), sched)
	brighter.Apply(pixed.Region{})
	sched.Drain()
	first, _ := d.PixelAt(0, 0)

	// The second run reads the snapshot, not the half-bright result, so
	// applying again yields the same output instead of compounding.
	brighter.Apply(pixed.Region{})
	sched.Drain()
	second, _ := d.PixelAt(0, 0)

	if first != second {
		t.Errorf("re-applied result %v differs from first %v", second, first)
	}
	if math.Abs(first.R-0.5) > 2.0/255 {
		t.Errorf("half brightness on red = %v, want R ~0.5", first)
	}
}

func TestPreviewHonorsSelectionBounds(t *testing.T) {
	d := attachedDrawable(16, 16)
	d.SetSelection(pixed.RectSelection{R: pixed.Rect(4, 4, 4, 4)})

	sched := &IdleScheduler{}
	pv := newInvertPreview(d, sched)
	pv.Apply(pixed.Region{})
	sched.Drain()

	if got, _ := d.PixelAt(5, 5); got != cyan {
		t.Errorf("selected pixel = %v, want cyan", got)
	}
	if got, _ := d.PixelAt(0, 0); got != pixed.Red {
		t.Errorf("unselected pixel = %v, want red", got)
	}
	if got := pv.Region(); got != pixed.Rect(4, 4, 4, 4) {
		t.Errorf("Region = %v, want the selection rect", got)
	}
}

func TestPreviewGraduatedMaskBlends(t *testing.T) {
	d := attachedDrawable(4, 4)

	mask := pixed.NewBuffer(pixed.FormatGray8, 4, 4)
	mask.Fill(mask.Bounds(), pixed.RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1})
	d.SetSelection(pixed.NewMaskSelection(mask, 0, 0))

	sched := &IdleScheduler{}
	pv := newInvertPreview(d, sched)
	pv.Apply(pixed.Region{})
	sched.Drain()

	// Half coverage gives the midpoint of red and cyan.
	got, _ := d.PixelAt(1, 1)
	if math.Abs(got.R-0.5) > 2.0/255 || math.Abs(got.G-0.5) > 2.0/255 {
		t.Errorf("half-covered pixel = %v, want ~(0.5, 0.5, 0.5)", got)
	}
}

func TestPreviewBinaryMaskIsAllOrNothing(t *testing.T) {
	d := attachedDrawable(4, 4)

	mask := pixed.NewBuffer(pixed.FormatGray8, 4, 4)
	mask.Fill(mask.Bounds(), pixed.RGBA{R: 0.6, G: 0.6, B: 0.6, A: 1})
	d.SetSelection(pixed.NewMaskSelection(mask, 0, 0))

	sched := &IdleScheduler{}
	pv := newInvertPreview(d, sched, WithBinaryMask())
	pv.Apply(pixed.Region{})
	sched.Drain()

	if got, _ := d.PixelAt(1, 1); got != cyan {
		t.Errorf("majority-covered pixel = %v, want fully filtered", got)
	}
}

func TestPreviewEmptySelectionIntersection(t *testing.T) {
	d := attachedDrawable(8, 8)
	d.SetSelection(pixed.RectSelection{R: pixed.Rect(100, 100, 4, 4)})

	sched := &IdleScheduler{}
	pv := newInvertPreview(d, sched)
	pv.Apply(pixed.Region{})

	if pv.State() != StateIdle {
		t.Errorf("state = %v, want idle when nothing is editable", pv.State())
	}
	sched.Drain()
	if got, _ := d.PixelAt(0, 0); got != pixed.Red {
		t.Errorf("pixel = %v, want untouched red", got)
	}
}

func TestPreviewApplyOnDetachedDrawableIsNoop(t *testing.T) {
	d := attachedDrawable(8, 8)
	sched := &IdleScheduler{}
	pv := newInvertPreview(d, sched)

	d.Detach()
	pv.Apply(pixed.Region{})

	sched.Drain()
	if got, _ := d.PixelAt(0, 0); got != pixed.Red {
		t.Errorf("pixel = %v, want untouched red", got)
	}
}

func TestPreviewDetachMidRunAborts(t *testing.T) {
	d := attachedDrawable(128, 64)
	sched := &IdleScheduler{}
	pv := newInvertPreview(d, sched, WithChunksPerTick(1))

	pv.Apply(pixed.Region{})
	sched.Pump()
	d.Detach()
	sched.Drain()

	if pv.State() != StateAborted {
		t.Errorf("state = %v, want aborted", pv.State())
	}
	if got, _ := d.PixelAt(64, 0); got != pixed.Red {
		t.Errorf("unprocessed pixel = %v, want red", got)
	}
}

func TestPreviewCommitAfterDetachIsNoop(t *testing.T) {
	d := attachedDrawable(16, 16)
	var stack pixed.UndoStack
	d.SetUndoSink(&stack)

	sched := &IdleScheduler{}
	pv := newInvertPreview(d, sched)
	pv.Apply(pixed.Region{})
	sched.Drain()

	d.Detach()
	pv.Commit()

	if stack.Len() != 0 {
		t.Errorf("commit on detached drawable pushed %d records", stack.Len())
	}
	if pv.State() != StateIdle {
		t.Errorf("state = %v, want idle", pv.State())
	}
}

func TestPreviewCommitWhileDetachedKeepsSnapshot(t *testing.T) {
	d := attachedDrawable(16, 16)
	sched := &IdleScheduler{}
	pv := newInvertPreview(d, sched)
	pv.Apply(pixed.Region{})
	sched.Drain()

	// The commit is moot while detached, but the snapshot must survive
	// so the preview can still roll back once the drawable returns.
	d.Detach()
	pv.Commit()

	d.Attach()
	pv.Clear()
	if got, _ := d.PixelAt(0, 0); got != pixed.Red {
		t.Errorf("pixel after re-attach and clear = %v, want restored red", got)
	}
}

func TestPreviewProgressFiresEveryTick(t *testing.T) {
	d := attachedDrawable(70, 70)
	sched := &IdleScheduler{}
	pv := newInvertPreview(d, sched, WithChunksPerTick(1))

	ticks := 0
	remove := pv.OnProgress(func() { ticks++ })

	pv.Apply(pixed.Region{})
	sched.Pump()
	if ticks != 1 {
		t.Fatalf("progress after one tick = %d, want 1", ticks)
	}

	sched.Drain()
	if ticks != 4 {
		t.Errorf("progress notifications = %d, want one per tick for four chunks", ticks)
	}
	if pv.State() != StateCompleted {
		t.Errorf("state = %v, want completed", pv.State())
	}

	remove()
	pv.Apply(pixed.Region{})
	sched.Drain()
	if ticks != 4 {
		t.Errorf("removed progress handler still fired, count = %d", ticks)
	}
}

func TestPreviewAbortRollsBack(t *testing.T) {
	d := attachedDrawable(16, 16)
	sched := &IdleScheduler{}
	pv := newInvertPreview(d, sched)

	pv.Apply(pixed.Region{})
	sched.Drain()
	pv.Abort()

	if got, _ := d.PixelAt(0, 0); got != pixed.Red {
		t.Errorf("pixel after abort = %v, want red", got)
	}
}

func TestPreviewPixelAtReportsOriginal(t *testing.T) {
	d := attachedDrawable(16, 16)
	sched := &IdleScheduler{}
	pv := newInvertPreview(d, sched)

	pv.Apply(pixed.Region{})
	sched.Drain()

	if got, _ := d.PixelAt(2, 2); got != cyan {
		t.Fatalf("drawable pixel = %v, want filtered cyan", got)
	}
	got, ok := pv.PixelAt(2, 2)
	if !ok || got != pixed.Red {
		t.Errorf("PixelAt = %v, %v; want the pre-filter red", got, ok)
	}
}

func TestScratchEnsureReusesSameRegion(t *testing.T) {
	d := attachedDrawable(8, 8)

	var s Scratch
	s.Ensure(d, pixed.Rect(0, 0, 4, 4))
	first := s.Buffer()

	d.Fill(pixed.Blue)
	s.Ensure(d, pixed.Rect(0, 0, 4, 4))
	if s.Buffer() != first {
		t.Error("unchanged region reallocated the snapshot")
	}
	if got, _ := s.Buffer().PixelAt(0, 0); got != pixed.Red {
		t.Errorf("snapshot pixel = %v, want the first capture", got)
	}

	// Same size at a different origin keeps the allocation but recopies.
	s.Ensure(d, pixed.Rect(2, 2, 4, 4))
	if s.Buffer() != first {
		t.Error("same-size move reallocated the snapshot")
	}
	if got, _ := s.Buffer().PixelAt(0, 0); got != pixed.Blue {
		t.Errorf("snapshot pixel after move = %v, want recopied blue", got)
	}
}

func TestScratchRestoreFormatMismatch(t *testing.T) {
	d := attachedDrawable(8, 8)

	var s Scratch
	s.Ensure(d, d.Bounds())

	// The drawable converts format behind the scratch's back; restoring
	// must drop the stale snapshot instead of writing it.
	d.SetBuffer(pixed.NewBuffer(pixed.FormatGray8, 8, 8))
	s.Restore(d)

	if s.Held() {
		t.Error("mismatched snapshot still held after Restore")
	}
	if got, _ := d.PixelAt(0, 0); got.R != 0 {
		t.Errorf("drawable pixel = %v, want untouched gray black", got)
	}
}

func TestProcessorChunksClampToRegion(t *testing.T) {
	d := attachedDrawable(8, 8)
	sched := &IdleScheduler{}
	pv := newInvertPreview(d, sched)

	var flushed []pixed.Region
	pv.OnFlush(func(r pixed.Region) { flushed = append(flushed, r) })

	pv.Apply(pixed.Rect(2, 3, 4, 2))
	sched.Drain()

	if len(flushed) != 1 || flushed[0] != pixed.Rect(2, 3, 4, 2) {
		t.Errorf("flushed = %v, want one clamped chunk (2,3,4,2)", flushed)
	}
	if got, _ := d.PixelAt(2, 3); got != cyan {
		t.Errorf("pixel inside region = %v, want cyan", got)
	}
	if got, _ := d.PixelAt(1, 3); got != pixed.Red {
		t.Errorf("pixel outside region = %v, want red", got)
	}
}
