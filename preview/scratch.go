package preview

import (
	"github.com/gopix/pixed"
	"github.com/gopix/pixed/layer"
)

// Scratch holds a private snapshot of the drawable region a preview is
// filtering. The snapshot is both the filter's pristine input and the
// restore source for Clear and Abort; committing hands it to the undo
// sink as the pre-change record.
type Scratch struct {
	buf    *pixed.Buffer
	anchor pixed.Region
}

// Held reports whether the scratch currently holds a snapshot.
func (s *Scratch) Held() bool { return s.buf != nil }

// Buffer returns the snapshot buffer, or nil when none is held.
func (s *Scratch) Buffer() *pixed.Buffer { return s.buf }

// Anchor returns the drawable-local region the snapshot covers.
func (s *Scratch) Anchor() pixed.Region { return s.anchor }

// Ensure snapshots r from d. The backing buffer is reallocated only when
// the requested size differs from the held one; the pixels are recopied
// on any change, including a pure origin move.
func (s *Scratch) Ensure(d *layer.Drawable, r pixed.Region) {
	if r.Empty() {
		return
	}
	if s.buf != nil && s.buf.Format() == d.Buffer().Format() &&
		s.anchor == r {
		return
	}
	if s.buf == nil || s.buf.Format() != d.Buffer().Format() ||
		!s.anchor.SameSize(r) {
		s.buf = pixed.NewBuffer(d.Buffer().Format(), r.Width, r.Height)
	}
	s.anchor = r
	s.buf.Copy(0, 0, d.Buffer(), r)
}

// Restore writes the snapshot back into d over the anchor region and
// then frees it. Restoring without a snapshot is a no-op. A format
// mismatch between snapshot and drawable is logged and the snapshot is
// freed without writing, so a stale preview cannot corrupt a converted
// drawable.
func (s *Scratch) Restore(d *layer.Drawable) {
	if s.buf == nil {
		return
	}
	if s.buf.Format() != d.Buffer().Format() {
		pixed.Logger().Warn("scratch format mismatch, dropping snapshot",
			"drawable", d.Name(),
			"have", s.buf.Format().String(),
			"want", d.Buffer().Format().String())
		s.Discard()
		return
	}
	d.Buffer().Copy(s.anchor.X, s.anchor.Y, s.buf, s.buf.Bounds())
	d.Update(s.anchor)
	s.Discard()
}

// Discard frees the snapshot without writing it back.
func (s *Scratch) Discard() {
	s.buf = nil
	s.anchor = pixed.Region{}
}
