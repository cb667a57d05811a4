package graph

import "github.com/gopix/pixed"

// Translate shifts its input by an integer offset in graph space.
type Translate struct {
	in Node
	dx int
	dy int
}

// NewTranslate creates a translate node shifting in by (dx, dy).
func NewTranslate(in Node, dx, dy int) *Translate {
	return &Translate{in: in, dx: dx, dy: dy}
}

// SetOffset updates the translation offset.
func (t *Translate) SetOffset(dx, dy int) {
	t.dx = dx
	t.dy = dy
}

// Offset returns the translation offset.
func (t *Translate) Offset() (dx, dy int) { return t.dx, t.dy }

// Extent returns the input extent shifted by the offset.
func (t *Translate) Extent() pixed.Region {
	if t.in == nil {
		return pixed.Region{}
	}
	return t.in.Extent().Translate(t.dx, t.dy)
}

// Render renders the input with coordinates shifted back by the offset.
func (t *Translate) Render(r pixed.Region) *pixed.Buffer {
	if t.in == nil {
		return newOutput(r)
	}
	return t.in.Render(r.Translate(-t.dx, -t.dy))
}
