package graph

import (
	"github.com/gopix/pixed"
	"github.com/gopix/pixed/internal/blend"
)

// Compose blends an auxiliary input over a base input using a blend mode
// and opacity. A nil auxiliary input makes the node a pass-through for
// the base; a nil base composes the auxiliary over transparency.
type Compose struct {
	base    Node
	aux     Node
	mode    pixed.BlendMode
	opacity float64
}

// NewCompose creates a compose node.
func NewCompose(base, aux Node, mode pixed.BlendMode, opacity float64) *Compose {
	return &Compose{base: base, aux: aux, mode: mode, opacity: opacity}
}

// SetBase replaces the base input.
func (c *Compose) SetBase(n Node) { c.base = n }

// SetAux replaces the auxiliary input.
func (c *Compose) SetAux(n Node) { c.aux = n }

// SetMode updates the blend mode.
func (c *Compose) SetMode(m pixed.BlendMode) { c.mode = m }

// SetOpacity updates the auxiliary opacity in [0, 1].
func (c *Compose) SetOpacity(o float64) { c.opacity = o }

// Mode returns the blend mode.
func (c *Compose) Mode() pixed.BlendMode { return c.mode }

// Opacity returns the auxiliary opacity.
func (c *Compose) Opacity() float64 { return c.opacity }

// Extent returns the union of both input extents.
func (c *Compose) Extent() pixed.Region {
	var ext pixed.Region
	if c.base != nil {
		ext = c.base.Extent()
	}
	if c.aux != nil {
		ext = ext.Union(c.aux.Extent())
	}
	return ext
}

// Render renders both inputs and blends them pixel by pixel. The blend
// only runs where the auxiliary input has content; outside its extent
// the base passes through untouched, so modes that do not degenerate to
// pass-through on transparency (replace) cannot erase uncovered base
// pixels.
func (c *Compose) Render(r pixed.Region) *pixed.Buffer {
	out := renderOrBlank(c.base, r)
	if c.aux == nil {
		return out
	}
	inner, ok := r.Intersect(c.aux.Extent())
	if !ok {
		return out
	}
	auxBuf := c.aux.Render(inner)
	for y := 0; y < inner.Height; y++ {
		for x := 0; x < inner.Width; x++ {
			ox, oy := inner.X-r.X+x, inner.Y-r.Y+y
			base, _ := out.PixelAt(ox, oy)
			aux, _ := auxBuf.PixelAt(x, y)
			out.SetPixel(ox, oy, blend.Compose(base, aux, c.mode, c.opacity))
		}
	}
	return out
}
