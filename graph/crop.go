package graph

import "github.com/gopix/pixed"

// Crop restricts its input to a rectangle. Everything outside the
// rectangle renders transparent, regardless of what the input produces
// there.
type Crop struct {
	in   Node
	rect pixed.Region
}

// NewCrop creates a crop node over in with the given rectangle.
func NewCrop(in Node, rect pixed.Region) *Crop {
	return &Crop{in: in, rect: rect}
}

// SetRect updates the crop rectangle.
func (c *Crop) SetRect(rect pixed.Region) { c.rect = rect }

// Rect returns the crop rectangle.
func (c *Crop) Rect() pixed.Region { return c.rect }

// Extent returns the crop rectangle intersected with the input's
// extent; the node never produces content outside either.
func (c *Crop) Extent() pixed.Region {
	if c.in == nil {
		return pixed.Region{}
	}
	ext, ok := c.rect.Intersect(c.in.Extent())
	if !ok {
		return pixed.Region{}
	}
	return ext
}

// Render renders the input only where the request overlaps the crop
// rectangle.
func (c *Crop) Render(r pixed.Region) *pixed.Buffer {
	out := newOutput(r)
	inner, ok := r.Intersect(c.rect)
	if !ok || c.in == nil {
		return out
	}
	rendered := c.in.Render(inner)
	out.Copy(inner.X-r.X, inner.Y-r.Y, rendered, rendered.Bounds())
	return out
}
