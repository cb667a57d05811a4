package pixed

// Selection is the mask provider consumed by the preview pipeline. A
// selection restricts which pixels of a drawable an edit may touch.
// Coordinates are in the drawable's local space.
//
// CoverageAt returns a weight in [0, 1]: 0 means fully unselected, 1
// fully selected, intermediate values are partial (feathered) coverage.
// The preview engine honors the weight as a graduated blend; callers that
// want binary semantics can supply a mask holding only 0 and 1.
type Selection interface {
	// IsEmpty reports whether nothing is selected. An empty selection
	// means edits apply to the whole drawable.
	IsEmpty() bool

	// Bounds returns the bounding box of the selected pixels. The result
	// is meaningless when IsEmpty reports true.
	Bounds() Region

	// CoverageAt returns the selection weight at (x, y).
	CoverageAt(x, y int) float64
}

// RectSelection selects every pixel inside a single rectangle with full
// coverage.
type RectSelection struct {
	R Region
}

// IsEmpty reports whether the rectangle covers no pixels.
func (s RectSelection) IsEmpty() bool { return s.R.Empty() }

// Bounds returns the selected rectangle.
func (s RectSelection) Bounds() Region { return s.R }

// CoverageAt returns 1 inside the rectangle and 0 outside.
func (s RectSelection) CoverageAt(x, y int) float64 {
	if s.R.Contains(x, y) {
		return 1
	}
	return 0
}

// MaskSelection is a raster selection backed by a Gray8 coverage buffer
// anchored at Anchor. Pixel values map linearly to coverage weights, so
// feathered selections are expressed directly.
type MaskSelection struct {
	Mask   *Buffer
	Anchor Region
}

// NewMaskSelection creates a mask selection from a Gray8 buffer whose
// top-left corner sits at (x, y) in drawable space.
func NewMaskSelection(mask *Buffer, x, y int) *MaskSelection {
	return &MaskSelection{
		Mask:   mask,
		Anchor: Rect(x, y, mask.Width(), mask.Height()),
	}
}

// IsEmpty reports whether every mask pixel is zero.
func (s *MaskSelection) IsEmpty() bool {
	if s.Mask == nil {
		return true
	}
	for _, v := range s.Mask.Data() {
		if v != 0 {
			return false
		}
	}
	return true
}

// Bounds returns the mask footprint in drawable space.
func (s *MaskSelection) Bounds() Region { return s.Anchor }

// CoverageAt returns the mask value at (x, y) scaled to [0, 1]. Pixels
// outside the mask footprint are unselected.
func (s *MaskSelection) CoverageAt(x, y int) float64 {
	if s.Mask == nil || !s.Anchor.Contains(x, y) {
		return 0
	}
	c, ok := s.Mask.PixelAt(x-s.Anchor.X, y-s.Anchor.Y)
	if !ok {
		return 0
	}
	return c.Luminance()
}
