package pixed

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Buffer is a fixed-size, format-tagged 2-D pixel array. The size and
// format are immutable after construction; the contents are mutable.
// Mutation happens through whole-region operations (Fill, FillPattern,
// Copy) or single-pixel writes; blending is the compositing graph's job,
// never the buffer's.
type Buffer struct {
	format Format
	width  int
	height int
	data   []uint8
}

// NewBuffer creates a buffer of the given format and dimensions, cleared
// to transparent (or black for formats without alpha).
//
// Non-positive dimensions are a programmer error and panic.
func NewBuffer(format Format, width, height int) *Buffer {
	if width <= 0 || height <= 0 {
		panic("pixed: NewBuffer called with non-positive dimensions")
	}
	return &Buffer{
		format: format,
		width:  width,
		height: height,
		data:   make([]uint8, width*height*format.BytesPerPixel()),
	}
}

// EstimateByteSize returns the storage size of a buffer of the given
// format and dimensions without allocating it.
func EstimateByteSize(format Format, width, height int) int64 {
	return int64(format.BytesPerPixel()) * int64(width) * int64(height)
}

// Format returns the pixel format tag.
func (b *Buffer) Format() Format { return b.format }

// Width returns the width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the height in pixels.
func (b *Buffer) Height() int { return b.height }

// Bounds returns the buffer extent as a Region anchored at the origin.
func (b *Buffer) Bounds() Region {
	return Region{Width: b.width, Height: b.height}
}

// ByteSize returns the storage size of the pixel data in bytes.
func (b *Buffer) ByteSize() int64 {
	return EstimateByteSize(b.format, b.width, b.height)
}

// Data returns the raw pixel data.
func (b *Buffer) Data() []uint8 { return b.data }

// SetPixel sets the color of a single pixel. Out-of-bounds coordinates
// are silently ignored.
func (b *Buffer) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	switch b.format {
	case FormatGray8:
		b.data[y*b.width+x] = uint8(clamp255(c.Luminance() * c.A * 255))
	default:
		i := (y*b.width + x) * 4
		b.data[i+0] = uint8(clamp255(c.R * 255))
		b.data[i+1] = uint8(clamp255(c.G * 255))
		b.data[i+2] = uint8(clamp255(c.B * 255))
		b.data[i+3] = uint8(clamp255(c.A * 255))
	}
}

// PixelAt samples the pixel at (x, y) with nearest-neighbor semantics.
// It returns ok=false instead of failing when the coordinates fall
// outside the buffer.
func (b *Buffer) PixelAt(x, y int) (RGBA, bool) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return RGBA{}, false
	}
	switch b.format {
	case FormatGray8:
		v := float64(b.data[y*b.width+x]) / 255
		return RGBA{R: v, G: v, B: v, A: 1}, true
	default:
		i := (y*b.width + x) * 4
		return RGBA{
			R: float64(b.data[i+0]) / 255,
			G: float64(b.data[i+1]) / 255,
			B: float64(b.data[i+2]) / 255,
			A: float64(b.data[i+3]) / 255,
		}, true
	}
}

// Fill sets every pixel in the given region (clipped to the buffer) to a
// solid color.
func (b *Buffer) Fill(r Region, c RGBA) {
	clipped, ok := r.Intersect(b.Bounds())
	if !ok {
		return
	}
	for y := clipped.Y; y < clipped.Bottom(); y++ {
		for x := clipped.X; x < clipped.Right(); x++ {
			b.SetPixel(x, y, c)
		}
	}
}

// FillPattern tiles the pattern buffer across the given region (clipped
// to the buffer). The pattern is anchored at the buffer origin so that
// adjacent fills line up.
func (b *Buffer) FillPattern(r Region, pattern *Buffer) {
	if pattern == nil || pattern.width == 0 || pattern.height == 0 {
		return
	}
	clipped, ok := r.Intersect(b.Bounds())
	if !ok {
		return
	}
	for y := clipped.Y; y < clipped.Bottom(); y++ {
		py := ((y % pattern.height) + pattern.height) % pattern.height
		for x := clipped.X; x < clipped.Right(); x++ {
			px := ((x % pattern.width) + pattern.width) % pattern.width
			c, _ := pattern.PixelAt(px, py)
			b.SetPixel(x, y, c)
		}
	}
}

// Copy replaces pixels in b starting at (dx, dy) with the pixels of src
// inside srcRegion. The copy is clipped against both buffers. When the
// formats match, rows are copied directly; otherwise pixels are converted
// through RGBA.
func (b *Buffer) Copy(dx, dy int, src *Buffer, srcRegion Region) {
	if src == nil {
		return
	}
	sr, ok := srcRegion.Intersect(src.Bounds())
	if !ok {
		return
	}
	// Shift the destination origin by the same amount source clipping
	// moved the region, then clip against the destination.
	dx += sr.X - srcRegion.X
	dy += sr.Y - srcRegion.Y
	dr, ok := Rect(dx, dy, sr.Width, sr.Height).Intersect(b.Bounds())
	if !ok {
		return
	}
	sx := sr.X + (dr.X - dx)
	sy := sr.Y + (dr.Y - dy)

	if b.format == src.format {
		bpp := b.format.BytesPerPixel()
		for row := 0; row < dr.Height; row++ {
			di := ((dr.Y+row)*b.width + dr.X) * bpp
			si := ((sy+row)*src.width + sx) * bpp
			copy(b.data[di:di+dr.Width*bpp], src.data[si:si+dr.Width*bpp])
		}
		return
	}
	for row := 0; row < dr.Height; row++ {
		for col := 0; col < dr.Width; col++ {
			c, _ := src.PixelAt(sx+col, sy+row)
			b.SetPixel(dr.X+col, dr.Y+row, c)
		}
	}
}

// Clone returns an independent copy of the buffer sharing no storage.
func (b *Buffer) Clone() *Buffer {
	dup := NewBuffer(b.format, b.width, b.height)
	copy(dup.data, b.data)
	return dup
}

// ToImage converts the buffer to a straight-alpha image.NRGBA.
func (b *Buffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	if b.format == FormatRGBA8 {
		copy(img.Pix, b.data)
		return img
	}
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c, _ := b.PixelAt(x, y)
			img.Set(x, y, c.Color())
		}
	}
	return img
}

// FromImage creates an RGBA8 buffer from any image.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	buf := NewBuffer(FormatRGBA8, bounds.Dx(), bounds.Dy())
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, bounds.Min, xdraw.Src)
	copy(buf.data, dst.Pix)
	return buf
}
