package filter

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"

	"github.com/gopix/pixed"
)

// imageOp adapts a whole-image function from the bild library into an
// Op. The function runs over the (already expanded) source content and
// only the bounds rectangle of its result is written back.
type imageOp struct {
	name   string
	radius int
	fn     func(image.Image) *image.RGBA
}

// Name returns the operation name.
func (o *imageOp) Name() string { return o.name }

// ExpandBounds grows the bounds by the operation's support radius.
func (o *imageOp) ExpandBounds(bounds pixed.Region) pixed.Region {
	if o.radius <= 0 {
		return bounds
	}
	return pixed.Rect(
		bounds.X-o.radius,
		bounds.Y-o.radius,
		bounds.Width+2*o.radius,
		bounds.Height+2*o.radius,
	)
}

// Apply runs the image function over src and copies the bounds slice of
// the result into dst.
func (o *imageOp) Apply(src, dst *pixed.Buffer, bounds pixed.Region) {
	b, ok := clipBounds(src, dst, bounds)
	if !ok {
		return
	}
	result := pixed.FromImage(o.fn(src.ToImage()))
	dst.Copy(b.X, b.Y, result, b)
}

// BildInvert inverts the color channels using bild/effect.
func BildInvert() Op {
	return &imageOp{name: "Invert", fn: effect.Invert}
}

// Grayscale converts to grayscale using bild/effect.
func Grayscale() Op {
	return &imageOp{name: "Grayscale", fn: effect.Grayscale}
}

// Sepia applies a sepia tone using bild/effect.
func Sepia() Op {
	return &imageOp{name: "Sepia", fn: effect.Sepia}
}

// GaussianBlur blurs with a gaussian kernel of the given radius using
// bild/blur.
func GaussianBlur(radius float64) Op {
	return &imageOp{
		name:   "Gaussian Blur",
		radius: int(math.Ceil(radius)),
		fn: func(img image.Image) *image.RGBA {
			return blur.Gaussian(img, radius)
		},
	}
}

// BoxBlur blurs with a box kernel of the given radius using bild/blur.
func BoxBlur(radius float64) Op {
	return &imageOp{
		name:   "Box Blur",
		radius: int(math.Ceil(radius)),
		fn: func(img image.Image) *image.RGBA {
			return blur.Box(img, radius)
		},
	}
}

// AdjustBrightness changes brightness by change in [-1, 1] using
// bild/adjust.
func AdjustBrightness(change float64) Op {
	return &imageOp{
		name: "Brightness",
		fn: func(img image.Image) *image.RGBA {
			return adjust.Brightness(img, change)
		},
	}
}

// AdjustContrast changes contrast by change in [-1, 1] using bild/adjust.
func AdjustContrast(change float64) Op {
	return &imageOp{
		name: "Contrast",
		fn: func(img image.Image) *image.RGBA {
			return adjust.Contrast(img, change)
		},
	}
}

// AdjustSaturation changes saturation by change in [-1, 1] using
// bild/adjust.
func AdjustSaturation(change float64) Op {
	return &imageOp{
		name: "Saturation",
		fn: func(img image.Image) *image.RGBA {
			return adjust.Saturation(img, change)
		},
	}
}
