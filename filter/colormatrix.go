package filter

import "github.com/gopix/pixed"

// ColorMatrix applies a 4x5 color transformation matrix to each pixel.
// The transformation is:
//
//	[R']   [a00 a01 a02 a03 a04]   [R]
//	[G'] = [a10 a11 a12 a13 a14] * [G]
//	[B']   [a20 a21 a22 a23 a24]   [B]
//	[A']   [a30 a31 a32 a33 a34]   [A]
//	                               [1]
//
// The fifth column provides bias/offset values. Components are in the
// [0, 1] range during transformation and clamped back afterwards.
type ColorMatrix struct {
	// Matrix is the 4x5 transformation matrix in row-major order.
	Matrix [20]float64

	name string
}

// Name returns the matrix's descriptive name.
func (m *ColorMatrix) Name() string {
	if m.name == "" {
		return "Color Matrix"
	}
	return m.name
}

// ExpandBounds returns the input bounds unchanged; the matrix is a point
// operation.
func (m *ColorMatrix) ExpandBounds(bounds pixed.Region) pixed.Region {
	return bounds
}

// Apply applies the matrix to every pixel in bounds.
func (m *ColorMatrix) Apply(src, dst *pixed.Buffer, bounds pixed.Region) {
	b, ok := clipBounds(src, dst, bounds)
	if !ok {
		return
	}
	mx := &m.Matrix
	for y := b.Y; y < b.Bottom(); y++ {
		for x := b.X; x < b.Right(); x++ {
			c, _ := src.PixelAt(x, y)
			dst.SetPixel(x, y, pixed.RGBA{
				R: mx[0]*c.R + mx[1]*c.G + mx[2]*c.B + mx[3]*c.A + mx[4],
				G: mx[5]*c.R + mx[6]*c.G + mx[7]*c.B + mx[8]*c.A + mx[9],
				B: mx[10]*c.R + mx[11]*c.G + mx[12]*c.B + mx[13]*c.A + mx[14],
				A: mx[15]*c.R + mx[16]*c.G + mx[17]*c.B + mx[18]*c.A + mx[19],
			})
		}
	}
}

// Identity returns a matrix that passes pixels through unchanged.
func Identity() *ColorMatrix {
	return &ColorMatrix{
		name: "Identity",
		Matrix: [20]float64{
			1, 0, 0, 0, 0,
			0, 1, 0, 0, 0,
			0, 0, 1, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// Invert returns a matrix that inverts the color channels, leaving alpha
// untouched.
func Invert() *ColorMatrix {
	return &ColorMatrix{
		name: "Invert",
		Matrix: [20]float64{
			-1, 0, 0, 0, 1,
			0, -1, 0, 0, 1,
			0, 0, -1, 0, 1,
			0, 0, 0, 1, 0,
		},
	}
}

// Brightness returns a matrix scaling the color channels by factor
// (0 = black, 1 = unchanged, 2 = twice as bright).
func Brightness(factor float64) *ColorMatrix {
	return &ColorMatrix{
		name: "Brightness",
		Matrix: [20]float64{
			factor, 0, 0, 0, 0,
			0, factor, 0, 0, 0,
			0, 0, factor, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// Contrast returns a matrix adjusting contrast around mid-gray
// (0 = gray, 1 = unchanged, 2 = high contrast).
func Contrast(factor float64) *ColorMatrix {
	offset := 0.5 * (1 - factor)
	return &ColorMatrix{
		name: "Contrast",
		Matrix: [20]float64{
			factor, 0, 0, 0, offset,
			0, factor, 0, 0, offset,
			0, 0, factor, 0, offset,
			0, 0, 0, 1, 0,
		},
	}
}

// Saturation returns a matrix blending between luminance (factor 0,
// grayscale) and identity (factor 1), using Rec. 709 weights.
func Saturation(factor float64) *ColorMatrix {
	const (
		lumR = 0.2126
		lumG = 0.7152
		lumB = 0.0722
	)
	inv := 1 - factor
	return &ColorMatrix{
		name: "Saturation",
		Matrix: [20]float64{
			lumR*inv + factor, lumG * inv, lumB * inv, 0, 0,
			lumR * inv, lumG*inv + factor, lumB * inv, 0, 0,
			lumR * inv, lumG * inv, lumB*inv + factor, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// GrayscaleMatrix returns a matrix converting to grayscale via Rec. 709
// luminance.
func GrayscaleMatrix() *ColorMatrix {
	m := Saturation(0)
	m.name = "Grayscale"
	return m
}

// SepiaMatrix returns a matrix applying a sepia tone.
func SepiaMatrix() *ColorMatrix {
	return &ColorMatrix{
		name: "Sepia",
		Matrix: [20]float64{
			0.393, 0.769, 0.189, 0, 0,
			0.349, 0.686, 0.168, 0, 0,
			0.272, 0.534, 0.131, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}
