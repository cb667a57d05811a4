// Package blend provides the pixel blend math shared by the compositing
// graph and the preview splice step.
package blend

import "github.com/gopix/pixed"

// Compose combines an auxiliary color over a base color using the given
// blend mode, with the auxiliary contribution scaled by opacity in
// [0, 1].
func Compose(base, aux pixed.RGBA, mode pixed.BlendMode, opacity float64) pixed.RGBA {
	if opacity <= 0 {
		return base
	}
	if opacity > 1 {
		opacity = 1
	}

	switch mode {
	case pixed.BlendReplace:
		return lerp(base, aux, opacity)
	case pixed.BlendMultiply:
		return sourceOver(separable(base, aux, multiply), base, opacity)
	case pixed.BlendScreen:
		return sourceOver(separable(base, aux, screen), base, opacity)
	default:
		return sourceOver(aux, base, opacity)
	}
}

// sourceOver blends src over dst using alpha compositing, with src's
// alpha scaled by opacity.
func sourceOver(src, dst pixed.RGBA, opacity float64) pixed.RGBA {
	srcA := src.A * opacity
	dstA := dst.A
	invSrcA := 1.0 - srcA

	outA := srcA + dstA*invSrcA
	if outA == 0 {
		return pixed.RGBA{}
	}

	return pixed.RGBA{
		R: (src.R*srcA + dst.R*dstA*invSrcA) / outA,
		G: (src.G*srcA + dst.G*dstA*invSrcA) / outA,
		B: (src.B*srcA + dst.B*dstA*invSrcA) / outA,
		A: outA,
	}
}

// separable applies a per-channel blend function to the color channels,
// keeping the auxiliary alpha. The result is then composited source-over
// by the caller.
func separable(base, aux pixed.RGBA, f func(cb, cs float64) float64) pixed.RGBA {
	return pixed.RGBA{
		R: f(base.R, aux.R),
		G: f(base.G, aux.G),
		B: f(base.B, aux.B),
		A: aux.A,
	}
}

func multiply(cb, cs float64) float64 { return cb * cs }

func screen(cb, cs float64) float64 { return cb + cs - cb*cs }

// lerp interpolates componentwise between a and b.
func lerp(a, b pixed.RGBA, t float64) pixed.RGBA {
	return pixed.RGBA{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}
