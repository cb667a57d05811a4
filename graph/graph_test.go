package graph

import (
	"testing"

	"github.com/gopix/pixed"
	"github.com/gopix/pixed/filter"
)

func solidBuffer(w, h int, c pixed.RGBA) *pixed.Buffer {
	b := pixed.NewBuffer(pixed.FormatRGBA8, w, h)
	b.Fill(b.Bounds(), c)
	return b
}

func TestSourceRendersWindow(t *testing.T) {
	buf := pixed.NewBuffer(pixed.FormatRGBA8, 8, 8)
	buf.SetPixel(5, 5, pixed.Red)
	src := NewSource(buf)

	if got := src.Extent(); got != pixed.Rect(0, 0, 8, 8) {
		t.Fatalf("Extent = %v, want %v", got, pixed.Rect(0, 0, 8, 8))
	}

	out := src.Render(pixed.Rect(4, 4, 3, 3))
	if out.Width() != 3 || out.Height() != 3 {
		t.Fatalf("render size = %dx%d, want 3x3", out.Width(), out.Height())
	}
	if got, _ := out.PixelAt(1, 1); got != pixed.Red {
		t.Errorf("pixel (5,5) through window = %v, want red", got)
	}
	if got, _ := out.PixelAt(0, 0); got != (pixed.RGBA{}) {
		t.Errorf("pixel (4,4) through window = %v, want transparent", got)
	}
}

func TestSourceRendersBeyondExtentAsTransparent(t *testing.T) {
	src := NewSource(solidBuffer(4, 4, pixed.Green))

	out := src.Render(pixed.Rect(2, 2, 4, 4))
	if got, _ := out.PixelAt(0, 0); got != pixed.Green {
		t.Errorf("in-extent pixel = %v, want green", got)
	}
	if got, _ := out.PixelAt(3, 3); got != (pixed.RGBA{}) {
		t.Errorf("out-of-extent pixel = %v, want transparent", got)
	}
}

func TestCrop(t *testing.T) {
	src := NewSource(solidBuffer(8, 8, pixed.Blue))
	crop := NewCrop(src, pixed.Rect(2, 2, 4, 4))

	if got := crop.Extent(); got != pixed.Rect(2, 2, 4, 4) {
		t.Fatalf("Extent = %v, want crop rect", got)
	}

	out := crop.Render(pixed.Rect(0, 0, 8, 8))
	if got, _ := out.PixelAt(1, 1); got != (pixed.RGBA{}) {
		t.Errorf("pixel outside crop = %v, want transparent", got)
	}
	if got, _ := out.PixelAt(2, 2); got != pixed.Blue {
		t.Errorf("pixel inside crop = %v, want blue", got)
	}
	if got, _ := out.PixelAt(6, 6); got != (pixed.RGBA{}) {
		t.Errorf("pixel past crop = %v, want transparent", got)
	}
}

func TestTranslate(t *testing.T) {
	buf := pixed.NewBuffer(pixed.FormatRGBA8, 4, 4)
	buf.SetPixel(0, 0, pixed.Red)
	tr := NewTranslate(NewSource(buf), 10, 20)

	if got := tr.Extent(); got != pixed.Rect(10, 20, 4, 4) {
		t.Fatalf("Extent = %v, want %v", got, pixed.Rect(10, 20, 4, 4))
	}

	out := tr.Render(pixed.Rect(10, 20, 2, 2))
	if got, _ := out.PixelAt(0, 0); got != pixed.Red {
		t.Errorf("translated pixel = %v, want red", got)
	}
}

func TestComposeNodeUnionExtentAndBlend(t *testing.T) {
	base := NewSource(solidBuffer(4, 4, pixed.Red))
	aux := NewTranslate(NewSource(solidBuffer(4, 4, pixed.Blue)), 2, 0)
	comp := NewCompose(base, aux, pixed.BlendNormal, 1)

	if got := comp.Extent(); got != pixed.Rect(0, 0, 6, 4) {
		t.Fatalf("Extent = %v, want union %v", got, pixed.Rect(0, 0, 6, 4))
	}

	out := comp.Render(pixed.Rect(0, 0, 6, 4))
	if got, _ := out.PixelAt(0, 0); got != pixed.Red {
		t.Errorf("base-only pixel = %v, want red", got)
	}
	if got, _ := out.PixelAt(3, 0); got != pixed.Blue {
		t.Errorf("overlapping pixel = %v, want blue over red", got)
	}
	if got, _ := out.PixelAt(5, 0); got != pixed.Blue {
		t.Errorf("aux-only pixel = %v, want blue", got)
	}
}

func TestComposeNodeReplaceOutsideAuxExtentKeepsBase(t *testing.T) {
	base := NewSource(solidBuffer(6, 6, pixed.Red))
	aux := NewTranslate(NewSource(solidBuffer(2, 2, pixed.Blue)), 4, 4)
	comp := NewCompose(base, aux, pixed.BlendReplace, 1)

	out := comp.Render(pixed.Rect(0, 0, 6, 6))
	if got, _ := out.PixelAt(0, 0); got != pixed.Red {
		t.Errorf("pixel outside aux extent = %v, want base red", got)
	}
	if got, _ := out.PixelAt(4, 4); got != pixed.Blue {
		t.Errorf("pixel inside aux extent = %v, want replaced blue", got)
	}
	if got, _ := out.PixelAt(3, 4); got != pixed.Red {
		t.Errorf("pixel bordering aux extent = %v, want base red", got)
	}
}

func TestCropExtentClippedToInput(t *testing.T) {
	src := NewSource(solidBuffer(4, 4, pixed.Blue))

	crop := NewCrop(src, pixed.Rect(-2, -2, 8, 8))
	if got := crop.Extent(); got != pixed.Rect(0, 0, 4, 4) {
		t.Errorf("oversized crop Extent = %v, want input extent", got)
	}

	crop.SetRect(pixed.Rect(6, 6, 2, 2))
	if got := crop.Extent(); !got.Empty() {
		t.Errorf("disjoint crop Extent = %v, want empty", got)
	}
}

func TestComposeNodeNilAuxPassesThrough(t *testing.T) {
	base := NewSource(solidBuffer(2, 2, pixed.Green))
	comp := NewCompose(base, nil, pixed.BlendNormal, 1)

	out := comp.Render(pixed.Rect(0, 0, 2, 2))
	if got, _ := out.PixelAt(1, 1); got != pixed.Green {
		t.Errorf("pass-through pixel = %v, want green", got)
	}
}

func TestComposeNodeOpacityZeroHidesAux(t *testing.T) {
	base := NewSource(solidBuffer(2, 2, pixed.Red))
	aux := NewSource(solidBuffer(2, 2, pixed.Blue))
	comp := NewCompose(base, aux, pixed.BlendNormal, 0)

	out := comp.Render(pixed.Rect(0, 0, 2, 2))
	if got, _ := out.PixelAt(0, 0); got != pixed.Red {
		t.Errorf("pixel with invisible aux = %v, want red", got)
	}
}

func TestFilterNode(t *testing.T) {
	src := NewSource(solidBuffer(4, 4, pixed.White))
	f := NewFilter(src, filter.Invert())

	out := f.Render(pixed.Rect(0, 0, 4, 4))
	got, _ := out.PixelAt(2, 2)
	want := pixed.RGBA{R: 0, G: 0, B: 0, A: 1}
	if got != want {
		t.Errorf("inverted white = %v, want %v", got, want)
	}
}

func TestSinkProcessWritesAndReports(t *testing.T) {
	src := NewSource(solidBuffer(8, 8, pixed.Red))
	dst := pixed.NewBuffer(pixed.FormatRGBA8, 8, 8)
	sink := NewSink(src, dst)

	var written []pixed.Region
	sink.SetOnWritten(func(r pixed.Region) { written = append(written, r) })

	sink.Process(pixed.Rect(2, 2, 3, 3))

	if got, _ := dst.PixelAt(2, 2); got != pixed.Red {
		t.Errorf("written pixel = %v, want red", got)
	}
	if got, _ := dst.PixelAt(1, 1); got != (pixed.RGBA{}) {
		t.Errorf("pixel outside processed region = %v, want untouched", got)
	}
	if len(written) != 1 || written[0] != pixed.Rect(2, 2, 3, 3) {
		t.Errorf("written callbacks = %v, want one call for (2,2,3,3)", written)
	}

	// Empty regions are ignored.
	sink.Process(pixed.Region{})
	if len(written) != 1 {
		t.Errorf("empty process fired callback, written = %v", written)
	}
}

func TestGraphPixelAt(t *testing.T) {
	g := New()
	if _, ok := g.PixelAt(0, 0); ok {
		t.Fatal("unwired graph PixelAt returned ok=true")
	}

	g.SetOutput(NewSource(solidBuffer(4, 4, pixed.Green)))
	got, ok := g.PixelAt(2, 2)
	if !ok || got != pixed.Green {
		t.Errorf("PixelAt = %v, %v; want green, true", got, ok)
	}
	if _, ok := g.PixelAt(4, 4); ok {
		t.Error("PixelAt outside extent returned ok=true")
	}
}

func TestGraphOutputSwapChangesComposite(t *testing.T) {
	red := NewSource(solidBuffer(2, 2, pixed.Red))
	blue := NewSource(solidBuffer(2, 2, pixed.Blue))

	g := New()
	g.SetOutput(red)
	if got, _ := g.PixelAt(0, 0); got != pixed.Red {
		t.Fatalf("pixel before swap = %v, want red", got)
	}

	g.SetOutput(blue)
	if got, _ := g.PixelAt(0, 0); got != pixed.Blue {
		t.Errorf("pixel after swap = %v, want blue", got)
	}
}

func TestProxyRewire(t *testing.T) {
	p := NewProxy(nil)
	out := p.Render(pixed.Rect(0, 0, 2, 2))
	if got, _ := out.PixelAt(0, 0); got != (pixed.RGBA{}) {
		t.Fatalf("unwired proxy pixel = %v, want transparent", got)
	}

	p.SetInput(NewSource(solidBuffer(2, 2, pixed.Red)))
	out = p.Render(pixed.Rect(0, 0, 2, 2))
	if got, _ := out.PixelAt(0, 0); got != pixed.Red {
		t.Errorf("wired proxy pixel = %v, want red", got)
	}
}
