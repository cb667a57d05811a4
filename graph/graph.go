package graph

import "github.com/gopix/pixed"

// Graph is a node container with a single output proxy. Rewiring the
// topology means recomputing the desired output chain and swapping it in
// with SetOutput; edges are never patched incrementally.
//
// Graph itself implements Node, so one graph can feed another (a parent
// visual stack consumes a drawable's graph this way).
type Graph struct {
	output Node
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{}
}

// SetOutput wires n to the graph's output proxy.
func (g *Graph) SetOutput(n Node) { g.output = n }

// Output returns the node currently wired to the output proxy.
func (g *Graph) Output() Node { return g.output }

// Extent returns the output node's extent, or an empty region when
// nothing is wired.
func (g *Graph) Extent() pixed.Region {
	if g.output == nil {
		return pixed.Region{}
	}
	return g.output.Extent()
}

// Render renders the output node. An unwired or empty request yields a
// transparent buffer (nil for empty requests).
func (g *Graph) Render(r pixed.Region) *pixed.Buffer {
	if r.Empty() {
		return nil
	}
	return renderOrBlank(g.output, r)
}

// PixelAt samples a single pixel of the graph's composite output.
// ok is false when the point lies outside the output extent.
func (g *Graph) PixelAt(x, y int) (pixed.RGBA, bool) {
	if g.output == nil || !g.output.Extent().Contains(x, y) {
		return pixed.RGBA{}, false
	}
	buf := g.output.Render(pixed.Rect(x, y, 1, 1))
	c, _ := buf.PixelAt(0, 0)
	return c, true
}

// Proxy is a settable pass-through node. It stands in for a graph's
// input proxy: a parent wires the composite below a drawable into the
// proxy, and the drawable's mode node reads it as its base input.
type Proxy struct {
	in Node
}

// NewProxy creates a proxy over in (nil means transparent).
func NewProxy(in Node) *Proxy {
	return &Proxy{in: in}
}

// SetInput rewires the proxy.
func (p *Proxy) SetInput(n Node) { p.in = n }

// Input returns the wired node.
func (p *Proxy) Input() Node { return p.in }

// Extent returns the wired node's extent.
func (p *Proxy) Extent() pixed.Region {
	if p.in == nil {
		return pixed.Region{}
	}
	return p.in.Extent()
}

// Render renders the wired node, or transparency when unwired.
func (p *Proxy) Render(r pixed.Region) *pixed.Buffer {
	return renderOrBlank(p.in, r)
}
