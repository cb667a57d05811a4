package graph

import (
	"github.com/gopix/pixed"
	"github.com/gopix/pixed/filter"
)

// Filter runs a filter operation over its input. The node renders enough
// input context for operations whose output depends on neighboring
// pixels (blurs), as declared by the operation's ExpandBounds.
type Filter struct {
	in Node
	op filter.Op
}

// NewFilter creates a filter node applying op to in.
func NewFilter(in Node, op filter.Op) *Filter {
	return &Filter{in: in, op: op}
}

// Op returns the filter operation.
func (f *Filter) Op() filter.Op { return f.op }

// Extent returns the input extent; the defined filter operations never
// grow the content region.
func (f *Filter) Extent() pixed.Region {
	if f.in == nil {
		return pixed.Region{}
	}
	return f.in.Extent()
}

// Render renders the (expanded) input region, applies the operation, and
// returns the requested slice of the result.
func (f *Filter) Render(r pixed.Region) *pixed.Buffer {
	if f.op == nil || f.in == nil {
		return renderOrBlank(f.in, r)
	}
	exp := f.op.ExpandBounds(r)
	src := f.in.Render(exp)
	dst := pixed.NewBuffer(pixed.FormatRGBA8, exp.Width, exp.Height)
	f.op.Apply(src, dst, r.Translate(-exp.X, -exp.Y))

	out := newOutput(r)
	out.Copy(0, 0, dst, r.Translate(-exp.X, -exp.Y))
	return out
}
