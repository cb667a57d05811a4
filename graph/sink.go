package graph

import "github.com/gopix/pixed"

// Sink is the write-buffer end of a pipeline: processing a region renders
// the input and writes the result into a destination buffer at the same
// graph coordinates, then reports the written rectangle.
type Sink struct {
	in        Node
	dst       *pixed.Buffer
	onWritten func(pixed.Region)
}

// NewSink creates a sink writing into dst.
func NewSink(in Node, dst *pixed.Buffer) *Sink {
	return &Sink{in: in, dst: dst}
}

// SetBuffer swaps the destination buffer.
func (s *Sink) SetBuffer(dst *pixed.Buffer) { s.dst = dst }

// SetOnWritten registers the data-written callback, invoked after each
// processed chunk with the chunk's rectangle.
func (s *Sink) SetOnWritten(fn func(pixed.Region)) { s.onWritten = fn }

// Extent returns the input extent.
func (s *Sink) Extent() pixed.Region {
	if s.in == nil {
		return pixed.Region{}
	}
	return s.in.Extent()
}

// Render renders the input without writing to the destination.
func (s *Sink) Render(r pixed.Region) *pixed.Buffer {
	return renderOrBlank(s.in, r)
}

// Process renders the input for r, writes the result into the
// destination buffer, and fires the data-written callback. Empty regions
// are ignored.
func (s *Sink) Process(r pixed.Region) {
	if r.Empty() || s.in == nil || s.dst == nil {
		return
	}
	rendered := s.in.Render(r)
	s.dst.Copy(r.X, r.Y, rendered, rendered.Bounds())
	if s.onWritten != nil {
		s.onWritten(r)
	}
}
