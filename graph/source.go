package graph

import "github.com/gopix/pixed"

// Source exposes a pixel buffer as a graph node. The buffer's top-left
// pixel sits at the graph-space origin; a Translate node positions it.
type Source struct {
	buf *pixed.Buffer
}

// NewSource creates a source node reading from buf.
func NewSource(buf *pixed.Buffer) *Source {
	return &Source{buf: buf}
}

// SetBuffer swaps the backing buffer. Used when a drawable's buffer is
// replaced so the graph follows without rewiring.
func (s *Source) SetBuffer(buf *pixed.Buffer) { s.buf = buf }

// Buffer returns the backing buffer.
func (s *Source) Buffer() *pixed.Buffer { return s.buf }

// Extent returns the buffer bounds, or an empty region without a buffer.
func (s *Source) Extent() pixed.Region {
	if s.buf == nil {
		return pixed.Region{}
	}
	return s.buf.Bounds()
}

// Render copies the requested region out of the buffer. Pixels outside
// the buffer are transparent.
func (s *Source) Render(r pixed.Region) *pixed.Buffer {
	out := newOutput(r)
	if s.buf != nil {
		out.Copy(0, 0, s.buf, r)
	}
	return out
}
