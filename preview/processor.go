package preview

import (
	"github.com/gopix/pixed"
	"github.com/gopix/pixed/graph"
)

// chunkSize is the side of one work square in pixels. Chunks are
// generated row-major so pixel delivery is strictly in reading order.
const chunkSize = 64

// processor slices a region into row-major chunks and pushes each
// through a sink node, one chunk per Step call.
type processor struct {
	sink   *graph.Sink
	region pixed.Region
	x, y   int
	done   bool
}

func newProcessor(sink *graph.Sink, region pixed.Region) *processor {
	p := &processor{sink: sink, region: region}
	if region.Empty() {
		p.done = true
	} else {
		p.x = region.X
		p.y = region.Y
	}
	return p
}

// Pending reports whether chunks remain.
func (p *processor) Pending() bool { return !p.done }

// Step processes up to n chunks and reports whether work remains.
func (p *processor) Step(n int) bool {
	for i := 0; i < n && !p.done; i++ {
		w := minInt(chunkSize, p.region.Right()-p.x)
		h := minInt(chunkSize, p.region.Bottom()-p.y)
		p.sink.Process(pixed.Rect(p.x, p.y, w, h))

		p.x += chunkSize
		if p.x >= p.region.Right() {
			p.x = p.region.X
			p.y += chunkSize
			if p.y >= p.region.Bottom() {
				p.done = true
			}
		}
	}
	return !p.done
}

// Drain processes all remaining chunks synchronously.
func (p *processor) Drain() {
	for p.Step(1) {
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
