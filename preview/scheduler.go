// Package preview implements the incremental, cancelable filter preview
// pipeline: a private snapshot of the edited region, a filter graph
// processed in bounded work slices on a cooperative scheduler, and
// commit/clear/abort finalization with undo recording.
package preview

// Scheduler drives cooperative ticks. Schedule registers a tick function
// to be called repeatedly until it returns false (no more work); the
// returned cancel function stops future calls. Scheduling never runs the
// tick synchronously, so callers are not blocked.
//
// The pipeline is single-threaded: a scheduler must invoke ticks on the
// same logical thread that mutates drawables.
type Scheduler interface {
	Schedule(tick func() bool) (cancel func())
}

// idleTask is one scheduled tick function.
type idleTask struct {
	tick     func() bool
	canceled bool
}

// IdleScheduler queues ticks and runs them when the host pumps it,
// mirroring an event loop's idle callbacks. The zero value is ready to
// use.
type IdleScheduler struct {
	tasks []*idleTask
}

// Schedule enqueues tick for execution by subsequent Pump calls.
func (s *IdleScheduler) Schedule(tick func() bool) (cancel func()) {
	t := &idleTask{tick: tick}
	s.tasks = append(s.tasks, t)
	return func() { t.canceled = true }
}

// Pump runs one tick of the oldest live task. It returns false when no
// work remains.
func (s *IdleScheduler) Pump() bool {
	for len(s.tasks) > 0 {
		t := s.tasks[0]
		if t.canceled {
			s.tasks = s.tasks[1:]
			continue
		}
		if !t.tick() {
			t.canceled = true
			s.tasks = s.tasks[1:]
		}
		return len(s.tasks) > 0
	}
	return false
}

// Drain pumps until no work remains.
func (s *IdleScheduler) Drain() {
	for s.Pump() {
	}
}
