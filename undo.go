package pixed

// UndoRecord captures the pre-edit pixels of a drawable region so the
// edit can be reverted. The snapshot's top-left pixel corresponds to the
// anchor's top-left corner in drawable space.
type UndoRecord struct {
	Description string
	Snapshot    *Buffer
	Anchor      Region
}

// UndoSink receives undo records when an edit is committed. Failures are
// not recoverable by the editing core; they are logged and the commit
// proceeds.
type UndoSink interface {
	Push(rec UndoRecord) error
}

// UndoStack is an in-memory UndoSink keeping records in push order. It is
// the reference sink used by tests and the demo command; a real host
// replaces it with its own history.
type UndoStack struct {
	records []UndoRecord
}

// Push appends a record to the stack. It never fails.
func (s *UndoStack) Push(rec UndoRecord) error {
	s.records = append(s.records, rec)
	return nil
}

// Pop removes and returns the most recent record. ok is false when the
// stack is empty.
func (s *UndoStack) Pop() (UndoRecord, bool) {
	if len(s.records) == 0 {
		return UndoRecord{}, false
	}
	rec := s.records[len(s.records)-1]
	s.records = s.records[:len(s.records)-1]
	return rec, true
}

// Len returns the number of records held.
func (s *UndoStack) Len() int { return len(s.records) }
