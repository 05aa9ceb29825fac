// Package history keeps a linear undo/redo stack of whole-document snapshots.
package history

import "log"

// DefaultLimit is the number of past snapshots retained.
const DefaultLimit = 50

// Manager tracks past, present and future snapshots. Callers own cloning:
// whatever is pushed must not be mutated afterwards.
type Manager[S any] struct {
	past    []S
	present S
	future  []S
	limit   int
}

// New returns a manager whose present is initial.
func New[S any](initial S, limit int) *Manager[S] {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Manager[S]{present: initial, limit: limit}
}

// Push records a checkpoint: the old present moves to the past, current
// becomes the present and the redo stack is dropped.
func (m *Manager[S]) Push(current S) {
	m.past = append(m.past, m.present)
	if over := len(m.past) - m.limit; over > 0 {
		m.past = append([]S(nil), m.past[over:]...)
	}
	m.present = current
	m.future = nil
}

// Undo steps back one checkpoint and returns the restored snapshot.
func (m *Manager[S]) Undo() (S, bool) {
	if len(m.past) == 0 {
		var zero S
		return zero, false
	}
	last := len(m.past) - 1
	prev := m.past[last]
	m.past = m.past[:last]
	m.future = append([]S{m.present}, m.future...)
	m.present = prev
	log.Printf("[HISTORY] undo (past=%d future=%d)", len(m.past), len(m.future))
	return prev, true
}

// Redo re-applies the most recently undone snapshot.
func (m *Manager[S]) Redo() (S, bool) {
	if len(m.future) == 0 {
		var zero S
		return zero, false
	}
	next := m.future[0]
	m.future = m.future[1:]
	m.past = append(m.past, m.present)
	m.present = next
	log.Printf("[HISTORY] redo (past=%d future=%d)", len(m.past), len(m.future))
	return next, true
}

func (m *Manager[S]) CanUndo() bool { return len(m.past) > 0 }
func (m *Manager[S]) CanRedo() bool { return len(m.future) > 0 }

// Present returns the snapshot taken at the last checkpoint.
func (m *Manager[S]) Present() S { return m.present }

// Depth returns the number of undo and redo steps available.
func (m *Manager[S]) Depth() (past, future int) { return len(m.past), len(m.future) }

// Past returns a copy of the undo stack, oldest first.
func (m *Manager[S]) Past() []S { return append([]S(nil), m.past...) }

// Reset forgets all history and starts over from initial.
func (m *Manager[S]) Reset(initial S) {
	m.past = nil
	m.future = nil
	m.present = initial
}
