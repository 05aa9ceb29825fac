package state

import (
	"log"
	"sync"

	"SketchBoard/internal/geom"
	"SketchBoard/internal/history"
)

// Store owns the document: elements in z-order, the selection, the viewport
// and style defaults, plus the undo history. It is the only writer of that
// state. Element values handed out are live; callers that keep them across
// events must Clone them.
type Store struct {
	mu        sync.RWMutex
	elements  []Element
	selection []string
	viewport  Viewport
	style     Style
	history   *history.Manager[[]Element]
	clock     revisionClock
	content   revisionClock

	// OnChange, when set, is called after every mutation with the new
	// revision. It runs outside the store lock.
	OnChange func(revision uint64)
}

// Option configures a Store.
type Option func(*Store)

// WithHistoryLimit overrides the number of undo steps kept.
func WithHistoryLimit(n int) Option {
	return func(s *Store) { s.history = history.New([]Element{}, n) }
}

// WithStyle sets the defaults for new elements.
func WithStyle(style Style) Option {
	return func(s *Store) { s.style = style }
}

// NewStore returns an empty document.
func NewStore(opts ...Option) *Store {
	s := &Store{
		elements: []Element{},
		viewport: DefaultViewport(),
		style:    DefaultStyle(),
		history:  history.New([]Element{}, history.DefaultLimit),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Elements returns the elements in z-order (last is topmost).
func (s *Store) Elements() []Element {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Element(nil), s.elements...)
}

// Snapshot returns deep copies of the elements, taken under the lock, for
// readers on other goroutines.
func (s *Store) Snapshot() []Element {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CloneAll(s.elements)
}

// Element looks an element up by id.
func (s *Store) Element(id string) (Element, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, false
	}
	return s.elements[i], true
}

func (s *Store) indexOf(id string) int {
	for i, e := range s.elements {
		if e.Common().ID == id {
			return i
		}
	}
	return -1
}

// AddElement appends e on top of the z-order and checkpoints.
func (s *Store) AddElement(e Element) {
	s.mutate(true, func() {
		s.elements = append(s.elements, e)
	})
	log.Printf("[STORE] added %s %s", e.Kind(), e.Common().ID)
}

// InsertElement appends e on top of the z-order without a checkpoint. The
// caller either records it later with Checkpoint or takes it back with
// RemoveElement, leaving history as it was.
func (s *Store) InsertElement(e Element) {
	s.mutate(false, func() {
		s.elements = append(s.elements, e)
		s.content.tick()
	})
}

// RemoveElement drops one element without a checkpoint.
func (s *Store) RemoveElement(id string) bool {
	found := false
	s.mutate(false, func() {
		if i := s.indexOf(id); i >= 0 {
			s.elements = append(s.elements[:i:i], s.elements[i+1:]...)
			s.selection = pruneIDs(s.selection, s.elements)
			s.content.tick()
			found = true
		}
	})
	return found
}

// Checkpoint records the current elements as an undo step.
func (s *Store) Checkpoint() {
	s.mutate(true, func() {})
}

// DeleteElement removes one element and checkpoints. Unknown ids are ignored.
func (s *Store) DeleteElement(id string) bool {
	return s.DeleteElements([]string{id}) > 0
}

// DeleteElements removes every listed element in one checkpoint and returns
// how many were removed.
func (s *Store) DeleteElements(ids []string) int {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	removed := 0
	s.mutate(false, func() {
		kept := s.elements[:0:0]
		for _, e := range s.elements {
			if drop[e.Common().ID] {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		if removed == 0 {
			return
		}
		s.elements = kept
		s.selection = pruneIDs(s.selection, s.elements)
		s.checkpoint()
	})
	if removed > 0 {
		log.Printf("[STORE] deleted %d element(s)", removed)
	}
	return removed
}

// ClearAll removes every element and checkpoints.
func (s *Store) ClearAll() {
	s.mutate(true, func() {
		s.elements = []Element{}
		s.selection = nil
	})
	log.Println("[STORE] cleared")
}

// ReplaceAll swaps in a whole new element list (load, paste) and checkpoints.
func (s *Store) ReplaceAll(elements []Element) {
	s.mutate(true, func() {
		s.elements = append([]Element{}, elements...)
		s.selection = pruneIDs(s.selection, s.elements)
	})
	log.Printf("[STORE] replaced document with %d element(s)", len(elements))
}

// UpdateElement patches one element in place. It does not checkpoint: the
// change becomes part of whatever the next structural edit records.
func (s *Store) UpdateElement(id string, patch func(Element)) bool {
	found := false
	s.mutate(false, func() {
		if i := s.indexOf(id); i >= 0 {
			patch(s.elements[i])
			s.content.tick()
			found = true
		}
	})
	return found
}

// UpdateSelected patches every selected element in place, without a checkpoint.
func (s *Store) UpdateSelected(patch func(Element)) {
	s.mutate(false, func() {
		for _, id := range s.selection {
			if i := s.indexOf(id); i >= 0 {
				patch(s.elements[i])
				s.content.tick()
			}
		}
	})
}

// Undo restores the previous checkpoint. It is a no-op at the start of history.
func (s *Store) Undo() bool {
	return s.travel(s.history.Undo)
}

// Redo re-applies the next checkpoint. It is a no-op at the end of history.
func (s *Store) Redo() bool {
	return s.travel(s.history.Redo)
}

func (s *Store) travel(step func() ([]Element, bool)) bool {
	ok := false
	s.mutate(false, func() {
		var snap []Element
		if snap, ok = step(); ok {
			s.elements = CloneAll(snap)
			s.selection = pruneIDs(s.selection, s.elements)
			s.content.tick()
		}
	})
	return ok
}

func (s *Store) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.CanUndo()
}

func (s *Store) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.CanRedo()
}

// HistoryDepth reports the available undo and redo steps.
func (s *Store) HistoryDepth() (past, future int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Depth()
}

// ResetHistory makes the current elements the only checkpoint.
func (s *Store) ResetHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Reset(CloneAll(s.elements))
}

// checkpoint must be called with the lock held.
func (s *Store) checkpoint() {
	s.history.Push(CloneAll(s.elements))
	s.content.tick()
}

// mutate runs fn under the write lock, optionally checkpoints, bumps the
// revision and notifies OnChange.
func (s *Store) mutate(checkpoint bool, fn func()) {
	s.mu.Lock()
	fn()
	if checkpoint {
		s.checkpoint()
	}
	rev := s.clock.tick()
	onChange := s.OnChange
	s.mu.Unlock()

	if onChange != nil {
		onChange(rev)
	}
}

// Revision increases on every mutation.
func (s *Store) Revision() uint64 { return s.clock.now() }

// ContentRevision increases only when the elements change. Viewport,
// selection and style edits leave it alone.
func (s *Store) ContentRevision() uint64 { return s.content.now() }

// Selection returns the selected ids in selection order.
func (s *Store) Selection() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.selection...)
}

// SelectedElements returns the selected elements in z-order.
func (s *Store) SelectedElements() []Element {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Element, 0, len(s.selection))
	for _, e := range s.elements {
		if containsID(s.selection, e.Common().ID) {
			out = append(out, e)
		}
	}
	return out
}

func (s *Store) IsSelected(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return containsID(s.selection, id)
}

// SetSelection replaces the selection. Ids that name no element are dropped.
func (s *Store) SetSelection(ids []string) {
	s.mutate(false, func() {
		s.selection = pruneIDs(UnionIDs(nil, ids), s.elements)
	})
}

// ToggleSelection adds or removes one id.
func (s *Store) ToggleSelection(id string) {
	s.mutate(false, func() {
		s.selection = pruneIDs(toggleID(s.selection, id), s.elements)
	})
}

func (s *Store) ClearSelection() {
	s.mutate(false, func() { s.selection = nil })
}

// SelectAll selects every element.
func (s *Store) SelectAll() {
	s.mutate(false, func() {
		ids := make([]string, len(s.elements))
		for i, e := range s.elements {
			ids[i] = e.Common().ID
		}
		s.selection = ids
	})
}

func containsID(ids []string, id string) bool {
	for _, have := range ids {
		if have == id {
			return true
		}
	}
	return false
}

func (s *Store) Viewport() Viewport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewport
}

// SetViewport replaces the viewport, clamping zoom.
func (s *Store) SetViewport(v Viewport) {
	v.Zoom = ClampZoom(v.Zoom)
	s.mutate(false, func() { s.viewport = v })
}

// SetZoom changes zoom around the screen origin.
func (s *Store) SetZoom(z float64) {
	s.mutate(false, func() { s.viewport.Zoom = ClampZoom(z) })
}

// ZoomAt multiplies zoom by factor keeping the world point under the screen
// anchor fixed.
func (s *Store) ZoomAt(anchor geom.Point, factor float64) {
	s.mutate(false, func() {
		s.viewport = s.viewport.ZoomedAt(anchor, s.viewport.Zoom*factor)
	})
}

// PanBy shifts the offset by a world-space delta.
func (s *Store) PanBy(dx, dy float64) {
	s.mutate(false, func() {
		s.viewport.OffsetX += dx
		s.viewport.OffsetY += dy
	})
}

func (s *Store) Style() Style {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.style
}

func (s *Store) SetStyle(style Style) {
	s.mutate(false, func() { s.style = style })
}
