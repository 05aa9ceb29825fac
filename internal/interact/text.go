package interact

import (
	"math"
	"strings"
	"unicode/utf8"

	"SketchBoard/internal/state"
)

// textEdit is the single open text editor, keyed by element id. While it is
// open pointer input does not start gestures.
type textEdit struct {
	id       string
	original string
	created  bool
}

// glyphAdvance approximates the width of one character as a fraction of the
// font size; good enough to keep the hit box around typed text.
const glyphAdvance = 0.6

// Editing returns the id of the text element being edited.
func (m *Machine) Editing() (string, bool) {
	if m.edit == nil {
		return "", false
	}
	return m.edit.id, true
}

// BeginTextEdit opens the editor on an existing text element.
func (m *Machine) BeginTextEdit(id string) bool {
	e, ok := m.store.Element(id)
	if !ok {
		return false
	}
	t, ok := e.(*state.Text)
	if !ok {
		return false
	}
	if m.edit != nil && m.edit.id != id {
		m.CommitText()
	}
	m.edit = &textEdit{id: id, original: t.Text}
	return true
}

// TypeRune appends r to the edited text. '\n' starts a new line.
func (m *Machine) TypeRune(r rune) {
	m.editText(func(s string) string { return s + string(r) })
}

// Enter starts a new line, or ends the edit when the current line is empty.
// The empty trailing line is dropped on the way out.
func (m *Machine) Enter() {
	if m.edit == nil {
		return
	}
	text := ""
	if e, ok := m.store.Element(m.edit.id); ok {
		if t, ok := e.(*state.Text); ok {
			text = t.Text
		}
	}
	if text == "" || strings.HasSuffix(text, "\n") {
		m.Backspace()
		m.CommitText()
		return
	}
	m.TypeRune('\n')
}

// Backspace removes the last character of the edited text.
func (m *Machine) Backspace() {
	m.editText(func(s string) string {
		if s == "" {
			return s
		}
		_, size := utf8.DecodeLastRuneInString(s)
		return s[:len(s)-size]
	})
}

func (m *Machine) editText(fn func(string) string) {
	if m.edit == nil {
		return
	}
	m.store.UpdateElement(m.edit.id, func(e state.Element) {
		if t, ok := e.(*state.Text); ok {
			t.Text = fn(t.Text)
			fitText(t)
		}
	})
}

// CommitText closes the editor. A text box left empty is removed. A box
// created by this edit becomes an undo step only once it holds text.
func (m *Machine) CommitText() {
	edit := m.edit
	if edit == nil {
		return
	}
	m.edit = nil
	e, ok := m.store.Element(edit.id)
	if !ok {
		return
	}
	t, ok := e.(*state.Text)
	switch {
	case !ok:
	case strings.TrimSpace(t.Text) != "":
		if edit.created {
			m.store.Checkpoint()
		}
	case edit.created:
		m.store.RemoveElement(edit.id)
	default:
		m.store.DeleteElement(edit.id)
	}
}

// CancelText closes the editor and restores the text it was opened with.
// A text box created by this edit is removed and leaves no undo step.
func (m *Machine) CancelText() {
	edit := m.edit
	if edit == nil {
		return
	}
	m.edit = nil
	if edit.created {
		m.store.RemoveElement(edit.id)
		return
	}
	m.store.UpdateElement(edit.id, func(e state.Element) {
		if t, ok := e.(*state.Text); ok {
			t.Text = edit.original
			fitText(t)
		}
	})
}

// fitText grows the text box to hold its lines. Width only grows so an
// empty box stays clickable.
func fitText(t *state.Text) {
	lines := strings.Split(t.Text, "\n")
	longest := 0
	for _, l := range lines {
		longest = max(longest, utf8.RuneCountInString(l))
	}
	t.Width = math.Max(t.Width, float64(longest)*t.FontSize*glyphAdvance)
	t.Height = float64(len(lines)) * t.FontSize
}
