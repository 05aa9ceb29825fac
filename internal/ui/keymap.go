package ui

import (
	"unicode"

	"fyne.io/fyne/v2"

	"SketchBoard/internal/board"
	"SketchBoard/internal/interact"
)

var toolKeys = map[rune]interact.Tool{
	'v': interact.ToolSelection,
	'h': interact.ToolHand,
	'r': interact.ToolRectangle,
	'o': interact.ToolCircle,
	'l': interact.ToolLine,
	'a': interact.ToolArrow,
	'p': interact.ToolFreehand,
	't': interact.ToolText,
}

func toolForRune(r rune) (interact.Tool, bool) {
	t, ok := toolKeys[unicode.ToLower(r)]
	return t, ok
}

// typedRune sends r to the open text box, or treats it as a tool shortcut.
// It reports the tool switched to, if any.
func typedRune(ctrl *board.Controller, r rune) (interact.Tool, bool) {
	if ctrl.Editing() {
		ctrl.TypeRune(r)
		return "", false
	}
	t, ok := toolForRune(r)
	if !ok || ctrl.ReadOnly() {
		return "", false
	}
	ctrl.SetTool(t)
	return t, true
}

// typedKey handles the non-character keys. It reports whether the key was
// used.
func typedKey(ctrl *board.Controller, key fyne.KeyName) bool {
	if ctrl.Editing() {
		switch key {
		case fyne.KeyReturn, fyne.KeyEnter:
			ctrl.Enter()
		case fyne.KeyBackspace:
			ctrl.Backspace()
		case fyne.KeyEscape:
			ctrl.Command(interact.CmdEscape)
		default:
			return false
		}
		return true
	}
	switch key {
	case fyne.KeyDelete, fyne.KeyBackspace:
		ctrl.Command(interact.CmdDelete)
	case fyne.KeyEscape:
		ctrl.Command(interact.CmdEscape)
	default:
		return false
	}
	return true
}

// shortcut binds a modifier chord to a board command.
type shortcut struct {
	key      fyne.KeyName
	modifier fyne.KeyModifier
	cmd      interact.Command
}

var commandShortcuts = []shortcut{
	{fyne.KeyZ, fyne.KeyModifierShortcutDefault, interact.CmdUndo},
	{fyne.KeyZ, fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift, interact.CmdRedo},
	{fyne.KeyY, fyne.KeyModifierShortcutDefault, interact.CmdRedo},
	{fyne.KeyA, fyne.KeyModifierShortcutDefault, interact.CmdSelectAll},
}
