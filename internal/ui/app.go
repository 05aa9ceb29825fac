package ui

import (
	"context"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/board"
	"SketchBoard/internal/export"
)

// Options describes one board window.
type Options struct {
	Title      string
	Controller *board.Controller
	FPS        int
	Export     export.Exporter
	// ShareLink, when set, is shown in the status bar with a copy button.
	ShareLink string
	// OnStart runs once the widget exists, before the window is shown. ctx
	// is cancelled when the window closes.
	OnStart func(ctx context.Context, b *BoardWidget)
}

func RunApp(opts Options) {
	myApp := app.New()
	win := myApp.NewWindow(opts.Title)
	win.Resize(fyne.NewSize(1024, 768))

	ctrl := opts.Controller
	b := NewBoardWidget(ctrl)

	var bar *Toolbar
	var top fyne.CanvasObject
	if !ctrl.ReadOnly() {
		save := func() { showSaveDialog(win, b) }
		open := func() { showOpenDialog(win, b) }
		exp := func(f export.Format) { showExportDialog(win, b, f, opts.Export) }
		bar, top = NewToolbar(b, save, open, exp)
		trackChanges(win, b, opts.Title)
		win.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault},
			func(fyne.Shortcut) { save() })
		win.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierShortcutDefault},
			func(fyne.Shortcut) { open() })
	}

	status := container.NewHBox(b.StatusBar(), layout.NewSpacer())
	if opts.ShareLink != "" {
		link := widget.NewLabel(opts.ShareLink)
		copyBtn := widget.NewButton("Copy link", func() {
			win.Clipboard().SetContent(opts.ShareLink)
			b.SetStatus("Share link copied")
		})
		status.Add(link)
		status.Add(copyBtn)
	}

	win.SetContent(container.NewBorder(top, status, nil, nil, b))
	bindKeys(win, b, bar)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	win.SetOnClosed(cancel)

	go board.Run(ctx, board.FrameInterval(opts.FPS), func() {
		fyne.Do(b.Redraw)
	})
	if opts.OnStart != nil {
		opts.OnStart(ctx, b)
	}

	win.ShowAndRun()
}

// bindKeys routes typed runes, special keys and command chords to the board.
func bindKeys(win fyne.Window, b *BoardWidget, bar *Toolbar) {
	ctrl := b.ctrl
	c := win.Canvas()
	c.SetOnTypedRune(func(r rune) {
		if _, switched := typedRune(ctrl, r); switched && bar != nil {
			bar.SyncTool()
		}
		b.Redraw()
	})
	c.SetOnTypedKey(func(e *fyne.KeyEvent) {
		if typedKey(ctrl, e.Name) {
			b.Redraw()
		}
	})
	for _, s := range commandShortcuts {
		cmd := s.cmd
		c.AddShortcut(&desktop.CustomShortcut{KeyName: s.key, Modifier: s.modifier}, func(fyne.Shortcut) {
			ctrl.Command(cmd)
			b.Redraw()
		})
	}
}

// changeTracker tells whether the elements moved past the last save.
// Panning, zooming, selecting and restyling defaults do not count.
type changeTracker struct {
	store interface{ ContentRevision() uint64 }
	saved atomic.Uint64
	dirty atomic.Bool
}

func newChangeTracker(store interface{ ContentRevision() uint64 }) *changeTracker {
	c := &changeTracker{store: store}
	c.saved.Store(store.ContentRevision())
	return c
}

// observe reports true only on the change that first makes the board dirty.
func (c *changeTracker) observe() bool {
	if c.store.ContentRevision() == c.saved.Load() {
		return false
	}
	return c.dirty.CompareAndSwap(false, true)
}

func (c *changeTracker) markSaved() {
	c.saved.Store(c.store.ContentRevision())
	c.dirty.Store(false)
}

// trackChanges marks the window title while the board has unsaved edits.
func trackChanges(win fyne.Window, b *BoardWidget, title string) {
	store := b.ctrl.Store()
	tracker := newChangeTracker(store)
	store.OnChange = func(uint64) {
		if tracker.observe() {
			fyne.Do(func() { win.SetTitle(title + " *") })
		}
	}
	b.onSaved = func() {
		tracker.markSaved()
		fyne.Do(func() { win.SetTitle(title) })
	}
}

func showSaveDialog(win fyne.Window, b *BoardWidget) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if writer == nil {
			return
		}
		b.SaveToFile(writer)
	}, win)
	d.SetFileName("board.json")
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

func showOpenDialog(win fyne.Window, b *BoardWidget) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if reader == nil {
			return
		}
		b.LoadFromFile(reader)
	}, win)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}
