package ui

import (
	"fmt"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"SketchBoard/internal/export"
)

// ExportTo writes the board to a URI picked in a save dialog.
func (b *BoardWidget) ExportTo(writer fyne.URIWriteCloser, format export.Format, x export.Exporter) {
	defer func() {
		if err := writer.Close(); err != nil {
			log.Printf("[PERSIST] closing %s: %v", writer.URI(), err)
		}
	}()

	elements := b.ctrl.Store().Snapshot()
	if err := x.Write(writer, format, elements); err != nil {
		log.Printf("[PERSIST] export %s: %v", writer.URI(), err)
		b.SetStatus("Export failed")
		return
	}
	log.Printf("[PERSIST] exported %d elements as %s to %s", len(elements), format, writer.URI())
	b.SetStatus(fmt.Sprintf("Exported %s", strings.ToUpper(string(format))))
}

// showExportDialog asks for a destination and exports into it.
func showExportDialog(win fyne.Window, b *BoardWidget, format export.Format, x export.Exporter) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if writer == nil {
			return
		}
		b.ExportTo(writer, format, x)
	}, win)
	d.SetFileName("board." + string(format))
	d.SetFilter(storage.NewExtensionFileFilter([]string{"." + string(format)}))
	d.Show()
}
