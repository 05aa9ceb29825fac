package ui

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"

	"SketchBoard/internal/persist"
)

// SaveToFile writes the board as a JSON document and closes the writer.
func (b *BoardWidget) SaveToFile(writer fyne.URIWriteCloser) {
	defer func() {
		if err := writer.Close(); err != nil {
			log.Printf("[PERSIST] closing %s: %v", writer.URI(), err)
		}
	}()

	doc := persist.Capture(b.ctrl.Store())
	if err := persist.Encode(writer, doc); err != nil {
		log.Printf("[PERSIST] save %s: %v", writer.URI(), err)
		b.SetStatus("Error writing file")
		return
	}
	log.Printf("[PERSIST] saved %d elements to %s", len(doc.Elements), writer.URI())
	b.SetStatus(fmt.Sprintf("Saved %d elements", len(doc.Elements)))
	if b.onSaved != nil {
		b.onSaved()
	}
}

// LoadFromFile replaces the board with the document read from reader. A
// file that does not parse leaves the board untouched.
func (b *BoardWidget) LoadFromFile(reader fyne.URIReadCloser) {
	defer func() {
		if err := reader.Close(); err != nil {
			log.Printf("[PERSIST] closing %s: %v", reader.URI(), err)
		}
	}()

	b.SetStatus("Loading file...")
	doc, err := persist.Decode(reader)
	if err != nil {
		log.Printf("[PERSIST] load %s: %v", reader.URI(), err)
		b.SetStatus("Error parsing file - invalid format")
		return
	}

	b.ctrl.Open(doc)
	b.Redraw()
	log.Printf("[PERSIST] loaded %d elements from %s", len(doc.Elements), reader.URI())
	b.SetStatus(fmt.Sprintf("Loaded %d elements", len(doc.Elements)))
}
