package langtable

import (
	"fmt"
	"io"

	"github.com/jacoelho/langtable/internal/writer"
)

// WriteKeyboards writes table as a keyboards document that Load reads back unchanged.
func WriteKeyboards(w io.Writer, table *KeyboardTable) error {
	return writer.WriteKeyboards(w, table)
}

// WriteTerritories writes table as a territories document.
func WriteTerritories(w io.Writer, table *TerritoryTable) error {
	return writer.WriteTerritories(w, table)
}

// WriteLanguages writes table as a languages document.
func WriteLanguages(w io.Writer, table *LanguageTable) error {
	return writer.WriteLanguages(w, table)
}

// WriteDocument writes the table of m that backs doc.
func (m *Model) WriteDocument(w io.Writer, doc Document) error {
	switch doc {
	case DocumentKeyboards:
		return WriteKeyboards(w, m.Keyboards)
	case DocumentTerritories:
		return WriteTerritories(w, m.Territories)
	case DocumentLanguages:
		return WriteLanguages(w, m.Languages)
	default:
		return fmt.Errorf("unknown document %d", doc)
	}
}
