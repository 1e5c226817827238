package model

// Document identifies one of the three source document families.
type Document uint8

const (
	DocumentKeyboards Document = iota
	DocumentTerritories
	DocumentLanguages
)

// Documents lists the families in the order they are loaded sequentially.
var Documents = []Document{DocumentTerritories, DocumentLanguages, DocumentKeyboards}

// FileName returns the logical file name of the document.
func (d Document) FileName() string {
	return d.String() + ".xml"
}

// String returns the document family name.
func (d Document) String() string {
	switch d {
	case DocumentKeyboards:
		return "keyboards"
	case DocumentTerritories:
		return "territories"
	case DocumentLanguages:
		return "languages"
	default:
		return "unknown"
	}
}

// ParseDocument maps a family name to its Document.
func ParseDocument(name string) (Document, bool) {
	switch name {
	case "keyboards":
		return DocumentKeyboards, true
	case "territories":
		return DocumentTerritories, true
	case "languages":
		return DocumentLanguages, true
	default:
		return 0, false
	}
}
