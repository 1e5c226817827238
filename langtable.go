// Package langtable loads the keyboards, territories and languages documents
// into an in-memory relational model.
//
// Each document is read as a forward-only event stream and interpreted by a
// grammar specific to its family. Entities are committed into keyed tables
// whose associations carry integer preference ranks:
//
//	m, err := langtable.Load(ctx, langtable.NewLoadOptions().WithDataDirs("/usr/share/langtable"))
//	if err != nil {
//		return err
//	}
//	us, ok := m.Keyboard("us")
//
// A missing document leaves its table empty in StateAbsent; Load reports it
// only when WithRequireDocuments is set.
package langtable

import "github.com/jacoelho/langtable/internal/model"

type (
	// Keyboard is a keyboard layout entity.
	Keyboard = model.Keyboard
	// Territory is a territory entity.
	Territory = model.Territory
	// Language is a language entity.
	Language = model.Language
	// RankMap maps foreign identifiers to preference ranks.
	RankMap = model.RankMap
	// RankEntry is one ranked association.
	RankEntry = model.RankEntry
	// NameMap maps language or locale tags to translated names.
	NameMap = model.NameMap
	// State describes the outcome of a table's document load.
	State = model.State
	// Document identifies a document family.
	Document = model.Document
	// KeyboardTable stores keyboards by id.
	KeyboardTable = model.KeyboardTable
	// TerritoryTable stores territories by id.
	TerritoryTable = model.TerritoryTable
	// LanguageTable stores languages by id.
	LanguageTable = model.LanguageTable
)

const (
	// StateEmpty means no load has finished for the table.
	StateEmpty = model.StateEmpty
	// StateComplete means the document was read to its end.
	StateComplete = model.StateComplete
	// StateIncomplete means the load was aborted and the table is not authoritative.
	StateIncomplete = model.StateIncomplete
	// StateAbsent means no readable document was found.
	StateAbsent = model.StateAbsent
)

const (
	// DocumentKeyboards is the keyboards.xml family.
	DocumentKeyboards = model.DocumentKeyboards
	// DocumentTerritories is the territories.xml family.
	DocumentTerritories = model.DocumentTerritories
	// DocumentLanguages is the languages.xml family.
	DocumentLanguages = model.DocumentLanguages
)

// Model holds the three entity tables produced by a load.
// A Model is read-only once Load returns.
type Model struct {
	model.Tables
}

// NewModel returns a model with empty tables.
func NewModel() *Model {
	return &Model{Tables: model.Tables{
		Keyboards:   model.NewTable[*Keyboard](),
		Territories: model.NewTable[*Territory](),
		Languages:   model.NewTable[*Language](),
	}}
}

// Keyboard returns the keyboard with the given id.
func (m *Model) Keyboard(id string) (*Keyboard, bool) {
	if m == nil {
		return nil, false
	}
	return m.Keyboards.Get(id)
}

// Territory returns the territory with the given id.
func (m *Model) Territory(id string) (*Territory, bool) {
	if m == nil {
		return nil, false
	}
	return m.Territories.Get(id)
}

// Language returns the language with the given id.
func (m *Model) Language(id string) (*Language, bool) {
	if m == nil {
		return nil, false
	}
	return m.Languages.Get(id)
}

// SupportsASCII reports whether the keyboard can produce ASCII.
// Unknown keyboards report false.
func (m *Model) SupportsASCII(keyboardID string) bool {
	k, ok := m.Keyboard(keyboardID)
	return ok && k.ASCIICapable
}

// Complete reports whether every table was loaded from a fully read document.
func (m *Model) Complete() bool {
	if m == nil {
		return false
	}
	return m.Keyboards.Authoritative() && m.Territories.Authoritative() && m.Languages.Authoritative()
}

// State returns the load state of the table for doc.
func (m *Model) State(doc Document) State {
	if m == nil {
		return StateEmpty
	}
	switch doc {
	case DocumentKeyboards:
		return m.Keyboards.State()
	case DocumentTerritories:
		return m.Territories.State()
	case DocumentLanguages:
		return m.Languages.State()
	default:
		return StateEmpty
	}
}
