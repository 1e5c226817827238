package pgexport

import (
	"github.com/jacoelho/langtable/internal/model"
)

var (
	entityColumns = map[model.Document][]string{
		model.DocumentKeyboards:   {"id", "description", "comment", "ascii"},
		model.DocumentTerritories: {"id"},
		model.DocumentLanguages:   {"id", "iso639_1", "iso639_2_t", "iso639_2_b"},
	}
	nameColumns = []string{"owner_id", "tag", "name"}
	rankColumns = []string{"owner_id", "ref_id", "rank"}
)

// rowSet is the content of one relational table.
type rowSet struct {
	table   string
	columns []string
	rows    [][]any
}

func (s *rowSet) add(values ...any) {
	s.rows = append(s.rows, values)
}

func rankSet(table string) *rowSet {
	return &rowSet{table: table, columns: rankColumns}
}

func addRanks(s *rowSet, owner string, m model.RankMap) {
	for _, e := range m.Ranked() {
		s.add(owner, e.ID, e.Rank)
	}
}

func addNames(s *rowSet, owner string, m model.NameMap) {
	for _, tag := range m.Keys() {
		s.add(owner, tag, m[tag])
	}
}

func keyboardRows(table *model.KeyboardTable) []*rowSet {
	entities := &rowSet{table: "keyboards", columns: entityColumns[model.DocumentKeyboards]}
	languages := rankSet("keyboard_languages")
	territories := rankSet("keyboard_territories")
	for _, id := range table.SortedKeys() {
		k, _ := table.Get(id)
		entities.add(k.ID, k.Description, k.Comment, k.ASCIICapable)
		addRanks(languages, k.ID, k.Languages)
		addRanks(territories, k.ID, k.Territories)
	}
	return []*rowSet{entities, languages, territories}
}

func territoryRows(table *model.TerritoryTable) []*rowSet {
	entities := &rowSet{table: "territories", columns: entityColumns[model.DocumentTerritories]}
	names := &rowSet{table: "territory_names", columns: nameColumns}
	languages := rankSet("territory_languages")
	locales := rankSet("territory_locales")
	keyboards := rankSet("territory_keyboards")
	consolefonts := rankSet("territory_consolefonts")
	timezones := rankSet("territory_timezones")
	for _, id := range table.SortedKeys() {
		t, _ := table.Get(id)
		entities.add(t.ID)
		addNames(names, t.ID, t.Names)
		addRanks(languages, t.ID, t.Languages)
		addRanks(locales, t.ID, t.Locales)
		addRanks(keyboards, t.ID, t.Keyboards)
		addRanks(consolefonts, t.ID, t.Consolefonts)
		addRanks(timezones, t.ID, t.Timezones)
	}
	return []*rowSet{entities, names, languages, locales, keyboards, consolefonts, timezones}
}

func languageRows(table *model.LanguageTable) []*rowSet {
	entities := &rowSet{table: "languages", columns: entityColumns[model.DocumentLanguages]}
	names := &rowSet{table: "language_names", columns: nameColumns}
	locales := rankSet("language_locales")
	territories := rankSet("language_territories")
	keyboards := rankSet("language_keyboards")
	consolefonts := rankSet("language_consolefonts")
	timezones := rankSet("language_timezones")
	for _, id := range table.SortedKeys() {
		l, _ := table.Get(id)
		entities.add(l.ID, l.ISO6391, l.ISO6392Terminology, l.ISO6392Bibliographic)
		addNames(names, l.ID, l.Names)
		addRanks(locales, l.ID, l.Locales)
		addRanks(territories, l.ID, l.Territories)
		addRanks(keyboards, l.ID, l.Keyboards)
		addRanks(consolefonts, l.ID, l.Consolefonts)
		addRanks(timezones, l.ID, l.Timezones)
	}
	return []*rowSet{entities, names, locales, territories, keyboards, consolefonts, timezones}
}
