package grammar

import "github.com/jacoelho/langtable/internal/model"

// parseMode tells whether languageId names the entity or a translated name's language.
type parseMode uint8

const (
	modeEntity parseMode = iota
	modeNames
)

// Languages builds language entities from a languages document.
type Languages struct {
	table     *model.LanguageTable
	cur       *model.Language
	acc       accumulator
	committed int
	mode      parseMode
}

// NewLanguages returns a handler that commits languages into table.
func NewLanguages(table *model.LanguageTable) *Languages {
	return &Languages{table: table}
}

// Committed returns the number of entities committed so far, duplicates included.
func (g *Languages) Committed() int {
	return g.committed
}

// StartElement selects the accumulation target for local.
func (g *Languages) StartElement(local string) error {
	switch local {
	case "language":
		if g.cur != nil {
			return errNestedEntity(local)
		}
		g.cur = model.NewLanguage()
		g.mode = modeEntity
		g.acc.reset()
	case "languageId":
		if g.mode == modeNames {
			g.acc.selectTarget(targetItemID)
		} else {
			g.acc.selectTarget(targetEntityID)
		}
	case "iso639-1":
		g.acc.selectTarget(targetISO6391)
	case "iso639-2-t":
		g.acc.selectTarget(targetISO6392T)
	case "iso639-2-b":
		g.acc.selectTarget(targetISO6392B)
	case "names":
		g.mode = modeNames
	case "localeId", "territoryId", "keyboardId", "consolefontId", "timezoneId":
		g.acc.selectTarget(targetItemID)
	case "trName":
		g.acc.selectTarget(targetItemName)
	case "rank":
		g.acc.selectTarget(targetItemRank)
	}
	return nil
}

// CharData appends text to the selected target while a language is open.
func (g *Languages) CharData(text []byte) {
	if g.cur == nil {
		return
	}
	g.acc.charData(text)
}

// EndElement commits the name, association or language closed by local.
func (g *Languages) EndElement(local string) error {
	g.acc.endElement()
	switch local {
	case "language":
		return g.commit(local)
	case "names":
		g.mode = modeEntity
	case "name":
		if g.cur == nil {
			return errOutsideEntity(local)
		}
		return g.acc.commitName(g.cur.Names)
	case "locale", "territory", "keyboard", "consolefont", "timezone":
		if g.cur == nil {
			return errOutsideEntity(local)
		}
		return g.acc.commitRank(g.rankMap(local))
	}
	return nil
}

func (g *Languages) rankMap(local string) model.RankMap {
	switch local {
	case "locale":
		return g.cur.Locales
	case "territory":
		return g.cur.Territories
	case "keyboard":
		return g.cur.Keyboards
	case "consolefont":
		return g.cur.Consolefonts
	default:
		return g.cur.Timezones
	}
}

func (g *Languages) commit(local string) error {
	l := g.cur
	g.cur = nil
	g.mode = modeEntity
	defer g.acc.reset()
	if l == nil {
		return errOutsideEntity(local)
	}
	l.ID = g.acc.take(targetEntityID)
	if l.ID == "" {
		return errMissingID(local, "languageId")
	}
	l.ISO6391 = g.acc.take(targetISO6391)
	l.ISO6392Terminology = g.acc.take(targetISO6392T)
	l.ISO6392Bibliographic = g.acc.take(targetISO6392B)
	g.table.Insert(l.ID, l)
	g.committed++
	return nil
}
