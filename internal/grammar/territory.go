package grammar

import "github.com/jacoelho/langtable/internal/model"

// Territories builds territory entities from a territories document.
type Territories struct {
	table     *model.TerritoryTable
	cur       *model.Territory
	acc       accumulator
	committed int
}

// NewTerritories returns a handler that commits territories into table.
func NewTerritories(table *model.TerritoryTable) *Territories {
	return &Territories{table: table}
}

// Committed returns the number of entities committed so far, duplicates included.
func (g *Territories) Committed() int {
	return g.committed
}

// StartElement selects the accumulation target for local.
func (g *Territories) StartElement(local string) error {
	switch local {
	case "territory":
		if g.cur != nil {
			return errNestedEntity(local)
		}
		g.cur = model.NewTerritory()
		g.acc.reset()
	case "territoryId":
		g.acc.selectTarget(targetEntityID)
	case "languageId", "localeId", "keyboardId", "consolefontId", "timezoneId":
		g.acc.selectTarget(targetItemID)
	case "trName":
		g.acc.selectTarget(targetItemName)
	case "rank":
		g.acc.selectTarget(targetItemRank)
	}
	return nil
}

// CharData appends text to the selected target while a territory is open.
func (g *Territories) CharData(text []byte) {
	if g.cur == nil {
		return
	}
	g.acc.charData(text)
}

// EndElement commits the name, association or territory closed by local.
func (g *Territories) EndElement(local string) error {
	g.acc.endElement()
	switch local {
	case "territory":
		return g.commit(local)
	case "name":
		if g.cur == nil {
			return errOutsideEntity(local)
		}
		return g.acc.commitName(g.cur.Names)
	case "language", "locale", "keyboard", "consolefont", "timezone":
		if g.cur == nil {
			return errOutsideEntity(local)
		}
		return g.acc.commitRank(g.rankMap(local))
	}
	return nil
}

func (g *Territories) rankMap(local string) model.RankMap {
	switch local {
	case "language":
		return g.cur.Languages
	case "locale":
		return g.cur.Locales
	case "keyboard":
		return g.cur.Keyboards
	case "consolefont":
		return g.cur.Consolefonts
	default:
		return g.cur.Timezones
	}
}

func (g *Territories) commit(local string) error {
	t := g.cur
	g.cur = nil
	defer g.acc.reset()
	if t == nil {
		return errOutsideEntity(local)
	}
	t.ID = g.acc.take(targetEntityID)
	if t.ID == "" {
		return errMissingID(local, "territoryId")
	}
	g.table.Insert(t.ID, t)
	g.committed++
	return nil
}
