package grammar

import "github.com/jacoelho/langtable/internal/model"

// Keyboards builds keyboard entities from a keyboards document.
type Keyboards struct {
	table     *model.KeyboardTable
	cur       *model.Keyboard
	acc       accumulator
	committed int
}

// NewKeyboards returns a handler that commits keyboards into table.
func NewKeyboards(table *model.KeyboardTable) *Keyboards {
	return &Keyboards{table: table}
}

// Committed returns the number of entities committed so far, duplicates included.
func (g *Keyboards) Committed() int {
	return g.committed
}

// StartElement selects the accumulation target for local.
func (g *Keyboards) StartElement(local string) error {
	switch local {
	case "keyboard":
		if g.cur != nil {
			return errNestedEntity(local)
		}
		g.cur = model.NewKeyboard()
		g.acc.reset()
	case "keyboardId":
		g.acc.selectTarget(targetEntityID)
	case "description":
		g.acc.selectTarget(targetDescription)
	case "comment":
		g.acc.selectTarget(targetComment)
	case "ascii":
		g.acc.selectTarget(targetScratch)
	case "languageId", "territoryId":
		g.acc.selectTarget(targetItemID)
	case "rank":
		g.acc.selectTarget(targetItemRank)
	}
	return nil
}

// CharData appends text to the selected target while a keyboard is open.
func (g *Keyboards) CharData(text []byte) {
	if g.cur == nil {
		return
	}
	g.acc.charData(text)
}

// EndElement commits the association, flag or keyboard closed by local.
func (g *Keyboards) EndElement(local string) error {
	g.acc.endElement()
	switch local {
	case "keyboard":
		return g.commit(local)
	case "ascii":
		if g.cur == nil {
			return errOutsideEntity(local)
		}
		g.cur.ASCIICapable = g.acc.take(targetScratch) == trueToken
	case "language":
		if g.cur == nil {
			return errOutsideEntity(local)
		}
		return g.acc.commitRank(g.cur.Languages)
	case "territory":
		if g.cur == nil {
			return errOutsideEntity(local)
		}
		return g.acc.commitRank(g.cur.Territories)
	}
	return nil
}

func (g *Keyboards) commit(local string) error {
	k := g.cur
	g.cur = nil
	defer g.acc.reset()
	if k == nil {
		return errOutsideEntity(local)
	}
	k.ID = g.acc.take(targetEntityID)
	if k.ID == "" {
		return errMissingID(local, "keyboardId")
	}
	k.Description = g.acc.take(targetDescription)
	k.Comment = g.acc.take(targetComment)
	g.table.Insert(k.ID, k)
	g.committed++
	return nil
}
