package grammar

import (
	"bytes"
	"strconv"

	lterrors "github.com/jacoelho/langtable/errors"
	"github.com/jacoelho/langtable/internal/model"
)

// target selects the buffer receiving character data.
type target uint8

const (
	targetNone target = iota
	targetEntityID
	targetDescription
	targetComment
	targetScratch
	targetISO6391
	targetISO6392T
	targetISO6392B
	targetItemID
	targetItemRank
	targetItemName
	targetCount
)

const trueToken = "True"

// accumulator holds one text buffer per target.
type accumulator struct {
	bufs   [targetCount][]byte
	target target
}

func (a *accumulator) selectTarget(t target) {
	a.target = t
}

// endElement ends the current accumulation, even when nothing was buffered.
func (a *accumulator) endElement() {
	a.target = targetNone
}

func (a *accumulator) charData(text []byte) {
	if a.target == targetNone {
		return
	}
	if len(bytes.TrimSpace(text)) == 0 {
		return
	}
	a.bufs[a.target] = append(a.bufs[a.target], text...)
}

// take returns the trimmed value buffered for t and clears the buffer.
func (a *accumulator) take(t target) string {
	s := string(bytes.TrimSpace(a.bufs[t]))
	a.bufs[t] = a.bufs[t][:0]
	return s
}

func (a *accumulator) reset() {
	for i := range a.bufs {
		a.bufs[i] = a.bufs[i][:0]
	}
	a.target = targetNone
}

func (a *accumulator) clearItem() {
	a.bufs[targetItemID] = a.bufs[targetItemID][:0]
	a.bufs[targetItemRank] = a.bufs[targetItemRank][:0]
	a.bufs[targetItemName] = a.bufs[targetItemName][:0]
}

// commitRank moves the pending foreign key and rank into dst.
func (a *accumulator) commitRank(dst model.RankMap) error {
	id := a.take(targetItemID)
	text := a.take(targetItemRank)
	a.clearItem()
	if id == "" {
		return lterrors.New(lterrors.ErrMalformedStructure, "association without identifier")
	}
	rank, err := parseRank(text)
	if err != nil {
		return err
	}
	dst[id] = rank
	return nil
}

// commitName moves the pending foreign key and translated name into dst.
func (a *accumulator) commitName(dst model.NameMap) error {
	id := a.take(targetItemID)
	name := a.take(targetItemName)
	a.clearItem()
	if id == "" {
		return lterrors.New(lterrors.ErrMalformedStructure, "translated name without language identifier")
	}
	dst[id] = name
	return nil
}

func parseRank(text string) (int, error) {
	if text == "" {
		return 0, lterrors.New(lterrors.ErrMalformedValue, "association without rank")
	}
	rank, err := strconv.Atoi(text)
	if err != nil {
		return 0, lterrors.Wrap(lterrors.ErrMalformedValue, "rank "+strconv.Quote(text)+" is not a decimal integer", err)
	}
	if rank < 0 {
		return 0, lterrors.Newf(lterrors.ErrMalformedValue, "rank %d is negative", rank)
	}
	return rank, nil
}

func errOutsideEntity(local string) error {
	return lterrors.Newf(lterrors.ErrMalformedStructure, "<%s> closed outside an entity", local)
}

func errNestedEntity(local string) error {
	return lterrors.Newf(lterrors.ErrMalformedStructure, "<%s> opened before the previous entity was closed", local)
}

func errMissingID(local, idTag string) error {
	return lterrors.Newf(lterrors.ErrMalformedStructure, "<%s> has no <%s>", local, idTag)
}
