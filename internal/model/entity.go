package model

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
)

// RankMap maps a foreign entity identifier to its preference rank.
type RankMap map[string]int

// RankEntry is one RankMap entry.
type RankEntry struct {
	ID   string
	Rank int
}

// Ranked returns the entries ordered by rank descending, then by id ascending.
func (m RankMap) Ranked() []RankEntry {
	entries := lo.MapToSlice(m, func(id string, rank int) RankEntry {
		return RankEntry{ID: id, Rank: rank}
	})
	slices.SortFunc(entries, func(a, b RankEntry) int {
		if c := cmp.Compare(b.Rank, a.Rank); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return entries
}

// NameMap maps a language or locale tag to a translated display name.
type NameMap map[string]string

// Keys returns the tags in ascending order.
func (m NameMap) Keys() []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}

// Keyboard is a keyboard layout and the languages and territories it is used with.
type Keyboard struct {
	Languages    RankMap
	Territories  RankMap
	ID           string
	Description  string
	Comment      string
	ASCIICapable bool
}

// NewKeyboard returns an empty keyboard with allocated rank maps.
func NewKeyboard() *Keyboard {
	return &Keyboard{
		Languages:   RankMap{},
		Territories: RankMap{},
	}
}

// Territory is a territory with its translated names and ranked associations.
type Territory struct {
	Names        NameMap
	Languages    RankMap
	Locales      RankMap
	Keyboards    RankMap
	Consolefonts RankMap
	Timezones    RankMap
	ID           string
}

// NewTerritory returns an empty territory with allocated maps.
func NewTerritory() *Territory {
	return &Territory{
		Names:        NameMap{},
		Languages:    RankMap{},
		Locales:      RankMap{},
		Keyboards:    RankMap{},
		Consolefonts: RankMap{},
		Timezones:    RankMap{},
	}
}

// Language is a language with its ISO 639 codes, translated names and ranked associations.
type Language struct {
	Names                NameMap
	Locales              RankMap
	Territories          RankMap
	Keyboards            RankMap
	Consolefonts         RankMap
	Timezones            RankMap
	ID                   string
	ISO6391              string
	ISO6392Terminology   string
	ISO6392Bibliographic string
}

// NewLanguage returns an empty language with allocated maps.
func NewLanguage() *Language {
	return &Language{
		Names:        NameMap{},
		Locales:      RankMap{},
		Territories:  RankMap{},
		Keyboards:    RankMap{},
		Consolefonts: RankMap{},
		Timezones:    RankMap{},
	}
}
