// Package writer serializes entity tables back into their XML documents.
//
// Output is deterministic: entities by id ascending, translated names by tag
// ascending and associations by rank descending then id ascending.
package writer

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/samber/lo"

	"github.com/jacoelho/langtable/internal/model"
)

type rankedLanguage struct {
	ID   string `xml:"languageId"`
	Rank int    `xml:"rank"`
}

type rankedTerritory struct {
	ID   string `xml:"territoryId"`
	Rank int    `xml:"rank"`
}

type rankedLocale struct {
	ID   string `xml:"localeId"`
	Rank int    `xml:"rank"`
}

type rankedKeyboard struct {
	ID   string `xml:"keyboardId"`
	Rank int    `xml:"rank"`
}

type rankedConsolefont struct {
	ID   string `xml:"consolefontId"`
	Rank int    `xml:"rank"`
}

type rankedTimezone struct {
	ID   string `xml:"timezoneId"`
	Rank int    `xml:"rank"`
}

type translatedName struct {
	LanguageID string `xml:"languageId"`
	Name       string `xml:"trName"`
}

type keyboardsDocument struct {
	XMLName   xml.Name          `xml:"keyboards"`
	Keyboards []keyboardElement `xml:"keyboard"`
}

type keyboardElement struct {
	ID          string            `xml:"keyboardId"`
	Description string            `xml:"description"`
	ASCII       string            `xml:"ascii"`
	Comment     string            `xml:"comment,omitempty"`
	Languages   []rankedLanguage  `xml:"languages>language"`
	Territories []rankedTerritory `xml:"territories>territory"`
}

type territoriesDocument struct {
	XMLName     xml.Name           `xml:"territories"`
	Territories []territoryElement `xml:"territory"`
}

type territoryElement struct {
	ID           string              `xml:"territoryId"`
	Names        []translatedName    `xml:"names>name"`
	Languages    []rankedLanguage    `xml:"languages>language"`
	Locales      []rankedLocale      `xml:"locales>locale"`
	Keyboards    []rankedKeyboard    `xml:"keyboards>keyboard"`
	Consolefonts []rankedConsolefont `xml:"consolefonts>consolefont"`
	Timezones    []rankedTimezone    `xml:"timezones>timezone"`
}

type languagesDocument struct {
	XMLName   xml.Name          `xml:"languages"`
	Languages []languageElement `xml:"language"`
}

type languageElement struct {
	ID                   string              `xml:"languageId"`
	ISO6391              string              `xml:"iso639-1"`
	ISO6392Terminology   string              `xml:"iso639-2-t"`
	ISO6392Bibliographic string              `xml:"iso639-2-b"`
	Names                []translatedName    `xml:"names>name"`
	Locales              []rankedLocale      `xml:"locales>locale"`
	Territories          []rankedTerritory   `xml:"territories>territory"`
	Keyboards            []rankedKeyboard    `xml:"keyboards>keyboard"`
	Consolefonts         []rankedConsolefont `xml:"consolefonts>consolefont"`
	Timezones            []rankedTimezone    `xml:"timezones>timezone"`
}

// WriteKeyboards writes table as a keyboards document.
func WriteKeyboards(w io.Writer, table *model.KeyboardTable) error {
	doc := keyboardsDocument{}
	for _, id := range table.SortedKeys() {
		k, _ := table.Get(id)
		doc.Keyboards = append(doc.Keyboards, keyboardElement{
			ID:          k.ID,
			Description: k.Description,
			ASCII:       asciiText(k.ASCIICapable),
			Comment:     k.Comment,
			Languages:   ranked(k.Languages, func(e model.RankEntry) rankedLanguage { return rankedLanguage(e) }),
			Territories: ranked(k.Territories, func(e model.RankEntry) rankedTerritory { return rankedTerritory(e) }),
		})
	}
	return encode(w, doc)
}

// WriteTerritories writes table as a territories document.
func WriteTerritories(w io.Writer, table *model.TerritoryTable) error {
	doc := territoriesDocument{}
	for _, id := range table.SortedKeys() {
		t, _ := table.Get(id)
		doc.Territories = append(doc.Territories, territoryElement{
			ID:           t.ID,
			Names:        names(t.Names),
			Languages:    ranked(t.Languages, func(e model.RankEntry) rankedLanguage { return rankedLanguage(e) }),
			Locales:      ranked(t.Locales, func(e model.RankEntry) rankedLocale { return rankedLocale(e) }),
			Keyboards:    ranked(t.Keyboards, func(e model.RankEntry) rankedKeyboard { return rankedKeyboard(e) }),
			Consolefonts: ranked(t.Consolefonts, func(e model.RankEntry) rankedConsolefont { return rankedConsolefont(e) }),
			Timezones:    ranked(t.Timezones, func(e model.RankEntry) rankedTimezone { return rankedTimezone(e) }),
		})
	}
	return encode(w, doc)
}

// WriteLanguages writes table as a languages document.
func WriteLanguages(w io.Writer, table *model.LanguageTable) error {
	doc := languagesDocument{}
	for _, id := range table.SortedKeys() {
		l, _ := table.Get(id)
		doc.Languages = append(doc.Languages, languageElement{
			ID:                   l.ID,
			ISO6391:              l.ISO6391,
			ISO6392Terminology:   l.ISO6392Terminology,
			ISO6392Bibliographic: l.ISO6392Bibliographic,
			Names:                names(l.Names),
			Locales:              ranked(l.Locales, func(e model.RankEntry) rankedLocale { return rankedLocale(e) }),
			Territories:          ranked(l.Territories, func(e model.RankEntry) rankedTerritory { return rankedTerritory(e) }),
			Keyboards:            ranked(l.Keyboards, func(e model.RankEntry) rankedKeyboard { return rankedKeyboard(e) }),
			Consolefonts:         ranked(l.Consolefonts, func(e model.RankEntry) rankedConsolefont { return rankedConsolefont(e) }),
			Timezones:            ranked(l.Timezones, func(e model.RankEntry) rankedTimezone { return rankedTimezone(e) }),
		})
	}
	return encode(w, doc)
}

func ranked[T any](m model.RankMap, conv func(model.RankEntry) T) []T {
	return lo.Map(m.Ranked(), func(e model.RankEntry, _ int) T {
		return conv(e)
	})
}

func names(m model.NameMap) []translatedName {
	return lo.Map(m.Keys(), func(tag string, _ int) translatedName {
		return translatedName{LanguageID: tag, Name: m[tag]}
	})
}

func asciiText(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

func encode(w io.Writer, doc any) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush document: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("write trailer: %w", err)
	}
	return nil
}
