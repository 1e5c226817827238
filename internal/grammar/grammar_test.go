package grammar

import (
	"context"
	"errors"
	"maps"
	"strings"
	"testing"

	lterrors "github.com/jacoelho/langtable/errors"
	"github.com/jacoelho/langtable/internal/model"
	"github.com/jacoelho/langtable/pkg/xmlstream"
)

func run(t *testing.T, h Handler, doc string) error {
	t.Helper()
	r, err := xmlstream.NewReader(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	return Run(context.Background(), r, h)
}

func TestKeyboardEndToEnd(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<keyboards>
  <keyboard>
    <keyboardId>us</keyboardId>
    <description>English (US)</description>
    <ascii>True</ascii>
    <languages>
      <language><languageId>en</languageId><rank>100</rank></language>
    </languages>
    <territories>
      <territory><territoryId>US</territoryId><rank>100</rank></territory>
    </territories>
  </keyboard>
</keyboards>`

	table := model.NewTable[*model.Keyboard]()
	g := NewKeyboards(table)
	if err := run(t, g, doc); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if table.Len() != 1 || g.Committed() != 1 {
		t.Fatalf("Len() = %d, Committed() = %d, want 1, 1", table.Len(), g.Committed())
	}
	k, ok := table.Get("us")
	if !ok {
		t.Fatalf("Get(us) not found")
	}
	if k.Description != "English (US)" {
		t.Fatalf("Description = %q, want %q", k.Description, "English (US)")
	}
	if !k.ASCIICapable {
		t.Fatalf("ASCIICapable = false, want true")
	}
	if k.Comment != "" {
		t.Fatalf("Comment = %q, want empty", k.Comment)
	}
	if !maps.Equal(k.Languages, model.RankMap{"en": 100}) {
		t.Fatalf("Languages = %v, want map[en:100]", k.Languages)
	}
	if !maps.Equal(k.Territories, model.RankMap{"US": 100}) {
		t.Fatalf("Territories = %v, want map[US:100]", k.Territories)
	}
}

func TestKeyboardASCIIIsExactTrue(t *testing.T) {
	tests := []struct {
		name  string
		ascii string
		want  bool
	}{
		{name: "true", ascii: "<ascii>True</ascii>", want: true},
		{name: "padded", ascii: "<ascii>\n  True\n</ascii>", want: true},
		{name: "lowercase", ascii: "<ascii>true</ascii>", want: false},
		{name: "false", ascii: "<ascii>False</ascii>", want: false},
		{name: "missing", ascii: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := model.NewTable[*model.Keyboard]()
			doc := "<keyboards><keyboard><keyboardId>k</keyboardId>" + tt.ascii + "</keyboard></keyboards>"
			if err := run(t, NewKeyboards(table), doc); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			k, _ := table.Get("k")
			if k.ASCIICapable != tt.want {
				t.Fatalf("ASCIICapable = %v, want %v", k.ASCIICapable, tt.want)
			}
		})
	}
}

func TestDuplicateEntityReplacesEarlier(t *testing.T) {
	doc := `<keyboards>
<keyboard><keyboardId>us</keyboardId><description>first</description></keyboard>
<keyboard><keyboardId>de</keyboardId></keyboard>
<keyboard><keyboardId>us</keyboardId><description>second</description></keyboard>
</keyboards>`
	table := model.NewTable[*model.Keyboard]()
	g := NewKeyboards(table)
	if err := run(t, g, doc); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}
	if g.Committed() != 3 {
		t.Fatalf("Committed() = %d, want 3", g.Committed())
	}
	k, _ := table.Get("us")
	if k.Description != "second" {
		t.Fatalf("Description = %q, want second", k.Description)
	}
}

func TestTerritoryAssociationsAndNames(t *testing.T) {
	doc := `<territories>
  <territory>
    <territoryId>FR</territoryId>
    <names>
      <name><languageId>de</languageId><trName>Frankreich</trName></name>
      <name><languageId>en</languageId><trName>
        Fra</trName></name>
    </names>
    <languages>
      <language><languageId>fr</languageId><rank>5</rank></language>
      <language><languageId>br</languageId><rank>0</rank></language>
    </languages>
    <locales><locale><localeId>fr_FR</localeId><rank>100</rank></locale></locales>
    <keyboards><keyboard><keyboardId>fr(oss)</keyboardId><rank>100</rank></keyboard></keyboards>
    <consolefonts><consolefont><consolefontId>eurlatgr</consolefontId><rank>100</rank></consolefont></consolefonts>
    <timezones><timezone><timezoneId>Europe/Paris</timezoneId><rank>100</rank></timezone></timezones>
  </territory>
</territories>`

	table := model.NewTable[*model.Territory]()
	if err := run(t, NewTerritories(table), doc); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	fr, ok := table.Get("FR")
	if !ok {
		t.Fatalf("Get(FR) not found")
	}
	if !maps.Equal(fr.Languages, model.RankMap{"fr": 5, "br": 0}) {
		t.Fatalf("Languages = %v, want map[br:0 fr:5]", fr.Languages)
	}
	if !maps.Equal(fr.Names, model.NameMap{"de": "Frankreich", "en": "Fra"}) {
		t.Fatalf("Names = %v", fr.Names)
	}
	if fr.Locales["fr_FR"] != 100 || fr.Keyboards["fr(oss)"] != 100 ||
		fr.Consolefonts["eurlatgr"] != 100 || fr.Timezones["Europe/Paris"] != 100 {
		t.Fatalf("associations = %v %v %v %v", fr.Locales, fr.Keyboards, fr.Consolefonts, fr.Timezones)
	}
}

func TestTextFragmentsConcatenate(t *testing.T) {
	table := model.NewTable[*model.Territory]()
	g := NewTerritories(table)
	steps := []func() error{
		func() error { return g.StartElement("territory") },
		func() error { return g.StartElement("territoryId") },
		func() error { g.CharData([]byte("FR")); return nil },
		func() error { return g.EndElement("territoryId") },
		func() error { return g.StartElement("name") },
		func() error { return g.StartElement("languageId") },
		func() error { g.CharData([]byte("en")); return nil },
		func() error { return g.EndElement("languageId") },
		func() error { return g.StartElement("trName") },
		func() error { g.CharData([]byte("Fra")); return nil },
		func() error { g.CharData([]byte("nce\n")); return nil },
		func() error { return g.EndElement("trName") },
		func() error { return g.EndElement("name") },
		func() error { return g.EndElement("territory") },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d error = %v", i, err)
		}
	}
	fr, _ := table.Get("FR")
	if got := fr.Names["en"]; got != "France" {
		t.Fatalf("Names[en] = %q, want France", got)
	}
}

func TestWhitespaceOnlyTextIgnored(t *testing.T) {
	doc := "<keyboards><keyboard><keyboardId>\n  us  \n</keyboardId><comment>   </comment></keyboard></keyboards>"
	table := model.NewTable[*model.Keyboard]()
	if err := run(t, NewKeyboards(table), doc); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	k, ok := table.Get("us")
	if !ok {
		t.Fatalf("Get(us) not found; keys = %v", table.Keys())
	}
	if k.Comment != "" {
		t.Fatalf("Comment = %q, want empty", k.Comment)
	}
}

func TestTextSplitKeepsInnerSpaces(t *testing.T) {
	doc := `<keyboards><keyboard><keyboardId>us</keyboardId>` +
		`<description> English <![CDATA[(US)]]> </description>` +
		`<comment>a<!-- note --> b</comment></keyboard></keyboards>`
	table := model.NewTable[*model.Keyboard]()
	if err := run(t, NewKeyboards(table), doc); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	k, ok := table.Get("us")
	if !ok {
		t.Fatalf("Get(us) not found")
	}
	if k.Description != "English (US)" {
		t.Fatalf("Description = %q, want %q", k.Description, "English (US)")
	}
	if k.Comment != "a b" {
		t.Fatalf("Comment = %q, want %q", k.Comment, "a b")
	}
}

func TestTextOutsideTargetsIgnored(t *testing.T) {
	doc := `<keyboards>stray<keyboard>loose<keyboardId>us</keyboardId>text<unknown>x</unknown></keyboard></keyboards>`
	table := model.NewTable[*model.Keyboard]()
	if err := run(t, NewKeyboards(table), doc); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if keys := table.Keys(); len(keys) != 1 || keys[0] != "us" {
		t.Fatalf("Keys() = %v, want [us]", keys)
	}
}

func TestLanguageIdDependsOnContext(t *testing.T) {
	doc := `<languages>
  <language>
    <languageId>de</languageId>
    <iso639-1>de</iso639-1>
    <iso639-2-t>deu</iso639-2-t>
    <iso639-2-b>ger</iso639-2-b>
    <names>
      <name><languageId>en</languageId><trName>German</trName></name>
      <name><languageId>de</languageId><trName>Deutsch</trName></name>
    </names>
    <locales><locale><localeId>de_DE</localeId><rank>100</rank></locale></locales>
    <territories><territory><territoryId>DE</territoryId><rank>100</rank></territory></territories>
    <keyboards><keyboard><keyboardId>de(nodeadkeys)</keyboardId><rank>100</rank></keyboard></keyboards>
    <consolefonts><consolefont><consolefontId>eurlatgr</consolefontId><rank>100</rank></consolefont></consolefonts>
    <timezones><timezone><timezoneId>Europe/Berlin</timezoneId><rank>100</rank></timezone></timezones>
  </language>
</languages>`

	table := model.NewTable[*model.Language]()
	if err := run(t, NewLanguages(table), doc); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if keys := table.Keys(); len(keys) != 1 || keys[0] != "de" {
		t.Fatalf("Keys() = %v, want [de]", keys)
	}
	de, _ := table.Get("de")
	if !maps.Equal(de.Names, model.NameMap{"en": "German", "de": "Deutsch"}) {
		t.Fatalf("Names = %v", de.Names)
	}
	if de.ISO6391 != "de" || de.ISO6392Terminology != "deu" || de.ISO6392Bibliographic != "ger" {
		t.Fatalf("ISO codes = %q %q %q", de.ISO6391, de.ISO6392Terminology, de.ISO6392Bibliographic)
	}
	if de.Locales["de_DE"] != 100 || de.Territories["DE"] != 100 || de.Keyboards["de(nodeadkeys)"] != 100 ||
		de.Consolefonts["eurlatgr"] != 100 || de.Timezones["Europe/Berlin"] != 100 {
		t.Fatalf("associations = %v %v %v %v %v", de.Locales, de.Territories, de.Keyboards, de.Consolefonts, de.Timezones)
	}
}

func TestLanguageIdAfterNamesSelectsEntity(t *testing.T) {
	doc := `<languages><language>
<names><name><languageId>en</languageId><trName>Dutch</trName></name></names>
<languageId>nl</languageId>
</language></languages>`
	table := model.NewTable[*model.Language]()
	if err := run(t, NewLanguages(table), doc); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	nl, ok := table.Get("nl")
	if !ok {
		t.Fatalf("Get(nl) not found; keys = %v", table.Keys())
	}
	if nl.Names["en"] != "Dutch" {
		t.Fatalf("Names = %v", nl.Names)
	}
}

func TestMalformedRankAbortsDocument(t *testing.T) {
	doc := `<territories>
<territory><territoryId>DE</territoryId></territory>
<territory><territoryId>FR</territoryId>
<languages><language><languageId>fr</languageId><rank>abc</rank></language></languages>
</territory>
<territory><territoryId>IT</territoryId></territory>
</territories>`
	table := model.NewTable[*model.Territory]()
	err := run(t, NewTerritories(table), doc)
	if !errors.Is(err, lterrors.ErrMalformedValue) {
		t.Fatalf("Run() error = %v, want %v", err, lterrors.ErrMalformedValue)
	}
	load, ok := lterrors.AsLoad(err)
	if !ok || load.Element != "language" || load.Line != 4 {
		t.Fatalf("error context = %+v, want element language on line 4", load)
	}
	if _, ok := table.Get("FR"); ok {
		t.Fatalf("FR committed despite malformed rank")
	}
	if _, ok := table.Get("IT"); ok {
		t.Fatalf("IT committed after abort")
	}
	if _, ok := table.Get("DE"); !ok {
		t.Fatalf("DE missing; entities committed before the failure are kept")
	}
}

func TestRankErrors(t *testing.T) {
	tests := []struct {
		name string
		item string
		code lterrors.ErrorCode
	}{
		{name: "missing rank", item: "<languageId>en</languageId>", code: lterrors.ErrMalformedValue},
		{name: "negative rank", item: "<languageId>en</languageId><rank>-1</rank>", code: lterrors.ErrMalformedValue},
		{name: "fractional rank", item: "<languageId>en</languageId><rank>1.5</rank>", code: lterrors.ErrMalformedValue},
		{name: "missing id", item: "<rank>10</rank>", code: lterrors.ErrMalformedStructure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := "<keyboards><keyboard><keyboardId>us</keyboardId><languages><language>" +
				tt.item + "</language></languages></keyboard></keyboards>"
			err := run(t, NewKeyboards(model.NewTable[*model.Keyboard]()), doc)
			if !errors.Is(err, tt.code) {
				t.Fatalf("Run() error = %v, want %v", err, tt.code)
			}
		})
	}
}

func TestStructureErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "entity without id", doc: "<keyboards><keyboard><description>x</description></keyboard></keyboards>"},
		{name: "association outside entity", doc: "<keyboards><language><languageId>en</languageId><rank>1</rank></language></keyboards>"},
		{name: "ascii outside entity", doc: "<keyboards><ascii>True</ascii></keyboards>"},
		{name: "nested entity", doc: "<keyboards><keyboard><keyboard/></keyboard></keyboards>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(t, NewKeyboards(model.NewTable[*model.Keyboard]()), tt.doc)
			if !errors.Is(err, lterrors.ErrMalformedStructure) {
				t.Fatalf("Run() error = %v, want %v", err, lterrors.ErrMalformedStructure)
			}
		})
	}
}

func TestNameOutsideTerritory(t *testing.T) {
	doc := "<territories><name><languageId>en</languageId><trName>x</trName></name></territories>"
	err := run(t, NewTerritories(model.NewTable[*model.Territory]()), doc)
	if !errors.Is(err, lterrors.ErrMalformedStructure) {
		t.Fatalf("Run() error = %v, want %v", err, lterrors.ErrMalformedStructure)
	}
}

func TestRunXMLError(t *testing.T) {
	err := run(t, NewKeyboards(model.NewTable[*model.Keyboard]()), "<keyboards><keyboard></keyboards>")
	if !errors.Is(err, lterrors.ErrXMLParse) {
		t.Fatalf("Run() error = %v, want %v", err, lterrors.ErrXMLParse)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r, err := xmlstream.NewReader(strings.NewReader("<keyboards/>"))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	err = Run(ctx, r, NewKeyboards(model.NewTable[*model.Keyboard]()))
	if !errors.Is(err, lterrors.ErrLoadCanceled) || !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want canceled load", err)
	}
}

func TestEmptyDocumentYieldsEmptyTable(t *testing.T) {
	table := model.NewTable[*model.Language]()
	if err := run(t, NewLanguages(table), "<languages/>"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if table.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", table.Len())
	}
}
