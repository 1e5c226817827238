package langtable_test

import (
	"context"
	"fmt"
	"testing/fstest"

	"github.com/jacoelho/langtable"
)

func ExampleLoadFS() {
	fsys := fstest.MapFS{
		"keyboards.xml": &fstest.MapFile{Data: []byte(`<keyboards>
  <keyboard>
    <keyboardId>de(nodeadkeys)</keyboardId>
    <description>German (no dead keys)</description>
    <ascii>True</ascii>
    <languages><language><languageId>de</languageId><rank>100</rank></language></languages>
  </keyboard>
</keyboards>`)},
	}

	m, err := langtable.LoadFS(context.Background(), fsys, langtable.NewLoadOptions())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	k, _ := m.Keyboard("de(nodeadkeys)")
	fmt.Println(k.Description, m.SupportsASCII(k.ID), k.Languages["de"])
	fmt.Println(m.Territories.State())
	// Output:
	// German (no dead keys) true 100
	// absent
}
