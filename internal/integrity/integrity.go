// Package integrity reports cross-table references that do not resolve and
// identifiers that are not well-formed locale tags.
package integrity

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/language"

	"github.com/jacoelho/langtable/internal/model"
)

// Kind classifies an Issue.
type Kind uint8

const (
	// KindDanglingReference marks an association to an entity missing from a complete table.
	KindDanglingReference Kind = iota
	// KindInvalidTag marks a language id or name key that does not parse as a locale tag.
	KindInvalidTag
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindDanglingReference:
		return "dangling-reference"
	case KindInvalidTag:
		return "invalid-tag"
	default:
		return "unknown"
	}
}

// Issue is one integrity finding.
type Issue struct {
	Entity   string
	Field    string
	Ref      string
	Kind     Kind
	Document model.Document
}

// String formats the issue for display.
func (i Issue) String() string {
	return fmt.Sprintf("%s %s[%s].%s: %s", i.Kind, i.Document, i.Entity, i.Field, i.Ref)
}

// Check returns every issue found in tables, ordered by document, entity, field and reference.
// References are checked only against tables that were loaded completely; nil tables are skipped.
func Check(tables model.Tables) []Issue {
	var c checker
	for id, k := range tables.Keyboards.All() {
		refs(&c, model.DocumentKeyboards, id, "languages", k.Languages, tables.Languages)
		refs(&c, model.DocumentKeyboards, id, "territories", k.Territories, tables.Territories)
	}
	for id, t := range tables.Territories.All() {
		c.names(model.DocumentTerritories, id, t.Names)
		refs(&c, model.DocumentTerritories, id, "languages", t.Languages, tables.Languages)
		refs(&c, model.DocumentTerritories, id, "keyboards", t.Keyboards, tables.Keyboards)
	}
	for id, l := range tables.Languages.All() {
		if !ValidTag(id) {
			c.add(KindInvalidTag, model.DocumentLanguages, id, "languageId", id)
		}
		c.names(model.DocumentLanguages, id, l.Names)
		refs(&c, model.DocumentLanguages, id, "territories", l.Territories, tables.Territories)
		refs(&c, model.DocumentLanguages, id, "keyboards", l.Keyboards, tables.Keyboards)
	}

	slices.SortFunc(c.issues, func(a, b Issue) int {
		return strings.Compare(a.sortKey(), b.sortKey())
	})
	return c.issues
}

// ValidTag reports whether id parses as a BCP 47 tag once its underscores are
// read as hyphens and any @modifier is dropped.
func ValidTag(id string) bool {
	if i := strings.IndexByte(id, '@'); i >= 0 {
		id = id[:i]
	}
	if id == "" {
		return false
	}
	_, err := language.Parse(strings.ReplaceAll(id, "_", "-"))
	return err == nil
}

type checker struct {
	issues []Issue
}

func (c *checker) add(kind Kind, doc model.Document, entity, field, ref string) {
	c.issues = append(c.issues, Issue{Kind: kind, Document: doc, Entity: entity, Field: field, Ref: ref})
}

func (c *checker) names(doc model.Document, entity string, names model.NameMap) {
	for _, tag := range names.Keys() {
		if !ValidTag(tag) {
			c.add(KindInvalidTag, doc, entity, "names", tag)
		}
	}
}

func refs[E any](c *checker, doc model.Document, entity, field string, m model.RankMap, target *model.Table[E]) {
	if target == nil || !target.Authoritative() {
		return
	}
	missing := lo.Filter(lo.Keys(m), func(ref string, _ int) bool {
		_, ok := target.Get(ref)
		return !ok
	})
	slices.Sort(missing)
	for _, ref := range missing {
		c.add(KindDanglingReference, doc, entity, field, ref)
	}
}

func (i Issue) sortKey() string {
	return fmt.Sprintf("%d\x00%s\x00%s\x00%d\x00%s", i.Document, i.Entity, i.Field, i.Kind, i.Ref)
}
