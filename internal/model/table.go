package model

import (
	"iter"
	"slices"
)

// State describes how far a table's document load got.
type State uint8

const (
	// StateEmpty means no load has finished for the table.
	StateEmpty State = iota
	// StateComplete means the document was read to its end.
	StateComplete
	// StateIncomplete means the load was aborted; committed entities remain but are not authoritative.
	StateIncomplete
	// StateAbsent means no readable document was found.
	StateAbsent
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateComplete:
		return "complete"
	case StateIncomplete:
		return "incomplete"
	case StateAbsent:
		return "absent"
	default:
		return "unknown"
	}
}

// Table is a keyed entity store with insert-or-replace semantics.
// Iteration follows first insertion order; replacing an entity keeps its position.
// A Table is written by a single loader and read-only once Finish is called.
type Table[E any] struct {
	err    error
	index  map[string]int
	source string
	keys   []string
	items  []E
	state  State
}

// NewTable returns an empty table.
func NewTable[E any]() *Table[E] {
	return &Table[E]{index: make(map[string]int)}
}

// Insert stores e under key, replacing any entity already stored there.
func (t *Table[E]) Insert(key string, e E) {
	if i, ok := t.index[key]; ok {
		t.items[i] = e
		return
	}
	t.index[key] = len(t.items)
	t.keys = append(t.keys, key)
	t.items = append(t.items, e)
}

// Get returns the entity stored under key.
func (t *Table[E]) Get(key string) (E, bool) {
	var zero E
	if t == nil {
		return zero, false
	}
	i, ok := t.index[key]
	if !ok {
		return zero, false
	}
	return t.items[i], true
}

// All iterates over key and entity pairs in insertion order.
func (t *Table[E]) All() iter.Seq2[string, E] {
	return func(yield func(string, E) bool) {
		if t == nil {
			return
		}
		for i, key := range t.keys {
			if !yield(key, t.items[i]) {
				return
			}
		}
	}
}

// Keys returns a copy of the keys in insertion order.
func (t *Table[E]) Keys() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.keys)
}

// SortedKeys returns the keys in ascending order.
func (t *Table[E]) SortedKeys() []string {
	keys := t.Keys()
	slices.Sort(keys)
	return keys
}

// Len returns the number of entities.
func (t *Table[E]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.items)
}

// Finish records the outcome of the load that populated the table.
func (t *Table[E]) Finish(state State, source string, err error) {
	t.state = state
	t.source = source
	t.err = err
}

// State returns the load state.
func (t *Table[E]) State() State {
	if t == nil {
		return StateEmpty
	}
	return t.state
}

// Source returns the system ID of the document the table was loaded from.
func (t *Table[E]) Source() string {
	if t == nil {
		return ""
	}
	return t.source
}

// Err returns the error that ended the load, if any.
func (t *Table[E]) Err() error {
	if t == nil {
		return nil
	}
	return t.err
}

// Authoritative reports whether the table reflects a fully read document.
func (t *Table[E]) Authoritative() bool {
	return t.State() == StateComplete
}

// KeyboardTable stores keyboards by keyboard id.
type KeyboardTable = Table[*Keyboard]

// TerritoryTable stores territories by territory id.
type TerritoryTable = Table[*Territory]

// LanguageTable stores languages by language id.
type LanguageTable = Table[*Language]

// Tables groups one table per document family.
type Tables struct {
	Keyboards   *KeyboardTable
	Territories *TerritoryTable
	Languages   *LanguageTable
}
