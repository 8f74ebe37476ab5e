// Package decomp holds the read-only decomposition table that maps a
// character to the ordered list of its structural components.
package decomp

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bastiangx/glyphref/pkg/hangul"
	"github.com/charmbracelet/log"
)

// ErrLookup is returned when a character has no table entry but one is required.
var ErrLookup = errors.New("decomp: character not in decomposition table")

// Table maps a symbol to its components. Component values may themselves be
// keys of the table, which makes the decomposition recursive.
// A Table is never mutated after construction and is safe for concurrent reads.
type Table struct {
	entries map[string][]string
	keys    []string
	name    string
}

// NewTable copies entries into a new table. Keys are kept in sorted order.
func NewTable(name string, entries map[string][]string) *Table {
	t := &Table{
		entries: make(map[string][]string, len(entries)),
		keys:    make([]string, 0, len(entries)),
		name:    name,
	}
	for k, v := range entries {
		t.entries[k] = append([]string(nil), v...)
		t.keys = append(t.keys, k)
	}
	sort.Strings(t.keys)
	return t
}

// HangulTable builds the table for all 11,172 precomposed syllables,
// keyed in code point order.
func HangulTable() (*Table, error) {
	syllables := hangul.Syllables()
	t := &Table{
		entries: make(map[string][]string, len(syllables)),
		keys:    make([]string, 0, len(syllables)),
		name:    "hangul",
	}
	for _, r := range syllables {
		comps, err := hangul.Decompose(r)
		if err != nil {
			return nil, fmt.Errorf("failed to decompose %U: %w", r, err)
		}
		key := string(r)
		t.entries[key] = comps
		t.keys = append(t.keys, key)
	}
	log.Debugf("Built %s decomposition table with %d entries", t.name, len(t.keys))
	return t, nil
}

// Lookup returns the components of ch. The returned slice must not be modified.
func (t *Table) Lookup(ch string) ([]string, bool) {
	comps, ok := t.entries[ch]
	return comps, ok
}

// Components is Lookup for callers that require an entry.
func (t *Table) Components(ch string) ([]string, error) {
	comps, ok := t.entries[ch]
	if !ok {
		return nil, fmt.Errorf("%w: %q (%s)", ErrLookup, ch, t.name)
	}
	return comps, nil
}

// Has reports whether ch has an entry.
func (t *Table) Has(ch string) bool {
	_, ok := t.entries[ch]
	return ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Keys returns a copy of the table keys in table order.
func (t *Table) Keys() []string {
	return append([]string(nil), t.keys...)
}

// Name identifies the table in logs and errors.
func (t *Table) Name() string {
	return t.name
}
