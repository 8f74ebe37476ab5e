package mapping

import (
	"sort"
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"
)

// Index is a prefix trie over the hex keys of a mapping. Hex keys of the same
// length share prefixes by code point block, so "AC0" finds AC00..AC0F.
type Index struct {
	trie *patricia.Trie
	size int
}

// NewIndex indexes every entry of m.
func NewIndex(m *Mapping) *Index {
	ix := &Index{trie: patricia.NewTrie()}
	m.Range(func(key string, refs []string) bool {
		if ix.trie.Insert(patricia.Prefix(key), refs) {
			ix.size++
		}
		return true
	})
	return ix
}

// Get returns the references stored for key. Keys are case-insensitive.
func (ix *Index) Get(key string) ([]string, bool) {
	item := ix.trie.Get(patricia.Prefix(strings.ToUpper(key)))
	if item == nil {
		return nil, false
	}
	return item.([]string), true
}

// WithPrefix returns the sorted keys starting with prefix.
func (ix *Index) WithPrefix(prefix string) []string {
	var keys []string
	_ = ix.trie.VisitSubtree(patricia.Prefix(strings.ToUpper(prefix)), func(p patricia.Prefix, _ patricia.Item) error {
		keys = append(keys, string(p))
		return nil
	})
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Len returns the number of indexed keys.
func (ix *Index) Len() int {
	return ix.size
}
