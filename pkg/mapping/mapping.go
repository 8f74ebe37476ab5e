/*
Package mapping builds and persists the content-to-reference mapping table.

Keys are uppercase hex code points of content characters; values are the hex
code points of the selected references in ranked order:

	{
	  "AC00": ["AC00", "AC01", "B098"],
	  ...
	}

The table is written as indented UTF-8 JSON or as a msgpack map with the same
shape. Keys keep the order in which content characters were processed.
*/
package mapping

import (
	"github.com/bastiangx/glyphref/internal/utils"
)

// Mapping is the ordered content -> references table.
type Mapping struct {
	*utils.OrderedMap[[]string]
}

// New creates an empty mapping with room for size entries.
func New(size int) *Mapping {
	return &Mapping{OrderedMap: utils.NewOrderedMap[[]string](size)}
}

// Refs returns the references stored for a content hex key.
func (m *Mapping) Refs(key string) ([]string, bool) {
	return m.Get(key)
}

// Chars decodes the mapping into characters instead of hex keys.
func (m *Mapping) Chars() (map[string][]string, error) {
	out := make(map[string][]string, m.Len())
	var err error
	m.Range(func(key string, refs []string) bool {
		var content string
		if content, err = CharOf(key); err != nil {
			return false
		}
		chars := make([]string, len(refs))
		for i, ref := range refs {
			if chars[i], err = CharOf(ref); err != nil {
				return false
			}
		}
		out[content] = chars
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
