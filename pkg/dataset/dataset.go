/*
Package dataset produces the per-character training artifacts that sit next
to the reference mapping: structure tags, the jamo index table, the
train/valid split and the plain charset file.

All artifacts are keyed by uppercase hex code point and keep code point order.
*/
package dataset

import (
	"fmt"
	"slices"

	"github.com/bastiangx/glyphref/internal/utils"
	"github.com/bastiangx/glyphref/pkg/hangul"
	"github.com/bastiangx/glyphref/pkg/mapping"
	"github.com/charmbracelet/log"
)

// StructureTags labels every syllable with its layout tag
// (0 lead+vowel, 1 with trail, 2 anything else).
func StructureTags(syllables []rune) *utils.OrderedMap[int] {
	tags := utils.NewOrderedMap[int](len(syllables))
	for _, r := range syllables {
		tags.Set(mapping.EncodeHex(r), int(hangul.SyllableTag(r)))
	}
	return tags
}

// IndexTable builds the de.json table: [lead, vowel+19, trail+47] per syllable.
func IndexTable(syllables []rune) (*utils.OrderedMap[[3]int], error) {
	table := utils.NewOrderedMap[[3]int](len(syllables))
	for _, r := range syllables {
		enc, err := hangul.IndexEncoding(r)
		if err != nil {
			return nil, err
		}
		table.Set(mapping.EncodeHex(r), enc)
	}
	return table, nil
}

// VerifyIndexTable checks every entry three ways: the encoding composes back
// to its key, the key's arithmetic jamo match Unicode NFD, and the decoded
// jamo match the syllable's own decomposition.
func VerifyIndexTable(table *utils.OrderedMap[[3]int]) error {
	var err error
	table.Range(func(key string, enc [3]int) bool {
		err = verifyIndexEntry(key, enc)
		return err == nil
	})
	if err == nil {
		log.Debugf("Verified %d de entries", table.Len())
	}
	return err
}

func verifyIndexEntry(key string, enc [3]int) error {
	r, err := mapping.DecodeHex(key)
	if err != nil {
		return err
	}
	if err := hangul.VerifyNFD(r); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	back, err := hangul.Compose(enc[0], enc[1]-hangul.VowelOffset, enc[2]-hangul.TrailOffset)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if back != r {
		return fmt.Errorf("%s: index %v composes to %U", key, enc, back)
	}

	comps, err := hangul.Decompose(r)
	if err != nil {
		return err
	}
	lead, vowel, trail, err := hangul.DecodeIndexEncoding(enc)
	if err != nil {
		return err
	}
	decoded := []string{lead, vowel}
	if trail != "" {
		decoded = append(decoded, trail)
	}
	if !slices.Equal(decoded, comps) {
		return fmt.Errorf("%s: index %v decodes to %v, want %v", key, enc, decoded, comps)
	}
	return nil
}

// Charset concatenates the syllables into one string.
func Charset(syllables []rune) string {
	return string(syllables)
}

// HexList encodes characters as hex code points.
func HexList(chars []rune) []string {
	out := make([]string, len(chars))
	for i, r := range chars {
		out[i] = mapping.EncodeHex(r)
	}
	return out
}

// WriteJSON writes v as indented, unescaped JSON to path.
func WriteJSON(path string, v any) error {
	file, err := utils.CreateFile(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()
	if err := utils.EncodeJSON(file, v, true); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Debugf("Wrote %s", path)
	return file.Close()
}

// WriteText writes s to path as UTF-8 text.
func WriteText(path, s string) error {
	file, err := utils.CreateFile(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()
	if _, err := file.WriteString(s); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Debugf("Wrote %s", path)
	return file.Close()
}
