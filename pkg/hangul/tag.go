package hangul

// Tag labels the structural layout of a syllable block.
type Tag int

const (
	TagSingle  Tag = iota // lead + vowel
	TagStacked            // lead + vowel over trail
	TagOther
)

func (t Tag) String() string {
	switch t {
	case TagSingle:
		return "single"
	case TagStacked:
		return "stacked"
	default:
		return "other"
	}
}

// StructureTag classifies a decomposition by its component count.
func StructureTag(components []string) Tag {
	switch len(components) {
	case 2:
		return TagSingle
	case 3:
		return TagStacked
	default:
		return TagOther
	}
}

// SyllableTag decomposes r and classifies it. Non-syllables are TagOther.
func SyllableTag(r rune) Tag {
	comps, err := Decompose(r)
	if err != nil {
		return TagOther
	}
	return StructureTag(comps)
}
