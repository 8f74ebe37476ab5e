/*
Package hangul implements the arithmetic decomposition of precomposed Hangul
syllables (U+AC00..U+D7A3) into their lead, vowel and trail jamo.

Every syllable is encoded as

	Base + (lead*VowelCount + vowel)*TrailCount + trail

so decomposition is a division/modulo walk over the three alphabet sizes.
Trail index 0 means the syllable has no final consonant, in which case
Decompose returns two components instead of three.
*/
package hangul

import (
	"errors"
	"fmt"
)

const (
	Base          = 0xAC00
	Last          = 0xD7A3
	LeadCount     = 19
	VowelCount    = 21
	TrailCount    = 28
	SyllableCount = LeadCount * VowelCount * TrailCount // 11172

	blockSize = VowelCount * TrailCount // 588
)

// Offsets used by the de.json index encoding: [lead, vowel+19, trail+47].
const (
	VowelOffset = 19
	TrailOffset = 47
)

var (
	ErrNotSyllable = errors.New("hangul: not a precomposed syllable")
	ErrBadIndex    = errors.New("hangul: jamo index out of range")
)

var (
	leads = []string{"ㄱ", "ㄲ", "ㄴ", "ㄷ", "ㄸ", "ㄹ", "ㅁ", "ㅂ", "ㅃ", "ㅅ", "ㅆ", "ㅇ", "ㅈ", "ㅉ", "ㅊ", "ㅋ", "ㅌ", "ㅍ", "ㅎ"}
	vowels = []string{"ㅏ", "ㅐ", "ㅑ", "ㅒ", "ㅓ", "ㅔ", "ㅕ", "ㅖ", "ㅗ", "ㅘ", "ㅙ", "ㅚ", "ㅛ", "ㅜ", "ㅝ", "ㅞ", "ㅟ", "ㅠ", "ㅡ", "ㅢ", "ㅣ"}
	// index 0 is "no trail"
	trails = []string{"", "ㄱ", "ㄲ", "ㄳ", "ㄴ", "ㄵ", "ㄶ", "ㄷ", "ㄹ", "ㄺ", "ㄻ", "ㄼ", "ㄽ", "ㄾ", "ㄿ", "ㅀ", "ㅁ", "ㅂ", "ㅄ", "ㅅ", "ㅆ", "ㅇ", "ㅈ", "ㅊ", "ㅋ", "ㅌ", "ㅍ", "ㅎ"}
)

// IsSyllable reports whether r is a precomposed Hangul syllable.
func IsSyllable(r rune) bool {
	return r >= Base && r <= Last
}

// Indices splits a syllable into its lead, vowel and trail alphabet indices.
func Indices(r rune) (lead, vowel, trail int, ok bool) {
	if !IsSyllable(r) {
		return 0, 0, 0, false
	}
	code := int(r - Base)
	return code / blockSize, (code % blockSize) / TrailCount, code % TrailCount, true
}

// Decompose returns the jamo of r in lead, vowel, trail order.
// The trail is omitted for open syllables.
func Decompose(r rune) ([]string, error) {
	lead, vowel, trail, ok := Indices(r)
	if !ok {
		return nil, fmt.Errorf("%w: %U", ErrNotSyllable, r)
	}
	if trail == 0 {
		return []string{leads[lead], vowels[vowel]}, nil
	}
	return []string{leads[lead], vowels[vowel], trails[trail]}, nil
}

// Compose is the inverse of Indices.
func Compose(lead, vowel, trail int) (rune, error) {
	if lead < 0 || lead >= LeadCount || vowel < 0 || vowel >= VowelCount || trail < 0 || trail >= TrailCount {
		return 0, fmt.Errorf("%w: (%d, %d, %d)", ErrBadIndex, lead, vowel, trail)
	}
	return rune(Base + (lead*VowelCount+vowel)*TrailCount + trail), nil
}

// IndexEncoding returns the de.json triple [lead, vowel+19, trail+47].
func IndexEncoding(r rune) ([3]int, error) {
	lead, vowel, trail, ok := Indices(r)
	if !ok {
		return [3]int{}, fmt.Errorf("%w: %U", ErrNotSyllable, r)
	}
	return [3]int{lead, vowel + VowelOffset, trail + TrailOffset}, nil
}

// DecodeIndexEncoding maps a de.json triple back to jamo. An empty trail
// string means the syllable has no final consonant.
func DecodeIndexEncoding(enc [3]int) (lead, vowel, trail string, err error) {
	l, v, t := enc[0], enc[1]-VowelOffset, enc[2]-TrailOffset
	if l < 0 || l >= LeadCount || v < 0 || v >= VowelCount || t < 0 || t >= TrailCount {
		return "", "", "", fmt.Errorf("%w: %v", ErrBadIndex, enc)
	}
	return leads[l], vowels[v], trails[t], nil
}

// Syllables returns the whole syllable block in code point order.
func Syllables() []rune {
	out := make([]rune, 0, SyllableCount)
	for r := rune(Base); r <= Last; r++ {
		out = append(out, r)
	}
	return out
}
