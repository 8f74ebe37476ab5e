package hangul

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Conjoining jamo bases (U+1100 block) used by canonical decomposition.
const (
	conjoiningLead  = 0x1100
	conjoiningVowel = 0x1161
	conjoiningTrail = 0x11A7
)

// VerifyNFD checks the arithmetic decomposition of r against its Unicode
// canonical decomposition.
func VerifyNFD(r rune) error {
	lead, vowel, trail, ok := Indices(r)
	if !ok {
		return fmt.Errorf("%w: %U", ErrNotSyllable, r)
	}
	want := []rune{conjoiningLead + rune(lead), conjoiningVowel + rune(vowel)}
	if trail != 0 {
		want = append(want, conjoiningTrail+rune(trail))
	}

	got := []rune(norm.NFD.String(string(r)))
	if len(got) != len(want) {
		return fmt.Errorf("hangul: %U decomposes to %d jamo, NFD has %d", r, len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("hangul: %U jamo %d is %U, NFD has %U", r, i, want[i], got[i])
		}
	}
	return nil
}
