package mapping

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

var ErrBadHex = errors.New("mapping: invalid hex code point")

// EncodeHex renders r as an uppercase hex code point without a 0x prefix.
func EncodeHex(r rune) string {
	return strings.ToUpper(strconv.FormatInt(int64(r), 16))
}

// DecodeHex parses a hex code point string back into a rune.
func DecodeHex(s string) (rune, error) {
	if s == "" || strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return 0, fmt.Errorf("%w: %q", ErrBadHex, s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrBadHex, s, err)
	}
	r := rune(v)
	if !utf8.ValidRune(r) {
		return 0, fmt.Errorf("%w: %q is not a valid code point", ErrBadHex, s)
	}
	return r, nil
}

// KeyOf returns the hex key of a single-rune character.
func KeyOf(ch string) (string, error) {
	r, size := utf8.DecodeRuneInString(ch)
	if r == utf8.RuneError || size != len(ch) {
		return "", fmt.Errorf("%w: %q is not a single character", ErrBadHex, ch)
	}
	return EncodeHex(r), nil
}

// CharOf is the inverse of KeyOf.
func CharOf(key string) (string, error) {
	r, err := DecodeHex(key)
	if err != nil {
		return "", err
	}
	return string(r), nil
}
