// Package pool enumerates reference characters, the characters that already
// have rendered glyph images and can serve as few-shot exemplars.
package pool

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/bastiangx/glyphref/internal/utils"
	"github.com/bastiangx/glyphref/pkg/mapping"
	"github.com/charmbracelet/log"
)

// GlyphExt is the extension of rendered glyph image files.
const GlyphExt = ".png"

var ErrEmptyPool = errors.New("pool: no reference characters")

// FromString splits s into characters, skipping whitespace and repeats.
func FromString(s string) []string {
	chars := make([]string, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		if r == utf8.RuneError || strings.ContainsRune(" \t\r\n", r) {
			continue
		}
		chars = append(chars, string(r))
	}
	return utils.Dedupe(chars)
}

// FromHexList decodes hex code point strings into characters.
func FromHexList(keys []string) ([]string, error) {
	chars := make([]string, 0, len(keys))
	for _, key := range keys {
		ch, err := mapping.CharOf(strings.TrimSpace(key))
		if err != nil {
			return nil, err
		}
		chars = append(chars, ch)
	}
	return utils.Dedupe(chars), nil
}

// FromDir lists glyph images in dir. A file stem is either the character
// itself ("가.png") or its hex code point ("AC00.png"). Sub-directories and
// other files are ignored. Entries come back in directory listing order,
// which os.ReadDir sorts by file name.
func FromDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference dir %s: %w", dir, err)
	}

	var chars []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), GlyphExt) {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		ch, ok := stemChar(stem)
		if !ok {
			log.Warnf("Ignoring glyph file with unrecognized name: %s", entry.Name())
			continue
		}
		chars = append(chars, ch)
	}
	chars = utils.Dedupe(chars)
	if len(chars) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrEmptyPool, dir)
	}
	log.Debugf("Found %d reference glyphs in %s", len(chars), dir)
	return chars, nil
}

func stemChar(stem string) (string, bool) {
	if utf8.RuneCountInString(stem) == 1 {
		return stem, true
	}
	if ch, err := mapping.CharOf(stem); err == nil {
		return ch, true
	}
	return "", false
}
