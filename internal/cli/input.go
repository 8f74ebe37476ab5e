// Package cli handles cmd line input for inspecting decompositions and reference picks interactively
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/glyphref/internal/logger"
	"github.com/bastiangx/glyphref/pkg/decomp"
	"github.com/bastiangx/glyphref/pkg/hangul"
	"github.com/bastiangx/glyphref/pkg/mapping"
	"github.com/bastiangx/glyphref/pkg/refset"
	"github.com/charmbracelet/log"
)

// InputHandler reads characters from stdin and shows how the mapping
// builder sees them: components, layout tag, coverage and ranked references.
type InputHandler struct {
	table        *decomp.Table
	pool         []string
	topK         int
	maxDepth     int
	requestCount int
	logger       *log.Logger
}

// Report is everything the inspector knows about one character.
type Report struct {
	Char       string
	Key        string
	Components []string
	Tag        hangul.Tag
	Index      [3]int
	Coverage   []string
	Refs       []refset.Scored
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(table *decomp.Table, pool []string, topK, maxDepth int) *InputHandler {
	return &InputHandler{
		table:    table,
		pool:     pool,
		topK:     topK,
		maxDepth: maxDepth,
		logger:   logger.NewWithConfig("inspect", log.GetLevel(), false, false, log.TextFormatter),
	}
}

// Start reads lines from r until EOF and inspects every character on them.
func (h *InputHandler) Start(r io.Reader) error {
	h.logger.Printf("glyphref inspector (%s table, %d references)", h.table.Name(), len(h.pool))
	h.logger.Print("type characters and press Enter (Ctrl+D to exit):")
	reader := bufio.NewReader(r)

	for {
		line, err := reader.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			h.handleInput(line)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (h *InputHandler) handleInput(line string) {
	for _, r := range line {
		if r == ' ' || r == '\t' {
			continue
		}
		h.requestCount++
		start := time.Now()
		report, err := h.Inspect(string(r))
		if err != nil {
			h.logger.Errorf("%q: %v", r, err)
			continue
		}
		h.logger.Debugf("Took [ %v ] for %q", time.Since(start), r)
		h.printReport(report)
	}
}

// Inspect builds a report for ch. Characters outside the table fail with
// decomp.ErrLookup.
func (h *InputHandler) Inspect(ch string) (*Report, error) {
	key, err := mapping.KeyOf(ch)
	if err != nil {
		return nil, err
	}
	comps, err := h.table.Components(ch)
	if err != nil {
		return nil, err
	}
	report := &Report{
		Char:       ch,
		Key:        key,
		Components: comps,
		Tag:        hangul.StructureTag(comps),
		Coverage:   refset.Coverage(ch, h.table, h.maxDepth).Sorted(),
	}
	if r := []rune(ch)[0]; hangul.IsSyllable(r) {
		if report.Index, err = hangul.IndexEncoding(r); err != nil {
			return nil, err
		}
	}

	ranked, err := refset.Rank(ch, h.pool, h.table)
	if err != nil {
		return nil, err
	}
	report.Refs = ranked[:min(h.topK, len(ranked))]
	return report, nil
}

func (h *InputHandler) printReport(rep *Report) {
	clChar := fmt.Sprintf("\033[38;5;75m%s\033[0m", rep.Char)
	h.logger.Printf("%s  U+%s  %s  tag=%d (%s)", clChar, rep.Key, strings.Join(rep.Components, " "), rep.Tag, rep.Tag)
	h.logger.Printf("    de=%v coverage=%v", rep.Index, rep.Coverage)
	if len(rep.Refs) == 0 {
		h.logger.Warn("    no references in pool")
		return
	}
	for i, s := range rep.Refs {
		h.logger.Printf("    %2d. %s (score: %d)", i+1, s.Ref, s.Score)
	}
}
