package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/bastiangx/glyphref/pkg/decomp"
	"github.com/bastiangx/glyphref/pkg/hangul"
	"github.com/bastiangx/glyphref/pkg/refset"
	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func newHandler(t *testing.T) *InputHandler {
	t.Helper()
	table, err := decomp.HangulTable()
	if err != nil {
		t.Fatal(err)
	}
	return NewInputHandler(table, []string{"거", "가", "한"}, 2, 1)
}

func TestInspect(t *testing.T) {
	h := newHandler(t)
	rep, err := h.Inspect("각")
	if err != nil {
		t.Fatal(err)
	}

	if rep.Key != "AC01" || rep.Tag != hangul.TagStacked || rep.Index != [3]int{0, 19, 48} {
		t.Errorf("unexpected report header: %+v", rep)
	}
	if diff := cmp.Diff([]string{"ㄱ", "ㅏ"}, rep.Coverage); diff != "" {
		t.Errorf("coverage mismatch (-want +got):\n%s", diff)
	}
	expected := []refset.Scored{{Ref: "가", Score: 2}, {Ref: "거", Score: 1}}
	if diff := cmp.Diff(expected, rep.Refs); diff != "" {
		t.Errorf("refs mismatch (-want +got):\n%s", diff)
	}
}

func TestInspectUnknown(t *testing.T) {
	h := newHandler(t)
	if _, err := h.Inspect("A"); !errors.Is(err, decomp.ErrLookup) {
		t.Errorf("expected ErrLookup, got %v", err)
	}
}

func TestStartCountsCharacters(t *testing.T) {
	h := newHandler(t)
	if err := h.Start(strings.NewReader("가 나\n\nA한")); err != nil {
		t.Fatal(err)
	}
	if h.requestCount != 4 {
		t.Errorf("requestCount = %d, want 4", h.requestCount)
	}
}

func TestStartWritesReports(t *testing.T) {
	h := newHandler(t)
	var buf bytes.Buffer
	h.logger.SetOutput(&buf)

	if err := h.Start(strings.NewReader("각\n")); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"hangul table, 3 references", "U+AC01", "ㄱ ㅏ ㄱ", "가 (score: 2)"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspector output missing %q:\n%s", want, out)
		}
	}
}
