package mapping

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bastiangx/glyphref/pkg/decomp"
	"github.com/bastiangx/glyphref/pkg/hangul"
	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestHexRoundTrip(t *testing.T) {
	for _, r := range hangul.Syllables() {
		key := EncodeHex(r)
		if key != strings.ToUpper(key) || strings.HasPrefix(key, "0X") {
			t.Fatalf("EncodeHex(%U) = %q", r, key)
		}
		back, err := DecodeHex(key)
		if err != nil || back != r {
			t.Fatalf("DecodeHex(%q) = %U, %v", key, back, err)
		}
	}

	if got := EncodeHex('한'); got != "D55C" {
		t.Errorf("EncodeHex(한) = %q, want D55C", got)
	}
	if got, _ := DecodeHex("ac00"); got != '가' {
		t.Errorf("lowercase hex should decode, got %U", got)
	}
}

func TestDecodeHexErrors(t *testing.T) {
	for _, s := range []string{"", "0xAC00", "XYZ", "D800", "110000"} {
		if _, err := DecodeHex(s); !errors.Is(err, ErrBadHex) {
			t.Errorf("DecodeHex(%q) error = %v, want ErrBadHex", s, err)
		}
	}
	if _, err := KeyOf("가나"); !errors.Is(err, ErrBadHex) {
		t.Errorf("KeyOf of two characters should fail, got %v", err)
	}
}

func buildHangul(t *testing.T, workers int, pool []string) *Mapping {
	t.Helper()
	table, err := decomp.HangulTable()
	if err != nil {
		t.Fatal(err)
	}
	b := NewBuilder(table, Options{TopK: 3, Workers: workers})
	m, stats, err := b.Build(context.Background(), table.Keys(), pool)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if stats.Written != 11172 || stats.Skipped != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	return m
}

func TestBuildHangul(t *testing.T) {
	pool := []string{"가", "각", "나", "한", "글", "꿻"}
	m := buildHangul(t, 4, pool)

	keys := m.Keys()
	if keys[0] != "AC00" || keys[len(keys)-1] != "D7A3" {
		t.Errorf("keys not in content order: %s .. %s", keys[0], keys[len(keys)-1])
	}

	refs, _ := m.Refs("AC00")
	// 가 matches itself fully, then 각 (ㄱㅏ) scores 2, then 나/한 score 1 -> 나 first
	if diff := cmp.Diff([]string{"AC00", "AC01", "B098"}, refs); diff != "" {
		t.Errorf("refs for 가 mismatch (-want +got):\n%s", diff)
	}

	m.Range(func(key string, refs []string) bool {
		if len(refs) != 3 {
			t.Fatalf("%s has %d refs", key, len(refs))
		}
		for _, ref := range refs {
			if _, err := DecodeHex(ref); err != nil {
				t.Fatalf("%s: %v", key, err)
			}
		}
		return true
	})

	chars, err := m.Chars()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"가", "각", "나"}, chars["가"]); diff != "" {
		t.Errorf("Chars() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildParallelMatchesSequential(t *testing.T) {
	pool := []string{"가", "각", "나", "한", "글"}
	seq := buildHangul(t, 1, pool)
	par := buildHangul(t, 8, pool)

	var a, b bytes.Buffer
	if err := WriteJSON(&a, seq); err != nil {
		t.Fatal(err)
	}
	if err := WriteJSON(&b, par); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("parallel build differs from sequential build")
	}
}

func TestBuildShortPool(t *testing.T) {
	table := decomp.NewTable("abc", map[string][]string{
		"A": {"x", "y"}, "B": {"y", "z"}, "C": {"x"},
	})
	b := NewBuilder(table, Options{TopK: 3, Workers: 2})
	m, stats, err := b.Build(context.Background(), []string{"A", "B", "C"}, []string{"C", "B"})
	if err != nil {
		t.Fatal(err)
	}
	if stats.Short != 3 {
		t.Errorf("Short = %d, want 3", stats.Short)
	}
	refs, _ := m.Refs("41")
	if diff := cmp.Diff([]string{"43", "42"}, refs); diff != "" {
		t.Errorf("refs for A mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildMissingContent(t *testing.T) {
	table := decomp.NewTable("abc", map[string][]string{"A": {"x"}, "B": {"x"}})

	strict := NewBuilder(table, Options{TopK: 1})
	if _, _, err := strict.Build(context.Background(), []string{"A", "Z"}, []string{"B"}); !errors.Is(err, decomp.ErrLookup) {
		t.Errorf("strict build error = %v, want ErrLookup", err)
	}

	lenient := NewBuilder(table, Options{TopK: 1, SkipMissing: true})
	m, stats, err := lenient.Build(context.Background(), []string{"A", "Z"}, []string{"B"})
	if err != nil {
		t.Fatal(err)
	}
	if stats.Skipped != 1 || m.Len() != 1 {
		t.Errorf("expected Z skipped, stats %+v len %d", stats, m.Len())
	}

	if _, _, err := lenient.Build(context.Background(), []string{"A"}, []string{"Q"}); !errors.Is(err, decomp.ErrLookup) {
		t.Errorf("missing reference should fail even when skipping, got %v", err)
	}
}

func TestBuildCanceled(t *testing.T) {
	table, _ := decomp.HangulTable()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := NewBuilder(table, Options{TopK: 3, Workers: 2})
	if _, _, err := b.Build(ctx, table.Keys(), []string{"가"}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestFileRoundTrip(t *testing.T) {
	m := New(3)
	m.Set("AC00", []string{"AC00", "AC01", "B098"})
	m.Set("AC01", []string{"AC01", "AC00"})
	m.Set("D55C", []string{"D55C"})

	dir := t.TempDir()
	for _, format := range []FileFormat{FormatJSON, FormatMsgpack} {
		path := filepath.Join(dir, "cr_mapping"+format.Ext())
		if err := WriteFile(path, m, format); err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		back, err := Load(path)
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if diff := cmp.Diff(m.Keys(), back.Keys()); diff != "" {
			t.Errorf("%s keys mismatch (-want +got):\n%s", format, diff)
		}
		refs, _ := back.Refs("AC00")
		if diff := cmp.Diff([]string{"AC00", "AC01", "B098"}, refs); diff != "" {
			t.Errorf("%s refs mismatch (-want +got):\n%s", format, diff)
		}
	}
}

func TestWriteJSONLayout(t *testing.T) {
	m := New(1)
	m.Set("AC00", []string{"AC01"})
	var buf bytes.Buffer
	if err := WriteJSON(&buf, m); err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"AC00\": [\n    \"AC01\"\n  ]\n}\n"
	if buf.String() != want {
		t.Errorf("JSON layout = %q, want %q", buf.String(), want)
	}
}

func TestDetectFormat(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("[1]"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := DetectFormat(bad); err == nil {
		t.Error("expected error for JSON array file")
	}

	other := filepath.Join(dir, "map.txt")
	if err := os.WriteFile(other, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := DetectFormat(other); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}

	if f, err := ParseFormat("MsgPack"); err != nil || f != FormatMsgpack {
		t.Errorf("ParseFormat(MsgPack) = %v, %v", f, err)
	}
}

func TestIndex(t *testing.T) {
	m := New(4)
	for _, key := range []string{"AC00", "AC01", "AC10", "D55C"} {
		m.Set(key, []string{key})
	}
	ix := NewIndex(m)
	if ix.Len() != 4 {
		t.Fatalf("Len() = %d", ix.Len())
	}
	if refs, ok := ix.Get("d55c"); !ok || refs[0] != "D55C" {
		t.Errorf("Get(d55c) = %v, %v", refs, ok)
	}
	if _, ok := ix.Get("AC02"); ok {
		t.Error("Get(AC02) should miss")
	}
	if diff := cmp.Diff([]string{"AC00", "AC01"}, ix.WithPrefix("ac0")); diff != "" {
		t.Errorf("WithPrefix mismatch (-want +got):\n%s", diff)
	}
	if got := ix.WithPrefix("B"); len(got) != 0 {
		t.Errorf("WithPrefix(B) = %v", got)
	}
}
