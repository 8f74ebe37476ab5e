package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vmihailenco/msgpack/v5"
)

func TestFormatWithCommas(t *testing.T) {
	testCases := []struct {
		input    int
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{11172, "11,172"},
		{1234567, "1,234,567"},
		{-4500, "-4,500"},
	}
	for _, tc := range testCases {
		if got := FormatWithCommas(tc.input); got != tc.expected {
			t.Errorf("FormatWithCommas(%d) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestDedupe(t *testing.T) {
	got := Dedupe([]string{"가", "나", "가", "다", "나"})
	if diff := cmp.Diff([]string{"가", "나", "다"}, got); diff != "" {
		t.Errorf("Dedupe mismatch (-want +got):\n%s", diff)
	}

	f := NewSeenFilter("x")
	if f.ShouldInclude("x") {
		t.Error("excluded item should not be included")
	}
	if !f.ShouldInclude("y") || f.ShouldInclude("y") {
		t.Error("y should be included exactly once")
	}
}

func TestOrderedMapKeepsOrder(t *testing.T) {
	m := NewOrderedMap[[]string](3)
	m.Set("D55C", []string{"AC00"})
	m.Set("AC00", []string{"B098", "AC01"})
	m.Set("B098", nil)
	m.Set("D55C", []string{"AC01"})

	data, err := MarshalNoEscape(m, false)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"D55C":["AC01"],"AC00":["B098","AC01"],"B098":null}`
	if string(data) != want {
		t.Errorf("JSON = %s, want %s", data, want)
	}

	back := NewOrderedMap[[]string](0)
	if err := json.Unmarshal(data, back); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(m.Keys(), back.Keys()); diff != "" {
		t.Errorf("JSON keys mismatch (-want +got):\n%s", diff)
	}

	packed, err := msgpack.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	fromPack := NewOrderedMap[[]string](0)
	if err := msgpack.Unmarshal(packed, fromPack); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(m.Keys(), fromPack.Keys()); diff != "" {
		t.Errorf("msgpack keys mismatch (-want +got):\n%s", diff)
	}
	v, _ := fromPack.Get("AC00")
	if diff := cmp.Diff([]string{"B098", "AC01"}, v); diff != "" {
		t.Errorf("msgpack value mismatch (-want +got):\n%s", diff)
	}
}

func TestOrderedMapRejectsArrays(t *testing.T) {
	m := NewOrderedMap[int](0)
	if err := json.Unmarshal([]byte(`[1,2]`), m); err == nil {
		t.Error("expected error for JSON array")
	}
}

func TestCreateFileMakesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.json")
	f, err := CreateFile(path)
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	if !FileExists(path) {
		t.Errorf("%s was not created", path)
	}
}

func TestLoadTOMLFileUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[mapping]\ntop_k = 5\ntopk = 7\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var cfg struct {
		Mapping struct {
			TopK int `toml:"top_k"`
		} `toml:"mapping"`
	}
	unknown, err := LoadTOMLFile(path, &cfg)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mapping.TopK != 5 {
		t.Errorf("top_k = %d, want 5", cfg.Mapping.TopK)
	}
	if diff := cmp.Diff([]string{"mapping.topk"}, unknown); diff != "" {
		t.Errorf("unknown keys mismatch (-want +got):\n%s", diff)
	}
}
