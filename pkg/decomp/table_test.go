package decomp

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHangulTable(t *testing.T) {
	table, err := HangulTable()
	if err != nil {
		t.Fatalf("HangulTable: %v", err)
	}
	if table.Len() != 11172 {
		t.Fatalf("Len() = %d, want 11172", table.Len())
	}

	keys := table.Keys()
	if keys[0] != "가" || keys[len(keys)-1] != "힣" {
		t.Errorf("keys not in code point order: first %q, last %q", keys[0], keys[len(keys)-1])
	}

	for _, k := range keys {
		comps, ok := table.Lookup(k)
		if !ok {
			t.Fatalf("Lookup(%q) missing", k)
		}
		if n := len(comps); n != 2 && n != 3 {
			t.Fatalf("Lookup(%q) has %d components", k, n)
		}
	}
}

func TestLookupAbsent(t *testing.T) {
	table := NewTable("test", map[string][]string{"A": {"x", "y"}})

	if _, ok := table.Lookup("x"); ok {
		t.Error("components without entries should not be found")
	}
	if table.Has("B") {
		t.Error("Has(B) should be false")
	}
	if _, err := table.Components("B"); !errors.Is(err, ErrLookup) {
		t.Errorf("Components(B) error = %v, want ErrLookup", err)
	}
	comps, err := table.Components("A")
	if err != nil {
		t.Fatalf("Components(A): %v", err)
	}
	if diff := cmp.Diff([]string{"x", "y"}, comps); diff != "" {
		t.Errorf("Components(A) mismatch (-want +got):\n%s", diff)
	}
}

func TestNewTableCopiesInput(t *testing.T) {
	entries := map[string][]string{"B": {"y", "z"}, "A": {"x"}}
	table := NewTable("test", entries)

	entries["A"][0] = "changed"
	entries["C"] = []string{"q"}

	comps, _ := table.Lookup("A")
	if comps[0] != "x" {
		t.Errorf("table shares storage with its input: %v", comps)
	}
	if table.Has("C") {
		t.Error("table picked up a key added after construction")
	}
	if diff := cmp.Diff([]string{"A", "B"}, table.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}
