package utils

// SeenFilter drops repeated symbols while keeping first occurrences in order.
type SeenFilter struct {
	seen map[string]bool
}

// NewSeenFilter creates a filter that already treats exclude as seen.
func NewSeenFilter(exclude ...string) *SeenFilter {
	seen := make(map[string]bool, len(exclude))
	for _, s := range exclude {
		seen[s] = true
	}
	return &SeenFilter{seen: seen}
}

// ShouldInclude returns true the first time s is offered and false afterwards.
func (f *SeenFilter) ShouldInclude(s string) bool {
	if f.seen[s] {
		return false
	}
	f.seen[s] = true
	return true
}

// Dedupe returns items without repeats, preserving first-seen order.
func Dedupe(items []string) []string {
	f := NewSeenFilter()
	out := make([]string, 0, len(items))
	for _, it := range items {
		if f.ShouldInclude(it) {
			out = append(out, it)
		}
	}
	return out
}
