package refset

import "sort"

// Set is a set of components.
type Set map[string]struct{}

// NewSet returns a set holding items.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

func (s Set) Add(items ...string) {
	for _, it := range items {
		s[it] = struct{}{}
	}
}

// SubsetOf reports whether every element of s is in other.
// The empty set is a subset of anything.
func (s Set) SubsetOf(other Set) bool {
	for it := range s {
		if _, ok := other[it]; !ok {
			return false
		}
	}
	return true
}

// Union adds all elements of other to s.
func (s Set) Union(other Set) {
	for it := range other {
		s[it] = struct{}{}
	}
}

// Sorted returns the elements in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for it := range s {
		out = append(out, it)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both sets hold the same elements.
func (s Set) Equal(other Set) bool {
	return len(s) == len(other) && s.SubsetOf(other)
}
