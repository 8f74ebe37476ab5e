package refset

import (
	"github.com/bastiangx/glyphref/pkg/decomp"
	"github.com/charmbracelet/log"
)

// BuildReferenceSet scans chars in order and keeps every character whose
// coverage adds at least one component not yet covered. It stops after
// maxCount accepted characters or when chars is exhausted.
//
// The result approximates a minimum set cover; it depends on input order.
// covered is exactly the union of the coverage of the selected characters.
func BuildReferenceSet(chars []string, t *decomp.Table, maxCount, maxDepth int) (selected []string, covered Set) {
	covered = make(Set)
	if maxCount <= 0 {
		return nil, covered
	}

	for _, ch := range chars {
		cov := Coverage(ch, t, maxDepth)
		if cov.SubsetOf(covered) {
			continue
		}
		covered.Union(cov)
		selected = append(selected, ch)
		log.Debug("Accepted reference", "char", ch, "covered", len(covered))
		if len(selected) >= maxCount {
			break
		}
	}
	return selected, covered
}
