package refset

import (
	"sort"

	"github.com/bastiangx/glyphref/pkg/decomp"
)

// Scored is a reference character with its overlap score.
type Scored struct {
	Ref   string
	Score int
}

// counts builds the component multiset of a direct decomposition.
func counts(comps []string) map[string]int {
	m := make(map[string]int, len(comps))
	for _, c := range comps {
		m[c]++
	}
	return m
}

// overlap sums min(content[c], ref[c]) over the content components.
func overlap(content map[string]int, refComps []string) int {
	ref := counts(refComps)
	score := 0
	for c, n := range content {
		score += min(n, ref[c])
	}
	return score
}

// Rank scores every reference in pool against content by multiset overlap of
// their direct components and sorts by descending score. Ties keep pool order.
// It fails with decomp.ErrLookup if content or any reference has no entry.
func Rank(content string, pool []string, t *decomp.Table) ([]Scored, error) {
	contentComps, err := t.Components(content)
	if err != nil {
		return nil, err
	}
	contentCounts := counts(contentComps)

	scores := make([]Scored, 0, len(pool))
	for _, ref := range pool {
		refComps, err := t.Components(ref)
		if err != nil {
			return nil, err
		}
		scores = append(scores, Scored{Ref: ref, Score: overlap(contentCounts, refComps)})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores, nil
}

// SelectReferences returns up to topK references for content in ranked order.
// Fewer are returned when the pool is smaller than topK.
func SelectReferences(content string, pool []string, t *decomp.Table, topK int) ([]string, error) {
	ranked, err := Rank(content, pool, t)
	if err != nil {
		return nil, err
	}
	if topK < 0 {
		topK = 0
	}
	if topK > len(ranked) {
		topK = len(ranked)
	}
	refs := make([]string, topK)
	for i := range refs {
		refs[i] = ranked[i].Ref
	}
	return refs, nil
}
