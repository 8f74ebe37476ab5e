/*
Package refset selects reference characters for few-shot glyph generation.

Coverage collects the components reachable from a character, BuildReferenceSet
greedily picks characters until no new components appear, and Rank/SelectReferences
order a reference pool by how many components each reference shares with a
content character. All functions are pure over their arguments; the decomposition
table is read-only, so callers may run them concurrently.
*/
package refset

import (
	"github.com/bastiangx/glyphref/pkg/decomp"
	"github.com/emirpasic/gods/queues/arrayqueue"
)

type node struct {
	symbol string
	depth  int
}

// Coverage returns the components reachable from ch within maxDepth levels.
//
// The root is dequeued at depth 0, so its own components are always collected
// when maxDepth >= 0; components discovered there are queued at depth 1 and
// expanded further only if maxDepth >= 1. A negative maxDepth returns an empty
// set. Cycles in the table are cut by the visited set.
func Coverage(ch string, t *decomp.Table, maxDepth int) Set {
	components := make(Set)
	visited := make(map[string]struct{})

	queue := arrayqueue.New()
	queue.Enqueue(node{symbol: ch, depth: 0})

	for !queue.Empty() {
		v, _ := queue.Dequeue()
		n := v.(node)
		if _, seen := visited[n.symbol]; seen || n.depth > maxDepth {
			continue
		}
		visited[n.symbol] = struct{}{}

		comps, ok := t.Lookup(n.symbol)
		if !ok {
			continue
		}
		components.Add(comps...)
		for _, c := range comps {
			queue.Enqueue(node{symbol: c, depth: n.depth + 1})
		}
	}
	return components
}
