package detect

import (
	"sort"
	"strings"

	"github.com/moneymule/graph-engine/internal/graphbuild"
)

// Cycle is one canonical simple directed cycle of length 3-5 (§4.C).
type Cycle struct {
	Members []string // in traversal order, starting at the seed (not repeated at the end)
	Length  int
}

// Cycles enumerates all simple directed cycles of length minLen..maxLen,
// deduplicated by member set (§4.C, §9): rotations of a cycle, and two
// cycles that visit the same set of members in opposite directions, collapse
// to one representative, the earliest emitted.
//
// Determinism: seeds are walked in g.NodeOrder (insertion order, per §4.C's
// tie-break rule); neighbors within a DFS step are walked in sorted order,
// which is not mandated by the spec but is the only way to make the
// "first cycle wins" rule reproducible without depending on map iteration.
func Cycles(g *graphbuild.Graph, minLen, maxLen int) []Cycle {
	type found struct {
		members []string
		order   int
	}
	seen := make(map[string]found)
	emissionOrder := 0

	var dfs func(seed string, path []string, visited map[string]bool)
	dfs = func(seed string, path []string, visited map[string]bool) {
		current := path[len(path)-1]
		neighbors := sortedKeys(g.Forward(current))
		for _, n := range neighbors {
			if n == seed {
				if len(path) >= minLen && len(path) <= maxLen {
					key := canonicalKey(path)
					if _, ok := seen[key]; !ok {
						members := make([]string, len(path))
						copy(members, path)
						seen[key] = found{members: members, order: emissionOrder}
						emissionOrder++
					}
				}
				continue
			}
			if visited[n] || len(path) >= maxLen {
				continue
			}
			visited[n] = true
			dfs(seed, append(path, n), visited)
			delete(visited, n)
		}
	}

	for _, seed := range g.NodeOrder {
		dfs(seed, []string{seed}, map[string]bool{seed: true})
	}

	ordered := make([]found, 0, len(seen))
	for _, f := range seen {
		ordered = append(ordered, f)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].order < ordered[j].order })

	cycles := make([]Cycle, len(ordered))
	for i, f := range ordered {
		cycles[i] = Cycle{Members: f.members, Length: len(f.members)}
	}
	return cycles
}

// MarkCycleMembers records, on each cycle member's node, the shortest cycle
// length it participates in (§4.R picks the cycle_length_{k} tag from this).
func MarkCycleMembers(g *graphbuild.Graph, cycles []Cycle) {
	for _, c := range cycles {
		for _, id := range c.Members {
			acc := g.Nodes[id]
			if acc.ShortestCycleLength == 0 || c.Length < acc.ShortestCycleLength {
				acc.ShortestCycleLength = c.Length
			}
		}
	}
}

// canonicalKey is the sorted-multiset-of-members key the spec uses for
// cycle deduplication: it ignores traversal direction entirely (§9).
func canonicalKey(members []string) string {
	sorted := make([]string, len(members))
	copy(sorted, members)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00")
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
