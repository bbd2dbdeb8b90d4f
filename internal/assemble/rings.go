// Package assemble implements component A: it partitions flagged accounts
// into named fraud rings, in the fixed assignment order cycle, fan-in,
// fan-out, shell (§4.A).
package assemble

import (
	"math"
	"sort"

	"github.com/moneymule/graph-engine/internal/detect"
	"github.com/moneymule/graph-engine/internal/graphbuild"
	"github.com/moneymule/graph-engine/internal/model"
)

// Rings assembles fraud rings from the scored node table and the raw cycle
// findings (needed here, rather than just the per-node tags, because cycle
// membership must merge transitively across overlapping cycles).
func Rings(g *graphbuild.Graph, cycles []detect.Cycle) []model.Ring {
	assigned := make(map[string]string) // account -> ring id
	var rings []model.Ring
	seq := 0

	newRing := func(members []string, patternType model.RingPatternType) {
		seq++
		id := model.FormatRingID(seq)
		for _, m := range members {
			assigned[m] = id
		}
		rings = append(rings, model.Ring{
			ID:             id,
			MemberAccounts: members,
			PatternType:    patternType,
			RiskScore:      meanScore(g, members),
		})
	}

	// 1. Cycle rings: members merge transitively across overlapping cycles
	// (any shared node unions two cycles' member sets), via union-find.
	// Ring creation order then follows the earliest cycle (by emission
	// order) that touches each resulting group.
	uf := newUnionFind()
	for _, c := range cycles {
		for _, m := range c.Members {
			uf.add(m)
		}
		for i := 1; i < len(c.Members); i++ {
			uf.union(c.Members[0], c.Members[i])
		}
	}

	firstCycleOf := make(map[string]int) // root -> earliest cycle index
	for i, c := range cycles {
		root := uf.find(c.Members[0])
		if _, ok := firstCycleOf[root]; !ok {
			firstCycleOf[root] = i
		}
	}

	groups := make(map[string][]string)
	for _, c := range cycles {
		for _, m := range c.Members {
			root := uf.find(m)
			if !contains(groups[root], m) {
				groups[root] = append(groups[root], m)
			}
		}
	}

	var roots []string
	for root := range groups {
		roots = append(roots, root)
	}
	sort.Slice(roots, func(i, j int) bool { return firstCycleOf[roots[i]] < firstCycleOf[roots[j]] })

	for _, root := range roots {
		newRing(groups[root], model.RingPatternCycle)
	}

	// 2. Fan-in ring.
	collectUnassigned := func(tag model.PatternTag) []string {
		var out []string
		for _, id := range g.NodeOrder {
			if _, ok := assigned[id]; ok {
				continue
			}
			if g.Nodes[id].DetectedPatterns[tag] {
				out = append(out, id)
			}
		}
		return out
	}

	if fanIn := collectUnassigned(model.PatternFanIn); len(fanIn) > 0 {
		newRing(fanIn, model.RingPatternFanIn)
	}

	// 3. Fan-out ring.
	if fanOut := collectUnassigned(model.PatternFanOut); len(fanOut) > 0 {
		newRing(fanOut, model.RingPatternFanOut)
	}

	// 4. Shell ring.
	if shell := collectUnassigned(model.PatternShellChain); len(shell) > 0 {
		newRing(shell, model.RingPatternShellChain)
	}

	for _, id := range g.NodeOrder {
		if ringID, ok := assigned[id]; ok {
			g.Nodes[id].RingID = ringID
		}
	}

	return rings
}

func meanScore(g *graphbuild.Graph, members []string) float64 {
	var sum float64
	for _, m := range members {
		sum += g.Nodes[m].SuspicionScore
	}
	mean := sum / float64(len(members))
	return math.Round(mean*10) / 10
}

func contains(haystack []string, needle string) bool {
	for _, h := range haystack {
		if h == needle {
			return true
		}
	}
	return false
}

// unionFind merges cycle member sets that overlap on any node, so cycle
// rings accumulate transitively rather than just pairwise.
type unionFind struct {
	parent map[string]string
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[string]string)}
}

func (u *unionFind) add(x string) {
	if _, ok := u.parent[x]; !ok {
		u.parent[x] = x
	}
}

func (u *unionFind) find(x string) string {
	if u.parent[x] != x {
		u.parent[x] = u.find(u.parent[x])
	}
	return u.parent[x]
}

func (u *unionFind) union(a, b string) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[rb] = ra
	}
}
