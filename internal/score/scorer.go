// Package score implements component R: it applies the additive suspicion
// contribution table to the node table built by the earlier detector phases.
package score

import (
	"github.com/moneymule/graph-engine/internal/graphbuild"
	"github.com/moneymule/graph-engine/internal/model"
)

// Weights holds the per-condition point contributions and the score cap,
// mirroring spec §4.R's contribution table.
type Weights struct {
	Cycle        float64
	FanIn        float64
	FanOut       float64
	ShellChain   float64
	HighVelocity float64
	Max          float64
}

// Apply mutates every node in g according to the detector findings,
// awarding each contribution at most once per account, then caps the total
// and derives is_suspicious from the resulting score.
func Apply(g *graphbuild.Graph, w Weights, fanIn, fanOut, shell, velocity map[string]bool) {
	for _, id := range g.NodeOrder {
		acc := g.Nodes[id]
		var total float64

		if acc.ShortestCycleLength > 0 {
			acc.DetectedPatterns[model.CycleTagForLength(acc.ShortestCycleLength)] = true
			total += w.Cycle
		}
		if fanIn[id] {
			acc.DetectedPatterns[model.PatternFanIn] = true
			total += w.FanIn
		}
		if fanOut[id] {
			acc.DetectedPatterns[model.PatternFanOut] = true
			total += w.FanOut
		}
		if shell[id] {
			acc.DetectedPatterns[model.PatternShellChain] = true
			total += w.ShellChain
		}
		if velocity[id] {
			acc.DetectedPatterns[model.PatternHighVelocity] = true
			total += w.HighVelocity
		}

		if total > w.Max {
			total = w.Max
		}
		acc.SuspicionScore = total
		acc.IsSuspicious = total > 0
	}
}
