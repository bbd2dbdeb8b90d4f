// Package filter implements component F: the payroll false-positive filter
// that exempts regular, low-variance disbursement senders from the fan-out
// smurfing tag.
package filter

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/moneymule/graph-engine/internal/graphbuild"
	"github.com/moneymule/graph-engine/internal/model"
)

// Params holds the payroll predicate's tuning constants and the point value
// to claw back when the fan_out tag is removed.
type Params struct {
	MinCount     int
	CVCap        float64
	FanOutWeight float64
}

// ApplyPayrollExemption walks every account's outbound amounts and, for
// senders matching the payroll predicate (count >= MinCount, coefficient of
// variation < CVCap) that carry no cycle tag, strips the fan_out tag and
// claws back its score contribution.
func ApplyPayrollExemption(g *graphbuild.Graph, p Params) {
	for _, id := range g.NodeOrder {
		acc := g.Nodes[id]
		if !acc.DetectedPatterns[model.PatternFanOut] {
			continue
		}
		if acc.ShortestCycleLength > 0 {
			continue
		}

		amounts := outboundAmounts(g, id)
		if !isPayroll(amounts, p.MinCount, p.CVCap) {
			continue
		}

		delete(acc.DetectedPatterns, model.PatternFanOut)
		acc.SuspicionScore -= p.FanOutWeight
		if acc.SuspicionScore < 0 {
			acc.SuspicionScore = 0
		}

		if len(acc.DetectedPatterns) == 0 {
			acc.IsSuspicious = false
			acc.SuspicionScore = 0
		}
	}
}

func outboundAmounts(g *graphbuild.Graph, id string) []float64 {
	edges := g.BySender[id]
	amounts := make([]float64, len(edges))
	for i, e := range edges {
		amounts[i] = e.Amount
	}
	return amounts
}

// isPayroll reports whether amounts satisfy the payroll predicate: at least
// minCount values whose coefficient of variation (population standard
// deviation / mean) is strictly below cvCap.
func isPayroll(amounts []float64, minCount int, cvCap float64) bool {
	if len(amounts) < minCount {
		return false
	}

	mean := stat.Mean(amounts, nil)
	if mean == 0 {
		return false
	}

	// Population standard deviation: gonum's stat.StdDev computes the
	// sample (Bessel-corrected) deviation, so the population variance is
	// derived directly instead.
	variance := stat.MomentAbout(2, amounts, mean, nil)
	popStdDev := math.Sqrt(variance)

	cv := popStdDev / mean
	return cv < cvCap
}
