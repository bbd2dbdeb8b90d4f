package detect

import (
	"time"

	"github.com/moneymule/graph-engine/internal/graphbuild"
	"github.com/moneymule/graph-engine/internal/model"
)

// SmurfResult is the output of the Smurfing Detector (§4.S): the set of
// accounts flagged for fan-in and, separately, for fan-out.
type SmurfResult struct {
	FanIn  map[string]bool
	FanOut map[string]bool
}

// Smurfing flags accounts receiving from (or sending to) at least threshold
// distinct counterparties inside some window-wide sliding window, using a
// two-pointer scan over each account's own timestamp-sorted edges.
func Smurfing(g *graphbuild.Graph, threshold int, window time.Duration) SmurfResult {
	result := SmurfResult{
		FanIn:  make(map[string]bool),
		FanOut: make(map[string]bool),
	}

	for _, id := range g.NodeOrder {
		if hasBurstyWindow(g.ByReceiver[id], threshold, window, func(e model.Edge) string { return e.Source }) {
			result.FanIn[id] = true
		}
		if hasBurstyWindow(g.BySender[id], threshold, window, func(e model.Edge) string { return e.Target }) {
			result.FanOut[id] = true
		}
	}

	return result
}

// hasBurstyWindow reports whether a timestamp-sorted edge list contains a
// window (inclusive on both ends, width <= window) spanning at least
// threshold distinct counterparties. counterparty extracts the relevant
// endpoint (sender for an incoming list, receiver for an outgoing one).
func hasBurstyWindow(edges []model.Edge, threshold int, window time.Duration, counterparty func(model.Edge) string) bool {
	if len(edges) < threshold {
		return false
	}

	counts := make(map[string]int)
	distinct := 0
	left := 0

	for right := range edges {
		cp := counterparty(edges[right])
		if counts[cp] == 0 {
			distinct++
		}
		counts[cp]++

		for edges[right].Timestamp.Sub(edges[left].Timestamp) > window {
			leftCP := counterparty(edges[left])
			counts[leftCP]--
			if counts[leftCP] == 0 {
				distinct--
			}
			left++
		}

		if distinct >= threshold {
			return true
		}
	}

	return false
}
