package detect

import (
	"time"

	"github.com/moneymule/graph-engine/internal/graphbuild"
)

// HighVelocitySenders implements component V: it flags accounts with at
// least threshold outbound transactions inside some window-wide sliding
// window, using a two-pointer scan over each account's own timestamp-sorted
// outbound edges. Unlike the smurfing detector, this counts raw transaction
// volume, not distinct counterparties.
func HighVelocitySenders(g *graphbuild.Graph, threshold int, window time.Duration) map[string]bool {
	flagged := make(map[string]bool)

	for _, id := range g.NodeOrder {
		edges := g.BySender[id]
		if len(edges) < threshold {
			continue
		}

		left := 0
		for right := range edges {
			for edges[right].Timestamp.Sub(edges[left].Timestamp) > window {
				left++
			}
			if right-left+1 >= threshold {
				flagged[id] = true
				break
			}
		}
	}

	return flagged
}
