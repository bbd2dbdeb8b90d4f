package detect

import (
	"github.com/moneymule/graph-engine/internal/graphbuild"
)

// ShellChains implements component H: it flags every account appearing on a
// directed path of length >= minHops whose intermediate nodes (everything
// but the seed and the path's final neighbor) are shell-like, i.e. have
// total_transactions in [2, maxIntermediateTx]. Traversal along forward
// adjacency is capped at maxDepth hops.
func ShellChains(g *graphbuild.Graph, minHops, maxIntermediateTx, maxDepth int) map[string]bool {
	flagged := make(map[string]bool)

	isShellIntermediate := func(id string) bool {
		tx := g.Nodes[id].TotalTransactions
		return tx >= 2 && tx <= maxIntermediateTx
	}

	var dfs func(path []string, visited map[string]bool)
	dfs = func(path []string, visited map[string]bool) {
		hops := len(path) - 1
		if hops >= minHops {
			for _, n := range path {
				flagged[n] = true
			}
		}
		if hops >= maxDepth {
			return
		}

		tail := path[len(path)-1]
		// The seed is exempt from the shell-like requirement (hops == 0);
		// every subsequent node must be shell-like to be a pass-through.
		if hops > 0 && !isShellIntermediate(tail) {
			return
		}

		for _, n := range sortedKeys(g.Forward(tail)) {
			if visited[n] {
				continue
			}
			visited[n] = true
			dfs(append(path, n), visited)
			delete(visited, n)
		}
	}

	for _, seed := range g.NodeOrder {
		dfs([]string{seed}, map[string]bool{seed: true})
	}

	return flagged
}
