// Package graphbuild implements component G of the analysis pipeline: it
// folds a batch of transactions into a node table, a raw (non-deduplicated)
// edge list, and the forward/reverse adjacency the cycle and shell-chain
// detectors walk.
package graphbuild

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dominikbraun/graph"

	"github.com/moneymule/graph-engine/internal/model"
)

// Graph is the output of the builder: everything downstream detectors and
// the scorer need, owned collectively but mutated only in the strict phase
// order described in spec §5.
type Graph struct {
	// Nodes, in insertion order of first appearance (§4.G contract).
	NodeOrder []string
	Nodes     map[string]*model.Account

	// Edges is the raw multigraph: one entry per transaction, in input order.
	Edges []model.Edge

	// EdgesByTimestamp is Edges sorted ascending by timestamp.
	EdgesByTimestamp []model.Edge

	// BySender/ByReceiver are each account's own edges, timestamp-sorted,
	// for the sliding-window detectors (S, V).
	BySender   map[string][]model.Edge
	ByReceiver map[string][]model.Edge

	// adjacency is the underlying node-deduplicated directed graph backing
	// Forward/Reverse; dominikbraun/graph collapses parallel edges between
	// the same pair to one, which is exactly the dedup semantics §3 asks
	// the adjacency view (as opposed to the raw Edges multigraph) to have.
	adjacency graph.Graph[string, string]
}

// Forward returns the set of distinct accounts id directly sends to.
func (g *Graph) Forward(id string) map[string]bool {
	return g.neighbors(id, false)
}

// Reverse returns the set of distinct accounts that directly send to id.
func (g *Graph) Reverse(id string) map[string]bool {
	return g.neighbors(id, true)
}

func (g *Graph) neighbors(id string, reverse bool) map[string]bool {
	var m map[string]map[string]graph.Edge[string]
	var err error
	if reverse {
		m, err = g.adjacency.PredecessorMap()
	} else {
		m, err = g.adjacency.AdjacencyMap()
	}
	if err != nil {
		// AdjacencyMap/PredecessorMap only fail on a corrupt internal store;
		// that is an engine bug, not a caller-facing condition (§7).
		panic(fmt.Errorf("graphbuild: adjacency lookup failed: %w", err))
	}

	out := make(map[string]bool, len(m[id]))
	for neighbor := range m[id] {
		out[neighbor] = true
	}
	return out
}

// Build runs component G over a batch of transactions.
func Build(transactions []model.Transaction) *Graph {
	g := &Graph{
		Nodes:      make(map[string]*model.Account),
		BySender:   make(map[string][]model.Edge),
		ByReceiver: make(map[string][]model.Edge),
		adjacency:  graph.New(graph.StringHash, graph.Directed()),
	}

	ensureNode := func(id string) {
		if _, ok := g.Nodes[id]; ok {
			return
		}
		g.Nodes[id] = model.NewAccount(id)
		g.NodeOrder = append(g.NodeOrder, id)
		if err := g.adjacency.AddVertex(id); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
			panic(fmt.Errorf("graphbuild: add vertex %q: %w", id, err))
		}
	}

	for _, tx := range transactions {
		ensureNode(tx.SenderID)
		ensureNode(tx.ReceiverID)

		sender := g.Nodes[tx.SenderID]
		receiver := g.Nodes[tx.ReceiverID]

		sender.TotalTransactions++
		sender.TotalSent += tx.Amount
		sender.UniqueReceivers[tx.ReceiverID] = true

		receiver.TotalTransactions++
		receiver.TotalReceived += tx.Amount
		receiver.UniqueSenders[tx.SenderID] = true

		edge := model.Edge{
			Source:        tx.SenderID,
			Target:        tx.ReceiverID,
			Amount:        tx.Amount,
			Timestamp:     tx.Timestamp,
			TransactionID: tx.ID,
		}
		g.Edges = append(g.Edges, edge)
		g.BySender[tx.SenderID] = append(g.BySender[tx.SenderID], edge)
		g.ByReceiver[tx.ReceiverID] = append(g.ByReceiver[tx.ReceiverID], edge)

		if err := g.adjacency.AddEdge(tx.SenderID, tx.ReceiverID); err != nil &&
			!errors.Is(err, graph.ErrEdgeAlreadyExists) {
			panic(fmt.Errorf("graphbuild: add edge %q->%q: %w", tx.SenderID, tx.ReceiverID, err))
		}
	}

	g.EdgesByTimestamp = make([]model.Edge, len(g.Edges))
	copy(g.EdgesByTimestamp, g.Edges)
	sortEdgesByTime(g.EdgesByTimestamp)

	for _, edges := range g.BySender {
		sortEdgesByTime(edges)
	}
	for _, edges := range g.ByReceiver {
		sortEdgesByTime(edges)
	}

	return g
}

func sortEdgesByTime(edges []model.Edge) {
	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Timestamp.Before(edges[j].Timestamp)
	})
}
