package detect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneymule/graph-engine/internal/graphbuild"
	"github.com/moneymule/graph-engine/internal/model"
)

func tx(id, sender, receiver string, amount float64, ts time.Time) model.Transaction {
	return model.Transaction{ID: id, SenderID: sender, ReceiverID: receiver, Amount: amount, Timestamp: ts}
}

func TestCycles_TriangleDetected(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := graphbuild.Build([]model.Transaction{
		tx("t1", "A", "B", 100, base),
		tx("t2", "B", "C", 100, base.Add(time.Hour)),
		tx("t3", "C", "A", 100, base.Add(2*time.Hour)),
	})

	cycles := Cycles(g, 3, 5)
	require.Len(t, cycles, 1)
	assert.Equal(t, 3, cycles[0].Length)
}

func TestCycles_LengthTwoNeverReported(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := graphbuild.Build([]model.Transaction{
		tx("t1", "A", "B", 100, base),
		tx("t2", "B", "A", 100, base.Add(time.Hour)),
	})

	cycles := Cycles(g, 3, 5)
	assert.Empty(t, cycles)
}

func TestCycles_LengthSixNeverReported(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	nodes := []string{"A", "B", "C", "D", "E", "F"}
	var txs []model.Transaction
	for i := 0; i < len(nodes); i++ {
		next := (i + 1) % len(nodes)
		txs = append(txs, tx(nodes[i], nodes[i], nodes[next], 10, base.Add(time.Duration(i)*time.Hour)))
	}
	g := graphbuild.Build(txs)

	cycles := Cycles(g, 3, 5)
	assert.Empty(t, cycles, "a 6-cycle exceeds the depth cap and must not be reported")
}

func TestCycles_DirectionIgnoredForDedup(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	// A->B->C->A and the reverse-direction cycle A->C->B->A share the same
	// member set, so they canonicalize to the same key and emit exactly once,
	// regardless of which seed finds them.
	g := graphbuild.Build([]model.Transaction{
		tx("t1", "A", "B", 100, base),
		tx("t2", "B", "C", 100, base.Add(time.Hour)),
		tx("t3", "C", "A", 100, base.Add(2*time.Hour)),
		tx("t4", "A", "C", 100, base.Add(3*time.Hour)),
		tx("t5", "C", "B", 100, base.Add(4*time.Hour)),
		tx("t6", "B", "A", 100, base.Add(5*time.Hour)),
	})

	cycles := Cycles(g, 3, 5)
	require.Len(t, cycles, 1)
}

func TestMarkCycleMembers_ShortestLengthWins(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := graphbuild.Build([]model.Transaction{
		tx("t1", "A", "B", 100, base),
		tx("t2", "B", "C", 100, base.Add(time.Hour)),
		tx("t3", "C", "A", 100, base.Add(2*time.Hour)),
	})

	cycles := Cycles(g, 3, 5)
	MarkCycleMembers(g, cycles)

	assert.Equal(t, 3, g.Nodes["A"].ShortestCycleLength)
	assert.Equal(t, 3, g.Nodes["B"].ShortestCycleLength)
	assert.Equal(t, 3, g.Nodes["C"].ShortestCycleLength)
}
