package detect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/moneymule/graph-engine/internal/graphbuild"
	"github.com/moneymule/graph-engine/internal/model"
)

func TestShellChains_FlagsFullChain(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	// A->B->C->D->E, B/C/D each with exactly 2 transactions (one in, one
	// out); A and E are the chain's endpoints and exempt from the shell-like
	// test, so their own activity (one transaction each here) does not matter.
	g := graphbuild.Build([]model.Transaction{
		tx("t1", "A", "B", 10, base),
		tx("t2", "B", "C", 10, base.Add(time.Hour)),
		tx("t3", "C", "D", 10, base.Add(2*time.Hour)),
		tx("t4", "D", "E", 10, base.Add(3*time.Hour)),
	})

	flagged := ShellChains(g, 3, 3, 6)
	for _, id := range []string{"A", "B", "C", "D", "E"} {
		assert.True(t, flagged[id], "expected %s to be flagged", id)
	}
}

func TestShellChains_HighActivityIntermediateBreaksChain(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := graphbuild.Build([]model.Transaction{
		tx("t1", "A", "B", 10, base),
		tx("t2", "B", "C", 10, base.Add(time.Hour)),
		tx("t3", "C", "D", 10, base.Add(2*time.Hour)),
	})
	// Give B enough unrelated traffic to exceed the shell-like window.
	for i := 0; i < 5; i++ {
		g.Nodes["B"].TotalTransactions++
	}

	flagged := ShellChains(g, 3, 3, 6)
	assert.False(t, flagged["A"])
	assert.False(t, flagged["D"])
}

func TestShellChains_BelowMinHopsNotFlagged(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := graphbuild.Build([]model.Transaction{
		tx("t1", "A", "B", 10, base),
		tx("t2", "B", "C", 10, base.Add(time.Hour)),
	})

	flagged := ShellChains(g, 3, 3, 6)
	assert.Empty(t, flagged)
}
