package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneymule/graph-engine/internal/graphbuild"
	"github.com/moneymule/graph-engine/internal/model"
)

func TestEmit_SortsByScoreDescending(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := graphbuild.Build([]model.Transaction{
		{ID: "t1", SenderID: "A", ReceiverID: "B", Amount: 10, Timestamp: base},
		{ID: "t2", SenderID: "C", ReceiverID: "D", Amount: 10, Timestamp: base},
	})
	g.Nodes["A"].IsSuspicious = true
	g.Nodes["A"].SuspicionScore = 25
	g.Nodes["C"].IsSuspicious = true
	g.Nodes["C"].SuspicionScore = 65

	result := Emit(g, nil, 1500*time.Millisecond)

	require.Len(t, result.SuspiciousAccounts, 2)
	assert.Equal(t, "C", result.SuspiciousAccounts[0].AccountID)
	assert.Equal(t, "A", result.SuspiciousAccounts[1].AccountID)
}

func TestEmit_TiesBreakByInsertionOrder(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := graphbuild.Build([]model.Transaction{
		{ID: "t1", SenderID: "A", ReceiverID: "B", Amount: 10, Timestamp: base},
	})
	g.Nodes["A"].IsSuspicious = true
	g.Nodes["A"].SuspicionScore = 25
	g.Nodes["B"].IsSuspicious = true
	g.Nodes["B"].SuspicionScore = 25

	result := Emit(g, nil, 0)

	require.Len(t, result.SuspiciousAccounts, 2)
	assert.Equal(t, "A", result.SuspiciousAccounts[0].AccountID)
	assert.Equal(t, "B", result.SuspiciousAccounts[1].AccountID)
}

func TestEmit_SummaryCounts(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := graphbuild.Build([]model.Transaction{
		{ID: "t1", SenderID: "A", ReceiverID: "B", Amount: 10, Timestamp: base},
	})
	g.Nodes["A"].IsSuspicious = true
	g.Nodes["A"].SuspicionScore = 25

	result := Emit(g, []model.Ring{{ID: "RING_001", MemberAccounts: []string{"A"}}}, 2*time.Second)

	assert.Equal(t, 2, result.Summary.TotalAccountsAnalyzed)
	assert.Equal(t, 1, result.Summary.SuspiciousAccountsFlagged)
	assert.Equal(t, 1, result.Summary.FraudRingsDetected)
	assert.Equal(t, 2.0, result.Summary.ProcessingTimeSeconds)
}

func TestEmit_PanicsOnDuplicateRingMembership(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := graphbuild.Build([]model.Transaction{
		{ID: "t1", SenderID: "A", ReceiverID: "B", Amount: 10, Timestamp: base},
	})
	g.Nodes["A"].IsSuspicious = true
	g.Nodes["A"].SuspicionScore = 25

	rings := []model.Ring{
		{ID: "RING_001", MemberAccounts: []string{"A"}},
		{ID: "RING_002", MemberAccounts: []string{"A"}},
	}

	assert.Panics(t, func() { Emit(g, rings, 0) })
}
