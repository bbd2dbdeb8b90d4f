package score

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/moneymule/graph-engine/internal/graphbuild"
	"github.com/moneymule/graph-engine/internal/model"
)

func testWeights() Weights {
	return Weights{
		Cycle:        40,
		FanIn:        25,
		FanOut:       25,
		ShellChain:   20,
		HighVelocity: 10,
		Max:          100,
	}
}

func TestApply_AdditiveScoring(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := graphbuild.Build([]model.Transaction{
		{ID: "t1", SenderID: "A", ReceiverID: "B", Amount: 10, Timestamp: base},
	})
	g.Nodes["A"].ShortestCycleLength = 3

	Apply(g, testWeights(),
		map[string]bool{"A": true},
		map[string]bool{},
		map[string]bool{},
		map[string]bool{"A": true})

	acc := g.Nodes["A"]
	assert.Equal(t, 40.0+25.0+10.0, acc.SuspicionScore)
	assert.True(t, acc.IsSuspicious)
	assert.True(t, acc.DetectedPatterns[model.PatternCycleLength3])
	assert.True(t, acc.DetectedPatterns[model.PatternFanIn])
	assert.True(t, acc.DetectedPatterns[model.PatternHighVelocity])
}

func TestApply_CapsAtMax(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := graphbuild.Build([]model.Transaction{
		{ID: "t1", SenderID: "A", ReceiverID: "B", Amount: 10, Timestamp: base},
	})
	g.Nodes["A"].ShortestCycleLength = 3

	Apply(g, testWeights(),
		map[string]bool{"A": true},
		map[string]bool{"A": true},
		map[string]bool{"A": true},
		map[string]bool{"A": true})

	assert.Equal(t, 100.0, g.Nodes["A"].SuspicionScore)
}

func TestApply_NoFindingsNotSuspicious(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := graphbuild.Build([]model.Transaction{
		{ID: "t1", SenderID: "A", ReceiverID: "B", Amount: 10, Timestamp: base},
	})

	Apply(g, testWeights(), map[string]bool{}, map[string]bool{}, map[string]bool{}, map[string]bool{})

	assert.False(t, g.Nodes["A"].IsSuspicious)
	assert.Zero(t, g.Nodes["A"].SuspicionScore)
}
