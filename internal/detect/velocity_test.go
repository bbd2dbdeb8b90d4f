package detect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/moneymule/graph-engine/internal/graphbuild"
	"github.com/moneymule/graph-engine/internal/model"
)

func buildSenderBurst(count int) *graphbuild.Graph {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var txs []model.Transaction
	for i := 0; i < count; i++ {
		receiver := "R" + string(rune('A'+i%26)) + string(rune('0'+i/26))
		txs = append(txs, tx("t", "SENDER", receiver, 10, base.Add(time.Duration(i)*time.Minute)))
	}
	return graphbuild.Build(txs)
}

func TestHighVelocitySenders_AtThreshold(t *testing.T) {
	g := buildSenderBurst(20)
	flagged := HighVelocitySenders(g, 20, 24*time.Hour)
	assert.True(t, flagged["SENDER"])
}

func TestHighVelocitySenders_BelowThreshold(t *testing.T) {
	g := buildSenderBurst(19)
	flagged := HighVelocitySenders(g, 20, 24*time.Hour)
	assert.False(t, flagged["SENDER"])
}

func TestHighVelocitySenders_OutsideWindowNotCounted(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var txs []model.Transaction
	for i := 0; i < 10; i++ {
		receiver := "R" + string(rune('A'+i))
		txs = append(txs, tx("t", "SENDER", receiver, 10, base))
	}
	for i := 0; i < 10; i++ {
		receiver := "S" + string(rune('A'+i))
		txs = append(txs, tx("t", "SENDER", receiver, 10, base.Add(48*time.Hour)))
	}
	g := graphbuild.Build(txs)

	flagged := HighVelocitySenders(g, 20, 24*time.Hour)
	assert.False(t, flagged["SENDER"])
}
