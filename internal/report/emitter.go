// Package report implements component E: it projects the final node table
// and assembled rings into the JSON-serializable report shape (§6).
package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/moneymule/graph-engine/internal/graphbuild"
	"github.com/moneymule/graph-engine/internal/model"
)

// SuspiciousAccount is one entry in the report's suspicious_accounts list.
type SuspiciousAccount struct {
	AccountID        string             `json:"account_id"`
	SuspicionScore   float64            `json:"suspicion_score"`
	DetectedPatterns []model.PatternTag `json:"detected_patterns"`
	RingID           string             `json:"ring_id,omitempty"`
}

// RingReport is one entry in the report's fraud_rings list.
type RingReport struct {
	RingID         string                `json:"ring_id"`
	MemberAccounts []string              `json:"member_accounts"`
	PatternType    model.RingPatternType `json:"pattern_type"`
	RiskScore      float64               `json:"risk_score"`
}

// Summary is the report's aggregate counters.
type Summary struct {
	TotalAccountsAnalyzed     int     `json:"total_accounts_analyzed"`
	SuspiciousAccountsFlagged int     `json:"suspicious_accounts_flagged"`
	FraudRingsDetected        int     `json:"fraud_rings_detected"`
	ProcessingTimeSeconds     float64 `json:"processing_time_seconds"`
}

// Report is the full JSON output of an analysis run.
type Report struct {
	SuspiciousAccounts []SuspiciousAccount `json:"suspicious_accounts"`
	FraudRings         []RingReport        `json:"fraud_rings"`
	Summary            Summary             `json:"summary"`
}

// Emit projects g and rings into the final report. elapsed is the
// wall-clock duration of the full pipeline run, measured by the caller.
func Emit(g *graphbuild.Graph, rings []model.Ring, elapsed time.Duration) Report {
	type indexed struct {
		account SuspiciousAccount
		order   int
	}

	var flagged []indexed
	for i, id := range g.NodeOrder {
		acc := g.Nodes[id]
		if !acc.IsSuspicious {
			continue
		}
		flagged = append(flagged, indexed{
			account: SuspiciousAccount{
				AccountID:        acc.ID,
				SuspicionScore:   math.Round(acc.SuspicionScore*10) / 10,
				DetectedPatterns: acc.Tags(),
				RingID:           acc.RingID,
			},
			order: i,
		})
	}

	sort.SliceStable(flagged, func(i, j int) bool {
		if flagged[i].account.SuspicionScore != flagged[j].account.SuspicionScore {
			return flagged[i].account.SuspicionScore > flagged[j].account.SuspicionScore
		}
		return flagged[i].order < flagged[j].order
	})

	accounts := make([]SuspiciousAccount, len(flagged))
	for i, f := range flagged {
		accounts[i] = f.account
	}

	ringReports := make([]RingReport, len(rings))
	for i, r := range rings {
		ringReports[i] = RingReport{
			RingID:         r.ID,
			MemberAccounts: r.MemberAccounts,
			PatternType:    r.PatternType,
			RiskScore:      r.RiskScore,
		}
	}

	result := Report{
		SuspiciousAccounts: accounts,
		FraudRings:         ringReports,
		Summary: Summary{
			TotalAccountsAnalyzed:     len(g.NodeOrder),
			SuspiciousAccountsFlagged: len(accounts),
			FraudRingsDetected:        len(ringReports),
			ProcessingTimeSeconds:     math.Round(elapsed.Seconds()*100) / 100,
		},
	}

	checkInvariants(g, result)
	return result
}

// checkInvariants enforces the universal invariants P1-P5 (§3). A violation
// means the pipeline phases disagree with each other on shared state — an
// engine bug, not a caller-facing condition, so it fails fast rather than
// returning a partial or silently-wrong report (§7, "invariant breach").
func checkInvariants(g *graphbuild.Graph, r Report) {
	suspiciousCount := 0
	for _, id := range g.NodeOrder {
		acc := g.Nodes[id]
		if acc.SuspicionScore > 0 {
			suspiciousCount++
		}
		if acc.SuspicionScore < 0 || acc.SuspicionScore > 100 {
			panic(fmt.Sprintf("report: invariant P2 violated: account %s has suspicion_score %v outside [0,100]", id, acc.SuspicionScore))
		}
	}
	if suspiciousCount != len(r.SuspiciousAccounts) {
		panic(fmt.Sprintf("report: invariant P1 violated: %d accounts with score > 0 but %d in suspicious_accounts", suspiciousCount, len(r.SuspiciousAccounts)))
	}

	ringExists := make(map[string]bool, len(r.FraudRings))
	memberRing := make(map[string]string)
	for i, ring := range r.FraudRings {
		wantID := model.FormatRingID(i + 1)
		if ring.RingID != wantID {
			panic(fmt.Sprintf("report: invariant P5 violated: ring at position %d has id %s, expected %s", i, ring.RingID, wantID))
		}
		ringExists[ring.RingID] = true
		for _, m := range ring.MemberAccounts {
			if existing, ok := memberRing[m]; ok {
				panic(fmt.Sprintf("report: invariant P3 violated: account %s appears in both %s and %s", m, existing, ring.RingID))
			}
			memberRing[m] = ring.RingID
		}
	}

	for _, acc := range r.SuspiciousAccounts {
		if acc.RingID != "" && !ringExists[acc.RingID] {
			panic(fmt.Sprintf("report: invariant P4 violated: account %s references missing ring %s", acc.AccountID, acc.RingID))
		}
	}
}
