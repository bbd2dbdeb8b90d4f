package model

import "fmt"

// Ring is a fraud ring assembled from one or more detector findings that
// share member accounts, with a deterministic, monotonically assigned ID.
type Ring struct {
	ID             string
	MemberAccounts []string
	PatternType    RingPatternType
	RiskScore      float64
}

// FormatRingID renders the spec-mandated RING_ddd identifier (zero-padded
// to 3 digits) for the given 1-based sequence number.
func FormatRingID(sequence int) string {
	return fmt.Sprintf("RING_%03d", sequence)
}
