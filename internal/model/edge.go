package model

import "time"

// Edge is one directed, non-deduplicated transaction edge in the multigraph.
// One Transaction always produces exactly one Edge, including self-loops
// (§3, §9).
type Edge struct {
	Source        string
	Target        string
	Amount        float64
	Timestamp     time.Time
	TransactionID string
}
