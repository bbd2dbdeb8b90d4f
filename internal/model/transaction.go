package model

import "time"

// Transaction is a single validated money movement between two accounts.
// The CSV/ingestion boundary is responsible for producing these; the engine
// trusts every field (§7 of the spec: malformed input is a caller-side
// concern, not something the engine re-validates).
type Transaction struct {
	ID         string    `json:"transaction_id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Amount     float64   `json:"amount"`
	Timestamp  time.Time `json:"timestamp"`
}
