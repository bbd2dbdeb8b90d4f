package model

// Account is a node in the transaction graph, owned by the node table built
// by the Graph Builder and mutated only by the Scorer, the False-Positive
// Filter, and the Ring Assembler (§3, §5).
type Account struct {
	ID string

	TotalTransactions int
	TotalSent         float64
	TotalReceived     float64

	UniqueSenders   map[string]bool
	UniqueReceivers map[string]bool

	IsSuspicious    bool
	SuspicionScore  float64
	DetectedPatterns map[PatternTag]bool

	// ShortestCycleLength is the length (3-5) of the shortest cycle this
	// account participates in, or 0 if it is not a cycle member. The
	// scorer uses it to pick which cycle_length_{k} tag to award (§4.R).
	ShortestCycleLength int

	RingID string // empty until assigned by the Ring Assembler
}

// NewAccount creates a zero-valued node for the given ID.
func NewAccount(id string) *Account {
	return &Account{
		ID:               id,
		UniqueSenders:    make(map[string]bool),
		UniqueReceivers:  make(map[string]bool),
		DetectedPatterns: make(map[PatternTag]bool),
	}
}

// Tags returns this account's detected patterns in canonical order.
func (a *Account) Tags() []PatternTag {
	return SortTags(a.DetectedPatterns)
}
