package withdrawal

import "time"

// Status of a cash-out request. New rows are always Pending; the transition to
// Paid or Rejected is driven by an external, manual process.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusPaid     Status = "Paid"
	StatusRejected Status = "Rejected"
)

// Request is one row of the append-only cash-out ledger. The amount is debited
// from the account balance at submission time.
type Request struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Amount      int64     `db:"amount" json:"amount"`
	Method      string    `db:"method" json:"method"`
	Destination string    `db:"destination" json:"destination"`
	Status      Status    `db:"status" json:"status"`
	RequestedAt time.Time `db:"requested_at" json:"requested_at"`
}

// Event is emitted towards the administrative channel after a successful
// submission. Delivery is a collaborator's responsibility and best-effort.
type Event struct {
	UserID      int64
	Amount      int64
	Method      string
	Destination string
}
