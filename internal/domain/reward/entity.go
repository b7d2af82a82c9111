package reward

import "time"

// AdToken is a single-use, time-limited proof that one ad view occurred.
// Rows are never deleted or reissued; a consumed or expired token stays in the
// table as the audit record of one credit attempt.
type AdToken struct {
	Token    string    `db:"token" json:"token"`
	UserID   int64     `db:"user_id" json:"user_id"`
	IssuedAt time.Time `db:"issued_at" json:"issued_at"`
	Used     bool      `db:"used" json:"used"`
}
