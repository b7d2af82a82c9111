package account

import "time"

// Account is the root entity of the reward ledger. Balance is an integer
// number of points; daily_ads_seen counts ad credits granted on LastAdDate
// and is reset lazily the first time an operation touches the account on a
// later calendar day (UTC).
type Account struct {
	UserID         int64     `db:"user_id" json:"user_id"`
	DisplayName    string    `db:"display_name" json:"display_name"`
	Balance        int64     `db:"balance" json:"balance"`
	DailyAdsSeen   int       `db:"daily_ads_seen" json:"daily_ads_seen"`
	TotalReferrals int       `db:"total_referrals" json:"total_referrals"`
	ReferredBy     *int64    `db:"referred_by" json:"referred_by,omitempty"`
	LastAdDate     time.Time `db:"last_ad_date" json:"last_ad_date"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Snapshot is the read model served to the dashboard. Unknown accounts get a
// zeroed snapshot rather than an error.
type Snapshot struct {
	UserID         int64 `json:"user_id"`
	Balance        int64 `json:"balance"`
	DailyAdsSeen   int   `json:"daily_ads_seen"`
	TotalReferrals int   `json:"total_referrals"`
}

const dateLayout = "2006-01-02"

// sameDay reports whether two instants fall on the same UTC calendar day.
func sameDay(a, b time.Time) bool {
	return a.UTC().Format(dateLayout) == b.UTC().Format(dateLayout)
}
