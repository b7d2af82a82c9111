package account

// CreateRequest represents an account registration request
type CreateRequest struct {
	UserID      int64  `json:"user_id" validate:"required,gt=0"`
	DisplayName string `json:"display_name" validate:"omitempty,max=128"`
	ReferredBy  *int64 `json:"referred_by" validate:"omitempty,gt=0"`
}

// SnapshotResponse mirrors the dashboard payload: the account state plus the
// configured reward limits the mini-app renders next to it.
type SnapshotResponse struct {
	UserID            int64 `json:"user_id"`
	Balance           int64 `json:"balance"`
	DailyAdsSeen      int   `json:"daily_ads_seen"`
	TotalReferrals    int   `json:"total_referrals"`
	DailyAdLimit      int   `json:"daily_ad_limit"`
	AdIncome          int64 `json:"ad_income"`
	ReferralBonus     int64 `json:"referral_bonus"`
	MinWithdrawPoints int64 `json:"min_withdraw_points"`
}
