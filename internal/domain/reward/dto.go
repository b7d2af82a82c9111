package reward

// IssueTokenRequest represents a token request made before showing an ad
type IssueTokenRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
}

// IssueTokenResponse carries the token and its validity window
type IssueTokenResponse struct {
	Token          string `json:"token"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// CompleteAdRequest represents the ad completion signal from the mini-app
type CompleteAdRequest struct {
	UserID  int64  `json:"user_id" validate:"required,gt=0"`
	AdToken string `json:"ad_token" validate:"required,max=64"`
}

// CompleteAdResponse returns the day's new ad count after a successful credit
type CompleteAdResponse struct {
	DailyAdsSeen int `json:"daily_ads_seen"`
}
