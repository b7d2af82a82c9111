package withdrawal

import "time"

// SubmitRequest represents a cash-out request from the mini-app
type SubmitRequest struct {
	UserID      int64  `json:"user_id" validate:"required,gt=0"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Method      string `json:"method" validate:"required,payout_method"`
	Destination string `json:"destination" validate:"required,min=4,max=64"`
}

// SubmitResponse carries the identifier of the recorded request
type SubmitResponse struct {
	RequestID int64 `json:"request_id"`
}

// RequestView is one history entry
type RequestView struct {
	ID          int64     `json:"id"`
	Amount      int64     `json:"amount"`
	Method      string    `json:"method"`
	Destination string    `json:"destination"`
	Status      Status    `json:"status"`
	RequestedAt time.Time `json:"requested_at"`
}
