package account

import "errors"

var (
	// ErrUnknownAccount is returned by operations that require a pre-created account
	ErrUnknownAccount = errors.New("unknown account")

	// ErrInsufficientBalance is returned when a debit exceeds the current balance
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrQuotaExceeded is returned when the daily ad credit limit is reached
	ErrQuotaExceeded = errors.New("daily ad quota exceeded")
)
