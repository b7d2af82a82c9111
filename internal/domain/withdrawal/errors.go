package withdrawal

import "errors"

var (
	// ErrBelowMinimum is returned when the requested amount is under the
	// configured withdrawal threshold
	ErrBelowMinimum = errors.New("amount below minimum withdrawal")
)
