package reward

import "errors"

var (
	// ErrInvalidToken covers unknown tokens, tokens owned by another user and
	// tokens that were already consumed. Callers cannot tell these apart.
	ErrInvalidToken = errors.New("invalid or already used token")

	// ErrTokenExpired is returned for tokens older than the configured timeout
	ErrTokenExpired = errors.New("token expired")
)
