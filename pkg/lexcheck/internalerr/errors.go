package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnreadable     = errors.New("input unreadable")
	ErrMalformedRow   = errors.New("malformed row")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrSourceUnusable = errors.New("dump source unavailable")
)
