package errors

import "errors"

var (
	ErrTimeout   = errors.New("timeout")
	ErrViolation = errors.New("mutual exclusion violated")
)
