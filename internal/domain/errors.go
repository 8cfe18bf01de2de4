package domain

import "errors"

var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInactiveProduct    = errors.New("product is not active")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrOrderLimitExceeded = errors.New("order limit exceeded")
)
