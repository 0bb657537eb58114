package ledger

import "errors"

var (
	ErrValidation     = errors.New("validation error")
	ErrInvalidAmount  = errors.New("amount must be a non-zero number")
	ErrInvalidMethod  = errors.New("invalid payment method")
	ErrUnknownBooking = errors.New("unknown booking")
)
