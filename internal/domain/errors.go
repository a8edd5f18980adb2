package domain

import "errors"

var (
	ErrSlotNotFound            = errors.New("slot not found")
	ErrHoldNotFound            = errors.New("hold not found")
	ErrCapacityExhausted       = errors.New("slot capacity exhausted")
	ErrHoldAlreadyConfirmed    = errors.New("hold already confirmed")
	ErrHoldCancelled           = errors.New("hold is cancelled")
	ErrHoldExpired             = errors.New("hold expired")
	ErrHoldAlreadyCancelled    = errors.New("hold already cancelled")
	ErrIdempotencyKeyRequired  = errors.New("idempotency key required")
	ErrDuplicateIdempotencyKey = errors.New("duplicate idempotency key")
	ErrInvalidCapacity         = errors.New("invalid capacity")
)
