package domain

import "time"

type HoldStatus string

const (
	HoldStatusPending   HoldStatus = "pending"
	HoldStatusConfirmed HoldStatus = "confirmed"
	HoldStatusCancelled HoldStatus = "cancelled"
)

// Hold is a time-bounded reservation against a slot. A pending hold past
// ExpiresAt stops counting against capacity without a status change.
type Hold struct {
	ID             string
	SlotID         string
	IdempotencyKey string
	Status         HoldStatus
	ExpiresAt      time.Time
	ConfirmedAt    *time.Time
	CancelledAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Active reports whether the hold counts against its slot's capacity at the
// given instant: not cancelled and not past expiry.
func (h Hold) Active(now time.Time) bool {
	return h.Status != HoldStatusCancelled && h.ExpiresAt.After(now)
}
