package domain

import "time"

// Slot is a capacity-bounded resource unit that can be reserved.
type Slot struct {
	ID        string
	Capacity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Availability is the derived view of a slot's remaining capacity.
// Held counts holds that are not cancelled and not past their expiry.
type Availability struct {
	SlotID    string `json:"slot_id"`
	Capacity  int    `json:"capacity"`
	Available int    `json:"available"`
	Held      int    `json:"held"`
}
