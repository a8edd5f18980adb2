package app

// Cache keys shared by the availability read path and the write-side
// invalidation in the hold lifecycle.

func availabilityKey(slotID string) string {
	return "slot.availability." + slotID
}

func availabilityLockKey(slotID string) string {
	return availabilityKey(slotID) + ".lock"
}
