package slots

import "petcare/models"

// Manager arbitrates short-lived holds on appointment time slots. Reserve and
// confirm are atomic per canonical slot key, independent of any per-session
// serialization upstream; two sessions racing for the same time are decided
// here.
type Manager interface {
	// CheckAvailability reports whether the requested time can be booked.
	// Business unavailability (taken, outside opening hours) is a normal
	// result with an explanation and suggested alternatives; the call fails
	// only on malformed input.
	CheckAvailability(requested string) (*models.Availability, error)

	// ReserveSlot atomically creates a HELD entry for the canonical key if
	// and only if no unexpired HELD or CONFIRMED entry exists, returning the
	// key. Fails with a slotContention error otherwise.
	ReserveSlot(requested, ownerSessionID string) (string, error)

	// ConfirmReservation flips HELD to CONFIRMED for the hold's owner.
	// Confirming an already CONFIRMED hold is a no-op, so a double "yes"
	// is harmless.
	ConfirmReservation(slotKey, ownerSessionID string) error

	// ReleaseSlot discards an unconfirmed hold. Releasing a missing hold is
	// a no-op; expiry reclaims abandoned holds regardless.
	ReleaseSlot(slotKey, ownerSessionID string) error
}

// Sweeper is implemented by managers that can reclaim expired holds eagerly.
// Correctness never depends on sweeping: expiry is applied lazily at read
// time, a sweep only returns memory sooner.
type Sweeper interface {
	SweepExpired() int
}
