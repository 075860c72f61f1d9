package models

import "time"

// HoldState is the lifecycle state of a slot hold.
type HoldState string

const (
	HoldHeld      HoldState = "HELD"
	HoldConfirmed HoldState = "CONFIRMED"
)

// SlotHold is a time-bounded exclusive claim on a requested appointment slot.
// At most one unexpired hold exists per canonical slot key.
type SlotHold struct {
	SlotKey        string    `json:"slotKey"`
	OwnerSessionID string    `json:"ownerSessionId"`
	State          HoldState `json:"state"`
	ExpiresAt      time.Time `json:"expiresAt"`
}

// Expired reports whether an unconfirmed hold has passed its expiry instant.
// Confirmed holds never expire.
func (h SlotHold) Expired(now time.Time) bool {
	return h.State == HoldHeld && now.After(h.ExpiresAt)
}

// SuggestedSlot is an alternative time offered when a requested slot is
// unavailable.
type SuggestedSlot struct {
	SlotKey     string `json:"slotKey"`
	DisplayTime string `json:"displayTime"`
}

// Availability is the outcome of a slot availability check. Business
// unavailability is a normal result, not an error.
type Availability struct {
	Available      bool            `json:"available"`
	Message        string          `json:"message"`
	SuggestedSlots []SuggestedSlot `json:"suggestedSlots,omitempty"`
}
