package models

import "time"

// Appointment statuses.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
)

// Appointment is the persisted booking record, created exactly once when the
// user confirms the collected details.
type Appointment struct {
	ID                string    `bson:"id" json:"id"`
	SessionID         string    `bson:"sessionId" json:"sessionId"`
	OwnerName         string    `bson:"ownerName" json:"ownerName"`
	PetName           string    `bson:"petName" json:"petName"`
	Phone             string    `bson:"phone" json:"phone"`
	PreferredDateTime string    `bson:"preferredDateTime" json:"preferredDateTime"`
	SlotKey           string    `bson:"slotKey,omitempty" json:"slotKey,omitempty"`
	Status            string    `bson:"status" json:"status"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
}
