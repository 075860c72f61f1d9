package appointmentRepo

import (
	"errors"

	"petcare/models"
)

// ErrNotFound is returned when no appointment exists for an id.
var ErrNotFound = errors.New("appointment not found")

// AppointmentRepository persists confirmed appointment records. Create is
// append-only; status transitions are performed by outside collaborators
// through UpdateStatus.
type AppointmentRepository interface {
	Create(appt *models.Appointment) error
	GetByID(id string) (*models.Appointment, error)
	ListBySessionID(sessionID string) ([]models.Appointment, error)
	UpdateStatus(id, status string) error
}
