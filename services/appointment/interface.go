package appointment

import (
	appointmentRepo "petcare/database/repository/appointment"
	"petcare/models"
	"petcare/services/slots"
)

// DialogueService advances the slot-filling appointment dialogue by one turn.
// It mutates the conversation's dialogue state and draft in memory but never
// persists the session; the orchestrator owns persistence.
type DialogueService interface {
	HandleTurn(conv *models.Conversation, message string) (string, error)
}

// ReminderScheduler queues a follow-up for a booked appointment.
type ReminderScheduler interface {
	ScheduleReminder(appt models.Appointment) error
}

// DefaultDialogueService implements DialogueService.
type DefaultDialogueService struct {
	Slots        slots.Manager
	Appointments appointmentRepo.AppointmentRepository
	Reminders    ReminderScheduler // optional
}
