// File: services/appointment/dialogue.go
package appointment

import (
	"strings"
	"time"

	"petcare/models"
	"petcare/services/slots"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HandleTurn processes one user message while a booking dialogue is active.
func (s *DefaultDialogueService) HandleTurn(conv *models.Conversation, message string) (string, error) {
	switch conv.DialogueState {
	case models.StateBookingConfirmation:
		return s.handleBookingOffer(conv, message), nil
	case models.StateCompleted:
		return s.handleFinalAnswer(conv, message)
	default:
		return s.handleCollection(conv, message)
	}
}

// handleBookingOffer resolves the "how would you like to proceed" question.
// Any answer short of a refusal starts the structured sequence:
// ASK_OWNER_NAME is the chain's entry key, and asking its question moves the
// session straight into ASK_PET_NAME where the answer is validated.
func (s *DefaultDialogueService) handleBookingOffer(conv *models.Conversation, message string) string {
	lower := strings.ToLower(strings.TrimSpace(message))
	if isNo(lower) {
		conv.DialogueState = models.StateNone
		conv.Draft = models.BookingDraft{}
		return MsgDeclined
	}

	q := questionCatalogue[models.StateAskOwnerName]
	conv.DialogueState = q.nextState
	return q.message
}

// handleCollection validates the answer to the pending question, stores it,
// and asks the next one. Invalid input re-asks without touching state or
// draft. Reaching CONFIRMATION means the date/time was just collected, so
// the slot is arbitrated before the summary is shown.
func (s *DefaultDialogueService) handleCollection(conv *models.Conversation, message string) (string, error) {
	ok, errMsg := collectField(conv.DialogueState, message, &conv.Draft)
	if !ok {
		return errMsg, nil
	}

	if conv.DialogueState == models.StateConfirmation {
		return s.scheduleAndSummarize(conv)
	}

	q, known := questionCatalogue[conv.DialogueState]
	if !known {
		// A state outside the chain mid-flow; restart from the first question.
		q = questionCatalogue[models.StateAskOwnerName]
	}
	conv.DialogueState = q.nextState
	return q.message, nil
}

// scheduleAndSummarize checks availability for the collected date/time,
// places a hold, and advances to the final confirmation. Unavailability and
// reservation races both keep the session in CONFIRMATION so the user picks
// another time; no hold is created on those paths.
func (s *DefaultDialogueService) scheduleAndSummarize(conv *models.Conversation) (string, error) {
	avail, err := s.Slots.CheckAvailability(conv.Draft.PreferredDateTime)
	if err != nil {
		return "", err
	}
	if !avail.Available {
		return unavailableReply(avail), nil
	}

	key, err := s.Slots.ReserveSlot(conv.Draft.PreferredDateTime, conv.SessionID)
	if err != nil {
		if slots.HasCode(err, slots.CodeSlotContention) {
			raceMsg := "That time slot was just taken by another booking."
			// Re-check to pick up alternatives around the slot we lost.
			if avail, aerr := s.Slots.CheckAvailability(conv.Draft.PreferredDateTime); aerr == nil && !avail.Available && len(avail.SuggestedSlots) > 0 {
				avail.Message = raceMsg
				return unavailableReply(avail), nil
			}
			return raceMsg + " Could you choose a different date and time?", nil
		}
		return "", err
	}

	conv.Draft.SlotKey = key
	conv.DialogueState = models.StateCompleted
	return confirmationSummary(conv.Draft), nil
}

// handleFinalAnswer resolves the yes/no at the end of the dialogue. A "yes"
// confirms the hold and creates the appointment record exactly once; a "no"
// releases the hold and discards the draft; anything else re-prompts without
// mutating state.
func (s *DefaultDialogueService) handleFinalAnswer(conv *models.Conversation, message string) (string, error) {
	lower := strings.ToLower(strings.TrimSpace(message))

	switch {
	case isYes(lower):
		if conv.Draft.SlotKey != "" {
			if err := s.Slots.ConfirmReservation(conv.Draft.SlotKey, conv.SessionID); err != nil {
				if slots.HasCode(err, slots.CodeHoldExpired) || slots.HasCode(err, slots.CodeNotOwner) {
					// The hold lapsed while the user deliberated; send them
					// back to pick a time rather than double-booking.
					conv.Draft.SlotKey = ""
					conv.Draft.PreferredDateTime = ""
					conv.DialogueState = models.StateConfirmation
					return "Sorry, that time slot expired while waiting for your confirmation. When would you like to come in instead?", nil
				}
				return "", err
			}
		}

		appt := models.Appointment{
			ID:                uuid.New().String(),
			SessionID:         conv.SessionID,
			OwnerName:         conv.Draft.OwnerName,
			PetName:           conv.Draft.PetName,
			Phone:             conv.Draft.Phone,
			PreferredDateTime: conv.Draft.PreferredDateTime,
			SlotKey:           conv.Draft.SlotKey,
			Status:            models.AppointmentPending,
			CreatedAt:         time.Now(),
		}
		if err := s.Appointments.Create(&appt); err != nil {
			return "", err
		}

		if s.Reminders != nil {
			if err := s.Reminders.ScheduleReminder(appt); err != nil {
				zap.L().Warn("failed to schedule appointment reminder",
					zap.String("appointmentId", appt.ID), zap.Error(err))
			}
		}

		conv.DialogueState = models.StateNone
		conv.Draft = models.BookingDraft{}
		return MsgBooked, nil

	case isNo(lower):
		if conv.Draft.SlotKey != "" {
			// Best effort: expiry reclaims the hold if the release fails.
			if err := s.Slots.ReleaseSlot(conv.Draft.SlotKey, conv.SessionID); err != nil {
				zap.L().Warn("failed to release slot hold",
					zap.String("slotKey", conv.Draft.SlotKey), zap.Error(err))
			}
		}
		conv.DialogueState = models.StateNone
		conv.Draft = models.BookingDraft{}
		return MsgDeclined, nil

	default:
		return MsgYesNoPrompt, nil
	}
}

func unavailableReply(avail *models.Availability) string {
	var b strings.Builder
	b.WriteString(avail.Message)
	if len(avail.SuggestedSlots) > 0 {
		b.WriteString("\n\nAvailable times nearby:")
		for _, slot := range avail.SuggestedSlots {
			b.WriteString("\n- ")
			b.WriteString(slot.DisplayTime)
		}
		b.WriteString("\n\nPlease choose one of these times or suggest another.")
	}
	return b.String()
}
