package appointment

import (
	"fmt"
	"strings"

	"petcare/models"
)

// Fixed bot replies used across the dialogue.
const (
	MsgCancelled    = "Appointment booking cancelled. How else can I help you with your pet's needs?"
	MsgDeclined     = "Appointment booking cancelled. How can I help you with your pet's needs?"
	MsgBooked       = "Your appointment has been successfully booked! We'll contact you shortly to confirm. Is there anything else I can help you with?"
	MsgYesNoPrompt  = "Please type \"yes\" to confirm or \"no\" to start over."
	MsgBookingOffer = "I'd be happy to help you book an appointment. How would you like to provide your details?"
)

// question is one entry in the dialogue's question catalogue.
type question struct {
	message   string
	nextState models.DialogueState
}

// questionCatalogue maps the current state to the question asked next and
// the state entered by asking it. The state a question transitions into is
// where its answer arrives, which is why the chain runs one step behind the
// state names.
var questionCatalogue = map[models.DialogueState]question{
	models.StateAskOwnerName: {
		message:   "Great! I'll help you book an appointment. May I have your full name, please?",
		nextState: models.StateAskPetName,
	},
	models.StateAskPetName: {
		message:   "Thank you! What's your pet's name?",
		nextState: models.StateAskPhone,
	},
	models.StateAskPhone: {
		message:   "What's the best phone number to reach you at?",
		nextState: models.StateAskDateTime,
	},
	models.StateAskDateTime: {
		message:   "When would you prefer to schedule the appointment? Please provide your preferred date and time.",
		nextState: models.StateConfirmation,
	},
}

// confirmationSummary renders the collected details for the final yes/no.
func confirmationSummary(d models.BookingDraft) string {
	return fmt.Sprintf(`Perfect! Let me confirm your appointment details:

Owner Name: %s
Pet Name: %s
Phone: %s
Preferred Date/Time: %s

Is this information correct? (Type 'yes' to confirm or 'no' to start over)`,
		d.OwnerName, d.PetName, d.Phone, d.PreferredDateTime)
}

var cancelPhrases = []string{"cancel", "stop", "nevermind", "forget it", "exit"}

// DetectCancelIntent reports whether the message asks to abandon the booking
// flow. Matching is a case-insensitive substring check against a fixed
// lexicon.
func DetectCancelIntent(message string) bool {
	lower := strings.ToLower(message)
	for _, phrase := range cancelPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func isYes(lower string) bool {
	return lower == "yes" || lower == "confirm" || lower == "y"
}

func isNo(lower string) bool {
	return lower == "no" || lower == "cancel" || lower == "n"
}
