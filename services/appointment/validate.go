package appointment

import (
	"strings"

	"petcare/models"
)

// collectField validates the user's answer to the question asked on entry to
// state and stores it in the draft. The state names the question just asked,
// so the field collected here belongs to the previous link in the chain: the
// answer arriving in ASK_PET_NAME is the owner's name, the one arriving in
// ASK_PHONE is the pet's name, and so on. Keeping this an explicit table is
// what guards against the off-by-one storing answers under the wrong field.
// On failure the draft is untouched and an error message to re-ask with is
// returned.
func collectField(state models.DialogueState, input string, draft *models.BookingDraft) (bool, string) {
	trimmed := strings.TrimSpace(input)

	switch state {
	case models.StateAskPetName: // answer to the owner-name question
		if len(trimmed) < 2 {
			return false, "Please provide a valid name."
		}
		draft.OwnerName = trimmed

	case models.StateAskPhone: // answer to the pet-name question
		if len(trimmed) < 1 {
			return false, "Please provide your pet's name."
		}
		draft.PetName = trimmed

	case models.StateAskDateTime: // answer to the phone question
		cleaned := stripNonDigits(trimmed)
		if len(cleaned) < 10 || len(cleaned) > 15 {
			return false, "Please provide a valid phone number with at least 10 digits."
		}
		draft.Phone = cleaned

	case models.StateConfirmation: // answer to the date/time question
		if len(trimmed) < 3 {
			return false, "Please provide a preferred date and time."
		}
		draft.PreferredDateTime = trimmed
	}

	return true, ""
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
