package intelligence

import (
	"fmt"
	"sort"
	"strings"

	"petcare/models"
)

const systemPrompt = `You are a helpful veterinary assistant chatbot. Your role is to provide information about pet care, animal health, and veterinary topics.

STRICT RULES:
1. ONLY answer questions related to:
   - Pet care and animal health
   - Vaccinations and preventive care
   - Nutrition and diet for pets
   - Common pet illnesses and symptoms
   - Basic first aid for pets
   - Pet behavior and training basics
   - General veterinary information

2. DO NOT:
   - Provide specific medical diagnoses
   - Prescribe medications
   - Replace professional veterinary consultation
   - Answer non-veterinary questions

3. If asked about non-veterinary topics, politely respond:
   "I'm a veterinary assistant and can only help with pet and animal health-related questions. How can I assist you with your pet's needs?"

4. Always remind users to consult a veterinarian for serious concerns or emergencies.

5. INTENT MARKER: Begin every reply with exactly one marker on its own.
   Use [INTENT:BOOKING] when the user wants to book, schedule, or make an
   appointment; use [INTENT:GENERAL] for everything else. When the marker is
   [INTENT:BOOKING], do not collect any details yourself; the booking system
   takes over after your reply.

Be helpful, friendly, and informative while staying within veterinary topics.`

const (
	bookingMarker = "[intent:booking]"
	generalMarker = "[intent:general]"
)

// buildPrompt assembles the classification prompt from the system rules, the
// caller-supplied profile context, the recent history window, and the new
// message.
func buildPrompt(message string, history []models.Message, userCtx map[string]string) string {
	parts := []string{systemPrompt}

	if len(userCtx) > 0 {
		keys := make([]string, 0, len(userCtx))
		for k := range userCtx {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var b strings.Builder
		b.WriteString("User profile:")
		for _, k := range keys {
			fmt.Fprintf(&b, "\n%s: %s", k, userCtx[k])
		}
		parts = append(parts, b.String())
	}

	for _, msg := range history {
		speaker := "Assistant"
		if msg.Role == models.RoleUser {
			speaker = "User"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", speaker, msg.Content))
	}

	parts = append(parts, "User: "+message, "Assistant:")
	return strings.Join(parts, "\n\n")
}

// parseIntent extracts the intent marker from a raw model reply and returns
// the label plus the reply with the marker stripped.
func parseIntent(raw string) (string, string) {
	trimmed := strings.TrimSpace(raw)
	lower := strings.ToLower(trimmed)

	switch {
	case strings.HasPrefix(lower, bookingMarker):
		return models.IntentBooking, strings.TrimSpace(trimmed[len(bookingMarker):])
	case strings.HasPrefix(lower, generalMarker):
		return models.IntentGeneral, strings.TrimSpace(trimmed[len(generalMarker):])
	default:
		return models.IntentGeneral, trimmed
	}
}
