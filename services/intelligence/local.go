// File: services/intelligence/local.go
package intelligence

import (
	"context"
	"math/rand"
	"strings"

	"petcare/models"
)

// bookingPhrases is the keyword lexicon the local classifier matches when no
// model is available.
var bookingPhrases = []string{
	"book an appointment",
	"book appointment",
	"schedule appointment",
	"make appointment",
	"book a visit",
	"schedule a visit",
	"see a vet",
	"visit vet",
	"need appointment",
	"want appointment",
	"appointment please",
	"book consultation",
	"schedule consultation",
	"need to see vet",
	"want to see vet",
	"i want to book",
	"i need to book",
	"can i book",
	"like to book",
	"make a booking",
	"schedule vet",
}

var localReplies = []string{
	"How can I help you with your pet's needs today?",
	"I'm here to help with pet care questions. What do you need?",
	"Thanks for your message. How can I help with your pet?",
}

// LocalClassifier is the keyword fallback used when no Gemini API key is
// configured. It only recognizes booking requests; everything else gets a
// canned reply.
type LocalClassifier struct{}

func NewLocalClassifier() *LocalClassifier {
	return &LocalClassifier{}
}

// GenerateResponse implements Classifier.
func (c *LocalClassifier) GenerateResponse(ctx context.Context, message string, history []models.Message, userCtx map[string]string) *models.AIResult {
	_ = ctx
	_ = history
	_ = userCtx

	lower := strings.ToLower(message)
	for _, phrase := range bookingPhrases {
		if strings.Contains(lower, phrase) {
			return &models.AIResult{
				Success: true,
				Message: "",
				Intent:  models.IntentBooking,
			}
		}
	}

	return &models.AIResult{
		Success: true,
		Message: localReplies[rand.Intn(len(localReplies))],
		Intent:  models.IntentGeneral,
	}
}
