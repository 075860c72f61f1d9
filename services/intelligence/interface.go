package intelligence

import (
	"context"

	"petcare/models"
)

// Classifier produces a user-facing reply plus a coarse intent label for one
// free-text turn. Implementations never fail the turn: upstream errors fold
// into a fallback result with Success set to false.
type Classifier interface {
	GenerateResponse(ctx context.Context, message string, history []models.Message, userCtx map[string]string) *models.AIResult
}
