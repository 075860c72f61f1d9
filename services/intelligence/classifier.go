package intelligence

import (
	"context"
	"time"

	"petcare/models"

	"go.uber.org/zap"
)

// FallbackReply is used whenever the upstream model cannot be reached; the
// turn still completes with Success set to false for observability.
const FallbackReply = "I apologize, but I'm having trouble processing your request right now. Please try again later or contact your veterinarian directly for urgent matters."

// contentGenerator abstracts the model call so tests can substitute fakes.
type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// GeminiClassifier implements Classifier on top of the Gemini API.
type GeminiClassifier struct {
	client  contentGenerator
	timeout time.Duration
}

// NewGeminiClassifier builds the production classifier.
func NewGeminiClassifier(apiKey string, timeout time.Duration) (*GeminiClassifier, error) {
	client, err := NewGeminiClient(apiKey)
	if err != nil {
		return nil, err
	}
	return &GeminiClassifier{client: client, timeout: timeout}, nil
}

// GenerateResponse implements Classifier. The model call is bounded by the
// configured timeout; exceeding it degrades to the fallback reply rather than
// failing the turn.
func (c *GeminiClassifier) GenerateResponse(ctx context.Context, message string, history []models.Message, userCtx map[string]string) *models.AIResult {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	started := time.Now()
	raw, err := c.client.GenerateContent(ctx, buildPrompt(message, history, userCtx))
	if err != nil {
		zap.L().Warn("gemini call failed",
			zap.Duration("elapsed", time.Since(started)), zap.Error(err))
		return &models.AIResult{
			Success: false,
			Message: FallbackReply,
			Intent:  models.IntentGeneral,
		}
	}

	intent, cleaned := parseIntent(raw)
	if cleaned == "" {
		cleaned = FallbackReply
	}
	return &models.AIResult{
		Success:     true,
		Message:     cleaned,
		Intent:      intent,
		RawResponse: raw,
	}
}
