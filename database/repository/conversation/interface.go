package conversationRepo

import (
	"errors"

	"petcare/models"
)

// ErrNotFound is returned when no conversation exists for a session id.
var ErrNotFound = errors.New("conversation not found")

// ConversationRepository gives exact-key access to conversation aggregates.
// Save upserts, so callers create and update through the same operation.
type ConversationRepository interface {
	FindBySessionID(sessionID string) (*models.Conversation, error)
	Save(conv *models.Conversation) error
}
