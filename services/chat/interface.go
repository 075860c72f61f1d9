package chat

import (
	"errors"

	conversationRepo "petcare/database/repository/conversation"
	"petcare/models"
	"petcare/services/appointment"
	"petcare/services/intelligence"
)

// ErrEmptyMessage is returned when the inbound message is empty after
// trimming. No state is mutated on this path.
var ErrEmptyMessage = errors.New("message is required")

// ChatService is the entry point for conversational turns.
type ChatService interface {
	HandleMessage(req models.ChatRequest) (*models.ChatResponse, error)
	GetConversation(sessionID string) (*models.ConversationView, error)
}

// DefaultChatService implements ChatService. It is the single place the
// session record is persisted; the dialogue and slot manager receive and
// return data without touching the store.
type DefaultChatService struct {
	Repo          conversationRepo.ConversationRepository
	Classifier    intelligence.Classifier
	Dialogue      appointment.DialogueService
	HistoryWindow int

	locks sessionLocks
}

func (s *DefaultChatService) historyWindow() int {
	if s.HistoryWindow <= 0 {
		return 10
	}
	return s.HistoryWindow
}
