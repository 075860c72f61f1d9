// File: services/chat/service.go
package chat

import (
	"context"
	"errors"
	"strings"

	conversationRepo "petcare/database/repository/conversation"
	"petcare/models"
	"petcare/services/appointment"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HandleMessage processes one inbound message end to end: resolve the
// session, append the user message, run either the booking dialogue or the
// classifier, append the reply, persist.
func (s *DefaultChatService) HandleMessage(req models.ChatRequest) (*models.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	lock := s.locks.acquire(sessionID)
	defer s.locks.release(sessionID, lock)

	conv, err := s.Repo.FindBySessionID(sessionID)
	switch {
	case errors.Is(err, conversationRepo.ErrNotFound):
		conv = &models.Conversation{
			SessionID:     sessionID,
			DialogueState: models.StateNone,
			Context:       req.Context,
		}
	case err != nil:
		return nil, err
	default:
		conv.MergeContext(req.Context)
	}

	// The user message lands in the log before any branching so history is
	// consistent on every return path below.
	conv.Append(models.RoleUser, message)

	if conv.DialogueState != models.StateNone &&
		conv.DialogueState != models.StateCompleted &&
		appointment.DetectCancelIntent(message) {
		conv.DialogueState = models.StateNone
		conv.Draft = models.BookingDraft{}
		return s.finishTurn(conv, appointment.MsgCancelled)
	}

	var reply string
	if conv.DialogueState != models.StateNone {
		reply, err = s.Dialogue.HandleTurn(conv, message)
		if err != nil {
			return nil, err
		}
	} else {
		result := s.Classifier.GenerateResponse(
			context.Background(), message, conv.History(s.historyWindow()), conv.Context)
		if !result.Success {
			zap.L().Warn("classifier call failed; using fallback reply",
				zap.String("sessionId", sessionID))
		}

		reply = result.Message
		if result.Intent == models.IntentBooking {
			// Booking intent does not enter the form directly; the user is
			// first asked how they want to proceed.
			conv.DialogueState = models.StateBookingConfirmation
			if reply == "" {
				reply = appointment.MsgBookingOffer
			}
		}
	}

	return s.finishTurn(conv, reply)
}

// finishTurn appends the bot reply, persists the session, and shapes the
// response.
func (s *DefaultChatService) finishTurn(conv *models.Conversation, reply string) (*models.ChatResponse, error) {
	conv.Append(models.RoleBot, reply)
	if err := s.Repo.Save(conv); err != nil {
		return nil, err
	}
	return &models.ChatResponse{
		SessionID:        conv.SessionID,
		Message:          reply,
		AppointmentState: conv.DialogueState,
	}, nil
}

// GetConversation returns the read-only view of a session.
func (s *DefaultChatService) GetConversation(sessionID string) (*models.ConversationView, error) {
	conv, err := s.Repo.FindBySessionID(sessionID)
	if err != nil {
		return nil, err
	}
	return &models.ConversationView{
		SessionID:        conv.SessionID,
		Messages:         conv.Messages,
		Context:          conv.Context,
		AppointmentState: conv.DialogueState,
	}, nil
}
