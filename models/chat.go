package models

// ChatRequest is the payload coming from the frontend into /api/chat.
type ChatRequest struct {
	Message   string            `json:"message"`
	SessionID string            `json:"sessionId,omitempty"`
	Context   map[string]string `json:"context,omitempty"`
}

// ChatResponse is what the chat handler returns for one turn.
type ChatResponse struct {
	SessionID        string        `json:"sessionId"`
	Message          string        `json:"message"`
	AppointmentState DialogueState `json:"appointmentState"`
}

// ConversationView is the read-only projection returned by the conversation
// lookup endpoint.
type ConversationView struct {
	SessionID        string            `json:"sessionId"`
	Messages         []Message         `json:"messages"`
	Context          map[string]string `json:"context,omitempty"`
	AppointmentState DialogueState     `json:"appointmentState"`
}

// Intent labels returned by the classifier.
const (
	IntentBooking = "booking"
	IntentGeneral = "general"
)

// AIResult is the classifier outcome for one user turn. Success is false when
// the upstream model call failed and Message carries the fallback reply.
type AIResult struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	Intent      string `json:"intent"`
	RawResponse string `json:"rawResponse,omitempty"`
}
