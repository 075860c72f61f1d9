package models

import "time"

// Message roles.
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Message is one entry in a conversation's append-only log.
type Message struct {
	Role      string    `bson:"role" json:"role"`
	Content   string    `bson:"content" json:"content"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// DialogueState names a session's position in the appointment dialogue.
type DialogueState string

// Closed set of dialogue states, in collection order. Every state after
// BOOKING_CONFIRMATION names the question that has just been asked, so the
// answer arriving in a state belongs to the previous question in the chain.
const (
	StateNone                DialogueState = "NONE"
	StateBookingConfirmation DialogueState = "BOOKING_CONFIRMATION"
	StateAskOwnerName        DialogueState = "ASK_OWNER_NAME"
	StateAskPetName          DialogueState = "ASK_PET_NAME"
	StateAskPhone            DialogueState = "ASK_PHONE"
	StateAskDateTime         DialogueState = "ASK_DATE_TIME"
	StateConfirmation        DialogueState = "CONFIRMATION"
	StateCompleted           DialogueState = "COMPLETED"
)

// BookingDraft holds partially collected appointment details. Fields stay
// unset until the state that collects them has run.
type BookingDraft struct {
	OwnerName         string `bson:"ownerName,omitempty" json:"ownerName,omitempty"`
	PetName           string `bson:"petName,omitempty" json:"petName,omitempty"`
	Phone             string `bson:"phone,omitempty" json:"phone,omitempty"`
	PreferredDateTime string `bson:"preferredDateTime,omitempty" json:"preferredDateTime,omitempty"`
	SlotKey           string `bson:"slotKey,omitempty" json:"slotKey,omitempty"`
}

// IsEmpty reports whether no draft field has been collected yet.
func (d BookingDraft) IsEmpty() bool {
	return d == BookingDraft{}
}

// Conversation is the persisted session aggregate.
type Conversation struct {
	SessionID     string            `bson:"sessionId" json:"sessionId"`
	Messages      []Message         `bson:"messages" json:"messages"`
	DialogueState DialogueState     `bson:"dialogueState" json:"dialogueState"`
	Draft         BookingDraft      `bson:"bookingDraft,omitempty" json:"bookingDraft,omitempty"`
	Context       map[string]string `bson:"context,omitempty" json:"context,omitempty"`
	CreatedAt     time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// Append adds a message to the conversation log.
func (c *Conversation) Append(role, content string) {
	c.Messages = append(c.Messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
}

// History returns up to n of the most recent messages.
func (c *Conversation) History(n int) []Message {
	if n <= 0 || len(c.Messages) <= n {
		return c.Messages
	}
	return c.Messages[len(c.Messages)-n:]
}

// MergeContext copies entries from ctx into the conversation context without
// overwriting keys that are already set.
func (c *Conversation) MergeContext(ctx map[string]string) {
	if len(ctx) == 0 {
		return
	}
	if c.Context == nil {
		c.Context = make(map[string]string, len(ctx))
	}
	for k, v := range ctx {
		if _, exists := c.Context[k]; !exists {
			c.Context[k] = v
		}
	}
}
