package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	appointmentRepo "petcare/database/repository/appointment"
	conversationRepo "petcare/database/repository/conversation"
	"petcare/models"
	"petcare/services/appointment"
	"petcare/services/intelligence"
	"petcare/services/slots"
)

type fakeConversationStore struct {
	sessions map[string]*models.Conversation
	saves    int
}

func newFakeConversationStore() *fakeConversationStore {
	return &fakeConversationStore{sessions: make(map[string]*models.Conversation)}
}

func (f *fakeConversationStore) FindBySessionID(sessionID string) (*models.Conversation, error) {
	conv, ok := f.sessions[sessionID]
	if !ok {
		return nil, conversationRepo.ErrNotFound
	}
	return conv, nil
}

func (f *fakeConversationStore) Save(conv *models.Conversation) error {
	f.sessions[conv.SessionID] = conv
	f.saves++
	return nil
}

type fakeClassifier struct {
	result *models.AIResult
	calls  int
}

func (f *fakeClassifier) GenerateResponse(ctx context.Context, message string, history []models.Message, userCtx map[string]string) *models.AIResult {
	f.calls++
	return f.result
}

type fakeAppointmentStore struct {
	created []models.Appointment
}

func (f *fakeAppointmentStore) Create(appt *models.Appointment) error {
	f.created = append(f.created, *appt)
	return nil
}

func (f *fakeAppointmentStore) GetByID(id string) (*models.Appointment, error) {
	return nil, appointmentRepo.ErrNotFound
}

func (f *fakeAppointmentStore) ListBySessionID(sessionID string) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentStore) UpdateStatus(id, status string) error {
	return appointmentRepo.ErrNotFound
}

func bookingResult() *models.AIResult {
	return &models.AIResult{Success: true, Message: "", Intent: models.IntentBooking}
}

func generalResult(msg string) *models.AIResult {
	return &models.AIResult{Success: true, Message: msg, Intent: models.IntentGeneral}
}

func newTestService(classifier intelligence.Classifier) (*DefaultChatService, *fakeConversationStore, *fakeAppointmentStore) {
	repo := newFakeConversationStore()
	appts := &fakeAppointmentStore{}
	dialogue := &appointment.DefaultDialogueService{
		Slots:        slots.NewMemorySlotManager(time.Minute, slots.DefaultBusinessHours(), 3),
		Appointments: appts,
	}
	svc := &DefaultChatService{Repo: repo, Classifier: classifier, Dialogue: dialogue}
	return svc, repo, appts
}

func send(t *testing.T, svc *DefaultChatService, sessionID, message string) *models.ChatResponse {
	t.Helper()
	resp, err := svc.HandleMessage(models.ChatRequest{SessionID: sessionID, Message: message})
	if err != nil {
		t.Fatalf("HandleMessage(%q) failed: %v", message, err)
	}
	return resp
}

func TestHandleMessage_EmptyMessage(t *testing.T) {
	svc, repo, _ := newTestService(&fakeClassifier{result: generalResult("hi")})

	_, err := svc.HandleMessage(models.ChatRequest{SessionID: "s1", Message: "   "})
	if !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if repo.saves != 0 {
		t.Fatalf("empty message must not persist anything, saves=%d", repo.saves)
	}
}

func TestHandleMessage_GeneratesSessionID(t *testing.T) {
	svc, repo, _ := newTestService(&fakeClassifier{result: generalResult("hello")})

	resp := send(t, svc, "", "hi there")
	if resp.SessionID == "" {
		t.Fatal("expected a generated session id")
	}
	if _, ok := repo.sessions[resp.SessionID]; !ok {
		t.Fatal("session not persisted under generated id")
	}
}

func TestHandleMessage_GeneralReplyVerbatim(t *testing.T) {
	classifier := &fakeClassifier{result: generalResult("Dogs need daily exercise and a balanced diet.")}
	svc, repo, _ := newTestService(classifier)

	resp := send(t, svc, "s1", "how do I keep my dog healthy?")
	if resp.Message != "Dogs need daily exercise and a balanced diet." {
		t.Fatalf("classifier reply not returned verbatim: %q", resp.Message)
	}
	if resp.AppointmentState != models.StateNone {
		t.Fatalf("general intent must not change state, got %s", resp.AppointmentState)
	}

	conv := repo.sessions["s1"]
	if len(conv.Messages) != 2 {
		t.Fatalf("expected user and bot messages, got %d", len(conv.Messages))
	}
	if conv.Messages[0].Role != models.RoleUser || conv.Messages[1].Role != models.RoleBot {
		t.Fatalf("unexpected message roles: %+v", conv.Messages)
	}
}

func TestHandleMessage_BookingIntentEntersOffer(t *testing.T) {
	classifier := &fakeClassifier{result: bookingResult()}
	svc, repo, _ := newTestService(classifier)

	resp := send(t, svc, "s1", "I want to book an appointment")
	if resp.AppointmentState != models.StateBookingConfirmation {
		t.Fatalf("expected BOOKING_CONFIRMATION, got %s", resp.AppointmentState)
	}
	if resp.Message != appointment.MsgBookingOffer {
		t.Fatalf("expected booking offer for empty classifier reply, got %q", resp.Message)
	}

	// The next turn is handled by the dialogue, not the classifier.
	resp = send(t, svc, "s1", "I'll type my details")
	if classifier.calls != 1 {
		t.Fatalf("classifier must not run mid-dialogue, calls=%d", classifier.calls)
	}
	if !strings.Contains(resp.Message, "full name") {
		t.Fatalf("expected owner-name question, got %q", resp.Message)
	}
	if repo.sessions["s1"].DialogueState != models.StateAskPetName {
		t.Fatalf("unexpected state: %s", repo.sessions["s1"].DialogueState)
	}
}

func TestHandleMessage_CancelMidFlow(t *testing.T) {
	classifier := &fakeClassifier{result: generalResult("hi")}
	svc, repo, _ := newTestService(classifier)
	repo.sessions["s1"] = &models.Conversation{
		SessionID:     "s1",
		DialogueState: models.StateAskPhone,
		Draft:         models.BookingDraft{OwnerName: "Alice Smith", PetName: "Rex"},
	}

	resp := send(t, svc, "s1", "actually, forget it")
	if resp.Message != appointment.MsgCancelled {
		t.Fatalf("unexpected reply: %q", resp.Message)
	}
	if resp.AppointmentState != models.StateNone {
		t.Fatalf("cancel should reset state, got %s", resp.AppointmentState)
	}
	if !repo.sessions["s1"].Draft.IsEmpty() {
		t.Fatalf("cancel should discard the draft: %+v", repo.sessions["s1"].Draft)
	}
	if classifier.calls != 0 {
		t.Fatalf("cancel turn must not reach the classifier, calls=%d", classifier.calls)
	}
}

func TestHandleMessage_CancelWordsInactiveAtCompletion(t *testing.T) {
	svc, repo, _ := newTestService(&fakeClassifier{result: generalResult("hi")})
	repo.sessions["s1"] = &models.Conversation{
		SessionID:     "s1",
		DialogueState: models.StateCompleted,
		Draft: models.BookingDraft{
			OwnerName: "Alice Smith", PetName: "Rex",
			Phone: "5551234567", PreferredDateTime: "2030-03-12 15:00",
		},
	}

	// "stop" is in the cancel lexicon but COMPLETED resolves strictly via
	// yes/no, so the dialogue re-prompts instead.
	resp := send(t, svc, "s1", "stop")
	if resp.Message != appointment.MsgYesNoPrompt {
		t.Fatalf("unexpected reply: %q", resp.Message)
	}
	if resp.AppointmentState != models.StateCompleted {
		t.Fatalf("state should be unchanged, got %s", resp.AppointmentState)
	}
}

func TestHandleMessage_ContextMergeKeepsExisting(t *testing.T) {
	svc, repo, _ := newTestService(&fakeClassifier{result: generalResult("hi")})
	repo.sessions["s1"] = &models.Conversation{
		SessionID: "s1",
		Context:   map[string]string{"userId": "u1"},
	}

	if _, err := svc.HandleMessage(models.ChatRequest{
		SessionID: "s1",
		Message:   "hello",
		Context:   map[string]string{"userId": "u2", "petType": "dog"},
	}); err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}

	ctx := repo.sessions["s1"].Context
	if ctx["userId"] != "u1" {
		t.Fatalf("existing context key overwritten: %q", ctx["userId"])
	}
	if ctx["petType"] != "dog" {
		t.Fatalf("new context key not merged: %+v", ctx)
	}
}

func TestHandleMessage_ClassifierFallbackStillPersists(t *testing.T) {
	classifier := &fakeClassifier{result: &models.AIResult{
		Success: false,
		Message: intelligence.FallbackReply,
		Intent:  models.IntentGeneral,
	}}
	svc, repo, _ := newTestService(classifier)

	resp := send(t, svc, "s1", "is chocolate bad for dogs?")
	if resp.Message != intelligence.FallbackReply {
		t.Fatalf("expected fallback reply, got %q", resp.Message)
	}
	if repo.saves != 1 {
		t.Fatalf("degraded turn must still persist, saves=%d", repo.saves)
	}
	if got := len(repo.sessions["s1"].Messages); got != 2 {
		t.Fatalf("expected both messages logged, got %d", got)
	}
}

func TestHandleMessage_FullBookingFlow(t *testing.T) {
	classifier := &fakeClassifier{result: bookingResult()}
	svc, repo, appts := newTestService(classifier)

	steps := []string{
		"I need to book a visit",
		"sure",
		"Alice Smith",
		"Rex",
		"555-123-4567",
		"2030-03-12 15:00",
		"yes",
	}
	for _, msg := range steps {
		send(t, svc, "s1", msg)
		conv := repo.sessions["s1"]
		// A session at rest never carries partial booking details. The early
		// dialogue states legitimately hold an empty draft, so only this
		// direction is checked.
		if conv.DialogueState == models.StateNone && !conv.Draft.IsEmpty() {
			t.Fatalf("NONE session carries a draft after %q: %+v", msg, conv.Draft)
		}
	}

	if len(appts.created) != 1 {
		t.Fatalf("expected one appointment, got %d", len(appts.created))
	}
	conv := repo.sessions["s1"]
	if conv.DialogueState != models.StateNone {
		t.Fatalf("flow should end in NONE, got %s", conv.DialogueState)
	}
	if got := len(conv.Messages); got != 2*len(steps) {
		t.Fatalf("expected %d logged messages, got %d", 2*len(steps), got)
	}

	view, err := svc.GetConversation("s1")
	if err != nil {
		t.Fatalf("GetConversation failed: %v", err)
	}
	if view.AppointmentState != models.StateNone || len(view.Messages) != 2*len(steps) {
		t.Fatalf("unexpected view: state=%s messages=%d", view.AppointmentState, len(view.Messages))
	}
}

func TestHandleMessage_SessionLocksEvicted(t *testing.T) {
	svc, repo, _ := newTestService(&fakeClassifier{result: generalResult("hi")})

	const turns = 10
	var wg sync.WaitGroup
	errs := make(chan error, turns)
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.HandleMessage(models.ChatRequest{SessionID: "s1", Message: "hello"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("HandleMessage failed: %v", err)
		}
	}

	if n := svc.locks.inFlight(); n != 0 {
		t.Fatalf("expected no lingering session locks, got %d", n)
	}
	if got := len(repo.sessions["s1"].Messages); got != 20 {
		t.Fatalf("turns were not serialized, expected 20 messages, got %d", got)
	}
}

func TestGetConversation_NotFound(t *testing.T) {
	svc, _, _ := newTestService(&fakeClassifier{result: generalResult("hi")})

	_, err := svc.GetConversation("missing")
	if !errors.Is(err, conversationRepo.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
