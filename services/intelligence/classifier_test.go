package intelligence

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"petcare/models"
)

type fakeGenerator struct {
	reply string
	err   error
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestGeminiClassifier_StripsBookingMarker(t *testing.T) {
	c := &GeminiClassifier{
		client:  &fakeGenerator{reply: "[INTENT:BOOKING] Happy to get that scheduled!"},
		timeout: time.Second,
	}

	result := c.GenerateResponse(context.Background(), "book an appointment", nil, nil)
	if !result.Success {
		t.Fatal("expected success")
	}
	if result.Intent != models.IntentBooking {
		t.Fatalf("expected booking intent, got %q", result.Intent)
	}
	if result.Message != "Happy to get that scheduled!" {
		t.Fatalf("marker not stripped: %q", result.Message)
	}
}

func TestGeminiClassifier_UpstreamFailureDegrades(t *testing.T) {
	c := &GeminiClassifier{
		client:  &fakeGenerator{err: errors.New("deadline exceeded")},
		timeout: time.Second,
	}

	result := c.GenerateResponse(context.Background(), "hello", nil, nil)
	if result.Success {
		t.Fatal("upstream failure must not report success")
	}
	if result.Message != FallbackReply {
		t.Fatalf("expected fallback reply, got %q", result.Message)
	}
	if result.Intent != models.IntentGeneral {
		t.Fatalf("expected general intent, got %q", result.Intent)
	}
}

func TestGeminiClassifier_EmptyReplyFallsBack(t *testing.T) {
	c := &GeminiClassifier{
		client:  &fakeGenerator{reply: "[INTENT:GENERAL]"},
		timeout: time.Second,
	}

	result := c.GenerateResponse(context.Background(), "hello", nil, nil)
	if result.Message != FallbackReply {
		t.Fatalf("expected fallback for empty reply, got %q", result.Message)
	}
}

func TestParseIntent(t *testing.T) {
	cases := []struct {
		raw        string
		wantIntent string
		wantText   string
	}{
		{"[INTENT:BOOKING] Sure, let's book.", models.IntentBooking, "Sure, let's book."},
		{"[intent:booking]Sure.", models.IntentBooking, "Sure."},
		{"[INTENT:GENERAL] Cats sleep a lot.", models.IntentGeneral, "Cats sleep a lot."},
		{"Cats sleep a lot.", models.IntentGeneral, "Cats sleep a lot."},
		{"  [Intent:Booking] mixed case ", models.IntentBooking, "mixed case"},
	}
	for _, tc := range cases {
		intent, text := parseIntent(tc.raw)
		if intent != tc.wantIntent || text != tc.wantText {
			t.Fatalf("parseIntent(%q) = (%q, %q), want (%q, %q)",
				tc.raw, intent, text, tc.wantIntent, tc.wantText)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	history := []models.Message{
		{Role: models.RoleUser, Content: "Is chocolate bad for dogs?"},
		{Role: models.RoleBot, Content: "Yes, keep it away from them."},
	}
	prompt := buildPrompt("What about grapes?", history, map[string]string{
		"petType": "dog",
		"userId":  "u1",
	})

	for _, want := range []string{
		"INTENT MARKER",
		"petType: dog",
		"userId: u1",
		"User: Is chocolate bad for dogs?",
		"Assistant: Yes, keep it away from them.",
		"User: What about grapes?",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if !strings.HasSuffix(prompt, "Assistant:") {
		t.Fatalf("prompt should end with the assistant cue:\n%s", prompt)
	}
}

func TestLocalClassifier(t *testing.T) {
	c := NewLocalClassifier()

	result := c.GenerateResponse(context.Background(), "Can I book an appointment for Rex?", nil, nil)
	if result.Intent != models.IntentBooking {
		t.Fatalf("expected booking intent, got %q", result.Intent)
	}
	if result.Message != "" {
		t.Fatalf("booking detection should leave the reply to the dialogue, got %q", result.Message)
	}

	result = c.GenerateResponse(context.Background(), "my cat keeps sneezing", nil, nil)
	if result.Intent != models.IntentGeneral || result.Message == "" {
		t.Fatalf("expected a canned general reply, got %+v", result)
	}
}
