package assistant

import (
	"context"
	"testing"

	common_models "go-spear/internal/common/models"
	"go-spear/internal/features/notification"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// scriptedGenerator replays canned responses in order.
type scriptedGenerator struct {
	responses []*genai.GenerateContentResponse
	calls     int
}

func (s *scriptedGenerator) Generate(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	resp := s.responses[s.calls%len(s.responses)]
	s.calls++
	return resp, nil
}

type sessionRecorder struct {
	notification.NotificationService
	added []notification.Input
}

func (r *sessionRecorder) AddForSession(ctx context.Context, sessionID string, role common_models.Role, in notification.Input) (*notification.Notification, error) {
	r.added = append(r.added, in)
	return &notification.Notification{ID: "n-1", Title: in.Title}, nil
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func toolCallResponse(name string, args map[string]any) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{
				FunctionCall: &genai.FunctionCall{Name: name, Args: args},
			}}},
		}},
	}
}

func newAssistantFixture(responses ...*genai.GenerateContentResponse) (*sessionRecorder, *scriptedGenerator, *AssistantServiceImpl) {
	recorder := &sessionRecorder{}
	gen := &scriptedGenerator{responses: responses}
	svc := &AssistantServiceImpl{
		generator:     gen,
		notifications: recorder,
		logger:        zap.NewNop(),
	}
	return recorder, gen, svc
}

func TestAskReturnsPlainAnswer(t *testing.T) {
	_, gen, svc := newAssistantFixture(textResponse("Your fleet has 4 devices online."))

	answer, err := svc.Ask(context.Background(), "s1", common_models.RoleClient, "how many devices are online?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer != "Your fleet has 4 devices online." {
		t.Errorf("answer = %q", answer)
	}
	if gen.calls != 1 {
		t.Errorf("expected a single generation round, got %d", gen.calls)
	}
}

func TestAskExecutesNotificationTool(t *testing.T) {
	recorder, gen, svc := newAssistantFixture(
		toolCallResponse(toolSendNotification, map[string]any{
			"title":    "Check kiosk-1",
			"message":  "You asked to be reminded about kiosk-1.",
			"category": "device",
			"kind":     "info",
			"priority": "medium",
		}),
		textResponse("Done, I added a reminder to your notification center."),
	)

	answer, err := svc.Ask(context.Background(), "s1", common_models.RoleClient, "remind me about kiosk-1")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if gen.calls != 2 {
		t.Fatalf("expected two generation rounds, got %d", gen.calls)
	}
	if len(recorder.added) != 1 {
		t.Fatalf("expected one notification, got %d", len(recorder.added))
	}
	got := recorder.added[0]
	if got.Title != "Check kiosk-1" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Topic != "device" {
		t.Errorf("topic = %q", got.Topic)
	}
	if answer == "" {
		t.Error("expected a final text answer after the tool round")
	}
}

func TestAskStopsRunawayToolLoop(t *testing.T) {
	_, gen, svc := newAssistantFixture(
		toolCallResponse(toolSEOReview, map[string]any{"title": "Home"}),
	)

	if _, err := svc.Ask(context.Background(), "s1", common_models.RoleClient, "review my page"); err == nil {
		t.Fatal("expected an error when the model never stops calling tools")
	}
	if gen.calls != maxToolRounds {
		t.Errorf("expected %d rounds before giving up, got %d", maxToolRounds, gen.calls)
	}
}

func TestAskUnconfigured(t *testing.T) {
	svc := &AssistantServiceImpl{logger: zap.NewNop()}
	if _, err := svc.Ask(context.Background(), "s1", common_models.RoleClient, "hello"); err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestSEOReviewFindsIssues(t *testing.T) {
	result := runSEOReview(map[string]any{
		"title":       "HOME",
		"description": "",
	})

	issues, ok := result["issues"].([]string)
	if !ok {
		t.Fatalf("issues missing from result: %+v", result)
	}
	if len(issues) != 3 {
		t.Errorf("expected short title, missing description and uppercase issues, got %v", issues)
	}
}

func TestSEOReviewCleanMetadata(t *testing.T) {
	result := runSEOReview(map[string]any{
		"title":       "Device Management Dashboard for Remote Fleets",
		"description": "Monitor, control and get notified about every device in your fleet from a single dashboard with role-based access.",
	})

	issues, _ := result["issues"].([]string)
	if len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}
}

func TestUnknownToolReportsError(t *testing.T) {
	_, _, svc := newAssistantFixture()

	result := svc.dispatchTool(context.Background(), "s1", common_models.RoleClient, &genai.FunctionCall{Name: "launch_rocket"})
	if _, ok := result["error"]; !ok {
		t.Fatalf("expected an error payload, got %+v", result)
	}
}
