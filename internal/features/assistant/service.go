package assistant

import (
	"context"
	"errors"
	"fmt"

	common_models "go-spear/internal/common/models"
	"go-spear/internal/config"
	"go-spear/internal/features/notification"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

var ErrNotConfigured = errors.New("assistant is not configured")

const systemPrompt = `You are the built-in assistant of a device management
dashboard. You help operators understand their device fleet, billing state
and notifications. Use the send_notification tool when the user asks to be
reminded or alerted about something. Use the seo_review tool when asked to
review page metadata. Keep answers short and factual.`

// maxToolRounds bounds the generate/tool-call loop.
const maxToolRounds = 4

// Generator is the slice of the Gemini client the service needs.
type Generator interface {
	Generate(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type geminiGenerator struct {
	client *genai.Client
	model  string
}

func (g *geminiGenerator) Generate(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
}

type AssistantService interface {
	// Ask runs one prompt through the model, executing any tool calls it
	// requests, and returns the final text answer.
	Ask(ctx context.Context, sessionID string, role common_models.Role, prompt string) (string, error)
}

type AssistantServiceImpl struct {
	generator     Generator
	notifications notification.NotificationService
	logger        *zap.Logger
}

func NewAssistantService(cfg *config.Config, notifications notification.NotificationService, logger *zap.Logger) AssistantService {
	svc := &AssistantServiceImpl{
		notifications: notifications,
		logger:        logger,
	}

	if cfg.GeminiAPIKey == "" {
		logger.Warn("assistant disabled, GEMINI_API_KEY not set")
		return svc
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.GeminiAPIKey,
	})
	if err != nil {
		logger.Error("failed to create Gemini client", zap.Error(err))
		return svc
	}

	svc.generator = &geminiGenerator{client: client, model: cfg.GeminiModel}
	return svc
}

func (s *AssistantServiceImpl) Ask(ctx context.Context, sessionID string, role common_models.Role, prompt string) (string, error) {
	if s.generator == nil {
		return "", ErrNotConfigured
	}
	if prompt == "" {
		return "", errors.New("prompt is required")
	}

	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Tools:             toolDeclarations(),
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	for round := 0; round < maxToolRounds; round++ {
		resp, err := s.generator.Generate(ctx, contents, genCfg)
		if err != nil {
			return "", fmt.Errorf("assistant generation failed: %w", err)
		}

		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			return resp.Text(), nil
		}

		if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
			contents = append(contents, resp.Candidates[0].Content)
		}

		parts := make([]*genai.Part, 0, len(calls))
		for _, call := range calls {
			s.logger.Info("assistant tool call", zap.String("tool", call.Name))
			result := s.dispatchTool(ctx, sessionID, role, call)
			parts = append(parts, genai.NewPartFromFunctionResponse(call.Name, result))
		}
		contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))
	}

	return "", errors.New("assistant exceeded the tool call limit")
}
