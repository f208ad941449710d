package assistant

import (
	"context"
	"fmt"
	"strings"

	common_models "go-spear/internal/common/models"
	"go-spear/internal/features/notification"

	"google.golang.org/genai"
)

const (
	toolSendNotification = "send_notification"
	toolSEOReview        = "seo_review"
)

func toolDeclarations() []*genai.Tool {
	return []*genai.Tool{{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        toolSendNotification,
				Description: "Push a notification into the current user's notification center.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":    {Type: genai.TypeString, Description: "Short headline"},
						"message":  {Type: genai.TypeString, Description: "Body text"},
						"category": {Type: genai.TypeString, Description: "Topic: device, billing, security, marketing or system"},
						"kind":     {Type: genai.TypeString, Description: "alert, info, success or warning"},
						"priority": {Type: genai.TypeString, Description: "low, medium, high or urgent"},
					},
					Required: []string{"title", "message"},
				},
			},
			{
				Name:        toolSEOReview,
				Description: "Review page metadata for search optimization problems.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":       {Type: genai.TypeString, Description: "Page title tag"},
						"description": {Type: genai.TypeString, Description: "Meta description"},
					},
					Required: []string{"title"},
				},
			},
		},
	}}
}

// dispatchTool executes one model-requested function call and returns the
// payload sent back as the function response.
func (s *AssistantServiceImpl) dispatchTool(ctx context.Context, sessionID string, role common_models.Role, call *genai.FunctionCall) map[string]any {
	switch call.Name {
	case toolSendNotification:
		return s.runSendNotification(ctx, sessionID, role, call.Args)
	case toolSEOReview:
		return runSEOReview(call.Args)
	default:
		return map[string]any{"error": fmt.Sprintf("unknown tool: %s", call.Name)}
	}
}

func (s *AssistantServiceImpl) runSendNotification(ctx context.Context, sessionID string, role common_models.Role, args map[string]any) map[string]any {
	title, _ := args["title"].(string)
	message, _ := args["message"].(string)
	category, _ := args["category"].(string)
	kind, _ := args["kind"].(string)
	priority, _ := args["priority"].(string)

	if category == "" {
		category = "system"
	}

	in := notification.Input{
		Topic:   category,
		Title:   title,
		Message: message,
		Kind:    notification.Kind(kind),
	}
	if priority != "" {
		in = in.WithPriority(notification.Priority(priority))
	}

	n, err := s.notifications.AddForSession(ctx, sessionID, role, in)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return map[string]any{"status": "delivered", "id": n.ID}
}

func runSEOReview(args map[string]any) map[string]any {
	title, _ := args["title"].(string)
	description, _ := args["description"].(string)

	var issues []string
	if l := len(title); l == 0 {
		issues = append(issues, "title is empty")
	} else if l < 30 {
		issues = append(issues, "title is shorter than 30 characters")
	} else if l > 60 {
		issues = append(issues, "title exceeds 60 characters and will be truncated")
	}

	if l := len(description); l == 0 {
		issues = append(issues, "meta description is missing")
	} else if l < 70 {
		issues = append(issues, "meta description is shorter than 70 characters")
	} else if l > 160 {
		issues = append(issues, "meta description exceeds 160 characters")
	}

	if strings.ToUpper(title) == title && title != "" {
		issues = append(issues, "title is all uppercase")
	}

	return map[string]any{
		"issues": issues,
		"score":  fmt.Sprintf("%d/100", 100-20*len(issues)),
	}
}
