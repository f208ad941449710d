package assistant

import (
	"errors"

	common_models "go-spear/internal/common/models"
	"go-spear/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AssistantController struct {
	Service AssistantService
}

func NewAssistantController(service AssistantService) *AssistantController {
	return &AssistantController{
		Service: service,
	}
}

// Ask godoc
// @Summary Ask the dashboard assistant
// @Tags assistant
// @Accept json
// @Produce json
// @Param body body map[string]string true "{\"prompt\": \"...\"}"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/assistant/ask [post]
func (ctrl *AssistantController) Ask(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}

	var body struct {
		Prompt string `json:"prompt"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	answer, err := ctrl.Service.Ask(c.UserContext(), claims.SessionID, common_models.Role(claims.Role), body.Prompt)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Assistant is not configured"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"answer": answer})
}
