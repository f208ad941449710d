package assistant

import (
	"go-spear/internal/common/api"
	"go-spear/internal/config"
	"go-spear/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AssistantApi struct {
	controller *AssistantController
	config     *config.Config
}

func NewAssistantApi(controller *AssistantController, config *config.Config) api.Route {
	return &AssistantApi{
		controller: controller,
		config:     config,
	}
}

func (h *AssistantApi) Setup(app *fiber.App) {
	group := app.Group("/api/assistant", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Post("/ask", h.controller.Ask)
}
