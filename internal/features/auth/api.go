package auth

import (
	"go-spear/internal/common/api"
	"go-spear/internal/config"
	"go-spear/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuthApi struct {
	controller *AuthController
	config     *config.Config
}

func NewAuthApi(controller *AuthController, config *config.Config) api.Route {
	return &AuthApi{
		controller: controller,
		config:     config,
	}
}

func (h *AuthApi) Setup(app *fiber.App) {
	group := app.Group("/api/auth")

	group.Post("/login", h.controller.Login)
	group.Post("/logout", middleware.AuthMiddleware(h.config.SkipAuth), h.controller.Logout)
	group.Get("/me", middleware.AuthMiddleware(h.config.SkipAuth), h.controller.Me)
}
