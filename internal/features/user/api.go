package user

import (
	"go-spear/internal/common/api"
	"go-spear/internal/config"
	"go-spear/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type UserApi struct {
	controller *UserController
	config     *config.Config
}

func NewUserApi(controller *UserController, config *config.Config) api.Route {
	return &UserApi{
		controller: controller,
		config:     config,
	}
}

func (h *UserApi) Setup(app *fiber.App) {
	group := app.Group("/api/users", middleware.AuthMiddleware(h.config.SkipAuth), middleware.AdminMiddleware())

	group.Post("/", h.controller.Create)
	group.Get("/", h.controller.List)
	group.Get("/:id", h.controller.Get)
	group.Put("/:id", h.controller.Update)
	group.Delete("/:id", h.controller.Delete)
}
