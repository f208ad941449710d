package device

import (
	"go-spear/internal/common/api"
	"go-spear/internal/config"
	"go-spear/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type DeviceApi struct {
	controller *DeviceController
	config     *config.Config
}

func NewDeviceApi(controller *DeviceController, config *config.Config) api.Route {
	return &DeviceApi{
		controller: controller,
		config:     config,
	}
}

func (h *DeviceApi) Setup(app *fiber.App) {
	group := app.Group("/api/devices", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Get("/", h.controller.ListDevices)
	group.Get("/:id", h.controller.GetDevice)
	group.Get("/:id/connect", h.controller.Connect)
	group.Post("/sync", middleware.AdminMiddleware(), h.controller.Sync)
}
