package notification

import (
	"go-spear/internal/common/api"
	"go-spear/internal/config"
	"go-spear/internal/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type NotificationApi struct {
	controller *NotificationController
	stream     *StreamController
	config     *config.Config
}

func NewNotificationApi(controller *NotificationController, stream *StreamController, config *config.Config) api.Route {
	return &NotificationApi{
		controller: controller,
		stream:     stream,
		config:     config,
	}
}

func (h *NotificationApi) Setup(app *fiber.App) {
	group := app.Group("/api/notifications", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Get("/", h.controller.List)
	group.Get("/unread-count", h.controller.GetUnreadCount)
	group.Post("/", h.controller.Create)
	group.Put("/:id/read", h.controller.MarkAsRead)
	group.Post("/mark-all-read", h.controller.MarkAllAsRead)
	group.Delete("/:id", h.controller.Remove)
	group.Post("/:id/actions/:kind", h.controller.InvokeAction)

	group.Get("/stream", websocket.New(h.stream.HandleWebSocket))
}
