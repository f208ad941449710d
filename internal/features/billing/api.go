package billing

import (
	"go-spear/internal/common/api"
	"go-spear/internal/config"
	"go-spear/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type BillingApi struct {
	controller *BillingController
	config     *config.Config
}

func NewBillingApi(controller *BillingController, config *config.Config) api.Route {
	return &BillingApi{
		controller: controller,
		config:     config,
	}
}

func (h *BillingApi) Setup(app *fiber.App) {
	group := app.Group("/api/billing")

	// Stripe authenticates with its signature header, not a bearer token.
	group.Post("/webhook", h.controller.Webhook)

	admin := group.Use(middleware.AuthMiddleware(h.config.SkipAuth), middleware.AdminMiddleware())
	admin.Get("/events", h.controller.ListEvents)
	admin.Post("/scan", h.controller.Scan)
}
