package billing

import (
	"strconv"

	"go-spear/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v82/webhook"
	"go.uber.org/zap"
)

type BillingController struct {
	Service BillingService
	config  *config.Config
	logger  *zap.Logger
}

func NewBillingController(service BillingService, cfg *config.Config, logger *zap.Logger) *BillingController {
	return &BillingController{
		Service: service,
		config:  cfg,
		logger:  logger,
	}
}

// Webhook godoc
// @Summary Stripe webhook receiver
// @Description Verifies the Stripe signature and processes billing events
// @Tags billing
// @Accept json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/billing/webhook [post]
func (ctrl *BillingController) Webhook(c *fiber.Ctx) error {
	event, err := webhook.ConstructEvent(c.Body(), c.Get("Stripe-Signature"), ctrl.config.StripeWebhookSecret)
	if err != nil {
		ctrl.logger.Warn("stripe signature verification failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid signature"})
	}

	if err := ctrl.Service.HandleEvent(c.UserContext(), event); err != nil {
		// Non-2xx makes Stripe retry the delivery later.
		ctrl.logger.Error("billing event handling failed", zap.String("event", event.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Event handling failed"})
	}

	return c.JSON(fiber.Map{"received": true})
}

// ListEvents godoc
// @Summary Recently processed billing events
// @Tags billing
// @Produce json
// @Param limit query int false "Max events to return (default 50)"
// @Success 200 {array} ProcessedEvent
// @Router /api/billing/events [get]
func (ctrl *BillingController) ListEvents(c *fiber.Ctx) error {
	limit, _ := strconv.ParseInt(c.Query("limit", "50"), 10, 64)

	events, err := ctrl.Service.ListEvents(c.UserContext(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(events)
}

// Scan godoc
// @Summary Run the subscription scan now
// @Tags billing
// @Success 200 {object} map[string]interface{}
// @Router /api/billing/scan [post]
func (ctrl *BillingController) Scan(c *fiber.Ctx) error {
	if err := ctrl.Service.ScanSubscriptions(c.UserContext()); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "success"})
}
