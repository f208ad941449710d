package notification

import (
	"errors"

	common_models "go-spear/internal/common/models"
	"go-spear/internal/middleware"
	"go-spear/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type NotificationController struct {
	service NotificationService
}

func NewNotificationController(service NotificationService) *NotificationController {
	return &NotificationController{
		service: service,
	}
}

func viewer(c *fiber.Ctx) (sessionID string, role common_models.Role, claims *utils.UserClaims) {
	claims = middleware.Claims(c)
	if claims == nil {
		return "", common_models.RoleClient, nil
	}
	return claims.SessionID, common_models.Role(claims.Role), claims
}

// List godoc
// @Summary List the session's notification feed
// @Tags notifications
// @Param search query string false "Free-text search over title and message"
// @Param category query string false "Topic filter"
// @Param priority query string false "Priority filter"
// @Param tab query string false "unread, read or all (default all)"
// @Success 200 {object} map[string]interface{}
// @Router /api/notifications [get]
func (c *NotificationController) List(ctx *fiber.Ctx) error {
	sessionID, role, claims := viewer(ctx)
	if claims == nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}

	filter := Filter{
		Search:   ctx.Query("search"),
		Topic:    ctx.Query("category"),
		Priority: Priority(ctx.Query("priority")),
	}

	items, unreadCount := c.service.List(ctx.Context(), sessionID, role, filter)

	unread := make([]Notification, 0, len(items))
	read := make([]Notification, 0, len(items))
	for _, n := range items {
		if n.Read {
			read = append(read, n)
		} else {
			unread = append(unread, n)
		}
	}

	switch ctx.Query("tab", "all") {
	case "unread":
		return ctx.JSON(fiber.Map{"data": unread, "unread_count": unreadCount, "total": len(items)})
	case "read":
		return ctx.JSON(fiber.Map{"data": read, "unread_count": unreadCount, "total": len(items)})
	}

	return ctx.JSON(fiber.Map{
		"unread":       unread,
		"read":         read,
		"unread_count": unreadCount,
		"total":        len(items),
	})
}

// GetUnreadCount godoc
// @Summary Bell badge counter
// @Tags notifications
// @Success 200 {object} map[string]interface{}
// @Router /api/notifications/unread-count [get]
func (c *NotificationController) GetUnreadCount(ctx *fiber.Ctx) error {
	sessionID, role, claims := viewer(ctx)
	if claims == nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}

	count := c.service.UnreadCount(ctx.Context(), sessionID, role)
	return ctx.JSON(fiber.Map{"count": count})
}

// Create godoc
// @Summary Inject a notification into the caller's feed
// @Tags notifications
// @Accept json
// @Success 201 {object} Notification
// @Router /api/notifications [post]
func (c *NotificationController) Create(ctx *fiber.Ctx) error {
	sessionID, role, claims := viewer(ctx)
	if claims == nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}

	var in Input
	if err := ctx.BodyParser(&in); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	n, err := c.service.AddForSession(ctx.Context(), sessionID, role, in)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(n)
}

// MarkAsRead godoc
// @Summary Mark one notification read
// @Tags notifications
// @Param id path string true "Notification id"
// @Success 200 {object} map[string]interface{}
// @Router /api/notifications/{id}/read [put]
func (c *NotificationController) MarkAsRead(ctx *fiber.Ctx) error {
	sessionID, role, claims := viewer(ctx)
	if claims == nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}

	c.service.MarkAsRead(ctx.Context(), sessionID, role, ctx.Params("id"))
	return ctx.JSON(fiber.Map{"status": "success"})
}

// MarkAllAsRead godoc
// @Summary Mark the whole feed read
// @Tags notifications
// @Success 200 {object} map[string]interface{}
// @Router /api/notifications/mark-all-read [post]
func (c *NotificationController) MarkAllAsRead(ctx *fiber.Ctx) error {
	sessionID, role, claims := viewer(ctx)
	if claims == nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}

	c.service.MarkAllAsRead(ctx.Context(), sessionID, role)
	return ctx.JSON(fiber.Map{"status": "success"})
}

// Remove godoc
// @Summary Delete one notification
// @Tags notifications
// @Param id path string true "Notification id"
// @Success 200 {object} map[string]interface{}
// @Router /api/notifications/{id} [delete]
func (c *NotificationController) Remove(ctx *fiber.Ctx) error {
	sessionID, role, claims := viewer(ctx)
	if claims == nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}

	c.service.Remove(ctx.Context(), sessionID, role, ctx.Params("id"))
	return ctx.JSON(fiber.Map{"status": "success"})
}

// InvokeAction godoc
// @Summary Dispatch one of a notification's attached actions
// @Tags notifications
// @Param id path string true "Notification id"
// @Param kind path string true "view | link | approve | deny | dismiss"
// @Success 200 {object} ActionResult
// @Router /api/notifications/{id}/actions/{kind} [post]
func (c *NotificationController) InvokeAction(ctx *fiber.Ctx) error {
	sessionID, role, claims := viewer(ctx)
	if claims == nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}

	result, err := c.service.InvokeAction(ctx.Context(), sessionID, role, ctx.Params("id"), ActionKind(ctx.Params("kind")))
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, ErrNotFound) {
			status = fiber.StatusNotFound
		}
		return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(result)
}
