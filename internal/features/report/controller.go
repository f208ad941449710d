package report

import (
	common_models "go-spear/internal/common/models"
	"go-spear/internal/features/notification"
	"go-spear/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ReportController struct {
	Service ReportService
}

func NewReportController(service ReportService) *ReportController {
	return &ReportController{
		Service: service,
	}
}

// ExportNotifications godoc
// @Summary Export the caller's notification feed
// @Tags reports
// @Produce application/octet-stream
// @Param format query string false "xlsx (default) or csv"
// @Param category query string false "Topic filter"
// @Param priority query string false "Priority filter"
// @Success 200 {file} binary
// @Router /api/reports/notifications [get]
func (ctrl *ReportController) ExportNotifications(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}

	filter := notification.Filter{
		Topic:    c.Query("category"),
		Priority: notification.Priority(c.Query("priority")),
	}

	data, filename, err := ctrl.Service.ExportNotifications(
		c.UserContext(), claims.SessionID, common_models.Role(claims.Role), filter, c.Query("format"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// ExportDevices godoc
// @Summary Export the device fleet
// @Tags reports
// @Produce application/octet-stream
// @Param format query string false "xlsx (default) or csv"
// @Success 200 {file} binary
// @Router /api/reports/devices [get]
func (ctrl *ReportController) ExportDevices(c *fiber.Ctx) error {
	data, filename, err := ctrl.Service.ExportDevices(c.UserContext(), c.Query("format"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
