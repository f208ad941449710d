package audit

import (
	"strconv"

	"go-spear/internal/common/api"
	"go-spear/internal/config"
	"go-spear/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuditApi struct {
	service AuditService
	config  *config.Config
}

func NewAuditApi(service AuditService, config *config.Config) api.Route {
	return &AuditApi{
		service: service,
		config:  config,
	}
}

func (h *AuditApi) Setup(app *fiber.App) {
	group := app.Group("/api/audit", middleware.AuthMiddleware(h.config.SkipAuth), middleware.AdminMiddleware())

	group.Get("/", func(ctx *fiber.Ctx) error {
		page, _ := strconv.ParseInt(ctx.Query("page", "1"), 10, 64)
		limit, _ := strconv.ParseInt(ctx.Query("limit", "50"), 10, 64)

		filter := map[string]interface{}{}
		if module := ctx.Query("module"); module != "" {
			filter["module"] = module
		}

		logs, err := h.service.ListLogs(ctx.Context(), filter, page, limit)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.JSON(fiber.Map{"data": logs, "page": page, "limit": limit})
	})
}
