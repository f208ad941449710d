package auth

import (
	"go-spear/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	service AuthService
}

func NewAuthController(service AuthService) *AuthController {
	return &AuthController{
		service: service,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login godoc
// @Summary Sign in and receive a bearer token
// @Tags auth
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var req loginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	token, u, err := c.service.Login(ctx.Context(), req.Email, req.Password)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"token": token,
		"user":  u,
	})
}

// Logout godoc
// @Summary Sign out and drop the session feed
// @Tags auth
// @Router /api/auth/logout [post]
func (c *AuthController) Logout(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)
	if claims == nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}

	c.service.Logout(ctx.Context(), claims.SessionID)
	return ctx.JSON(fiber.Map{"status": "success"})
}

// Me godoc
// @Summary Current viewer claims
// @Tags auth
// @Router /api/auth/me [get]
func (c *AuthController) Me(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)
	if claims == nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}

	return ctx.JSON(fiber.Map{
		"user_id": claims.UserID,
		"role":    claims.Role,
	})
}
