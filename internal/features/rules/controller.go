package rules

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RuleController struct {
	Service RuleService
}

func NewRuleController(service RuleService) *RuleController {
	return &RuleController{
		Service: service,
	}
}

// CreateRule godoc
// @Summary Create automation rule
// @Tags rules
// @Accept json
// @Produce json
// @Param rule body Rule true "Rule"
// @Success 201 {object} Rule
// @Failure 400 {object} map[string]interface{}
// @Router /api/rules [post]
func (ctrl *RuleController) CreateRule(c *fiber.Ctx) error {
	var rule Rule
	if err := c.BodyParser(&rule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if rule.Event == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Rule event is required"})
	}

	if err := ctrl.Service.CreateRule(c.UserContext(), &rule); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(rule)
}

// GetRule godoc
// @Summary Get automation rule
// @Tags rules
// @Produce json
// @Param id path string true "Rule ID"
// @Success 200 {object} Rule
// @Failure 404 {object} map[string]interface{}
// @Router /api/rules/{id} [get]
func (ctrl *RuleController) GetRule(c *fiber.Ctx) error {
	rule, err := ctrl.Service.GetRule(c.UserContext(), c.Params("id"))
	if err != nil || rule == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Rule not found"})
	}
	return c.JSON(rule)
}

// ListRules godoc
// @Summary List automation rules
// @Tags rules
// @Produce json
// @Success 200 {array} Rule
// @Router /api/rules [get]
func (ctrl *RuleController) ListRules(c *fiber.Ctx) error {
	rules, err := ctrl.Service.ListRules(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(rules)
}

// UpdateRule godoc
// @Summary Update automation rule
// @Tags rules
// @Accept json
// @Produce json
// @Param id path string true "Rule ID"
// @Param rule body Rule true "Rule"
// @Success 200 {object} Rule
// @Router /api/rules/{id} [put]
func (ctrl *RuleController) UpdateRule(c *fiber.Ctx) error {
	var rule Rule
	if err := c.BodyParser(&rule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	oid, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid rule id"})
	}
	rule.ID = oid

	if err := ctrl.Service.UpdateRule(c.UserContext(), &rule); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(rule)
}

// DeleteRule godoc
// @Summary Delete automation rule
// @Tags rules
// @Param id path string true "Rule ID"
// @Success 204 {object} nil
// @Router /api/rules/{id} [delete]
func (ctrl *RuleController) DeleteRule(c *fiber.Ctx) error {
	if err := ctrl.Service.DeleteRule(c.UserContext(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// EnableRule godoc
// @Summary Toggle a rule on or off
// @Tags rules
// @Param id path string true "Rule ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/rules/{id}/enable [put]
func (ctrl *RuleController) EnableRule(c *fiber.Ctx) error {
	var body struct {
		Active bool `json:"active"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := ctrl.Service.EnableRule(c.UserContext(), c.Params("id"), body.Active); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "success", "active": body.Active})
}
