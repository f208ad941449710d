package device

import (
	"github.com/gofiber/fiber/v2"
)

type DeviceController struct {
	Service DeviceService
}

func NewDeviceController(service DeviceService) *DeviceController {
	return &DeviceController{
		Service: service,
	}
}

// ListDevices godoc
// @Summary List the cached device fleet
// @Tags devices
// @Produce json
// @Success 200 {array} Device
// @Router /api/devices [get]
func (ctrl *DeviceController) ListDevices(c *fiber.Ctx) error {
	devices, err := ctrl.Service.ListDevices(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(devices)
}

// GetDevice godoc
// @Summary Get one device by its TeamViewer id
// @Tags devices
// @Produce json
// @Param id path string true "Device ID"
// @Success 200 {object} Device
// @Failure 404 {object} map[string]interface{}
// @Router /api/devices/{id} [get]
func (ctrl *DeviceController) GetDevice(c *fiber.Ctx) error {
	device, err := ctrl.Service.GetDevice(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Device not found"})
	}
	return c.JSON(device)
}

// Connect godoc
// @Summary Remote-control deep link for a device
// @Tags devices
// @Produce json
// @Param id path string true "Device ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/devices/{id}/connect [get]
func (ctrl *DeviceController) Connect(c *fiber.Ctx) error {
	url, err := ctrl.Service.ConnectURL(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Device not found"})
	}
	return c.JSON(fiber.Map{"url": url})
}

// Sync godoc
// @Summary Trigger a fleet sync now
// @Tags devices
// @Success 200 {object} map[string]interface{}
// @Router /api/devices/sync [post]
func (ctrl *DeviceController) Sync(c *fiber.Ctx) error {
	if err := ctrl.Service.Sync(c.UserContext()); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "success"})
}
