package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/propnest/PropNest/internal/pkg/health"
)

// HandleHealthz reports component health: 200 when every check passes,
// otherwise 503 with per-check detail.
func HandleHealthz(c *fiber.Ctx) error {
	report := health.RunChecks(uploadsDir())

	status := fiber.StatusOK
	if !report.Healthy {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(report)
}
