package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/propnest/PropNest/app/controllers"
	"github.com/propnest/PropNest/internal/pkg/middleware"
)

func (h HttpRouter) registerAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.StaffBasicAuth(), middleware.LoadStaffFromBasicAuth)

	// Ingest counters + CRM overview
	adminGroup.Get("/stats", controllers.HandleAdminStats)

	// API key management
	adminGroup.Get("/api-keys", controllers.HandleAdminListAPIKeys)
	adminGroup.Post("/api-keys", controllers.HandleAdminCreateAPIKey)
	adminGroup.Delete("/api-keys/:id", controllers.HandleAdminRevokeAPIKey)

	// Staff account management
	adminGroup.Get("/staff", controllers.HandleAdminListStaff)
	adminGroup.Post("/staff", controllers.HandleAdminCreateStaff)
}
