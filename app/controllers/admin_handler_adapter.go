package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/propnest/PropNest/app/repository"
)

// Global admin controller instance
var adminController *AdminController

// InitializeAdminController initializes the global admin controller with repositories
func InitializeAdminController() {
	repos := repository.GetGlobalRepositories()
	adminController = NewAdminController(repos)
}

// GetAdminController returns the global admin controller instance
func GetAdminController() *AdminController {
	if adminController == nil {
		InitializeAdminController()
	}
	return adminController
}

// Adapter functions to maintain compatibility with the router

// HandleAdminStats - Adapter for ingest counters + CRM overview
func HandleAdminStats(c *fiber.Ctx) error {
	return GetAdminController().HandleStats(c)
}

// HandleAdminCreateAPIKey - Adapter for API key issuing
func HandleAdminCreateAPIKey(c *fiber.Ctx) error {
	return GetAdminController().HandleCreateAPIKey(c)
}

// HandleAdminListAPIKeys - Adapter for API key listing
func HandleAdminListAPIKeys(c *fiber.Ctx) error {
	return GetAdminController().HandleListAPIKeys(c)
}

// HandleAdminRevokeAPIKey - Adapter for API key revocation
func HandleAdminRevokeAPIKey(c *fiber.Ctx) error {
	return GetAdminController().HandleRevokeAPIKey(c)
}

// HandleAdminCreateStaff - Adapter for staff account creation
func HandleAdminCreateStaff(c *fiber.Ctx) error {
	return GetAdminController().HandleCreateStaff(c)
}

// HandleAdminListStaff - Adapter for staff account listing
func HandleAdminListStaff(c *fiber.Ctx) error {
	return GetAdminController().HandleListStaff(c)
}
