package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/propnest/PropNest/app/models"
	"github.com/propnest/PropNest/app/repository"
	"github.com/propnest/PropNest/internal/pkg/usercontext"
)

// APIKeyAuthMiddleware authenticates staff API requests carrying an API key.
// The key arrives via X-API-Key or as a bearer token; only its SHA-256 hash
// is ever compared against the store.
func APIKeyAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		apiKey := extractAPIKeyFromHeader(c)
		if apiKey == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing API key"})
		}

		hash := models.HashAPIKey(apiKey)
		repo := repository.GetGlobalFactory().GetApiKeyRepository()
		key, staff, err := repo.GetActiveByHash(hash)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid API key"})
			}
			log.Errorf("api key lookup failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "API key verification failed"})
		}

		if key.IsExpired() {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "API key expired"})
		}
		if !staff.IsActive() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden", "message": "Staff user inactive"})
		}

		// Refresh last-used timestamp best-effort.
		if err := repo.TouchUsage(key.ID); err != nil {
			log.Warnf("failed to update api key usage timestamp for key %d: %v", key.ID, err)
		}

		usercontext.SetStaffContext(c, usercontext.StaffContext{
			StaffID:  staff.ID,
			Name:     staff.Name,
			Email:    staff.Email,
			IsAuthed: true,
			IsAdmin:  staff.IsAdmin(),
		})

		return c.Next()
	}
}

func extractAPIKeyFromHeader(c *fiber.Ctx) string {
	apiKey := strings.TrimSpace(c.Get("X-API-Key"))
	if apiKey != "" {
		return apiKey
	}
	auth := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
