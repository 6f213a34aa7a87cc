package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/propnest/PropNest/app/models"
	"github.com/propnest/PropNest/app/repository"
	"github.com/propnest/PropNest/internal/pkg/metrics/counter"
	"github.com/propnest/PropNest/internal/pkg/statistics"
)

// AdminController handles the operations surface using repository pattern
type AdminController struct {
	repos *repository.Repositories
}

// NewAdminController creates a new admin controller with repository dependencies
func NewAdminController(repos *repository.Repositories) *AdminController {
	return &AdminController{
		repos: repos,
	}
}

// HandleStats returns the ingest counter snapshot together with the cached
// CRM aggregate overview.
func (ac *AdminController) HandleStats(c *fiber.Ctx) error {
	counters, err := counter.Snapshot()
	if err != nil {
		return ac.handleError(c, "Failed to read ingest counters", err)
	}

	overview, err := statistics.GetOverview()
	if err != nil {
		return ac.handleError(c, "Failed to build CRM overview", err)
	}

	return c.JSON(fiber.Map{
		"ingest":   counters,
		"overview": overview,
	})
}

type createAPIKeyRequest struct {
	StaffUserID uint   `json:"staff_user_id"`
	Label       string `json:"label"`
}

// HandleCreateAPIKey issues an API key for a staff user. The plaintext key
// appears in this response and nowhere else.
func (ac *AdminController) HandleCreateAPIKey(c *fiber.Ctx) error {
	var req createAPIKeyRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Request body must be valid JSON")
	}
	if req.StaffUserID == 0 {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", "Invalid fields: staff_user_id")
	}

	staff, err := ac.repos.StaffUser.GetByID(req.StaffUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Staff user not found")
		}
		return ac.handleError(c, "Failed to load staff user", err)
	}
	if !staff.IsActive() {
		return jsonError(c, fiber.StatusForbidden, "inactive_user", "Staff user is disabled")
	}

	key, rawKey, err := models.NewApiKey(staff.ID, req.Label)
	if err != nil {
		return ac.handleError(c, "Failed to generate API key", err)
	}
	if err := ac.repos.ApiKey.Create(key); err != nil {
		return ac.handleError(c, "Failed to store API key", err)
	}

	fiberlog.Infof("[Admin] issued API key %s for staff user %d", key.KeyPrefix, staff.ID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":         key.ID,
		"key":        rawKey,
		"key_prefix": key.KeyPrefix,
		"label":      key.Label,
		"staff_user": fiber.Map{"id": staff.ID, "email": staff.Email},
		"created_at": key.CreatedAt,
	})
}

// HandleListAPIKeys lists the keys of one staff user. Only prefix and usage
// metadata are exposed.
func (ac *AdminController) HandleListAPIKeys(c *fiber.Ctx) error {
	staffID, err := strconv.Atoi(c.Query("staff_user_id", "0"))
	if err != nil || staffID <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", "Invalid fields: staff_user_id")
	}

	keys, err := ac.repos.ApiKey.ListByStaffUser(uint(staffID))
	if err != nil {
		return ac.handleError(c, "Failed to list API keys", err)
	}

	items := make([]fiber.Map, 0, len(keys))
	for _, k := range keys {
		items = append(items, fiber.Map{
			"id":           k.ID,
			"key_prefix":   k.KeyPrefix,
			"label":        k.Label,
			"last_used_at": formatTimePtr(k.LastUsedAt),
			"expires_at":   formatTimePtr(k.ExpiresAt),
			"created_at":   k.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{"api_keys": items, "total": len(items)})
}

// HandleRevokeAPIKey revokes an API key by id.
func (ac *AdminController) HandleRevokeAPIKey(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", "Invalid key id")
	}

	if err := ac.repos.ApiKey.Revoke(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "API key not found")
		}
		return ac.handleError(c, "Failed to revoke API key", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

type createStaffRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// HandleCreateStaff registers a staff account.
func (ac *AdminController) HandleCreateStaff(c *fiber.Ctx) error {
	var req createStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Request body must be valid JSON")
	}

	role := req.Role
	if role == "" {
		role = models.ROLE_AGENT
	}

	staff, err := models.CreateStaffUser(req.Name, req.Email, req.Password, role)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", validationMessage(err))
	}

	if err := ac.repos.StaffUser.Create(staff); err != nil {
		return ac.handleError(c, "Failed to create staff user", err)
	}

	fiberlog.Infof("[Admin] created staff user %s (%s)", staff.Email, staff.Role)
	return c.Status(fiber.StatusCreated).JSON(staff)
}

// HandleListStaff lists staff accounts.
func (ac *AdminController) HandleListStaff(c *fiber.Ctx) error {
	page, pageSize, offset := parsePagination(c)

	staff, err := ac.repos.StaffUser.List(offset, pageSize)
	if err != nil {
		return ac.handleError(c, "Failed to list staff users", err)
	}

	total, err := ac.repos.StaffUser.Count()
	if err != nil {
		return ac.handleError(c, "Failed to count staff users", err)
	}

	return c.JSON(fiber.Map{
		"staff":       staff,
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": totalPages(total, pageSize),
	})
}

// handleError handles errors consistently
func (ac *AdminController) handleError(c *fiber.Ctx, message string, err error) error {
	fiberlog.Errorf("[Admin] %s: %v", message, err)
	return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", message)
}
