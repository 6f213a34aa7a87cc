package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/propnest/PropNest/app/models"
	"github.com/propnest/PropNest/app/repository"
)

// HandleListOwners returns a paginated owner listing.
func HandleListOwners(c *fiber.Ctx) error {
	page, pageSize, offset := parsePagination(c)

	repo := repository.GetGlobalFactory().GetOwnerRepository()
	owners, err := repo.List(offset, pageSize)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load owners")
	}

	total, err := repo.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to count owners")
	}

	return c.JSON(fiber.Map{
		"owners":      owners,
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": totalPages(total, pageSize),
	})
}

type createOwnerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}

// HandleCreateOwner registers a property owner.
func HandleCreateOwner(c *fiber.Ctx) error {
	var req createOwnerRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Request body must be valid JSON")
	}

	owner := &models.Owner{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
		Notes: req.Notes,
	}

	if err := owner.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", validationMessage(err))
	}

	repo := repository.GetGlobalFactory().GetOwnerRepository()
	if err := repo.Create(owner); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create owner")
	}

	return c.Status(fiber.StatusCreated).JSON(owner)
}
