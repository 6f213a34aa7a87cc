package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/propnest/PropNest/app/models"
	"github.com/propnest/PropNest/app/repository"
)

var leadStages = map[string]bool{
	models.LEAD_STAGE_NEW:       true,
	models.LEAD_STAGE_CONTACTED: true,
	models.LEAD_STAGE_QUALIFIED: true,
	models.LEAD_STAGE_WON:       true,
	models.LEAD_STAGE_LOST:      true,
}

// HandleListLeads returns a paginated lead listing, optionally narrowed by
// stage and source.
func HandleListLeads(c *fiber.Ctx) error {
	page, pageSize, offset := parsePagination(c)

	stage := c.Query("stage")
	if stage != "" && !leadStages[stage] {
		return jsonError(c, fiber.StatusBadRequest, "invalid_filter", "Unknown lead stage: "+stage)
	}

	repo := repository.GetGlobalFactory().GetLeadRepository()
	leads, err := repo.List(repository.LeadFilter{
		Stage:  stage,
		Source: c.Query("source"),
		Offset: offset,
		Limit:  pageSize,
	})
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load leads")
	}

	total, err := repo.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to count leads")
	}

	return c.JSON(fiber.Map{
		"leads":       leads,
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": totalPages(total, pageSize),
	})
}

// createLeadRequest is the manual lead intake payload.
type createLeadRequest struct {
	Name              string `json:"name"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	Budget            string `json:"budget"`
	PreferredLocation string `json:"preferred_location"`
	Notes             string `json:"notes"`
	AssignedToID      *uint  `json:"assigned_to_id"`
}

// HandleCreateLead creates a manually captured lead. Manual leads get the
// same intake defaults as webhook-ingested ones.
func HandleCreateLead(c *fiber.Ctx) error {
	var req createLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Request body must be valid JSON")
	}

	lead := &models.Lead{
		Name:              req.Name,
		Phone:             req.Phone,
		Email:             req.Email,
		Budget:            req.Budget,
		PreferredLocation: req.PreferredLocation,
		Notes:             req.Notes,
		AssignedToID:      req.AssignedToID,
		Source:            models.LEAD_SOURCE_MANUAL,
	}
	lead.ApplyIntakeDefaults()

	if err := lead.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", validationMessage(err))
	}

	repo := repository.GetGlobalFactory().GetLeadRepository()
	if err := repo.Create(lead); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create lead")
	}

	return c.Status(fiber.StatusCreated).JSON(lead)
}

// HandleGetLead returns a single lead by UUID.
func HandleGetLead(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetLeadRepository()

	lead, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Lead not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load lead")
	}

	return c.JSON(lead)
}

// updateLeadRequest carries the staff-editable lead fields. Pointers
// distinguish "not sent" from "clear this value".
type updateLeadRequest struct {
	Stage        *string `json:"stage"`
	Notes        *string `json:"notes"`
	AssignedToID *uint   `json:"assigned_to_id"`
}

// HandleUpdateLead updates stage, notes, or assignment of a lead.
func HandleUpdateLead(c *fiber.Ctx) error {
	var req updateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Request body must be valid JSON")
	}

	repo := repository.GetGlobalFactory().GetLeadRepository()
	lead, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Lead not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load lead")
	}

	if req.Stage != nil {
		if !leadStages[*req.Stage] {
			return jsonError(c, fiber.StatusBadRequest, "invalid_stage", "Unknown lead stage: "+*req.Stage)
		}
		lead.Stage = *req.Stage
	}
	if req.Notes != nil {
		lead.Notes = *req.Notes
	}
	if req.AssignedToID != nil {
		if *req.AssignedToID == 0 {
			lead.AssignedToID = nil
		} else {
			staffRepo := repository.GetGlobalFactory().GetStaffUserRepository()
			if _, err := staffRepo.GetByID(*req.AssignedToID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return jsonError(c, fiber.StatusBadRequest, "invalid_assignee", "Assigned staff user does not exist")
				}
				return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to verify assignee")
			}
			lead.AssignedToID = req.AssignedToID
		}
	}

	if err := repo.Update(lead); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update lead")
	}

	return c.JSON(lead)
}
