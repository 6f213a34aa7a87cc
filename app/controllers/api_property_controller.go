package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/propnest/PropNest/app/models"
	"github.com/propnest/PropNest/app/repository"
)

// propertyResponse serializes a property together with its derived
// reference code.
func propertyResponse(p *models.Property) fiber.Map {
	resp := fiber.Map{
		"id":          p.ID,
		"uuid":        p.UUID,
		"ref_code":    p.RefCode(),
		"title":       p.Title,
		"description": p.Description,
		"type":        p.Type,
		"status":      p.Status,
		"price":       p.Price,
		"location":    p.Location,
		"bedrooms":    p.Bedrooms,
		"area_sqft":   p.AreaSqft,
		"owner_id":    p.OwnerID,
		"created_at":  p.CreatedAt,
		"updated_at":  p.UpdatedAt,
	}
	if p.Owner != nil {
		resp["owner"] = p.Owner
	}
	return resp
}

// HandleListProperties returns a paginated property listing, optionally
// narrowed by status, type, and location substring.
func HandleListProperties(c *fiber.Ctx) error {
	page, pageSize, offset := parsePagination(c)

	repo := repository.GetGlobalFactory().GetPropertyRepository()
	properties, err := repo.List(repository.PropertyFilter{
		Status:   c.Query("status"),
		Type:     c.Query("type"),
		Location: c.Query("location"),
		Offset:   offset,
		Limit:    pageSize,
	})
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load properties")
	}

	total, err := repo.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to count properties")
	}

	items := make([]fiber.Map, 0, len(properties))
	for i := range properties {
		items = append(items, propertyResponse(&properties[i]))
	}

	return c.JSON(fiber.Map{
		"properties":  items,
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": totalPages(total, pageSize),
	})
}

type createPropertyRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Price       int64  `json:"price"`
	Location    string `json:"location"`
	Bedrooms    int    `json:"bedrooms"`
	AreaSqft    int    `json:"area_sqft"`
	OwnerID     *uint  `json:"owner_id"`
}

// lookupOwner verifies an optional owner reference exists. A zero id clears
// the reference.
func lookupOwner(ownerID *uint) (*uint, error) {
	if ownerID == nil || *ownerID == 0 {
		return nil, nil
	}

	repo := repository.GetGlobalFactory().GetOwnerRepository()
	if _, err := repo.GetByID(*ownerID); err != nil {
		return nil, err
	}
	return ownerID, nil
}

// HandleCreateProperty creates a property listing.
func HandleCreateProperty(c *fiber.Ctx) error {
	var req createPropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Request body must be valid JSON")
	}

	ownerID, err := lookupOwner(req.OwnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusBadRequest, "invalid_owner", "Owner does not exist")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to verify owner")
	}

	property := &models.Property{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Status:      req.Status,
		Price:       req.Price,
		Location:    req.Location,
		Bedrooms:    req.Bedrooms,
		AreaSqft:    req.AreaSqft,
		OwnerID:     ownerID,
	}
	if property.Status == "" {
		property.Status = models.PROPERTY_STATUS_AVAILABLE
	}

	if err := property.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", validationMessage(err))
	}

	repo := repository.GetGlobalFactory().GetPropertyRepository()
	if err := repo.Create(property); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create property")
	}

	return c.Status(fiber.StatusCreated).JSON(propertyResponse(property))
}

// HandleGetProperty returns a single property by UUID.
func HandleGetProperty(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetPropertyRepository()

	property, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Property not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load property")
	}

	return c.JSON(propertyResponse(property))
}

type updatePropertyRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Type        *string `json:"type"`
	Status      *string `json:"status"`
	Price       *int64  `json:"price"`
	Location    *string `json:"location"`
	Bedrooms    *int    `json:"bedrooms"`
	AreaSqft    *int    `json:"area_sqft"`
	OwnerID     *uint   `json:"owner_id"`
}

// HandleUpdateProperty applies a partial update to a property.
func HandleUpdateProperty(c *fiber.Ctx) error {
	var req updatePropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Request body must be valid JSON")
	}

	repo := repository.GetGlobalFactory().GetPropertyRepository()
	property, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Property not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load property")
	}

	if req.Title != nil {
		property.Title = *req.Title
	}
	if req.Description != nil {
		property.Description = *req.Description
	}
	if req.Type != nil {
		property.Type = *req.Type
	}
	if req.Status != nil {
		property.Status = *req.Status
	}
	if req.Price != nil {
		property.Price = *req.Price
	}
	if req.Location != nil {
		property.Location = *req.Location
	}
	if req.Bedrooms != nil {
		property.Bedrooms = *req.Bedrooms
	}
	if req.AreaSqft != nil {
		property.AreaSqft = *req.AreaSqft
	}
	if req.OwnerID != nil {
		ownerID, lerr := lookupOwner(req.OwnerID)
		if lerr != nil {
			if errors.Is(lerr, gorm.ErrRecordNotFound) {
				return jsonError(c, fiber.StatusBadRequest, "invalid_owner", "Owner does not exist")
			}
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to verify owner")
		}
		property.OwnerID = ownerID
		property.Owner = nil
	}

	if err := property.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", validationMessage(err))
	}

	// Drop the preloaded association so Save only writes property columns
	property.Owner = nil

	if err := repo.Update(property); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update property")
	}

	return c.JSON(propertyResponse(property))
}

// HandleDeleteProperty soft deletes a property.
func HandleDeleteProperty(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetPropertyRepository()

	property, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Property not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load property")
	}

	if err := repo.Delete(property.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete property")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
