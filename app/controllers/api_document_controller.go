package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/propnest/PropNest/app/models"
	"github.com/propnest/PropNest/app/repository"
	"github.com/propnest/PropNest/internal/pkg/docstore"
	"github.com/propnest/PropNest/internal/pkg/usercontext"
)

// documentResponse serializes a document record. Presigned URLs are issued
// separately and never stored.
func documentResponse(d *models.PropertyDocument) fiber.Map {
	return fiber.Map{
		"id":             d.ID,
		"uuid":           d.UUID,
		"property_id":    d.PropertyID,
		"file_name":      d.FileName,
		"content_type":   d.ContentType,
		"file_size":      d.FileSize,
		"uploaded_by_id": d.UploadedByID,
		"created_at":     d.CreatedAt,
	}
}

type createDocumentRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	FileSize    int64  `json:"file_size"`
}

// HandleCreateDocumentUpload registers a document for a property and returns
// a presigned PUT URL the client uploads the file to.
func HandleCreateDocumentUpload(c *fiber.Ctx) error {
	propertyRepo := repository.GetGlobalFactory().GetPropertyRepository()
	property, err := propertyRepo.GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Property not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load property")
	}

	var req createDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Request body must be valid JSON")
	}
	if req.FileName == "" {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", "Invalid fields: file_name")
	}

	client, err := docstore.GetClient()
	if err != nil {
		if errors.Is(err, docstore.ErrDisabled) {
			return jsonError(c, fiber.StatusServiceUnavailable, "docstore_disabled", "Document storage is not configured")
		}
		fiberlog.Errorf("[Documents] document store unavailable: %v", err)
		return jsonError(c, fiber.StatusServiceUnavailable, "docstore_unavailable", "Document storage is unavailable")
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = docstore.ContentTypeFor(req.FileName)
	}

	doc := &models.PropertyDocument{
		UUID:         uuid.New().String(),
		PropertyID:   property.ID,
		FileName:     req.FileName,
		ContentType:  contentType,
		FileSize:     req.FileSize,
		UploadedByID: usercontext.GetStaffID(c),
	}
	doc.ObjectKey = client.ObjectKey(property.UUID, doc.UUID, req.FileName)

	uploadURL, err := client.PresignUpload(c.Context(), doc.ObjectKey, contentType)
	if err != nil {
		fiberlog.Errorf("[Documents] error presigning upload: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to presign upload")
	}

	docRepo := repository.GetGlobalFactory().GetPropertyDocumentRepository()
	if err := docRepo.Create(doc); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create document record")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"document":           documentResponse(doc),
		"upload_url":         uploadURL,
		"upload_expires_sec": int(docstore.UploadURLExpiry.Seconds()),
	})
}

// HandleListPropertyDocuments returns all document records of a property.
func HandleListPropertyDocuments(c *fiber.Ctx) error {
	propertyRepo := repository.GetGlobalFactory().GetPropertyRepository()
	property, err := propertyRepo.GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Property not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load property")
	}

	docRepo := repository.GetGlobalFactory().GetPropertyDocumentRepository()
	docs, err := docRepo.ListByPropertyID(property.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load documents")
	}

	items := make([]fiber.Map, 0, len(docs))
	for i := range docs {
		items = append(items, documentResponse(&docs[i]))
	}

	return c.JSON(fiber.Map{"documents": items, "total": len(items)})
}

// HandleDownloadDocument returns a short-lived presigned GET URL for a
// stored document.
func HandleDownloadDocument(c *fiber.Ctx) error {
	docRepo := repository.GetGlobalFactory().GetPropertyDocumentRepository()

	doc, err := docRepo.GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Document not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load document")
	}

	client, err := docstore.GetClient()
	if err != nil {
		if errors.Is(err, docstore.ErrDisabled) {
			return jsonError(c, fiber.StatusServiceUnavailable, "docstore_disabled", "Document storage is not configured")
		}
		fiberlog.Errorf("[Documents] document store unavailable: %v", err)
		return jsonError(c, fiber.StatusServiceUnavailable, "docstore_unavailable", "Document storage is unavailable")
	}

	downloadURL, err := client.PresignDownload(c.Context(), doc.ObjectKey, doc.FileName)
	if err != nil {
		fiberlog.Errorf("[Documents] error presigning download: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to presign download")
	}

	return c.JSON(fiber.Map{
		"download_url":         downloadURL,
		"download_expires_sec": int(docstore.DownloadURLExpiry.Seconds()),
	})
}

// HandleDeleteDocument removes the stored object and the document record.
func HandleDeleteDocument(c *fiber.Ctx) error {
	docRepo := repository.GetGlobalFactory().GetPropertyDocumentRepository()

	doc, err := docRepo.GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Document not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load document")
	}

	// Object removal is best effort; a dangling object is preferable to a
	// record pointing at nothing
	if client, cerr := docstore.GetClient(); cerr == nil {
		if derr := client.DeleteObject(c.Context(), doc.ObjectKey); derr != nil {
			fiberlog.Warnf("[Documents] error deleting object %s: %v", doc.ObjectKey, derr)
		}
	}

	if err := docRepo.Delete(doc.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete document")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
