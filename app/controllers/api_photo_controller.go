package controllers

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/propnest/PropNest/app/models"
	"github.com/propnest/PropNest/app/repository"
	"github.com/propnest/PropNest/internal/pkg/constants"
	"github.com/propnest/PropNest/internal/pkg/env"
	"github.com/propnest/PropNest/internal/pkg/photoproc"
	"github.com/propnest/PropNest/internal/pkg/upload"
)

// maxPhotoSizeBytes caps a single listing-photo upload (20 MiB).
const maxPhotoSizeBytes = 20 * 1024 * 1024

// uploadsDir is the local root for listing photos.
func uploadsDir() string {
	return env.GetEnv("UPLOADS_DIR", constants.UploadsPath)
}

// photoResponse serializes a photo record with its public URLs.
func photoResponse(p *models.PropertyPhoto) fiber.Map {
	resp := fiber.Map{
		"id":          p.ID,
		"uuid":        p.UUID,
		"property_id": p.PropertyID,
		"file_name":   p.FileName,
		"file_type":   p.FileType,
		"file_size":   p.FileSize,
		"width":       p.Width,
		"height":      p.Height,
		"captured_at": formatTimePtr(p.CapturedAt),
		"created_at":  p.CreatedAt,
		"url":         constants.UploadsRoute + "/" + filepath.ToSlash(p.FilePath),
	}
	if p.ThumbPath != "" {
		resp["thumb_url"] = constants.UploadsRoute + "/" + filepath.ToSlash(p.ThumbPath)
	}
	return resp
}

// HandleUploadPropertyPhoto accepts a multipart listing photo, validates it
// by content sniffing, stores the original, and generates a thumbnail.
func HandleUploadPropertyPhoto(c *fiber.Ctx) error {
	propertyRepo := repository.GetGlobalFactory().GetPropertyRepository()
	property, err := propertyRepo.GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Property not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load property")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "missing_file", "No file uploaded")
	}
	if file.Size > maxPhotoSizeBytes {
		return jsonError(c, fiber.StatusRequestEntityTooLarge, "file_too_large", "Photo exceeds the 20 MiB limit")
	}

	// Sniff the first bytes before trusting the extension
	pre, err := file.Open()
	if err != nil {
		fiberlog.Errorf("[PhotoUpload] error opening uploaded file for sniff: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to read uploaded file")
	}
	head := make([]byte, 512)
	n, _ := io.ReadFull(pre, head)
	if n > 0 {
		head = head[:n]
	}
	_ = pre.Close()

	detectedMime, err := upload.ValidatePhotoBySniff(file.Filename, head)
	if err != nil {
		return jsonError(c, fiber.StatusUnsupportedMediaType, "unsupported_type", err.Error())
	}

	photoUUID := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(file.Filename))
	relDir := filepath.Join("properties", property.UUID)
	originalRel := filepath.Join(relDir, photoUUID+ext)
	originalAbs := filepath.Join(uploadsDir(), originalRel)
	thumbRel := filepath.Join(relDir, "thumbs", photoUUID+".jpg")
	thumbAbs := filepath.Join(uploadsDir(), thumbRel)

	if err := os.MkdirAll(filepath.Dir(originalAbs), 0755); err != nil {
		fiberlog.Errorf("[PhotoUpload] error creating photo directory: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to store photo")
	}
	if err := c.SaveFile(file, originalAbs); err != nil {
		fiberlog.Errorf("[PhotoUpload] error saving photo: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to store photo")
	}

	res, err := photoproc.ProcessPhoto(originalAbs, thumbAbs)
	if err != nil {
		// Sniff passed but the decoder disagreed
		fiberlog.Warnf("[PhotoUpload] error processing photo %s: %v", file.Filename, err)
		_ = os.Remove(originalAbs)
		return jsonError(c, fiber.StatusUnprocessableEntity, "unprocessable_photo", "Photo could not be decoded")
	}

	photo := &models.PropertyPhoto{
		UUID:       photoUUID,
		PropertyID: property.ID,
		FilePath:   originalRel,
		ThumbPath:  thumbRel,
		FileName:   file.Filename,
		FileType:   detectedMime,
		FileSize:   file.Size,
		Width:      res.Width,
		Height:     res.Height,
		CapturedAt: res.CapturedAt,
	}

	photoRepo := repository.GetGlobalFactory().GetPropertyPhotoRepository()
	if err := photoRepo.Create(photo); err != nil {
		fiberlog.Errorf("[PhotoUpload] error creating photo record: %v", err)
		_ = os.Remove(originalAbs)
		_ = os.Remove(thumbAbs)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to store photo")
	}

	fiberlog.Infof("[PhotoUpload] stored photo %s for property %s (%dx%d)", photoUUID, property.UUID, res.Width, res.Height)
	return c.Status(fiber.StatusCreated).JSON(photoResponse(photo))
}

// HandleListPropertyPhotos returns all photos of a property.
func HandleListPropertyPhotos(c *fiber.Ctx) error {
	propertyRepo := repository.GetGlobalFactory().GetPropertyRepository()
	property, err := propertyRepo.GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Property not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load property")
	}

	photoRepo := repository.GetGlobalFactory().GetPropertyPhotoRepository()
	photos, err := photoRepo.ListByPropertyID(property.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load photos")
	}

	items := make([]fiber.Map, 0, len(photos))
	for i := range photos {
		items = append(items, photoResponse(&photos[i]))
	}

	return c.JSON(fiber.Map{"photos": items, "total": len(items)})
}

// HandleDeletePropertyPhoto removes a photo record and its files.
func HandleDeletePropertyPhoto(c *fiber.Ctx) error {
	photoRepo := repository.GetGlobalFactory().GetPropertyPhotoRepository()

	photo, err := photoRepo.GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Photo not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load photo")
	}

	if err := photoRepo.Delete(photo.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete photo")
	}

	// File removal is best effort; the record is already gone
	if photo.FilePath != "" {
		_ = os.Remove(filepath.Join(uploadsDir(), photo.FilePath))
	}
	if photo.ThumbPath != "" {
		_ = os.Remove(filepath.Join(uploadsDir(), photo.ThumbPath))
	}

	return c.SendStatus(fiber.StatusNoContent)
}
