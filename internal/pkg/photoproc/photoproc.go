package photoproc

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2/log"
	"github.com/kolesa-team/go-webp/decoder"
	"github.com/kolesa-team/go-webp/webp"
)

// ThumbnailMaxPx bounds both edges of a listing-photo thumbnail.
const ThumbnailMaxPx = 480

// thumbnailQuality is the JPEG quality used for thumbnails.
const thumbnailQuality = 85

// Result describes one processed listing photo.
type Result struct {
	Width      int
	Height     int
	CapturedAt *time.Time
}

// Decode reads a stored listing photo. WebP needs its own decoder; imaging
// covers JPEG, PNG and GIF.
func Decode(path string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".webp") {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("error opening photo %s: %w", path, err)
		}
		defer f.Close()

		img, err := webp.Decode(f, &decoder.Options{})
		if err != nil {
			return nil, fmt.Errorf("error decoding webp photo %s: %w", path, err)
		}
		return img, nil
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening photo %s: %w", path, err)
	}
	return img, nil
}

// ProcessPhoto decodes the original, writes a JPEG thumbnail bounded to
// ThumbnailMaxPx and reports dimensions plus the EXIF capture time when the
// file carries one.
func ProcessPhoto(originalPath, thumbnailPath string) (*Result, error) {
	img, err := Decode(originalPath)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Width:      img.Bounds().Dx(),
		Height:     img.Bounds().Dy(),
		CapturedAt: CaptureTime(originalPath),
	}

	if err := os.MkdirAll(filepath.Dir(thumbnailPath), 0755); err != nil {
		return nil, fmt.Errorf("error creating thumbnail directory: %w", err)
	}

	thumb := img
	if res.Width > ThumbnailMaxPx || res.Height > ThumbnailMaxPx {
		thumb = imaging.Fit(img, ThumbnailMaxPx, ThumbnailMaxPx, imaging.Lanczos)
	}
	if err := imaging.Save(thumb, thumbnailPath, imaging.JPEGQuality(thumbnailQuality)); err != nil {
		return nil, fmt.Errorf("error saving thumbnail %s: %w", thumbnailPath, err)
	}

	log.Debugf("[PhotoProc] processed %s (%dx%d)", filepath.Base(originalPath), res.Width, res.Height)
	return res, nil
}
