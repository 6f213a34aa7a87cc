package photoproc

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
)

func init() {
	// Register Nikon and Canon maker notes
	exif.RegisterParsers(mknote.All...)
}

// CaptureTime extracts the EXIF capture timestamp from an image file. Photos
// without EXIF data (screenshots, exports, scrubbed uploads) are common, so a
// missing timestamp is not an error.
func CaptureTime(path string) *time.Time {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		log.Debugf("[PhotoProc] no EXIF data in %s: %v", path, err)
		return nil
	}

	dt, err := x.DateTime()
	if err != nil {
		return nil
	}
	return &dt
}
