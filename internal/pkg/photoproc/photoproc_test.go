package photoproc_test

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propnest/PropNest/internal/pkg/photoproc"
)

// writeTestPhoto renders a flat-color image to disk in the format implied by
// the extension.
func writeTestPhoto(t *testing.T, dir, name string, width, height int) string {
	t.Helper()

	img := imaging.New(width, height, color.NRGBA{R: 200, G: 120, B: 40, A: 255})
	path := filepath.Join(dir, name)
	require.NoError(t, imaging.Save(img, path))
	return path
}

func TestProcessPhoto_ShrinksLargePhoto(t *testing.T) {
	dir := t.TempDir()
	original := writeTestPhoto(t, dir, "living-room.jpg", 1600, 900)
	thumbnail := filepath.Join(dir, "thumbs", "living-room.jpg")

	res, err := photoproc.ProcessPhoto(original, thumbnail)
	require.NoError(t, err)

	assert.Equal(t, 1600, res.Width)
	assert.Equal(t, 900, res.Height)
	assert.Nil(t, res.CapturedAt, "generated photo carries no EXIF data")

	thumb, err := imaging.Open(thumbnail)
	require.NoError(t, err)
	assert.LessOrEqual(t, thumb.Bounds().Dx(), photoproc.ThumbnailMaxPx)
	assert.LessOrEqual(t, thumb.Bounds().Dy(), photoproc.ThumbnailMaxPx)
	// Fit preserves the 16:9 aspect ratio.
	assert.Equal(t, photoproc.ThumbnailMaxPx, thumb.Bounds().Dx())
	assert.Equal(t, 270, thumb.Bounds().Dy())
}

func TestProcessPhoto_KeepsSmallPhotoSize(t *testing.T) {
	dir := t.TempDir()
	original := writeTestPhoto(t, dir, "detail.png", 320, 240)
	thumbnail := filepath.Join(dir, "detail_thumb.jpg")

	res, err := photoproc.ProcessPhoto(original, thumbnail)
	require.NoError(t, err)
	assert.Equal(t, 320, res.Width)
	assert.Equal(t, 240, res.Height)

	thumb, err := imaging.Open(thumbnail)
	require.NoError(t, err)
	assert.Equal(t, 320, thumb.Bounds().Dx())
	assert.Equal(t, 240, thumb.Bounds().Dy())
}

func TestProcessPhoto_MissingFile(t *testing.T) {
	dir := t.TempDir()

	_, err := photoproc.ProcessPhoto(filepath.Join(dir, "nope.jpg"), filepath.Join(dir, "thumb.jpg"))
	assert.Error(t, err)
}

func TestDecode_UnsupportedContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0644))

	_, err := photoproc.Decode(path)
	assert.Error(t, err)
}

func TestCaptureTime_NoExif(t *testing.T) {
	dir := t.TempDir()
	original := writeTestPhoto(t, dir, "plain.jpg", 64, 64)

	assert.Nil(t, photoproc.CaptureTime(original))
}
