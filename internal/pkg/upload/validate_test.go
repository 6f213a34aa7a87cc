package upload

import (
	"testing"
)

// jpegHead is the SOI marker plus JFIF header bytes http.DetectContentType
// recognizes as image/jpeg.
var jpegHead = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46, 0x00, 0x01}

// pngHead is the fixed 8-byte PNG signature.
var pngHead = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func TestValidatePhotoBySniff_AllowsRealImages(t *testing.T) {
	tests := []struct {
		filename string
		head     []byte
		wantMime string
	}{
		{"living-room.jpg", jpegHead, "image/jpeg"},
		{"floorplan.PNG", pngHead, "image/png"},
	}

	for _, tt := range tests {
		mime, err := ValidatePhotoBySniff(tt.filename, tt.head)
		if err != nil {
			t.Fatalf("ValidatePhotoBySniff(%s) unexpected error: %v", tt.filename, err)
		}
		if mime != tt.wantMime {
			t.Errorf("ValidatePhotoBySniff(%s) = %s, want %s", tt.filename, mime, tt.wantMime)
		}
	}
}

func TestValidatePhotoBySniff_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		head     []byte
	}{
		{"disallowed extension", "contract.pdf", []byte("%PDF-1.7")},
		{"html payload behind image extension", "photo.jpg", []byte("<!DOCTYPE html><html><script>")},
		{"svg payload behind image extension", "photo.png", []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`)},
		{"plain text behind image extension", "photo.gif", []byte("hello world, definitely not a gif")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidatePhotoBySniff(tt.filename, tt.head); err == nil {
				t.Errorf("ValidatePhotoBySniff(%s) accepted invalid input", tt.filename)
			}
		})
	}
}
