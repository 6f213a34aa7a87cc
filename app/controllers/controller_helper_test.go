package controllers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		page, size, offset := parsePagination(c)
		return c.JSON(fiber.Map{"page": page, "size": size, "offset": offset})
	})

	tests := []struct {
		name       string
		query      string
		wantPage   float64
		wantSize   float64
		wantOffset float64
	}{
		{"defaults", "", 1, 25, 0},
		{"explicit", "?page=3&page_size=10", 3, 10, 20},
		{"negative page", "?page=-2", 1, 25, 0},
		{"oversized page_size", "?page_size=9999", 1, 100, 0},
		{"garbage", "?page=abc&page_size=xyz", 1, 25, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", "/items"+tt.query, nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			var got map[string]float64
			require.NoError(t, json.Unmarshal(body, &got))
			assert.Equal(t, tt.wantPage, got["page"])
			assert.Equal(t, tt.wantSize, got["size"])
			assert.Equal(t, tt.wantOffset, got["offset"])
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, totalPages(0, 25))
	assert.Equal(t, 1, totalPages(25, 25))
	assert.Equal(t, 2, totalPages(26, 25))
	assert.Equal(t, 4, totalPages(100, 25))
}
