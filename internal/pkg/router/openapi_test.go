package router_test

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// apiDocPath points at the document served under /docs/api/v1.
const apiDocPath = "../../../public/docs/v1/openapi.yml"

func loadAPIDoc(t *testing.T) *openapi3.T {
	t.Helper()

	ctx := context.Background()
	loader := &openapi3.Loader{Context: ctx}

	doc, err := loader.LoadFromFile(apiDocPath)
	require.NoError(t, err, "openapi.yml must parse")
	require.NoError(t, doc.Validate(ctx), "openapi.yml must validate")
	return doc
}

func TestOpenAPIDocumentValidates(t *testing.T) {
	doc := loadAPIDoc(t)
	assert.Equal(t, "PropNest API", doc.Info.Title)
}

// TestOpenAPIDocumentCoversRoutes keeps the served document in sync with the
// routes the router actually installs.
func TestOpenAPIDocumentCoversRoutes(t *testing.T) {
	doc := loadAPIDoc(t)

	paths := []string{
		"/healthz",
		"/webhooks/meta/leads",
		"/api/v1/leads",
		"/api/v1/leads/{uuid}",
		"/api/v1/properties",
		"/api/v1/properties/{uuid}",
		"/api/v1/owners",
		"/api/v1/properties/{uuid}/photos",
		"/api/v1/photos/{uuid}",
		"/api/v1/properties/{uuid}/documents",
		"/api/v1/documents/{uuid}/download",
		"/api/v1/documents/{uuid}",
		"/admin/stats",
		"/admin/api-keys",
		"/admin/api-keys/{id}",
		"/admin/staff",
	}
	for _, p := range paths {
		assert.NotNil(t, doc.Paths.Find(p), "path %s missing from openapi.yml", p)
	}

	// The webhook endpoint carries both the verification handshake and the
	// delivery receiver.
	webhook := doc.Paths.Find("/webhooks/meta/leads")
	require.NotNil(t, webhook)
	assert.NotNil(t, webhook.Get, "webhook verification operation missing")
	assert.NotNil(t, webhook.Post, "webhook delivery operation missing")

	leads := doc.Paths.Find("/api/v1/leads/{uuid}")
	require.NotNil(t, leads)
	assert.NotNil(t, leads.Patch, "lead update operation missing")
}

func TestOpenAPIDocumentSecuritySchemes(t *testing.T) {
	doc := loadAPIDoc(t)

	require.Contains(t, doc.Components.SecuritySchemes, "ApiKeyAuth")
	apiKey := doc.Components.SecuritySchemes["ApiKeyAuth"].Value
	assert.Equal(t, "apiKey", apiKey.Type)
	assert.Equal(t, "header", apiKey.In)
	assert.Equal(t, "X-API-Key", apiKey.Name)

	require.Contains(t, doc.Components.SecuritySchemes, "BasicAuth")
	assert.Equal(t, "basic", doc.Components.SecuritySchemes["BasicAuth"].Value.Scheme)
}
