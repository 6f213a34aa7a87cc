package leadgen

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGraphClient_Defaults(t *testing.T) {
	client := NewGraphClient(Config{})
	assert.Equal(t, defaultGraphBaseURL, client.BaseURL)
	require.NotNil(t, client.HTTPClient)

	client = NewGraphClient(Config{GraphBaseURL: "https://example.com/graph/"})
	assert.Equal(t, "https://example.com/graph", client.BaseURL)
}

func TestGraphClient_FetchLead(t *testing.T) {
	var gotPath, gotAuth, gotFields string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotFields = r.URL.Query().Get("fields")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "L1",
			"created_time": "2026-08-20T10:15:00+0000",
			"field_data": [
				{"name": "full_name", "values": ["Asha Rao"]},
				{"name": "phone_number", "values": ["9999999999"]}
			]
		}`))
	}))
	defer server.Close()

	client := NewGraphClient(Config{GraphBaseURL: server.URL, AccessToken: "tok-123"})

	detail, err := client.FetchLead(context.Background(), "L1")
	require.NoError(t, err)
	assert.Equal(t, "/L1", gotPath)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, leadDetailFields, gotFields)
	assert.Equal(t, "L1", detail.ID)
	require.Len(t, detail.Fields, 2)
	assert.Equal(t, "full_name", detail.Fields[0].Name)
	assert.Equal(t, []string{"9999999999"}, detail.Fields[1].Values)
}

func TestGraphClient_FetchLead_NonSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"something went wrong"}}`))
	}))
	defer server.Close()

	client := NewGraphClient(Config{GraphBaseURL: server.URL, AccessToken: "tok-123"})

	detail, err := client.FetchLead(context.Background(), "L1")
	require.Error(t, err)
	assert.Nil(t, detail)
	assert.Contains(t, err.Error(), "status=500")
	assert.Contains(t, err.Error(), "something went wrong")
}

func TestGraphClient_FetchLead_InputChecks(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewGraphClient(Config{GraphBaseURL: server.URL, AccessToken: "tok-123"})
	_, err := client.FetchLead(context.Background(), "   ")
	require.Error(t, err)

	client = NewGraphClient(Config{GraphBaseURL: server.URL})
	_, err = client.FetchLead(context.Background(), "L1")
	require.Error(t, err)

	assert.False(t, called, "structural failures must not reach the API")
}

func TestGraphClient_FetchLead_InvalidResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"created_time": "2026-08-20T10:15:00+0000"}`))
	}))
	defer server.Close()

	client := NewGraphClient(Config{GraphBaseURL: server.URL, AccessToken: "tok-123"})

	_, err := client.FetchLead(context.Background(), "L1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing id")
}
