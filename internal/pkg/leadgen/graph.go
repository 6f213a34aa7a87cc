package leadgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// leadDetailFields is the field selection requested per lead read.
const leadDetailFields = "id,created_time,field_data"

// DetailFetcher retrieves the full field data for one lead event.
type DetailFetcher interface {
	FetchLead(ctx context.Context, leadEventID string) (*LeadDetail, error)
}

// GraphClient reads lead details from the provider's Graph API. It performs
// no retries; a failed read is reported once and the caller decides whether
// to skip.
type GraphClient struct {
	BaseURL     string
	AccessToken string

	HTTPClient *http.Client
}

// NewGraphClient builds a client from the pipeline configuration. The HTTP
// timeout is the only bound on a detail fetch.
func NewGraphClient(cfg Config) *GraphClient {
	base := strings.TrimRight(strings.TrimSpace(cfg.GraphBaseURL), "/")
	if base == "" {
		base = defaultGraphBaseURL
	}

	return &GraphClient{
		BaseURL:     base,
		AccessToken: strings.TrimSpace(cfg.AccessToken),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// FetchLead issues GET {base}/{leadEventID}?fields=id,created_time,field_data
// with the configured bearer token and decodes the response into a
// LeadDetail.
func (c *GraphClient) FetchLead(ctx context.Context, leadEventID string) (*LeadDetail, error) {
	id := strings.TrimSpace(leadEventID)
	if id == "" {
		return nil, errors.New("lead event id is required")
	}
	if strings.TrimSpace(c.AccessToken) == "" {
		return nil, errors.New("META_ACCESS_TOKEN is not configured")
	}

	u, err := url.Parse(strings.TrimRight(c.BaseURL, "/") + "/" + url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("fields", leadDetailFields)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("lead detail request failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	var detail LeadDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, fmt.Errorf("lead detail response invalid: %w", err)
	}
	if strings.TrimSpace(detail.ID) == "" {
		return nil, errors.New("lead detail response missing id")
	}
	return &detail, nil
}
