package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jedyapps/dealdesk/internal/config"
	"go.uber.org/zap"
)

// APIError carries the upstream status code and message from a failed CRM
// call so handlers can relay both to the client.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hubspot api error (%d): %s", e.StatusCode, e.Message)
}

// Client talks to the HubSpot v3 REST API
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// NewClient creates a new HubSpot API client
func NewClient(cfg *config.HubSpotConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

// AccountDetails identifies the CRM account (portal) the API key belongs to
type AccountDetails struct {
	PortalID int64 `json:"portalId"`
}

// PipelineStage is one stage of a deal pipeline
type PipelineStage struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	DisplayOrder int    `json:"displayOrder"`
}

// Pipeline is a deal pipeline with its ordered stages
type Pipeline struct {
	ID     string          `json:"id"`
	Label  string          `json:"label"`
	Stages []PipelineStage `json:"stages"`
}

// Owner is a CRM user that deals can be assigned to
type Owner struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// RawDeal is the loosely-typed property bag the CRM returns for one deal.
// Property values are always strings; missing and null both decode to "".
// This shape never travels past the mapper.
type RawDeal struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
}

// SearchFilter is a single property filter of a search request
type SearchFilter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value"`
}

// SearchRequest is the body of the CRM search endpoint
type SearchRequest struct {
	FilterGroups []struct {
		Filters []SearchFilter `json:"filters"`
	} `json:"filterGroups"`
	Limit      int      `json:"limit"`
	Properties []string `json:"properties"`
}

// NewTagSearchRequest builds a search for deals whose tags property contains
// the given token, requesting the fixed property list.
func NewTagSearchRequest(tag string, properties []string, limit int) *SearchRequest {
	req := &SearchRequest{
		Limit:      limit,
		Properties: properties,
	}
	req.FilterGroups = append(req.FilterGroups, struct {
		Filters []SearchFilter `json:"filters"`
	}{
		Filters: []SearchFilter{{
			PropertyName: "tags",
			Operator:     "CONTAINS_TOKEN",
			Value:        tag,
		}},
	})
	return req
}

type searchResponse struct {
	Total   int       `json:"total"`
	Results []RawDeal `json:"results"`
}

type pipelinesResponse struct {
	Results []Pipeline `json:"results"`
}

// GetAccountDetails fetches the account information of the configured API key
func (c *Client) GetAccountDetails(ctx context.Context) (*AccountDetails, error) {
	var details AccountDetails
	if err := c.do(ctx, http.MethodGet, "/account-info/v3/details", nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// GetDealPipelines fetches the full deal pipeline catalog
func (c *Client) GetDealPipelines(ctx context.Context) ([]Pipeline, error) {
	var resp pipelinesResponse
	if err := c.do(ctx, http.MethodGet, "/crm/v3/pipelines/deals", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// GetOwner fetches a single owner by ID
func (c *Client) GetOwner(ctx context.Context, ownerID string) (*Owner, error) {
	var owner Owner
	path := "/crm/v3/owners/" + url.PathEscape(ownerID)
	if err := c.do(ctx, http.MethodGet, path, nil, &owner); err != nil {
		return nil, err
	}
	return &owner, nil
}

// SearchDeals runs a filtered deal search
func (c *Client) SearchDeals(ctx context.Context, req *SearchRequest) ([]RawDeal, error) {
	var resp searchResponse
	if err := c.do(ctx, http.MethodPost, "/crm/v3/objects/deals/search", req, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// GetDeal fetches one deal restricted to the given properties
func (c *Client) GetDeal(ctx context.Context, dealID string, properties ...string) (*RawDeal, error) {
	var deal RawDeal
	path := "/crm/v3/objects/deals/" + url.PathEscape(dealID)
	if len(properties) > 0 {
		path += "?properties=" + url.QueryEscape(strings.Join(properties, ","))
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &deal); err != nil {
		return nil, err
	}
	return &deal, nil
}

// UpdateDeal overwrites the given properties of one deal
func (c *Client) UpdateDeal(ctx context.Context, dealID string, properties map[string]string) error {
	path := "/crm/v3/objects/deals/" + url.PathEscape(dealID)
	body := map[string]map[string]string{"properties": properties}
	return c.do(ctx, http.MethodPatch, path, body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call hubspot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode hubspot response: %w", err)
		}
	}
	return nil
}

func (c *Client) decodeError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}

	var errorResp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errorResp); err == nil && errorResp.Message != "" {
		apiErr.Message = errorResp.Message
	}

	c.logger.Debug("hubspot request failed",
		zap.Int("status", apiErr.StatusCode),
		zap.String("message", apiErr.Message),
	)
	return apiErr
}
