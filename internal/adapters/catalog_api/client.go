package catalog_api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"listing-console-service/internal/contextkeys"
	"listing-console-service/internal/core/domain"
	"listing-console-service/internal/core/port"
)

// Client is the HTTP adapter for the dropdown endpoints (projects,
// zone-sub-areas, blocks, property-types, currencies). Each list is fetched
// whole; Active-only filtering and cascading happen in the core.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

func (c *Client) fetchList(ctx context.Context, path, method string) ([]entityDTO, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "CatalogApiClient",
		"method":    method,
	})

	requestURL := fmt.Sprintf("%s%s", c.baseURL, path)
	clientLogger.Debug("Sending request to catalog endpoint", port.Fields{"url": requestURL})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		clientLogger.Error("Failed to perform request to catalog endpoint", err, nil)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("catalog endpoint returned non-success status code %d: %s", resp.StatusCode, string(bodyBytes))
		clientLogger.Error("Received error response from catalog endpoint", err, port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}

	var dto entityListDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		clientLogger.Error("Failed to decode response from catalog endpoint", err, nil)
		return nil, err
	}

	clientLogger.Debug("Successfully received catalog list", port.Fields{"count": len(dto.Data)})
	return dto.Data, nil
}

func (c *Client) GetProjects(ctx context.Context) ([]domain.Project, error) {
	items, err := c.fetchList(ctx, "/projects", "GetProjects")
	if err != nil {
		return nil, err
	}
	out := make([]domain.Project, len(items))
	for i, item := range items {
		out[i] = domain.Project{ID: item.ID, Name: item.Name, Status: item.status()}
	}
	return out, nil
}

func (c *Client) GetZones(ctx context.Context) ([]domain.Zone, error) {
	items, err := c.fetchList(ctx, "/zone-sub-areas", "GetZones")
	if err != nil {
		return nil, err
	}
	out := make([]domain.Zone, len(items))
	for i, item := range items {
		out[i] = domain.Zone{ID: item.ID, Name: item.Name, ProjectID: item.ProjectID, Status: item.status()}
	}
	return out, nil
}

func (c *Client) GetBlocks(ctx context.Context) ([]domain.Block, error) {
	items, err := c.fetchList(ctx, "/blocks", "GetBlocks")
	if err != nil {
		return nil, err
	}
	out := make([]domain.Block, len(items))
	for i, item := range items {
		out[i] = domain.Block{ID: item.ID, Name: item.Name, ZoneID: item.ZoneID, Status: item.status()}
	}
	return out, nil
}

func (c *Client) GetPropertyTypes(ctx context.Context) ([]domain.PropertyType, error) {
	items, err := c.fetchList(ctx, "/property-types", "GetPropertyTypes")
	if err != nil {
		return nil, err
	}
	out := make([]domain.PropertyType, len(items))
	for i, item := range items {
		out[i] = domain.PropertyType{ID: item.ID, Name: item.Name, Status: item.status()}
	}
	return out, nil
}

func (c *Client) GetCurrencies(ctx context.Context) ([]domain.Currency, error) {
	items, err := c.fetchList(ctx, "/currencies", "GetCurrencies")
	if err != nil {
		return nil, err
	}
	out := make([]domain.Currency, len(items))
	for i, item := range items {
		out[i] = domain.Currency{ID: item.ID, Code: item.Code, Name: item.Name, Status: item.status()}
	}
	return out, nil
}
