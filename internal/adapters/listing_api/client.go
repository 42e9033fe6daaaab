package listing_api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"listing-console-service/internal/contextkeys"
	"listing-console-service/internal/core/domain"
	"listing-console-service/internal/core/port"
)

// Client is the HTTP adapter for the external listing endpoint.
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

func (c *Client) doRequest(ctx context.Context, method, requestURL string, body io.Reader) (*http.Response, error) {
	traceID := contextkeys.TraceIDFromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// SearchListings calls GET /create-property/listing. Only non-empty filter
// fields become query parameters; page and limit are always sent.
func (c *Client) SearchListings(ctx context.Context, req domain.ListingRequest) (domain.ListingResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "ListingApiClient",
		"method":    "SearchListings",
	})

	params := url.Values{}
	params.Set("page", strconv.Itoa(req.Page))
	params.Set("limit", strconv.Itoa(req.Limit))
	setIfPresent(params, "type", req.Type)
	setIfPresent(params, "sortBy", req.SortBy)
	setIfPresent(params, "propertyId", req.PropertyID)
	setIfPresent(params, "keyword", req.Keyword)
	setIfPresent(params, "projectId", req.ProjectID)
	setIfPresent(params, "zoneId", req.ZoneID)
	setIfPresent(params, "blockId", req.BlockID)
	setIfPresent(params, "propertyType", req.PropertyType)
	setIfPresent(params, "bedrooms", req.Bedrooms)
	setIfPresent(params, "bathrooms", req.Bathrooms)
	setIfPresent(params, "currency", req.Currency)
	setIfPresent(params, "minPrice", req.MinPrice)
	setIfPresent(params, "maxPrice", req.MaxPrice)

	requestURL := fmt.Sprintf("%s/create-property/listing?%s", c.baseURL, params.Encode())
	clientLogger.Debug("Sending request to listing endpoint", port.Fields{"url": requestURL})

	resp, err := c.doRequest(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		clientLogger.Error("Failed to perform request to listing endpoint", err, nil)
		return domain.ListingResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("listing endpoint returned non-success status code %d: %s", resp.StatusCode, string(bodyBytes))
		clientLogger.Error("Received error response from listing endpoint", err, port.Fields{"status_code": resp.StatusCode})
		return domain.ListingResult{}, err
	}

	var dto listingResponseDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		clientLogger.Error("Failed to decode response from listing endpoint", err, nil)
		return domain.ListingResult{}, err
	}
	if !dto.Success {
		err := fmt.Errorf("listing endpoint reported failure")
		clientLogger.Error("Listing endpoint reported failure", err, nil)
		return domain.ListingResult{}, err
	}

	clientLogger.Info("Successfully received and decoded response", port.Fields{
		"properties_count": len(dto.Data),
		"total_pages":      dto.TotalPages,
	})

	// Map the response DTOs into domain models; this keeps the core isolated
	// from the external API shape.
	result := domain.ListingResult{
		Properties: make([]domain.PropertySummary, len(dto.Data)),
		TotalPages: dto.TotalPages,
	}
	for i, item := range dto.Data {
		result.Properties[i] = item.toDomain()
	}
	return result, nil
}

func setIfPresent(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}
