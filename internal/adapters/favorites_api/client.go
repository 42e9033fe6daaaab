package favorites_api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"listing-console-service/internal/contextkeys"
	"listing-console-service/internal/core/port"
)

// Client is the HTTP adapter for the external favorites collaborator.
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

type favoriteIDsDTO struct {
	Data []string `json:"data"`
}

func (c *Client) doRequest(ctx context.Context, method, requestURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	req.Header.Set("Accept", "application/json")
	return c.httpClient.Do(req)
}

func (c *Client) checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	bodyBytes, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("favorites service returned non-success status code %d: %s", resp.StatusCode, string(bodyBytes))
}

func (c *Client) Add(ctx context.Context, propertyID string) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "FavoritesApiClient", "method": "Add"})

	requestURL := fmt.Sprintf("%s/favorites/%s", c.baseURL, propertyID)
	resp, err := c.doRequest(ctx, http.MethodPost, requestURL)
	if err != nil {
		logger.Error("Failed to perform request to favorites service", err, nil)
		return err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		logger.Error("Received error response from favorites service", err, port.Fields{"status_code": resp.StatusCode})
		return err
	}
	return nil
}

func (c *Client) Remove(ctx context.Context, propertyID string) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "FavoritesApiClient", "method": "Remove"})

	requestURL := fmt.Sprintf("%s/favorites/%s", c.baseURL, propertyID)
	resp, err := c.doRequest(ctx, http.MethodDelete, requestURL)
	if err != nil {
		logger.Error("Failed to perform request to favorites service", err, nil)
		return err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		logger.Error("Received error response from favorites service", err, port.Fields{"status_code": resp.StatusCode})
		return err
	}
	return nil
}

func (c *Client) List(ctx context.Context) ([]string, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "FavoritesApiClient", "method": "List"})

	requestURL := fmt.Sprintf("%s/favorites", c.baseURL)
	resp, err := c.doRequest(ctx, http.MethodGet, requestURL)
	if err != nil {
		logger.Error("Failed to perform request to favorites service", err, nil)
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		logger.Error("Received error response from favorites service", err, port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}

	var dto favoriteIDsDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		logger.Error("Failed to decode response from favorites service", err, nil)
		return nil, err
	}
	return dto.Data, nil
}
