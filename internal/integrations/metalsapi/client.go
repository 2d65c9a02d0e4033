/**
 * @description
 * Client for the commodity spot price API.
 * Pulls current metal prices for the ticker tape and the metals dashboard tiles.
 *
 * @dependencies
 * - net/http
 * - encoding/json
 * - internal/config
 */

package metalsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/resource-capital/backend/internal/config"
	"github.com/resource-capital/backend/internal/logger"
)

const (
	requestTimeout = 15 * time.Second
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// SpotPrice is one commodity quote from the vendor
type SpotPrice struct {
	Symbol        string  `json:"symbol"` // "XAU", "XAG", "HG", ...
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	Unit          string  `json:"unit"`
	ChangePercent float64 `json:"change_percent"`
}

type spotResponse struct {
	Timestamp int64       `json:"timestamp"`
	Rates     []SpotPrice `json:"rates"`
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.Vendors.MetalsAPIURL,
		apiKey:  cfg.Vendors.MetalsAPIKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// GetSpotPrices fetches the latest spot quotes for all tracked metals
func (c *Client) GetSpotPrices(ctx context.Context) ([]SpotPrice, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("metals api key is not configured")
	}

	u := fmt.Sprintf("%s/latest?api_key=%s", c.baseURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("metals request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		logger.Error("Metals API error: %d - %s", resp.StatusCode, string(respBody))
		return nil, fmt.Errorf("metals api returned status %d", resp.StatusCode)
	}

	var result spotResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode metals response: %w", err)
	}

	return result.Rates, nil
}
