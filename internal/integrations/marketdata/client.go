/**
 * @description
 * HTTP Client for the market-data vendor's reference API.
 * Fetches company listings and insider transaction filings.
 *
 * @dependencies
 * - net/http
 * - encoding/json
 * - internal/config
 */

package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/resource-capital/backend/internal/config"
)

const (
	DefaultTimeout = 10 * time.Second
)

type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		BaseURL: cfg.Vendors.MarketDataURL,
		APIKey:  cfg.Vendors.MarketDataAPIKey,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// ListCompaniesParams holds query parameters for fetching listings
type ListCompaniesParams struct {
	Limit    int
	Offset   int
	Exchange string // "TSX", "TSXV", "CSE"
	Sector   string // the vendor's sector code; "mining" for this application
}

// ListCompanies fetches a page of listed companies from the vendor
func (c *Client) ListCompanies(ctx context.Context, params ListCompaniesParams) ([]CompanyRecord, error) {
	u, err := url.Parse(fmt.Sprintf("%s/v1/listings", c.BaseURL))
	if err != nil {
		return nil, err
	}

	q := u.Query()
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}
	if params.Exchange != "" {
		q.Set("exchange", params.Exchange)
	}
	if params.Sector != "" {
		q.Set("sector", params.Sector)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("market data api error: status %d", resp.StatusCode)
	}

	var records []CompanyRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, err
	}

	return records, nil
}

// ListInsiderTransactions fetches insider filings reported since the given time
func (c *Client) ListInsiderTransactions(ctx context.Context, since time.Time) ([]InsiderRecord, error) {
	u, err := url.Parse(fmt.Sprintf("%s/v1/insider-transactions", c.BaseURL))
	if err != nil {
		return nil, err
	}

	q := u.Query()
	if !since.IsZero() {
		q.Set("since", since.UTC().Format(time.RFC3339))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("market data api error: status %d", resp.StatusCode)
	}

	var records []InsiderRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, err
	}

	return records, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
}
