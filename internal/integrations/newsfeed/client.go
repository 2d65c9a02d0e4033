/**
 * @description
 * Client for the mining news aggregation feed.
 * Pulls recent articles for ingestion and fetches full article bodies on demand.
 *
 * @dependencies
 * - net/http
 * - encoding/json
 * - internal/config
 */

package newsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
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

// Article is one feed item from the vendor
type Article struct {
	Ticker      string     `json:"ticker"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Source      string     `json:"source"`
	URL         string     `json:"url"`
	ImageURL    string     `json:"image_url"`
	PublishedAt *time.Time `json:"published_at"`
}

type contentResponse struct {
	URL     string `json:"url"`
	Content string `json:"content"`
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.Vendors.NewsFeedURL,
		apiKey:  cfg.Vendors.NewsFeedAPIKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Latest fetches the newest articles from the feed
func (c *Client) Latest(ctx context.Context, limit int) ([]Article, error) {
	if limit <= 0 {
		limit = 50
	}

	u, err := url.Parse(fmt.Sprintf("%s/v1/articles", c.baseURL))
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("limit", strconv.Itoa(limit))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		logger.Error("News feed error: %d - %s", resp.StatusCode, string(respBody))
		return nil, fmt.Errorf("news feed returned status %d", resp.StatusCode)
	}

	var articles []Article
	if err := json.NewDecoder(resp.Body).Decode(&articles); err != nil {
		return nil, fmt.Errorf("failed to decode news feed response: %w", err)
	}

	return articles, nil
}

// FetchContent retrieves the full article body for a feed URL.
// Callers fall back to the stored description when this fails; there is no retry.
func (c *Client) FetchContent(ctx context.Context, articleURL string) (string, error) {
	if articleURL == "" {
		return "", fmt.Errorf("article url is required")
	}

	u, err := url.Parse(fmt.Sprintf("%s/v1/articles/content", c.baseURL))
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("url", articleURL)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("news content request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("news content returned status %d", resp.StatusCode)
	}

	var result contentResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode news content response: %w", err)
	}

	return result.Content, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}
