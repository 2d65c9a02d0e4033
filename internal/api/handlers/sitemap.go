/**
 * @description
 * Sitemap handler.
 * Renders the XML sitemap from the company, news and report tables so crawlers
 * discover dynamic pages.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - gorm.io/gorm
 * - encoding/xml
 */

package handlers

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/resource-capital/backend/internal/logger"
	"github.com/resource-capital/backend/internal/models"
	"gorm.io/gorm"
)

const sitemapNewsLimit = 200

// SitemapHandler renders /sitemap.xml
type SitemapHandler struct {
	db      *gorm.DB
	baseURL string
}

// NewSitemapHandler creates a new SitemapHandler
func NewSitemapHandler(db *gorm.DB, baseURL string) *SitemapHandler {
	return &SitemapHandler{
		db:      db,
		baseURL: baseURL,
	}
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// GetSitemap builds the sitemap from static pages plus company, news and
// report entries
// GET /sitemap.xml
func (h *SitemapHandler) GetSitemap(c *fiber.Ctx) error {
	set := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
	}

	for _, page := range []string{"", "/screener", "/news", "/metals"} {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        h.baseURL + page,
			ChangeFreq: "daily",
		})
	}

	var companies []models.Company
	if err := h.db.WithContext(c.Context()).
		Select("ticker", "last_updated").
		Where("active = ?", true).
		Order("ticker ASC").
		Find(&companies).Error; err != nil {
		logger.Error("SitemapHandler: Failed to load companies: %v", err)
	}
	for _, company := range companies {
		entry := sitemapURL{
			Loc:        fmt.Sprintf("%s/companies/%s", h.baseURL, company.Ticker),
			ChangeFreq: "daily",
		}
		if company.LastUpdated != nil {
			entry.LastMod = company.LastUpdated.Format("2006-01-02")
		}
		set.URLs = append(set.URLs, entry)
	}

	var articles []models.NewsArticle
	if err := h.db.WithContext(c.Context()).
		Select("id", "published_at").
		Order("published_at DESC").
		Limit(sitemapNewsLimit).
		Find(&articles).Error; err != nil {
		logger.Error("SitemapHandler: Failed to load news: %v", err)
	}
	for _, article := range articles {
		entry := sitemapURL{
			Loc: fmt.Sprintf("%s/news/%d", h.baseURL, article.ID),
		}
		if article.PublishedAt != nil {
			entry.LastMod = article.PublishedAt.Format("2006-01-02")
		}
		set.URLs = append(set.URLs, entry)
	}

	var reports []models.Report
	if err := h.db.WithContext(c.Context()).
		Select("id", "created_at").
		Order("created_at DESC").
		Find(&reports).Error; err != nil {
		logger.Error("SitemapHandler: Failed to load reports: %v", err)
	}
	for _, report := range reports {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     fmt.Sprintf("%s/reports/%s", h.baseURL, report.ID),
			LastMod: report.CreatedAt.Format("2006-01-02"),
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to render sitemap",
		})
	}

	c.Set("Content-Type", "application/xml")
	c.Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int((time.Hour).Seconds())))
	return c.SendString(xml.Header + string(body))
}
