/**
 * @description
 * Cross-entity search service.
 * Simple ILIKE matching across companies, projects and news titles; the
 * result payload is grouped per entity for the command-palette UI.
 *
 * @dependencies
 * - gorm.io/gorm
 * - internal/models
 */

package services

import (
	"context"
	"strings"

	"github.com/resource-capital/backend/internal/logger"
	"github.com/resource-capital/backend/internal/models"
	"gorm.io/gorm"
)

const searchGroupLimit = 10

// SearchService handles global search
type SearchService struct {
	db *gorm.DB
}

// NewSearchService creates a new SearchService
func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{
		db: db,
	}
}

// SearchResults groups matches per entity
type SearchResults struct {
	Companies []models.Company     `json:"companies"`
	Projects  []models.Project     `json:"projects"`
	News      []models.NewsArticle `json:"news"`
}

// Search runs the grouped lookup. Failures in one group degrade to an empty
// group rather than failing the whole request.
func (s *SearchService) Search(ctx context.Context, query string) SearchResults {
	results := SearchResults{
		Companies: []models.Company{},
		Projects:  []models.Project{},
		News:      []models.NewsArticle{},
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return results
	}
	pattern := "%" + query + "%"

	if err := s.db.WithContext(ctx).
		Where("ticker ILIKE ? OR name ILIKE ?", pattern, pattern).
		Order("ticker ASC").
		Limit(searchGroupLimit).
		Find(&results.Companies).Error; err != nil {
		logger.Error("SearchService: company search failed: %v", err)
	}

	if err := s.db.WithContext(ctx).
		Where("name ILIKE ? OR location ILIKE ?", pattern, pattern).
		Order("name ASC").
		Limit(searchGroupLimit).
		Find(&results.Projects).Error; err != nil {
		logger.Error("SearchService: project search failed: %v", err)
	}

	if err := s.db.WithContext(ctx).
		Where("title ILIKE ?", pattern).
		Order("published_at DESC").
		Limit(searchGroupLimit).
		Find(&results.News).Error; err != nil {
		logger.Error("SearchService: news search failed: %v", err)
	}

	return results
}
