/**
 * @description
 * Service layer for news aggregation.
 * Polls the news feed vendor, classifies articles at ingest, caches the latest
 * list in Redis, and fetches full article bodies on demand with a fallback to
 * the stored summary.
 *
 * @dependencies
 * - internal/integrations/newsfeed
 * - internal/models
 * - gorm.io/gorm
 * - github.com/redis/go-redis/v9
 */

package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/resource-capital/backend/internal/integrations/newsfeed"
	"github.com/resource-capital/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	CacheKeyNews = "news:latest"
	NewsCacheTTL = 2 * time.Minute

	defaultNewsLimit = 50
)

type NewsService struct {
	DB    *gorm.DB
	Redis *redis.Client
	Feed  *newsfeed.Client
}

func NewNewsService(db *gorm.DB, redis *redis.Client, feed *newsfeed.Client) *NewsService {
	return &NewsService{
		DB:    db,
		Redis: redis,
		Feed:  feed,
	}
}

// SyncNews polls the feed, classifies new articles and upserts them by URL
func (s *NewsService) SyncNews(ctx context.Context) error {
	items, err := s.Feed.Latest(ctx, defaultNewsLimit)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		return nil
	}

	articles := make([]models.NewsArticle, 0, len(items))
	for _, item := range items {
		if item.URL == "" || item.Title == "" {
			continue
		}
		article := models.NewsArticle{
			Ticker:      strings.ToUpper(strings.TrimSpace(item.Ticker)),
			Title:       item.Title,
			Description: item.Description,
			Source:      item.Source,
			URL:         item.URL,
			ImageURL:    item.ImageURL,
			PublishedAt: item.PublishedAt,
		}
		ClassifyArticle(&article)
		articles = append(articles, article)
	}

	if len(articles) == 0 {
		return nil
	}

	if err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "url"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title",
			"description",
			"source",
			"image_url",
			"published_at",
			"commodity",
			"region",
			"catalyst",
			"tags",
		}),
	}).CreateInBatches(articles, 100).Error; err != nil {
		return err
	}

	s.refreshCache(ctx)
	return nil
}

// GetNews returns the latest articles, preferring Cache -> DB.
// A ticker narrows the result and always goes straight to the DB.
func (s *NewsService) GetNews(ctx context.Context, ticker string, limit int) ([]models.NewsArticle, error) {
	if limit <= 0 || limit > defaultNewsLimit {
		limit = defaultNewsLimit
	}

	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	now := time.Now()

	if ticker == "" {
		val, err := s.Redis.Get(ctx, CacheKeyNews).Result()
		if err == nil {
			var articles []models.NewsArticle
			if err := json.Unmarshal([]byte(val), &articles); err == nil {
				if len(articles) > limit {
					articles = articles[:limit]
				}
				for i := range articles {
					DecorateArticle(&articles[i], now)
				}
				return articles, nil
			}
			// If unmarshal fails, fall through to DB
		}
	}

	query := s.DB.WithContext(ctx).Order("published_at DESC").Limit(limit)
	if ticker != "" {
		query = query.Where("ticker = ?", ticker)
	}

	var articles []models.NewsArticle
	if err := query.Find(&articles).Error; err != nil {
		return nil, err
	}

	for i := range articles {
		DecorateArticle(&articles[i], now)
	}

	return articles, nil
}

// GetArticleContent fetches the full body on demand. On vendor failure the
// stored description is returned instead; there is no retry (the UI already
// has the summary).
func (s *NewsService) GetArticleContent(ctx context.Context, id uint) (string, bool, error) {
	var article models.NewsArticle
	if err := s.DB.WithContext(ctx).First(&article, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", false, nil
		}
		return "", false, err
	}

	content, err := s.Feed.FetchContent(ctx, article.URL)
	if err != nil || content == "" {
		log.Printf("Article content fetch failed for %d, serving summary: %v", id, err)
		return article.Description, true, nil
	}

	return content, false, nil
}

func (s *NewsService) refreshCache(ctx context.Context) {
	var articles []models.NewsArticle
	if err := s.DB.WithContext(ctx).Order("published_at DESC").Limit(defaultNewsLimit).Find(&articles).Error; err != nil {
		log.Printf("Failed to load news for cache: %v", err)
		return
	}

	data, err := json.Marshal(articles)
	if err != nil {
		log.Printf("Failed to marshal news for cache: %v", err)
		return
	}
	if err := s.Redis.Set(ctx, CacheKeyNews, data, NewsCacheTTL).Err(); err != nil {
		log.Printf("Failed to set news cache: %v", err)
	}
}
