/**
 * @description
 * Service layer for Company data.
 * Orchestrates fetching reference data from the market-data vendor, caching the
 * bulk screener list in Redis, and persisting to Postgres.
 *
 * @dependencies
 * - internal/integrations/marketdata
 * - internal/models
 * - gorm.io/gorm
 * - github.com/redis/go-redis/v9
 */

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/resource-capital/backend/internal/integrations/marketdata"
	"github.com/resource-capital/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	CacheKeyCompanies = "companies:all"
	CacheTTL          = 5 * time.Minute

	// TickerUpdateChannel mirrors the channel the quote feed worker publishes to
	TickerUpdateChannel = "ticker:updates"

	// ScreenerUniverseLimit caps the bulk list the screener holds in memory
	ScreenerUniverseLimit = 500

	companySyncLockKey = 17
)

type CompanyService struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Vendor *marketdata.Client
}

func NewCompanyService(db *gorm.DB, redis *redis.Client, vendor *marketdata.Client) *CompanyService {
	return &CompanyService{
		DB:     db,
		Redis:  redis,
		Vendor: vendor,
	}
}

// CompanyProfile is the payload for a company detail page
type CompanyProfile struct {
	Company    models.Company           `json:"company"`
	Projects   []models.Project         `json:"projects"`
	Financials []models.Financial       `json:"financials"`
	Sentiment  *models.InsiderSentiment `json:"insider_sentiment,omitempty"`
}

// SyncCompanies pulls the mining universe from the vendor and updates DB + Cache
func (s *CompanyService) SyncCompanies(ctx context.Context) error {
	limit := 100
	offset := 0

	dedup := make(map[string]models.Company)

	for {
		records, err := s.Vendor.ListCompanies(ctx, marketdata.ListCompaniesParams{
			Limit:  limit,
			Offset: offset,
			Sector: "mining",
		})
		if err != nil {
			return fmt.Errorf("failed to fetch listings from vendor: %w", err)
		}

		if len(records) == 0 {
			break
		}

		for _, record := range records {
			company := record.ToDBModel()
			if company.Ticker == "" {
				continue
			}
			// Keep latest version if the vendor re-sends the same ticker within a page
			dedup[company.Ticker] = *company
		}

		if len(records) < limit {
			break
		}
		offset += limit
	}

	if len(dedup) == 0 {
		return nil
	}

	allCompanies := make([]models.Company, 0, len(dedup))
	for _, company := range dedup {
		allCompanies = append(allCompanies, company)
	}

	unlock, lockErr := s.acquireCompanySyncLock(ctx)
	if lockErr != nil {
		return fmt.Errorf("failed to acquire company sync lock: %w", lockErr)
	}
	defer unlock()

	const maxRetries = 5
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = s.DB.WithContext(ctx).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "ticker"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name",
				"exchange",
				"commodity",
				"currency",
				"description",
				"website",
				"current_price",
				"day_change_percent",
				"market_cap",
				"volume",
				"week_52_high",
				"week_52_low",
				"shares_outstanding",
				"active",
				"last_updated",
			}),
		}).CreateInBatches(allCompanies, 100).Error
		if err == nil {
			break
		}

		if isRetryableTxError(err) {
			backoff := time.Duration(attempt*100+rand.Intn(100)) * time.Millisecond
			time.Sleep(backoff)
			continue
		}
		break
	}
	if err != nil {
		return fmt.Errorf("failed to upsert companies to db: %w", err)
	}

	// Cache the same view the DB fallback serves so a cache hit and a cache
	// miss never disagree
	data, err := json.Marshal(screenerUniverse(allCompanies))
	if err != nil {
		log.Printf("Failed to marshal companies for cache: %v", err)
	} else {
		if err := s.Redis.Set(ctx, CacheKeyCompanies, data, CacheTTL).Err(); err != nil {
			log.Printf("Failed to set companies cache: %v", err)
		}
	}

	return nil
}

// screenerUniverse shapes synced listings into the screener's view: active
// listings only, ticker order, capped at ScreenerUniverseLimit
func screenerUniverse(companies []models.Company) []models.Company {
	universe := make([]models.Company, 0, len(companies))
	for _, company := range companies {
		if company.Active {
			universe = append(universe, company)
		}
	}

	sort.Slice(universe, func(i, j int) bool {
		return universe[i].Ticker < universe[j].Ticker
	})

	if len(universe) > ScreenerUniverseLimit {
		universe = universe[:ScreenerUniverseLimit]
	}

	return universe
}

// isRetryableTxError reports whether err is a Postgres deadlock (40P01) or
// serialization failure (40001), the two cases worth retrying after backoff
func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && (pgErr.Code == "40P01" || pgErr.Code == "40001")
}

// GetCompanies returns the screener universe, preferring Cache -> DB
func (s *CompanyService) GetCompanies(ctx context.Context) ([]models.Company, error) {
	// 1. Try Redis
	val, err := s.Redis.Get(ctx, CacheKeyCompanies).Result()
	if err == nil {
		var companies []models.Company
		if err := json.Unmarshal([]byte(val), &companies); err == nil {
			s.attachRealtimeQuotes(ctx, companies)
			return companies, nil
		}
		// If unmarshal fails, fall through to DB
	}

	// 2. Fallback to DB
	var companies []models.Company
	if err := s.DB.Where("active = ?", true).Order("ticker ASC").Limit(ScreenerUniverseLimit).Find(&companies).Error; err != nil {
		return nil, err
	}

	s.attachRealtimeQuotes(ctx, companies)

	return companies, nil
}

// GetCompany returns a single company by ticker, nil when unknown
func (s *CompanyService) GetCompany(ctx context.Context, ticker string) (*models.Company, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, nil
	}

	var company models.Company
	if err := s.DB.WithContext(ctx).Where("ticker = ?", ticker).First(&company).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	quotes := []models.Company{company}
	s.attachRealtimeQuotes(ctx, quotes)
	return &quotes[0], nil
}

// GetCompanyProfile assembles the company detail page payload
func (s *CompanyService) GetCompanyProfile(ctx context.Context, ticker string) (*CompanyProfile, error) {
	company, err := s.GetCompany(ctx, ticker)
	if err != nil || company == nil {
		return nil, err
	}

	profile := &CompanyProfile{Company: *company}

	if err := s.DB.WithContext(ctx).
		Preload("Metrics").
		Where("ticker = ?", company.Ticker).
		Order("name ASC").
		Find(&profile.Projects).Error; err != nil {
		log.Printf("Failed to load projects for %s: %v", company.Ticker, err)
	}

	if err := s.DB.WithContext(ctx).
		Where("ticker = ?", company.Ticker).
		Order("period_end DESC").
		Limit(12).
		Find(&profile.Financials).Error; err != nil {
		log.Printf("Failed to load financials for %s: %v", company.Ticker, err)
	}

	return profile, nil
}

// SyncInsiderTransactions pulls recent insider filings from the vendor and
// upserts them by filing ID
func (s *CompanyService) SyncInsiderTransactions(ctx context.Context) error {
	since := time.Now().AddDate(0, 0, -DefaultLookbackDays)

	records, err := s.Vendor.ListInsiderTransactions(ctx, since)
	if err != nil {
		return fmt.Errorf("failed to fetch insider filings from vendor: %w", err)
	}

	if len(records) == 0 {
		return nil
	}

	transactions := make([]models.InsiderTransaction, 0, len(records))
	for _, record := range records {
		tx := record.ToDBModel()
		if tx.Ticker == "" || tx.FilingID == "" {
			continue
		}
		transactions = append(transactions, *tx)
	}

	if len(transactions) == 0 {
		return nil
	}

	if err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "filing_id"}},
		DoNothing: true,
	}).CreateInBatches(transactions, 100).Error; err != nil {
		return fmt.Errorf("failed to upsert insider transactions: %w", err)
	}

	return nil
}

func (s *CompanyService) attachRealtimeQuotes(ctx context.Context, companies []models.Company) {
	if len(companies) == 0 {
		return
	}

	pipe := s.Redis.Pipeline()
	cmdIndex := make(map[*redis.MapStringStringCmd]int)

	for idx, company := range companies {
		if company.Ticker == "" {
			continue
		}
		cmd := pipe.HGetAll(ctx, quoteRedisKey(company.Ticker))
		cmdIndex[cmd] = idx
	}

	if len(cmdIndex) == 0 {
		return
	}

	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("attachRealtimeQuotes pipeline error: %v", err)
	}

	for cmd, idx := range cmdIndex {
		result, err := cmd.Result()
		if err != nil || len(result) == 0 {
			continue
		}

		companies[idx].LivePrice = parseStringFloat(result["price"])
		companies[idx].LiveChangePercent = parseStringFloat(result["change_percent"])
		companies[idx].LiveVolume = parseStringFloat(result["volume"])
		companies[idx].QuoteUpdated = parseUnixTimestamp(result["updated"])
	}
}

func (s *CompanyService) acquireCompanySyncLock(ctx context.Context) (func(), error) {
	const maxAttempts = 30

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var locked bool
		err := s.DB.WithContext(ctx).Raw("SELECT pg_try_advisory_lock(?)", companySyncLockKey).Scan(&locked).Error
		if err != nil {
			return nil, err
		}
		if locked {
			return func() {
				if err := s.DB.WithContext(ctx).Exec("SELECT pg_advisory_unlock(?)", companySyncLockKey).Error; err != nil {
					log.Printf("failed to release company sync lock: %v", err)
				}
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		backoff := time.Duration(100+rand.Intn(150)) * time.Millisecond
		time.Sleep(backoff)
	}

	return nil, fmt.Errorf("timeout acquiring company sync lock")
}

func quoteRedisKey(ticker string) string {
	return fmt.Sprintf("quote:%s", strings.ToUpper(ticker))
}

func parseStringFloat(value string) *float64 {
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseUnixTimestamp(value string) *time.Time {
	if value == "" {
		return nil
	}

	if ts, err := strconv.ParseInt(value, 10, 64); err == nil {
		t := time.Unix(0, ts*int64(time.Millisecond))
		return &t
	}

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return &t
	}

	return nil
}
