package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/resource-capital/backend/internal/models"
)

func listing(ticker string, active bool) models.Company {
	return models.Company{
		Ticker:   ticker,
		Name:     ticker + " Mining Corp",
		Exchange: "TSX",
		Active:   active,
	}
}

func TestScreenerUniverseExcludesInactiveListings(t *testing.T) {
	companies := []models.Company{
		listing("NGT", true),
		listing("DEAD", false),
		listing("ABX", true),
	}

	universe := screenerUniverse(companies)

	if len(universe) != 2 {
		t.Fatalf("universe size: got %d, want 2", len(universe))
	}
	for _, company := range universe {
		if !company.Active {
			t.Fatalf("inactive listing %s leaked into the universe", company.Ticker)
		}
	}
}

func TestScreenerUniverseSortsAndCaps(t *testing.T) {
	companies := make([]models.Company, 0, ScreenerUniverseLimit+10)
	for i := ScreenerUniverseLimit + 9; i >= 0; i-- {
		companies = append(companies, listing(fmt.Sprintf("T%04d", i), true))
	}

	universe := screenerUniverse(companies)

	if len(universe) != ScreenerUniverseLimit {
		t.Fatalf("universe size: got %d, want %d", len(universe), ScreenerUniverseLimit)
	}
	for i := 1; i < len(universe); i++ {
		if universe[i-1].Ticker >= universe[i].Ticker {
			t.Fatalf("universe out of order at %d: %s >= %s", i, universe[i-1].Ticker, universe[i].Ticker)
		}
	}
	if universe[0].Ticker != "T0000" {
		t.Fatalf("first ticker: got %s, want T0000", universe[0].Ticker)
	}
}

func TestGetCompaniesCacheHitExcludesInactiveListings(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer redisClient.Close()

	ctx := context.Background()

	// Seed the cache the way SyncCompanies writes it: the shaped universe,
	// never the raw vendor list.
	synced := []models.Company{
		listing("NGT", true),
		listing("DEAD", false),
		listing("ABX", true),
	}
	data, err := json.Marshal(screenerUniverse(synced))
	if err != nil {
		t.Fatalf("failed to marshal universe: %v", err)
	}
	if err := redisClient.Set(ctx, CacheKeyCompanies, data, CacheTTL).Err(); err != nil {
		t.Fatalf("failed to seed cache: %v", err)
	}

	svc := &CompanyService{Redis: redisClient}

	companies, err := svc.GetCompanies(ctx)
	if err != nil {
		t.Fatalf("GetCompanies failed: %v", err)
	}

	if len(companies) != 2 {
		t.Fatalf("companies: got %d, want 2", len(companies))
	}
	if companies[0].Ticker != "ABX" || companies[1].Ticker != "NGT" {
		t.Fatalf("companies out of ticker order: %s, %s", companies[0].Ticker, companies[1].Ticker)
	}
	for _, company := range companies {
		if company.Ticker == "DEAD" {
			t.Fatal("cache hit served a delisted company")
		}
	}
}

func TestIsRetryableTxError(t *testing.T) {
	deadlock := fmt.Errorf("upsert failed: %w", &pgconn.PgError{Code: "40P01"})
	if !isRetryableTxError(deadlock) {
		t.Fatal("deadlock (40P01) should be retryable")
	}

	serialization := fmt.Errorf("upsert failed: %w", &pgconn.PgError{Code: "40001"})
	if !isRetryableTxError(serialization) {
		t.Fatal("serialization failure (40001) should be retryable")
	}

	if isRetryableTxError(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("unique violation should not be retryable")
	}
	if isRetryableTxError(errors.New("connection refused")) {
		t.Fatal("plain error should not be retryable")
	}
}
