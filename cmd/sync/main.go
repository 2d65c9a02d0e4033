package main

import (
	"context"
	"log"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/resource-capital/backend/internal/config"
	"github.com/resource-capital/backend/internal/db"
	"github.com/resource-capital/backend/internal/integrations/marketdata"
	"github.com/resource-capital/backend/internal/models"
	"github.com/resource-capital/backend/internal/services"
)

func main() {
	log.Println("🚀 Starting manual company sync from market-data vendor...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pgDB, err := db.ConnectPostgres(cfg)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}

	mr, err := miniredis.Run()
	if err != nil {
		log.Fatalf("failed to start in-memory redis: %v", err)
	}
	defer mr.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	vendorClient := marketdata.NewClient(cfg)
	service := services.NewCompanyService(pgDB, redisClient, vendorClient)

	ctx := context.Background()

	if err := service.SyncCompanies(ctx); err != nil {
		log.Fatalf("company sync failed: %v", err)
	}

	if err := service.SyncInsiderTransactions(ctx); err != nil {
		log.Printf("insider filings sync failed: %v", err)
	}

	var activeCount int64
	if err := pgDB.Model(&models.Company{}).Where("active = ?", true).Count(&activeCount).Error; err == nil {
		log.Printf("✅ Active companies stored in Postgres: %d", activeCount)
	} else {
		log.Printf("⚠️ Failed to count active companies: %v", err)
	}

	log.Println("✅ Manual company sync completed successfully.")
}
