/**
 * @description
 * Worker Service Entry Point.
 * Responsible for background tasks:
 * 1. Ingesting live quotes from the market-data vendor's WebSocket feed.
 * 2. Refreshing the company universe and insider filings.
 * 3. Polling metal spot prices and the news wire.
 *
 * @dependencies
 * - backend/internal/config
 * - backend/internal/db
 * - backend/internal/quotefeed
 * - backend/internal/integrations
 * - backend/internal/services
 */

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/resource-capital/backend/internal/config"
	"github.com/resource-capital/backend/internal/db"
	"github.com/resource-capital/backend/internal/integrations/marketdata"
	"github.com/resource-capital/backend/internal/integrations/metalsapi"
	"github.com/resource-capital/backend/internal/integrations/newsfeed"
	"github.com/resource-capital/backend/internal/logger"
	"github.com/resource-capital/backend/internal/quotefeed"
	"github.com/resource-capital/backend/internal/services"
)

const (
	companySyncInterval = 15 * time.Minute
	metalsSyncInterval  = 5 * time.Minute
	newsSyncInterval    = 5 * time.Minute
)

func main() {
	logger.Info("🔥 Starting Resource Capital Worker...")

	// 1. Load Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}

	// 2. Connect DBs
	pgDB, err := db.ConnectPostgres(cfg)
	if err != nil {
		logger.Fatal("Postgres connection failed: %v", err)
	}

	redisClient, err := db.ConnectRedis(cfg)
	if err != nil {
		logger.Fatal("Redis connection failed: %v", err)
	}

	// 3. Initialize Services
	marketDataClient := marketdata.NewClient(cfg)
	companyService := services.NewCompanyService(pgDB, redisClient, marketDataClient)
	metalService := services.NewMetalService(pgDB, redisClient, metalsapi.NewClient(cfg))
	newsService := services.NewNewsService(pgDB, redisClient, newsfeed.NewClient(cfg))
	msgHandler := quotefeed.NewMessageHandler(pgDB, redisClient)
	wsClient := quotefeed.NewClient(cfg, msgHandler)

	// 4. Context with Cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 5. Connect WebSocket
	go func() {
		if err := wsClient.Connect(ctx); err != nil {
			logger.Error("❌ Quote feed client failed: %v", err)
			// In prod, might want to restart the pod, but here we just log
		}
	}()

	// 6. Company + Subscription Loop
	// Periodically refresh the universe and subscribe to its tickers
	go func() {
		ticker := time.NewTicker(companySyncInterval)
		defer ticker.Stop()

		syncUniverse(ctx, companyService, wsClient)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				syncUniverse(ctx, companyService, wsClient)
			}
		}
	}()

	// 7. Metals Loop
	go func() {
		ticker := time.NewTicker(metalsSyncInterval)
		defer ticker.Stop()

		if err := metalService.SyncMetalPrices(ctx); err != nil {
			logger.Error("Failed to sync metal prices: %v", err)
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := metalService.SyncMetalPrices(ctx); err != nil {
					logger.Error("Failed to sync metal prices: %v", err)
				}
			}
		}
	}()

	// 8. News Loop
	go func() {
		ticker := time.NewTicker(newsSyncInterval)
		defer ticker.Stop()

		if err := newsService.SyncNews(ctx); err != nil {
			logger.Error("Failed to sync news: %v", err)
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := newsService.SyncNews(ctx); err != nil {
					logger.Error("Failed to sync news: %v", err)
				}
			}
		}
	}()

	// 9. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")
	cancel()

	// Close WebSocket connection gracefully
	if err := wsClient.Close(); err != nil {
		logger.Error("Error closing WebSocket: %v", err)
	}

	time.Sleep(1 * time.Second) // Give connections time to close
	logger.Info("Worker exited.")
}

// syncUniverse refreshes the company list and insider filings, then subscribes
// the quote feed to every active ticker
func syncUniverse(ctx context.Context, cs *services.CompanyService, ws *quotefeed.Client) {
	logger.Info("🔄 Syncing company universe...")

	if err := cs.SyncCompanies(ctx); err != nil {
		logger.Error("Failed to sync companies from vendor: %v", err)
		return
	}

	if err := cs.SyncInsiderTransactions(ctx); err != nil {
		logger.Error("Failed to sync insider filings: %v", err)
		// Don't return - quote subscriptions matter more than filings
	}

	companies, err := cs.GetCompanies(ctx)
	if err != nil {
		logger.Error("Failed to get companies: %v", err)
		return
	}

	var tickers []string
	for _, company := range companies {
		if company.Ticker != "" && company.Active {
			tickers = append(tickers, company.Ticker)
		}
	}

	if len(tickers) == 0 {
		logger.Info("No tickers to subscribe to.")
		return
	}

	logger.Info("Subscribing to %d tickers...", len(tickers))

	if err := ws.Subscribe(tickers); err != nil {
		logger.Error("Failed to subscribe: %v", err)
	}
}
