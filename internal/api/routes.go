/**
 * @description
 * API Route definitions.
 * Sets up the router groups and assigns handlers.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/api/handlers
 * - backend/internal/api/middleware
 * - backend/internal/services
 * - backend/internal/integrations
 */

package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/resource-capital/backend/internal/api/handlers"
	"github.com/resource-capital/backend/internal/api/middleware"
	"github.com/resource-capital/backend/internal/config"
	"github.com/resource-capital/backend/internal/integrations/marketdata"
	"github.com/resource-capital/backend/internal/integrations/metalsapi"
	"github.com/resource-capital/backend/internal/integrations/newsfeed"
	"github.com/resource-capital/backend/internal/services"
	"gorm.io/gorm"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {
	// 1. Initialize Middleware
	if err := middleware.InitAuthMiddleware(cfg); err != nil {
		log.Printf("Failed to init auth middleware: %v", err)
		// We don't panic here to allow app to start in dev modes without valid keys,
		// but protected routes will fail.
	}

	// 2. Initialize Services
	marketDataClient := marketdata.NewClient(cfg)
	metalsClient := metalsapi.NewClient(cfg)
	newsClient := newsfeed.NewClient(cfg)

	companyService := services.NewCompanyService(db, rdb, marketDataClient)
	insiderService := services.NewInsiderService(db)
	newsService := services.NewNewsService(db, rdb, newsClient)
	metalService := services.NewMetalService(db, rdb, metalsClient)
	screenerService := services.NewScreenerService(db)
	profileService := services.NewProfileService(db)
	watchlistService := services.NewWatchlistService(db)
	reportService := services.NewReportService(db, cfg.Reports)
	searchService := services.NewSearchService(db)
	tickerHub := services.NewTickerStreamHub(rdb, services.TickerUpdateChannel)

	// 3. Initialize Handlers
	companyHandler := handlers.NewCompanyHandler(companyService, insiderService)
	screenerHandler := handlers.NewScreenerHandler(companyService, screenerService, profileService)
	newsHandler := handlers.NewNewsHandler(newsService)
	metalHandler := handlers.NewMetalHandler(metalService)
	insiderHandler := handlers.NewInsiderHandler(insiderService)
	profileHandler := handlers.NewProfileHandler(profileService)
	watchlistHandler := handlers.NewWatchlistHandler(db, watchlistService)
	reportHandler := handlers.NewReportHandler(db, reportService)
	searchHandler := handlers.NewSearchHandler(searchService)
	sitemapHandler := handlers.NewSitemapHandler(db, cfg.Server.SiteBaseURL)
	tickerHandler := handlers.NewTickerHandler(tickerHub)

	// 4. Define Routes
	app.Get("/sitemap.xml", sitemapHandler.GetSitemap)

	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Public Routes
	v1.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Company Routes (Public)
	companies := v1.Group("/companies")
	companies.Get("/", companyHandler.GetCompanies)
	companies.Get("/:ticker", companyHandler.GetCompany)

	// Screener Routes (screen is public; saved queries are per-user)
	screener := v1.Group("/screener")
	screener.Post("/screen", screenerHandler.Screen)
	screener.Get("/queries", middleware.Protected(), screenerHandler.ListQueries)
	screener.Post("/queries", middleware.Protected(), screenerHandler.SaveQuery)
	screener.Delete("/queries/:id", middleware.Protected(), screenerHandler.DeleteQuery)

	// News Routes (Public)
	news := v1.Group("/news")
	news.Get("/", newsHandler.GetNews)
	news.Get("/:id/content", newsHandler.GetArticleContent)

	// Metal Routes (Public)
	metals := v1.Group("/metals")
	metals.Get("/", metalHandler.GetSpotPrices)
	metals.Get("/:symbol/history", metalHandler.GetHistory)

	// Insider Routes (Public)
	insiders := v1.Group("/insiders")
	insiders.Get("/:ticker/sentiment", insiderHandler.GetSentiment)
	insiders.Get("/:ticker/transactions", insiderHandler.GetTransactions)

	// Search Route (Public)
	v1.Get("/search", searchHandler.Search)

	// Ticker Stream (Public)
	v1.Get("/ticker/stream", tickerHandler.StreamTicker)

	// Report Routes (list is public; mutations are per-user)
	reports := v1.Group("/reports")
	reports.Get("/", reportHandler.ListReports)
	reports.Post("/", middleware.Protected(), reportHandler.UploadReport)
	reports.Delete("/:id", middleware.Protected(), reportHandler.DeleteReport)

	// Profile Routes (Protected)
	profile := v1.Group("/profile", middleware.Protected())
	profile.Post("/sync", profileHandler.SyncUser)
	profile.Get("/me", profileHandler.GetMe)
	profile.Patch("/", profileHandler.UpdateProfile)

	// Watchlist Routes (Protected)
	watchlist := v1.Group("/watchlist", middleware.Protected())
	watchlist.Get("/", watchlistHandler.GetWatchlist)
	watchlist.Post("/watch", watchlistHandler.WatchTicker)
	watchlist.Post("/toggle", watchlistHandler.ToggleWatch)
	watchlist.Get("/check/:ticker", watchlistHandler.CheckIsWatched)
	watchlist.Delete("/:ticker", watchlistHandler.UnwatchTicker)
}
