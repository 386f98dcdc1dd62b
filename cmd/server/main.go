package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopvoice/backend/config"
	httpDelivery "github.com/shopvoice/backend/internal/delivery/http"
	"github.com/shopvoice/backend/internal/domain"
	"github.com/shopvoice/backend/internal/infrastructure/feed"
	"github.com/shopvoice/backend/internal/infrastructure/realtime"
	"github.com/shopvoice/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ShopVoice Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Catalog feed: %s", cfg.Catalog.SourceURL)

	// Initialize infrastructure dependencies
	feedClient := feed.NewClient(cfg.Catalog.SourceURL)

	realtimeClient := realtime.NewClient(cfg.Realtime.APIKey, cfg.Realtime.BaseURL)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		feedClient.SetDebug(true)
		realtimeClient.SetDebug(true)
		log.Printf("Infrastructure client debug mode enabled")
	}

	if cfg.Realtime.APIKey != "" {
		log.Printf("Realtime API configured: %s", cfg.Realtime.BaseURL)
	} else {
		log.Printf("WARNING: Realtime API key not configured - /token requests will fail")
	}

	// Initialize usecase layer
	catalogStore := usecase.NewCatalogStore(feedClient, usecase.CatalogStoreConfig{
		SiteOrigin:         cfg.Catalog.SiteOrigin,
		AssetPrefix:        cfg.Catalog.AssetPrefix,
		HeaderMode:         headerMode(cfg.Catalog.HeaderMode),
		EnableDebugLogging: cfg.Search.EnableDebugLogging,
	})

	interpreter := usecase.NewQueryInterpreter(cfg.Search.BrandStopWords, cfg.Search.EnableDebugLogging)

	searchService := usecase.NewSearchService(catalogStore, interpreter, usecase.SearchServiceConfig{
		PageSize:           cfg.Search.PageSize,
		FallbackQuery:      cfg.Search.FallbackQuery,
		EnableDebugLogging: cfg.Search.EnableDebugLogging,
	})

	log.Printf("Search: pageSize=%d, fallback=%q, debug=%v",
		cfg.Search.PageSize,
		cfg.Search.FallbackQuery,
		cfg.Search.EnableDebugLogging)

	// Create HTTP handler with dependencies
	var tokenIssuer domain.TokenIssuer = realtimeClient
	handler := httpDelivery.NewHandler(searchService, tokenIssuer)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// headerMode maps the config string to the parser's header handling.
func headerMode(mode string) feed.HeaderMode {
	switch mode {
	case "present":
		return feed.HeaderPresent
	case "absent":
		return feed.HeaderAbsent
	default:
		return feed.HeaderAuto
	}
}

func init() {
	// Pick up a local .env before viper reads the environment
	_ = godotenv.Load()

	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
