package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-agrichain/internal/handler"
	"go-agrichain/internal/service"
	"go-agrichain/internal/store"
	"go-agrichain/internal/ws"
	"go-agrichain/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Ledger Store
	ledgerStore := newLedgerStore()

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	chainService := service.NewChainService(ledgerStore, wsHub)
	lookupService := service.NewLookupService(ledgerStore)

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	batchHandler := handler.NewBatchHandler(chainService)
	lookupHandler := handler.NewLookupHandler(lookupService, baseURL)
	telemetryHandler := handler.NewTelemetryHandler(chainService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "AgriChain Ledger v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 6. Routes
	api := app.Group("/api/v1")

	api.Get("/stats", batchHandler.GetStats)

	// Farmer side
	api.Get("/listings", batchHandler.GetListings)
	api.Post("/listings", batchHandler.CreateListing)
	api.Post("/listings/seed", batchHandler.SeedListings)

	// Distributor / retailer pipeline
	api.Get("/inventory", batchHandler.GetInventory)
	api.Post("/batches/:id/distributor-purchase", batchHandler.DistributorPurchase)
	api.Post("/batches/:id/retail", batchHandler.RetailerPurchase)
	api.Post("/batches/:id/consumer-purchase", batchHandler.ConsumerPurchase)

	// Transaction records
	api.Get("/purchases", batchHandler.GetDistributorPurchases)
	api.Get("/retail-purchases", batchHandler.GetRetailPurchases)
	api.Get("/consumer-purchases", batchHandler.GetConsumerPurchases)

	// Traceability lookups
	api.Get("/batches/:id", lookupHandler.GetBatch)
	api.Get("/batches/:id/qr", lookupHandler.GetQR)
	api.Post("/scan", lookupHandler.Scan)

	// Shipment tracking
	api.Get("/telemetry", telemetryHandler.Get)
	api.Post("/telemetry/refresh", telemetryHandler.Refresh)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// newLedgerStore picks the document backend from STORAGE_DRIVER:
// postgres (default), redis, or memory for throwaway demo runs.
func newLedgerStore() store.LedgerStore {
	switch os.Getenv("STORAGE_DRIVER") {
	case "memory":
		log.Println("Using in-memory ledger store (state is lost on exit)")
		return store.NewMemoryStore()
	case "redis":
		addr := os.Getenv("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		log.Println("Using redis ledger store at", addr)
		return store.NewRedisStore(client)
	default:
		db := database.ConnectDB()
		db.AutoMigrate(&store.LedgerDocument{})
		return store.NewPostgresStore(db)
	}
}
