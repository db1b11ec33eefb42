// Seeds the ledger with the three demo listings without going through
// the API. Usage: go run ./cmd/seed
package main

import (
	"fmt"
	"log"
	"os"

	"go-agrichain/internal/service"
	"go-agrichain/internal/store"
	"go-agrichain/pkg/database"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	var ledgerStore store.LedgerStore
	switch os.Getenv("STORAGE_DRIVER") {
	case "redis":
		addr := os.Getenv("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}
		ledgerStore = store.NewRedisStore(redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		}))
	default:
		db := database.ConnectDB()
		db.AutoMigrate(&store.LedgerDocument{})
		ledgerStore = store.NewPostgresStore(db)
	}

	chainService := service.NewChainService(ledgerStore, nil)
	seeded, err := chainService.SeedListings()
	if err != nil {
		log.Fatal("Failed to seed listings: ", err)
	}

	for _, b := range seeded {
		fmt.Printf("Seeded %s: %s grade %s, %d kg at %d/kg\n", b.ID, b.Crop, b.Grade, b.Qty, b.Price)
	}
}
