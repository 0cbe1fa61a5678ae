// Command seed fills a development database with the built-in communities
// and a set of fake users, posts, and comments.
package main

import (
	"log"

	"mindhaven/internal/config"
	"mindhaven/internal/database"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("Refusing to seed demo data in production")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	if err := database.SeedCommunities(db); err != nil {
		log.Fatalf("Seeding communities failed: %v", err)
	}
	if err := database.SeedDemoData(db); err != nil {
		log.Fatalf("Seeding demo data failed: %v", err)
	}

	log.Println("Seeding complete")
}
