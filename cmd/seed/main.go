// Command seed populates the database with the predefined challenge catalogue
// and optional demo data for local development.
package main

import (
	"flag"
	"log"

	"buddyboost/internal/config"
	"buddyboost/internal/database"
	"buddyboost/internal/seed"
)

func main() {
	users := flag.Int("users", 5, "number of demo users to create")
	postsPerUser := flag.Int("posts", 3, "posts per demo user")
	demo := flag.Bool("demo", false, "also generate demo users, posts, and reactions")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	if err := seed.SeedPredefinedChallenges(db); err != nil {
		log.Fatalf("Challenge catalogue seeding failed: %v", err)
	}

	if *demo {
		if err := seed.SeedDemoData(db, *users, *postsPerUser); err != nil {
			log.Fatalf("Demo data seeding failed: %v", err)
		}
		log.Printf("Seeded %d demo users with %d posts each", *users, *postsPerUser)
	}
}
