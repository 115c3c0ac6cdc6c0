// Command main runs the database seeder for Bichar.
package main

import (
	"flag"
	"log"

	"bichar/internal/config"
	"bichar/internal/database"
	"bichar/internal/seed"
)

func main() {
	numConfessions := flag.Int("confessions", 100, "Number of confessions to create")
	maxDays := flag.Int("days", 30, "Spread creation dates over this many days")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d confessions over %d days, clean=%v\n", *numConfessions, *maxDays, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if _, err := s.SeedConfessions(*numConfessions, *maxDays); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
