// Command migrate applies the database schema explicitly. The server
// only automigrates outside production, so production rollouts run this.
package main

import (
	"log"

	"plume/internal/config"
	"plume/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(database.Models()...); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Schema migration applied")
}
