// Command migrate applies the database schema for the backend.
package main

import (
	"log"

	"github.com/mahmedraza1/Learn-LMS-sub000/internal/config"
	"github.com/mahmedraza1/Learn-LMS-sub000/internal/database"
)

// Connect skips automigration in production; this command runs it
// explicitly as a deploy step.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Schema migration complete")
}
