package main

import (
	"context"
	"log"
	"os"

	"github.com/orgball2608/subreddit-archiver/internal/db"
	"github.com/orgball2608/subreddit-archiver/pkg/config"
	"github.com/pressly/goose/v3"
)

// sourceDir is where new Go migrations are generated, relative to the repo root.
const sourceDir = "internal/migrations"

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|status|reset|create <name>]")
	}

	command := os.Args[1]

	if command == "create" {
		if len(os.Args) < 3 {
			log.Fatal("Usage: migrate create <name>")
		}
		if err := goose.Create(nil, sourceDir, os.Args[2], "go"); err != nil {
			log.Fatalf("Failed to create migration: %v", err)
		}
		return
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if !cfg.JournalEnabled() {
		log.Fatal("POSTGRES_HOST is not set, nothing to migrate")
	}

	if err := db.Command(context.Background(), cfg.GetDSN(), command); err != nil {
		log.Fatalf("Migration %s failed: %v", command, err)
	}
	log.Printf("Migration %s done", command)
}
