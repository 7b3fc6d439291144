package main

import (
	"context"
	"log"
	"time"

	"keepnotes-be/internal/bootstrap"
	"keepnotes-be/internal/config"
	"keepnotes-be/internal/server"
	"keepnotes-be/internal/tracer"
	"keepnotes-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDB(database.GormConfig{Path: cfg.Database.Path})
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// Trash retention sweep: hard-deletes notes trashed past the window.
	go func() {
		interval := time.Duration(cfg.Notes.PurgeIntervalMinutes) * time.Minute
		if interval <= 0 {
			return
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			purged, err := container.NoteService.PurgeExpired(context.Background())
			if err != nil {
				log.Printf("[WARN] Trash sweep failed: %v", err)
				continue
			}
			if purged > 0 {
				log.Printf("[INFO] Trash sweep purged %d note(s)", purged)
			}
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
