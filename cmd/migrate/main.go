package main

import (
	"log"

	"keepnotes-be/internal/config"
	"keepnotes-be/internal/model"
	"keepnotes-be/pkg/database"
)

func main() {
	// 1. Load Environment Variables
	cfg := config.Load()

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDB(database.GormConfig{Path: cfg.Database.Path})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// 3. AutoMigrate All Models
	log.Println("Step 1: Running AutoMigrate...")

	models := []interface{}{
		&model.Note{},
		&model.Label{},
		&model.Preference{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 4. Post-Migration: join-table index AutoMigrate doesn't emit
	log.Println("Step 2: Creating indexes...")

	postMigrationSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_note_labels_label_id ON note_labels(label_id);`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("Migration completed successfully")
}
