package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Vault    VaultConfig
	Notes    NotesConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	// Path to the SQLite file; ":memory:" runs without a file.
	Path string
}

type VaultConfig struct {
	// JWTSecret signs vault session tokens.
	JWTSecret string
	// SessionTTLMinutes is the auto-lock window for an unlocked vault.
	SessionTTLMinutes int
}

type NotesConfig struct {
	// TrashRetentionDays is how long trashed notes survive before the
	// retention sweep hard-deletes them.
	TrashRetentionDays int
	// PurgeIntervalMinutes is how often the sweep runs.
	PurgeIntervalMinutes int
	// PreviewMaxRunes bounds list-row previews.
	PreviewMaxRunes int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "data/keepnotes.db"),
		},
		Vault: VaultConfig{
			JWTSecret:         getEnv("JWT_SECRET", ""),
			SessionTTLMinutes: getEnvAsInt("VAULT_SESSION_TTL_MIN", 15),
		},
		Notes: NotesConfig{
			TrashRetentionDays:   getEnvAsInt("TRASH_RETENTION_DAYS", 30),
			PurgeIntervalMinutes: getEnvAsInt("TRASH_PURGE_INTERVAL_MIN", 60),
			PreviewMaxRunes:      getEnvAsInt("PREVIEW_MAX_RUNES", 300),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
