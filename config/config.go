// Package config loads bot configuration from the environment, with a
// .env file as the development-time source.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the bot needs to run.
type Config struct {
	LineChannelSecret string
	LineChannelToken  string

	SpreadsheetID   string
	CredentialsFile string
	CatalogSheet    string
	OrderSheet      string

	// CatalogXLSX, when set, switches the catalog source from Google
	// Sheets to a local workbook.
	CatalogXLSX string

	OrderDBPath string

	MatchThreshold float64
	CatalogTTL     time.Duration

	Port string
}

// Load reads the configuration. A missing .env file is fine in
// production where the variables come from the environment directly.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	cfg := &Config{
		LineChannelSecret: os.Getenv("LINE_CHANNEL_SECRET"),
		LineChannelToken:  os.Getenv("LINE_CHANNEL_TOKEN"),
		SpreadsheetID:     os.Getenv("SPREADSHEET_ID"),
		CredentialsFile:   os.Getenv("GOOGLE_CREDENTIALS_FILE"),
		CatalogSheet:      getEnv("CATALOG_SHEET", "Catalog"),
		OrderSheet:        getEnv("ORDER_SHEET", "Orders"),
		CatalogXLSX:       os.Getenv("CATALOG_XLSX"),
		OrderDBPath:       getEnv("ORDER_DB_PATH", "data/orders.db"),
		Port:              getEnv("PORT", "8080"),
	}

	threshold, err := getEnvFloat("MATCH_THRESHOLD", 0.5)
	if err != nil {
		return nil, err
	}
	cfg.MatchThreshold = threshold

	ttlSeconds, err := getEnvInt("CATALOG_TTL_SECONDS", 300)
	if err != nil {
		return nil, err
	}
	cfg.CatalogTTL = time.Duration(ttlSeconds) * time.Second

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.LineChannelSecret == "" {
		return fmt.Errorf("LINE_CHANNEL_SECRET is required")
	}
	if c.LineChannelToken == "" {
		return fmt.Errorf("LINE_CHANNEL_TOKEN is required")
	}
	if c.CatalogXLSX == "" && c.SpreadsheetID == "" {
		return fmt.Errorf("either CATALOG_XLSX or SPREADSHEET_ID is required")
	}
	if c.SpreadsheetID != "" && c.CredentialsFile == "" {
		return fmt.Errorf("GOOGLE_CREDENTIALS_FILE is required when SPREADSHEET_ID is set")
	}
	if c.MatchThreshold <= 0 || c.MatchThreshold > 1 {
		return fmt.Errorf("MATCH_THRESHOLD must be in (0, 1], got %v", c.MatchThreshold)
	}
	return nil
}

// UseSheets reports whether the Google Sheets backend is configured.
func (c *Config) UseSheets() bool {
	return c.CatalogXLSX == ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
