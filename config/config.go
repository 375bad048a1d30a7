package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the client settings read from the environment.
type Config struct {
	APIBaseURL     string        `env:"FITLY_API_BASE_URL" envDefault:"http://localhost:8080"`
	StoragePath    string        `env:"FITLY_STORAGE_PATH"`
	LogLevel       string        `env:"FITLY_LOG_LEVEL" envDefault:"info"`
	HTTPTimeout    time.Duration `env:"FITLY_HTTP_TIMEOUT" envDefault:"0s"`
	FeedPageSize   int           `env:"FITLY_FEED_PAGE_SIZE" envDefault:"10"`
	LoginPath      string        `env:"FITLY_LOGIN_PATH" envDefault:"/login"`
	CropUploads    bool          `env:"FITLY_CROP_UPLOADS" envDefault:"false"`
	CropMaxSide    int           `env:"FITLY_CROP_MAX_SIDE" envDefault:"1080"`
	ImportHeadless bool          `env:"FITLY_IMPORT_HEADLESS" envDefault:"false"`
	AWSRegion      string        `env:"AWS_REGION" envDefault:"ap-south-1"`
	ExportBucket   string        `env:"FITLY_EXPORT_BUCKET"`
}

// AppConfig is the process-wide configuration populated by LoadConfig.
var AppConfig = Default()

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		APIBaseURL:   "http://localhost:8080",
		LogLevel:     "info",
		FeedPageSize: 10,
		LoginPath:    "/login",
		CropMaxSide:  1080,
		AWSRegion:    "ap-south-1",
	}
}

// LoadConfig loads environment variables from a .env file (if any) and parses them into AppConfig.
func LoadConfig() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	cfg, err := Parse()
	if err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}

// Parse reads the environment without touching AppConfig.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	// Unset means the default file; set to "" or "memory" means in-memory storage.
	if path, ok := os.LookupEnv("FITLY_STORAGE_PATH"); !ok {
		cfg.StoragePath = defaultStoragePath()
	} else if path == "memory" {
		cfg.StoragePath = ""
	}
	if cfg.FeedPageSize <= 0 {
		cfg.FeedPageSize = 10
	}
	return cfg, nil
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fitly", "storage.db")
}
