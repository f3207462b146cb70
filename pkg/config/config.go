package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all process-level configuration for the scanner
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	Env string // development, staging, production

	// Inputs / outputs
	DataDir        string // directory holding the pre-materialized source caches
	OutputDir      string // directory for the last-scan snapshot and audit log
	UniverseFile   string // optional YAML list of symbols
	ThresholdsFile string // optional YAML threshold overrides

	// Stability snapshot
	Snapshot SnapshotConfig

	// Redis
	Redis RedisConfig

	// Scheduling
	Schedule ScheduleConfig

	// Logging
	LogLevel  string
	LogFormat string

	// Monitoring
	MetricsEnabled bool
	MetricsPort    string
}

// SnapshotConfig selects where the previous-scan snapshot lives
type SnapshotConfig struct {
	Backend     string // file | redis
	FileName    string
	HistoryName string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
	Prefix   string
}

// ScheduleConfig holds the cron expressions for the session scans
type ScheduleConfig struct {
	MorningCron   string
	AfternoonCron string
	Timezone      string
}

// SnapshotPath returns the full path of the last-scan snapshot file
func (c *Config) SnapshotPath() string {
	return filepath.Join(c.OutputDir, c.Snapshot.FileName)
}

// HistoryPath returns the full path of the append-only scan history
func (c *Config) HistoryPath() string {
	return filepath.Join(c.OutputDir, c.Snapshot.HistoryName)
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env: getEnv("ENV", "development"),

		DataDir:        getEnv("DATA_DIR", defaultDataDir()),
		OutputDir:      getEnv("OUTPUT_DIR", "output"),
		UniverseFile:   getEnv("UNIVERSE_FILE", ""),
		ThresholdsFile: getEnv("THRESHOLDS_FILE", ""),

		Snapshot: SnapshotConfig{
			Backend:     getEnv("SNAPSHOT_BACKEND", "file"),
			FileName:    getEnv("SNAPSHOT_FILE", "smart_money_last_scan.json"),
			HistoryName: getEnv("SNAPSHOT_HISTORY_FILE", "smart_money_scan_history.jsonl"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Prefix:   getEnv("REDIS_PREFIX", "smartmoney"),
		},

		Schedule: ScheduleConfig{
			// seconds-resolution cron, weekdays only
			MorningCron:   getEnv("SCAN_CRON_MORNING", "0 35 9 * * 1-5"),
			AfternoonCron: getEnv("SCAN_CRON_AFTERNOON", "0 15 15 * * 1-5"),
			Timezone:      getEnv("SCAN_TIMEZONE", "America/New_York"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", false),
		MetricsPort:    getEnv("METRICS_PORT", "9090"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are consistent
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	switch c.Snapshot.Backend {
	case "file":
		if c.OutputDir == "" {
			return fmt.Errorf("OUTPUT_DIR is required for the file snapshot backend")
		}
	case "redis":
		if !c.Redis.Enabled {
			return fmt.Errorf("SNAPSHOT_BACKEND=redis requires REDIS_ENABLED=true")
		}
	default:
		return fmt.Errorf("SNAPSHOT_BACKEND must be one of: file, redis")
	}

	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required")
	}

	return nil
}

// Helper functions (private, only used within this file)

// defaultDataDir points at the cache directory written by the upstream collectors
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "data"
	}
	return filepath.Join(home, "TradeNova", "data")
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
