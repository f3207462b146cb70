package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	os.Setenv("DATA_DIR", "/tmp/caches")
	defer os.Unsetenv("DATA_DIR")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check defaults
	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if cfg.Snapshot.Backend != "file" {
		t.Errorf("Expected snapshot backend to be file, got %s", cfg.Snapshot.Backend)
	}

	if cfg.Redis.Enabled {
		t.Error("Expected redis to be disabled by default")
	}

	if cfg.Schedule.MorningCron != "0 35 9 * * 1-5" {
		t.Errorf("Unexpected morning cron %q", cfg.Schedule.MorningCron)
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	os.Setenv("ENV", "production")
	os.Setenv("DATA_DIR", "/srv/caches")
	os.Setenv("OUTPUT_DIR", "/srv/out")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("REDIS_DB", "3")

	defer func() {
		os.Unsetenv("ENV")
		os.Unsetenv("DATA_DIR")
		os.Unsetenv("OUTPUT_DIR")
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("REDIS_DB")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Env != "production" {
		t.Errorf("Expected Env to be production, got %s", cfg.Env)
	}

	if cfg.DataDir != "/srv/caches" {
		t.Errorf("Expected DataDir to be /srv/caches, got %s", cfg.DataDir)
	}

	if cfg.Redis.DB != 3 {
		t.Errorf("Expected Redis DB to be 3, got %d", cfg.Redis.DB)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel to be debug, got %s", cfg.LogLevel)
	}

	want := filepath.Join("/srv/out", "smart_money_last_scan.json")
	if cfg.SnapshotPath() != want {
		t.Errorf("Expected snapshot path %s, got %s", want, cfg.SnapshotPath())
	}
}

func TestValidateInvalidEnv(t *testing.T) {
	os.Setenv("ENV", "invalid")
	defer os.Unsetenv("ENV")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when ENV is invalid, got nil")
	}
}

func TestValidateRedisBackendRequiresRedis(t *testing.T) {
	os.Setenv("SNAPSHOT_BACKEND", "redis")
	os.Setenv("REDIS_ENABLED", "false")

	defer func() {
		os.Unsetenv("SNAPSHOT_BACKEND")
		os.Unsetenv("REDIS_ENABLED")
	}()

	_, err := Load()
	if err == nil {
		t.Error("Expected error when redis backend is selected with redis disabled")
	}
}

func TestValidateUnknownBackend(t *testing.T) {
	os.Setenv("SNAPSHOT_BACKEND", "sqlite")
	defer os.Unsetenv("SNAPSHOT_BACKEND")

	_, err := Load()
	if err == nil {
		t.Error("Expected error for unknown snapshot backend")
	}
}

func TestGetEnvAsInt(t *testing.T) {
	os.Setenv("TEST_INT", "100")
	defer os.Unsetenv("TEST_INT")

	value := getEnvAsInt("TEST_INT", 50)
	if value != 100 {
		t.Errorf("Expected value to be 100, got %d", value)
	}

	os.Setenv("TEST_INT", "not-a-number")
	if value := getEnvAsInt("TEST_INT", 50); value != 50 {
		t.Errorf("Expected fallback 50, got %d", value)
	}
}

func TestGetEnvAsBool(t *testing.T) {
	os.Setenv("TEST_BOOL", "true")
	defer os.Unsetenv("TEST_BOOL")

	value := getEnvAsBool("TEST_BOOL", false)
	if value != true {
		t.Errorf("Expected value to be true, got %v", value)
	}
}
