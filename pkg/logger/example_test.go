package logger_test

import (
	"errors"

	"github.com/achavala/Meta-Engine-sub001/pkg/config"
	"github.com/achavala/Meta-Engine-sub001/pkg/logger"
)

// Example_basic demonstrates basic logger usage
func Example_basic() {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "info",
		LogFormat: "console",
	}

	// Create logger (SSOT)
	log := logger.New(cfg)

	log.Debug("This won't appear (level is info)")
	log.Info("Scanner started")
	log.Warnf("Source %s missing, continuing with %d of %d", "darkpool", 9, 10)
}

// Example_withFields demonstrates structured logging with fields
func Example_withFields() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}

	log := logger.New(cfg).WithScan("scan_20260116_093500")

	log.WithFields(map[string]interface{}{
		"symbol":     "NVDA",
		"direction":  "BULLISH",
		"conviction": 0.61,
		"tier":       1,
	}).Info("Symbol resolved")
}

// Example_withError demonstrates error logging
func Example_withError() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "error",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	err := errors.New("unexpected end of JSON input")
	log.WithError(err).
		WithField("source", "uw_flow_cache.json").
		Error("Failed to load source cache")
}
