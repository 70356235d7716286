package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/quentinrf/plant-monitor/services/crop-service/internal/metrics"
	"github.com/quentinrf/plant-monitor/services/crop-service/internal/recommender"
	"github.com/quentinrf/plant-monitor/services/crop-service/pkg/tlsconfig"
)

// Config holds application configuration
type Config struct {
	Port           string
	MetricsPort    string
	RecordInterval time.Duration
	Retention      time.Duration // readings older than this are pruned daily
	RepoType       string        // "memory" | "sqlite"
	DBPath         string        // SQLite database file path (used when RepoType=sqlite)
	SensorType     string        // "mock" | "gpio"
	CatalogPath    string        // crop catalog YAML; empty uses the embedded default
	LogLevel       zerolog.Level
	TLS            tlsconfig.Files
}

// loadConfig reads configuration from environment variables
func loadConfig() Config {
	return Config{
		Port:           getEnv("PORT", "50051"),
		MetricsPort:    getEnv("METRICS_PORT", "9090"),
		RecordInterval: getDuration("RECORD_INTERVAL", 5*time.Minute),
		Retention:      getDuration("RETENTION", 30*24*time.Hour),
		RepoType:       getEnv("REPO_TYPE", "memory"),
		DBPath:         getEnv("DB_PATH", "./soil.db"),
		SensorType:     getEnv("SENSOR_TYPE", "mock"),
		CatalogPath:    os.Getenv("CATALOG_PATH"),
		LogLevel:       getLevel("LOG_LEVEL", zerolog.InfoLevel),
		TLS: tlsconfig.Files{
			Cert: os.Getenv("TLS_CERT"),
			Key:  os.Getenv("TLS_KEY"),
			CA:   os.Getenv("TLS_CA"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Warn().Str(key, v).Dur("default", fallback).Msg("invalid duration, using default")
		return fallback
	}
	return d
}

func getLevel(key string, fallback zerolog.Level) zerolog.Level {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	lvl, err := zerolog.ParseLevel(v)
	if err != nil {
		log.Warn().Str(key, v).Msg("invalid log level, using default")
		return fallback
	}
	return lvl
}

// recommenderFaults counts per-crop evaluation faults
func recommenderFaults(m *metrics.Metrics) recommender.Option {
	return recommender.WithFaultHandler(m.CropFault)
}
