package main

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Centralized configuration defaults
const (
	DefaultPort         = "3000"
	DefaultFFmpegPath   = "ffmpeg"
	DefaultStaticDir    = "public"
	DefaultFetchTimeout = 10 * time.Second

	// Rate Limiting
	DefaultRequestsPerSecond = 100
	DefaultBurstSize         = 200

	// Transcoding output
	MP3Bitrate = "128k"
)

// Config holds all process-wide settings. It is loaded once at startup and
// passed into the server on construction.
type Config struct {
	Port           string
	FFmpegPath     string
	StaticDir      string
	FetchTimeout   time.Duration
	RequestsPerSec float64
	BurstSize      int
	MetricsEnabled bool
}

func loadConfig() Config {
	cfg := Config{
		Port:           getEnv("PORT", DefaultPort),
		FFmpegPath:     getEnv("FFMPEG_PATH", DefaultFFmpegPath),
		StaticDir:      getEnv("STATIC_DIR", DefaultStaticDir),
		FetchTimeout:   getEnvDuration("FETCH_TIMEOUT", DefaultFetchTimeout),
		RequestsPerSec: getEnvFloat("RATE_LIMIT_RPS", DefaultRequestsPerSecond),
		BurstSize:      getEnvInt("RATE_LIMIT_BURST", DefaultBurstSize),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
	}
	log.Printf("Config: port=%s ffmpeg=%s static=%s fetch_timeout=%s rate=%.0f/s burst=%d metrics=%v",
		cfg.Port, cfg.FFmpegPath, cfg.StaticDir, cfg.FetchTimeout, cfg.RequestsPerSec, cfg.BurstSize, cfg.MetricsEnabled)
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return b
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("Invalid %s=%q, using %g", key, v, fallback)
		return fallback
	}
	return f
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
