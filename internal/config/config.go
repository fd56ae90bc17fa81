package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Host            string
	Port            string
	RequestTimeout  time.Duration
	MaxPayloadSize  int64
	SVGRenderWidth  int
	SVGRenderHeight int
}

func (c *Config) ServerAddress() string {
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

func LoadFromEnv() (*Config, error) {
	// Set defaults
	cfg := &Config{
		Host:            getEnvOrDefault("HOST", "0.0.0.0"),
		Port:            getEnvOrDefault("PORT", "8080"),
		RequestTimeout:  parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		MaxPayloadSize:  parseIntOrDefault("MAX_PAYLOAD_SIZE", 10*1024*1024), // 10MB
		SVGRenderWidth:  int(parseIntOrDefault("SVG_RENDER_WIDTH", 800)),
		SVGRenderHeight: int(parseIntOrDefault("SVG_RENDER_HEIGHT", 600)),
	}

	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxPayloadSize <= 0 {
		return nil, fmt.Errorf("MAX_PAYLOAD_SIZE must be > 0 (got %d)", cfg.MaxPayloadSize)
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT must be > 0 (got %s)", cfg.RequestTimeout)
	}
	if cfg.SVGRenderWidth <= 0 || cfg.SVGRenderHeight <= 0 {
		return nil, fmt.Errorf("SVG render size must be > 0 (got %dx%d)",
			cfg.SVGRenderWidth, cfg.SVGRenderHeight)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
