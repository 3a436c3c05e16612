// Package config loads runtime configuration from environment variables.
package config

import (
	"os"
	"strconv"
)

type Config struct {
	Web    WebConfig
	Render RenderConfig
}

type WebConfig struct {
	Host          string // listen address (default 0.0.0.0)
	Port          int    // listen port (default 8080)
	SessionSecret string // HMAC key for session cookies; random per process when unset
	MaxUploadMB   int    // multipart upload cap in megabytes (default 32)
}

type RenderConfig struct {
	FontPath    string // TTF used for thumbnail text; built-in face when unset
	JPEGQuality int    // quality for flattened collage images (default 90)
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envString reads an environment variable, falling back to a default when unset.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func Load() *Config {
	return &Config{
		Web: WebConfig{
			Host:          envString("WEB_HOST", "0.0.0.0"),
			Port:          envInt("WEB_PORT", 8080),
			SessionSecret: os.Getenv("WEB_SESSION_SECRET"),
			MaxUploadMB:   envInt("WEB_MAX_UPLOAD_MB", 32),
		},
		Render: RenderConfig{
			FontPath:    os.Getenv("REPORT_FONT_PATH"),
			JPEGQuality: envInt("REPORT_JPEG_QUALITY", 90),
		},
	}
}
