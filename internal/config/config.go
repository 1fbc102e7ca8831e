package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Localization
	DefaultLanguage string
	LabelsDir       string // extra label tables merged over the built-ins
	WatchLabels     bool   // hot-reload LabelsDir on change

	// Assets
	AssetsDir   string // inlined as data URIs on export when set
	IconBaseURL string
	FileBaseURL string

	// Rendering
	MaxHeadingDepth int

	// Upload limits
	MaxUploadBytes int64
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("PROTEUSVIEW_API_KEY"),

		DefaultLanguage: envOr("DEFAULT_LANGUAGE", "en"),
		LabelsDir:       os.Getenv("LABELS_DIR"),
		WatchLabels:     envBool("WATCH_LABELS", false),

		AssetsDir:   os.Getenv("ASSETS_DIR"),
		IconBaseURL: envOr("ICON_BASE_URL", "/assets/icons"),
		FileBaseURL: envOr("FILE_BASE_URL", "/assets/files"),

		MaxHeadingDepth: envInt("MAX_HEADING_DEPTH", 6),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB
	}

	if cfg.MaxHeadingDepth <= 0 || cfg.MaxHeadingDepth > 6 {
		cfg.MaxHeadingDepth = 6
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("PROTEUSVIEW_API_KEY is required")
	}
	if c.DefaultLanguage == "" {
		return fmt.Errorf("DEFAULT_LANGUAGE must not be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
