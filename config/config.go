package config

import (
	"os"

	"github.com/spf13/cast"
)

// Config holds every environment-backed setting the engine needs. All values
// have working defaults so the tool runs out of the box on a fresh checkout.
type Config struct {
	Port            string // HTTP listen port
	CatalogDir      string // directory of per-brand catalog YAML files
	MappingsDir     string // directory of per-field reference mapping JSON files
	TemplateCacheFl string // persisted template cache file
	MissingLogFl    string // persisted missing-mapping log file
	MatchThreshold  int    // minimum score (out of 6) for an approximate match
}

// Load reads the configuration from environment variables, applying defaults
// for anything unset
func Load() *Config {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		CatalogDir:      getEnv("CATALOG_DIR", "catalog"),
		MappingsDir:     getEnv("MAPPINGS_DIR", "mappings"),
		TemplateCacheFl: getEnv("TEMPLATE_CACHE_PATH", "data/template_cache.json"),
		MissingLogFl:    getEnv("MISSING_LOG_PATH", "data/missing_mappings.json"),
		MatchThreshold:  cast.ToInt(getEnv("MATCH_THRESHOLD", "4")),
	}

	// The threshold is a score out of 6; clamp nonsense values back to the
	// default rather than failing startup
	if cfg.MatchThreshold < 1 || cfg.MatchThreshold > 6 {
		cfg.MatchThreshold = 4
	}

	// PORT from some hosts arrives with a leading colon
	if len(cfg.Port) > 0 && cfg.Port[0] == ':' {
		cfg.Port = cfg.Port[1:]
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
