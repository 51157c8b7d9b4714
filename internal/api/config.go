package api

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds client configuration for the Schedule Foundation API.
type Config struct {
	Endpoint  string `yaml:"endpoint"`
	TimeoutMs int    `yaml:"timeout_ms"`
	CreatedBy string `yaml:"created_by"`
	PerPage   int    `yaml:"per_page"`
}

// DefaultConfig returns a Config pointing at a local development server.
func DefaultConfig() Config {
	return Config{
		Endpoint:  "http://localhost:5000",
		TimeoutMs: 30000,
		CreatedBy: "p6view",
		PerPage:   1000,
	}
}

// LoadConfig builds the effective configuration: defaults, overlaid by
// ~/.p6view/config.yaml when present, overlaid by P6VIEW_* environment
// variables. A malformed config file is ignored rather than fatal; the
// viewer still starts with defaults.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if home, err := os.UserHomeDir(); err == nil {
		applyConfigFile(&cfg, filepath.Join(home, ".p6view", "config.yaml"))
	}

	if v := os.Getenv("P6VIEW_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("P6VIEW_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("P6VIEW_CREATED_BY"); v != "" {
		cfg.CreatedBy = v
	}
	if v := os.Getenv("P6VIEW_PER_PAGE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PerPage = n
		}
	}

	return cfg
}

func applyConfigFile(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return
	}
	if fileCfg.Endpoint != "" {
		cfg.Endpoint = fileCfg.Endpoint
	}
	if fileCfg.TimeoutMs > 0 {
		cfg.TimeoutMs = fileCfg.TimeoutMs
	}
	if fileCfg.CreatedBy != "" {
		cfg.CreatedBy = fileCfg.CreatedBy
	}
	if fileCfg.PerPage > 0 {
		cfg.PerPage = fileCfg.PerPage
	}
}
