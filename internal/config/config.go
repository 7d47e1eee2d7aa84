// Package config loads the optional annolint configuration file.
// Flags and environment variables override anything set here.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"annolint/internal/check"
	"annolint/internal/store"
)

// Config holds tool-wide settings.
type Config struct {
	// APIBaseURL is the annotation platform endpoint. Empty uses the
	// platform default.
	APIBaseURL string `yaml:"api_base_url" json:"api_base_url"`
	// APIKeyPath is the file holding the platform API key (first line).
	APIKeyPath string `yaml:"api_key_path" json:"api_key_path"`
	// Project is the default platform project to audit.
	Project string `yaml:"project" json:"project"`

	// OcclusionThreshold is the occlusion percentage above which a
	// zero-claiming pair is flagged.
	OcclusionThreshold float64 `yaml:"occlusion_threshold" json:"occlusion_threshold"`
	// DoubleCount restores legacy ordered-pair occlusion output.
	DoubleCount bool `yaml:"double_count" json:"double_count"`

	// DBPath is the task cache location.
	DBPath string `yaml:"db_path" json:"db_path"`
	// ImageDebugDir, when set, receives a raw copy of every fetched image.
	ImageDebugDir string `yaml:"image_debug_dir" json:"image_debug_dir"`
	// CacheImages enables the in-memory per-URL image cache.
	CacheImages bool `yaml:"cache_images" json:"cache_images"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		APIKeyPath:         ".scale-api-key",
		OcclusionThreshold: check.DefaultOcclusionThreshold,
		DBPath:             store.DefaultDBPath,
		CacheImages:        true,
	}
}

// LoadFromPath reads a config file (YAML or JSON) over the defaults.
// A missing file is not an error; defaults are returned.
func LoadFromPath(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Load(data, filepath.Ext(path))
}

// Load parses config from bytes over the defaults. ext is the file
// extension (e.g. ".json", ".yaml") for format hint; empty = detect from
// content.
func Load(data []byte, ext string) (Config, error) {
	cfg := Default()

	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	if ext == "" {
		// Detect: JSON objects start with a brace, everything else is YAML.
		if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
			ext = ".json"
		} else {
			ext = ".yaml"
		}
	}

	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config json: %w", err)
		}
	case ".yaml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config yaml: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", ext)
	}
	return cfg, nil
}
