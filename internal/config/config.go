package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/testlogs/internal/schema"
)

// Load reads configuration from path and the environment and applies
// defaults. An empty path reads the environment only. Environment variables
// override file values.
//
// The file itself is checked against the config schema, but the merged
// result is not validated: callers apply their own overrides first and then
// call Validate.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path == "" {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := validateDocument(path, data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		log.WithField("path", path).Debug("Config file loaded")
	}

	applyDefaults(cfg)
	return cfg, nil
}

// validateDocument checks a raw YAML or JSON config document against the
// embedded config schema.
func validateDocument(path string, data []byte) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
		if doc == nil {
			doc = map[string]any{}
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to convert config file: %w", err)
		}
		return schema.ValidateConfig(converted)
	case ".json":
		return schema.ValidateConfig(data)
	default:
		return fmt.Errorf("unsupported config file extension %q (use .yaml, .yml or .json)", filepath.Ext(path))
	}
}

// FindConfig returns the first of DefaultFileNames present in dir,
// or "" when there is none.
func FindConfig(dir string) string {
	for _, name := range DefaultFileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// LoadDotEnv loads variables from an env file without overriding variables
// that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	log.WithField("path", path).Debug("Environment file loaded")
	return nil
}
