package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration for errors and returns warnings for
// non-fatal issues.
func Validate(cfg *Config) (warnings []string, err error) {
	if err := validateLog(cfg); err != nil {
		return nil, err
	}

	if err := validateDiscovery(cfg); err != nil {
		return nil, err
	}

	if err := validateStatus(cfg); err != nil {
		return nil, err
	}

	if err := validateOutput(cfg); err != nil {
		return nil, err
	}

	publishWarnings, err := validatePublish(cfg)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, publishWarnings...)

	return warnings, nil
}

func validateLog(cfg *Config) error {
	if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
		return &ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("unknown level %q", cfg.Log.Level),
		}
	}
	return nil
}

func validateDiscovery(cfg *Config) error {
	for i, p := range cfg.Discovery.Patterns {
		if strings.TrimSpace(p) == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("discovery.patterns[%d]", i),
				Message: "must not be empty",
			}
		}
		if strings.ContainsRune(p, filepath.Separator) || strings.ContainsRune(p, '/') {
			return &ValidationError{
				Field:   fmt.Sprintf("discovery.patterns[%d]", i),
				Message: "must be a file name pattern without directories",
			}
		}
		if _, err := filepath.Match(p, ""); err != nil {
			return &ValidationError{
				Field:   fmt.Sprintf("discovery.patterns[%d]", i),
				Message: fmt.Sprintf("invalid pattern %q: %v", p, err),
			}
		}
	}
	return nil
}

func validateStatus(cfg *Config) error {
	for i, k := range cfg.Status.FailureKeywords {
		if strings.TrimSpace(k) == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("status.failure_keywords[%d]", i),
				Message: "must not be empty",
			}
		}
	}
	return nil
}

func validateOutput(cfg *Config) error {
	o := cfg.Output
	paths := map[string]string{}
	for field, path := range map[string]string{
		"output.json":         enabledPath(o.JSON, !o.NoJSON),
		"output.html":         enabledPath(o.HTML, !o.NoHTML),
		"output.yaml":         o.YAML,
		"output.metrics_file": o.MetricsFile,
	} {
		if path == "" {
			continue
		}
		clean := filepath.Clean(path)
		if other, ok := paths[clean]; ok {
			first, second := other, field
			if second < first {
				first, second = second, first
			}
			return &ValidationError{
				Field:   second,
				Message: fmt.Sprintf("path %q is also used by %s", path, first),
			}
		}
		paths[clean] = field
	}
	return nil
}

func enabledPath(path string, enabled bool) string {
	if !enabled {
		return ""
	}
	return path
}

func validatePublish(cfg *Config) ([]string, error) {
	p := cfg.Publish
	if _, err := time.ParseDuration(p.Timeout); err != nil {
		return nil, &ValidationError{
			Field:   "publish.timeout",
			Message: fmt.Sprintf("invalid duration %q", p.Timeout),
		}
	}

	if !p.Enabled {
		return nil, nil
	}

	if p.S3.Bucket == "" {
		return nil, &ValidationError{
			Field:   "publish.s3.bucket",
			Message: "is required when publishing is enabled",
		}
	}

	var warnings []string
	if (p.S3.AccessKeyID == "") != (p.S3.SecretAccessKey == "") {
		warnings = append(warnings, "publish.s3: access_key_id and secret_access_key must be set together; using the default AWS credential chain")
	}
	return warnings, nil
}
