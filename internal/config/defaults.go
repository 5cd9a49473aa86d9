package config

import (
	"time"

	"github.com/AndreyAkinshin/testlogs/internal/loader"
	"github.com/AndreyAkinshin/testlogs/internal/section"
)

// Default configuration values.
const (
	DefaultLogLevel       = "warn"
	DefaultDirectory      = "."
	DefaultJSONPath       = "test-compilation-report.json"
	DefaultHTMLPath       = "test-compilation-report.html"
	DefaultPublishTimeout = 30 * time.Second
	DefaultEnvFile        = ".env"
)

// DefaultFileNames are the config files looked up in the working directory,
// in order of preference.
var DefaultFileNames = []string{"testlogs.yaml", "testlogs.yml", "testlogs.json"}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	applyLogDefaults(cfg)
	applyDiscoveryDefaults(cfg)
	applyStatusDefaults(cfg)
	applyOutputDefaults(cfg)
	applyPublishDefaults(cfg)
}

func applyLogDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}

func applyDiscoveryDefaults(cfg *Config) {
	if cfg.Discovery.Directory == "" {
		cfg.Discovery.Directory = DefaultDirectory
	}
	if len(cfg.Discovery.Patterns) == 0 {
		cfg.Discovery.Patterns = append([]string(nil), loader.DefaultPatterns...)
	}
}

func applyStatusDefaults(cfg *Config) {
	if len(cfg.Status.FailureKeywords) == 0 {
		cfg.Status.FailureKeywords = append([]string(nil), section.DefaultFailureKeywords...)
	}
}

func applyOutputDefaults(cfg *Config) {
	if cfg.Output.JSON == "" {
		cfg.Output.JSON = DefaultJSONPath
	}
	if cfg.Output.HTML == "" {
		cfg.Output.HTML = DefaultHTMLPath
	}
}

func applyPublishDefaults(cfg *Config) {
	if cfg.Publish.Timeout == "" {
		cfg.Publish.Timeout = DefaultPublishTimeout.String()
	}
}
