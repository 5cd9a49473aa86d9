// Package config provides configuration loading and validation for
// testlogs.yaml / testlogs.json files and TESTLOGS_* environment variables.
package config

import "time"

// Config represents the complete testlogs configuration.
type Config struct {
	Log       LogConfig       `json:"log" yaml:"log"`
	Discovery DiscoveryConfig `json:"discovery" yaml:"discovery"`
	Status    StatusConfig    `json:"status" yaml:"status"`
	Output    OutputConfig    `json:"output" yaml:"output"`
	Publish   PublishConfig   `json:"publish" yaml:"publish"`
	Strict    bool            `json:"strict" yaml:"strict" env:"TESTLOGS_STRICT"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	Level string `json:"level" yaml:"level" env:"TESTLOGS_LOG_LEVEL" env-default:"warn"`
}

// DiscoveryConfig configures where and how log files are found.
type DiscoveryConfig struct {
	Directory string   `json:"directory" yaml:"directory" env:"TESTLOGS_DIR"`
	Patterns  []string `json:"patterns" yaml:"patterns" env:"TESTLOGS_PATTERNS"`
}

// StatusConfig configures section classification.
type StatusConfig struct {
	FailureKeywords []string `json:"failure_keywords" yaml:"failure_keywords" env:"TESTLOGS_FAILURE_KEYWORDS"`
}

// OutputConfig configures the documents written by a run.
type OutputConfig struct {
	JSON        string `json:"json" yaml:"json" env:"TESTLOGS_JSON"`
	HTML        string `json:"html" yaml:"html" env:"TESTLOGS_HTML"`
	YAML        string `json:"yaml" yaml:"yaml" env:"TESTLOGS_YAML"`
	MetricsFile string `json:"metrics_file" yaml:"metrics_file" env:"TESTLOGS_METRICS_FILE"`
	NoJSON      bool   `json:"no_json" yaml:"no_json" env:"TESTLOGS_NO_JSON"`
	NoHTML      bool   `json:"no_html" yaml:"no_html" env:"TESTLOGS_NO_HTML"`
}

// PublishConfig configures uploading of written documents.
type PublishConfig struct {
	Enabled bool     `json:"enabled" yaml:"enabled" env:"TESTLOGS_PUBLISH"`
	Timeout string   `json:"timeout" yaml:"timeout" env:"TESTLOGS_PUBLISH_TIMEOUT"`
	S3      S3Config `json:"s3" yaml:"s3"`
}

// S3Config holds the bucket settings. Empty credentials fall back to the
// AWS default credential chain.
type S3Config struct {
	Bucket          string `json:"bucket" yaml:"bucket" env:"TESTLOGS_S3_BUCKET"`
	Region          string `json:"region" yaml:"region" env:"TESTLOGS_S3_REGION"`
	Endpoint        string `json:"endpoint" yaml:"endpoint" env:"TESTLOGS_S3_ENDPOINT"`
	Prefix          string `json:"prefix" yaml:"prefix" env:"TESTLOGS_S3_PREFIX"`
	UsePathStyle    bool   `json:"use_path_style" yaml:"use_path_style" env:"TESTLOGS_S3_USE_PATH_STYLE"`
	AccessKeyID     string `json:"access_key_id" yaml:"access_key_id" env:"TESTLOGS_S3_ACCESS_KEY_ID"`
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key" env:"TESTLOGS_S3_SECRET_ACCESS_KEY"`
}

// PublishTimeout returns the parsed publish timeout, or DefaultPublishTimeout
// when unset or invalid.
func (c *Config) PublishTimeout() time.Duration {
	d, err := time.ParseDuration(c.Publish.Timeout)
	if err != nil || d <= 0 {
		return DefaultPublishTimeout
	}
	return d
}
