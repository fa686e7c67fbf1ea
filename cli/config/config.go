package config

import (
	"fmt"
	"time"

	"github.com/pellucid-io/scopes/adapter"
	"github.com/pellucid-io/scopes/adapter/redis"
	"github.com/pellucid-io/scopes/adapter/s3"
	"github.com/pellucid-io/scopes/adapter/webhook"
)

// Config represents a scopes.yaml configuration file.
// All values are optional and act as defaults for scopectl flags.
// CLI flags always override config values.
type Config struct {
	Scope ScopeConfig `yaml:"scope"`
	Sink  SinkConfig  `yaml:"sink"`
}

// ScopeConfig holds scope identity defaults from the config file.
type ScopeConfig struct {
	ID          string `yaml:"id"`
	Locale      string `yaml:"locale"`
	FormFactor  string `yaml:"form_factor"`
	Cardinality int    `yaml:"cardinality"`
}

// SinkConfig selects and configures the reply sink.
type SinkConfig struct {
	Kind    string        `yaml:"kind"`
	Path    string        `yaml:"path,omitempty"`
	Redis   RedisConfig   `yaml:"redis,omitempty"`
	Webhook WebhookConfig `yaml:"webhook,omitempty"`
	S3      S3Config      `yaml:"s3,omitempty"`
}

// RedisConfig holds Redis sink settings.
type RedisConfig struct {
	URL         string   `yaml:"url"`
	TopicPrefix string   `yaml:"topic_prefix,omitempty"`
	Timeout     Duration `yaml:"timeout,omitempty"`
	Retries     *int     `yaml:"retries,omitempty"`
}

// WebhookConfig holds webhook sink settings.
type WebhookConfig struct {
	URL     string            `yaml:"url"`
	Headers map[string]string `yaml:"headers,omitempty"`
	Timeout Duration          `yaml:"timeout,omitempty"`
	Retries *int              `yaml:"retries,omitempty"`
}

// S3Config holds S3 archive sink settings.
type S3Config struct {
	Bucket      string `yaml:"bucket"`
	Prefix      string `yaml:"prefix,omitempty"`
	Region      string `yaml:"region,omitempty"`
	Endpoint    string `yaml:"endpoint,omitempty"`
	S3PathStyle bool   `yaml:"s3_path_style,omitempty"`
}

// Duration wraps time.Duration for YAML string parsing (e.g. "10s", "5m").
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a duration string like "10s" or "5m30s".
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// AdapterConfig converts the sink section into the adapter factory's
// config. An empty kind defaults to stdout.
func (c *Config) AdapterConfig() adapter.Config {
	kind := c.Sink.Kind
	if kind == "" {
		kind = adapter.KindStdout
	}
	cfg := adapter.Config{
		Kind: kind,
		Path: c.Sink.Path,
		Redis: redis.Config{
			URL:         c.Sink.Redis.URL,
			TopicPrefix: c.Sink.Redis.TopicPrefix,
			Timeout:     c.Sink.Redis.Timeout.Duration,
		},
		Webhook: webhook.Config{
			URL:     c.Sink.Webhook.URL,
			Headers: c.Sink.Webhook.Headers,
			Timeout: c.Sink.Webhook.Timeout.Duration,
		},
		S3: s3.Config{
			Bucket:       c.Sink.S3.Bucket,
			Prefix:       c.Sink.S3.Prefix,
			Region:       c.Sink.S3.Region,
			Endpoint:     c.Sink.S3.Endpoint,
			UsePathStyle: c.Sink.S3.S3PathStyle,
		},
	}
	if c.Sink.Redis.Retries != nil {
		cfg.Redis.Retries = *c.Sink.Redis.Retries
	} else {
		cfg.Redis.Retries = redis.DefaultRetries
	}
	if c.Sink.Webhook.Retries != nil {
		cfg.Webhook.Retries = *c.Sink.Webhook.Retries
	} else {
		cfg.Webhook.Retries = webhook.DefaultRetries
	}
	return cfg
}
