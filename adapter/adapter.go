// Package adapter provides reply sinks that deliver event streams to
// downstream systems: Redis pub/sub for live consumers, HTTP webhooks
// for push integrations, S3 for stream archival.
//
// Adapters implement reply.Sink; the producer owns adapter lifecycle and
// a sink instance serves exactly one channel.
package adapter

import (
	"fmt"
	"os"

	"github.com/pellucid-io/scopes/adapter/redis"
	"github.com/pellucid-io/scopes/adapter/s3"
	"github.com/pellucid-io/scopes/adapter/webhook"
	"github.com/pellucid-io/scopes/reply"
	"github.com/pellucid-io/scopes/wire"
)

// Sink kind discriminants for config-driven construction.
const (
	KindRedis   = "redis"
	KindWebhook = "webhook"
	KindS3      = "s3"
	KindFile    = "file"
	KindStdout  = "stdout"
)

// Config selects and configures one sink.
type Config struct {
	// Kind selects the sink implementation (redis, webhook, s3, file, stdout).
	Kind string
	// Redis configures the Redis sink when Kind is "redis".
	Redis redis.Config
	// Webhook configures the webhook sink when Kind is "webhook".
	Webhook webhook.Config
	// S3 configures the S3 archive sink when Kind is "s3".
	S3 s3.Config
	// Path is the output file path when Kind is "file".
	Path string
}

// New constructs the sink selected by cfg.Kind.
func New(cfg Config) (reply.Sink, error) {
	switch cfg.Kind {
	case KindRedis:
		return redis.New(cfg.Redis)
	case KindWebhook:
		return webhook.New(cfg.Webhook)
	case KindS3:
		return s3.New(cfg.S3)
	case KindFile:
		if cfg.Path == "" {
			return nil, fmt.Errorf("file sink requires a path")
		}
		f, err := os.Create(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("file sink: %w", err)
		}
		return wire.NewJSONLSink(f), nil
	case KindStdout:
		return wire.NewJSONLSink(os.Stdout), nil
	default:
		return nil, fmt.Errorf("unknown sink kind %q", cfg.Kind)
	}
}
