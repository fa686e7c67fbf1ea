// Package s3 implements an S3 archive reply sink.
//
// Events accumulate as JSONL while the channel streams; the completed
// stream is uploaded as a single object when the sink closes. The object
// key is "<prefix>/<channel_id>.jsonl", so an archive bucket holds one
// replayable object per reply channel.
package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pellucid-io/scopes/reply"
	"github.com/pellucid-io/scopes/types"
)

// Config configures the S3 archive sink.
type Config struct {
	// Bucket is the S3 bucket name (required).
	Bucket string
	// Prefix is the key prefix within the bucket (optional).
	Prefix string
	// Region is the AWS region (optional, uses default chain if empty).
	Region string
	// Endpoint is a custom S3 endpoint URL for S3-compatible providers
	// (e.g. Cloudflare R2, MinIO). Empty uses the default AWS endpoint.
	Endpoint string
	// UsePathStyle forces path-style addressing (bucket in path, not subdomain).
	// Required by most S3-compatible providers (R2, MinIO, etc.).
	UsePathStyle bool
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Bucket == "" {
		return errors.New("S3 bucket is required")
	}
	return nil
}

// ObjectPutter is the slice of the S3 API the sink uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
}

// Sink archives a reply stream to S3 as one JSONL object.
type Sink struct {
	config Config
	client ObjectPutter

	mu        sync.Mutex
	buf       bytes.Buffer
	channelID string
	closed    bool
}

// New creates an S3 archive sink.
// Uses the AWS SDK default credential chain (env vars, shared config, IAM role).
func New(cfg Config) (*Sink, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Load AWS config with optional region
	ctx := context.Background()
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Create S3 client with optional endpoint and path-style overrides
	var s3Opts []func(*awss3.Options)
	if cfg.Endpoint != "" {
		endpoint := cfg.Endpoint
		s3Opts = append(s3Opts, func(o *awss3.Options) {
			o.BaseEndpoint = &endpoint
		})
	}
	if cfg.UsePathStyle {
		s3Opts = append(s3Opts, func(o *awss3.Options) {
			o.UsePathStyle = true
		})
	}

	return NewWithClient(cfg, awss3.NewFromConfig(awsCfg, s3Opts...)), nil
}

// NewWithClient creates a sink over an existing S3 client.
func NewWithClient(cfg Config, client ObjectPutter) *Sink {
	return &Sink{config: cfg, client: client}
}

// Key returns the object key the archive is written to.
func (s *Sink) Key(channelID string) string {
	return path.Join(s.config.Prefix, channelID+".jsonl")
}

// Send appends one event line to the pending archive.
func (s *Sink) Send(ctx context.Context, ev *types.ReplyEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	line, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("s3: marshal event: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("s3: sink closed")
	}
	if s.channelID == "" {
		s.channelID = ev.ChannelID
	}
	s.buf.Write(line)
	s.buf.WriteByte('\n')
	return nil
}

// Close uploads the accumulated stream. A sink that received no events
// uploads nothing. Close is idempotent; only the first call uploads.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	if s.buf.Len() == 0 {
		return nil
	}

	_, err := s.client.PutObject(context.Background(), &awss3.PutObjectInput{
		Bucket:      aws.String(s.config.Bucket),
		Key:         aws.String(s.Key(s.channelID)),
		Body:        bytes.NewReader(s.buf.Bytes()),
		ContentType: aws.String("application/jsonl"),
	})
	if err != nil {
		return fmt.Errorf("s3: upload archive: %w", err)
	}
	return nil
}

// Verify Sink implements the reply sink interface.
var _ reply.Sink = (*Sink)(nil)
