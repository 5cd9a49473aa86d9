// Package publish uploads written report documents to S3-compatible storage.
package publish

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Uploader is the subset of the S3 client used for publishing.
type Uploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config holds the S3 connection settings.
type Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	RunID           string // generated when empty
}

// S3Publisher uploads files under <prefix>/<run-id>/<basename>.
type S3Publisher struct {
	client Uploader
	bucket string
	prefix string
	runID  string
}

var contentTypes = map[string]string{
	".json": "application/json",
	".html": "text/html; charset=utf-8",
	".htm":  "text/html; charset=utf-8",
	".yaml": "application/yaml",
	".yml":  "application/yaml",
	".prom": "text/plain; version=0.0.4; charset=utf-8",
}

// NewS3Publisher creates a publisher backed by an S3 client. Empty
// credentials and region fall back to the AWS default configuration chain.
func NewS3Publisher(ctx context.Context, cfg Config) (*S3Publisher, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	var opts []func(*awsconfig.LoadOptions) error
	if region := strings.TrimSpace(cfg.Region); region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	if strings.TrimSpace(cfg.AccessKeyID) != "" && strings.TrimSpace(cfg.SecretAccessKey) != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create aws config: %w", err)
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	client := s3.NewFromConfig(awsCfg, func(options *s3.Options) {
		if endpoint != "" {
			options.BaseEndpoint = aws.String(endpoint)
		}
		options.UsePathStyle = cfg.UsePathStyle
	})

	return NewS3PublisherWithClient(client, cfg.Bucket, cfg.Prefix, cfg.RunID), nil
}

// NewS3PublisherWithClient creates a publisher around an existing client.
// An empty runID is replaced with a random UUID.
func NewS3PublisherWithClient(client Uploader, bucket, prefix, runID string) *S3Publisher {
	if runID == "" {
		runID = uuid.NewString()
	}
	return &S3Publisher{
		client: client,
		bucket: strings.TrimSpace(bucket),
		prefix: strings.Trim(strings.TrimSpace(prefix), "/"),
		runID:  runID,
	}
}

// RunID returns the identifier shared by every object of this run.
func (p *S3Publisher) RunID() string {
	return p.runID
}

// Key returns the object key for a local file.
func (p *S3Publisher) Key(file string) string {
	return path.Join(p.prefix, p.runID, filepath.Base(file))
}

// URL returns the s3:// URL of an object key.
func (p *S3Publisher) URL(key string) string {
	return fmt.Sprintf("s3://%s/%s", p.bucket, key)
}

// Publish uploads files in order and returns their object URLs. It stops at
// the first failure and returns the URLs uploaded so far.
func (p *S3Publisher) Publish(ctx context.Context, files []string) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, file := range files {
		body, err := os.ReadFile(file)
		if err != nil {
			return urls, fmt.Errorf("failed to read %s: %w", file, err)
		}

		key := p.Key(file)
		_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(p.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(body),
			ContentType: aws.String(ContentType(file)),
		})
		if err != nil {
			return urls, fmt.Errorf("failed to upload %s: %w", file, err)
		}

		url := p.URL(key)
		log.WithFields(log.Fields{
			"run_id": p.runID,
			"file":   file,
			"url":    url,
		}).Info("Report published")
		urls = append(urls, url)
	}
	return urls, nil
}

// ContentType returns the MIME type used for a file, based on its extension.
func ContentType(file string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(file))]; ok {
		return ct
	}
	return "application/octet-stream"
}
