package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"eklerchik/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const cacheControl = "max-age=3600"

// ErrNotConfigured is returned when no bucket credentials were provided.
var ErrNotConfigured = errors.New("image storage is not configured")

// ImageStore uploads images and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Client wraps an S3 client pointed at the S3-compatible image bucket.
type Client struct {
	s3Client  *s3.Client
	bucket    string
	publicURL string
}

func NewClient(ctx context.Context, cfg config.StorageConfig) (*Client, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		// Supabase storage only serves path-style requests.
		o.UsePathStyle = true
	})

	publicBase := cfg.PublicBaseURL
	if publicBase == "" {
		publicBase = cfg.Endpoint
	}

	log.Printf("Image storage initialized for bucket: %s", cfg.Bucket)
	return &Client{
		s3Client:  s3Client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(publicBase, "/"),
	}, nil
}

// Upload stores data under key and returns the object's public URL.
func (c *Client) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		CacheControl:  aws.String(cacheControl),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	log.Printf("Uploaded image: s3://%s/%s (%d bytes)", c.bucket, key, len(data))
	return PublicURL(c.publicURL, c.bucket, key), nil
}

func PublicURL(base, bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), bucket, key)
}
