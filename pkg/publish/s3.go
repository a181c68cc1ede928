package publish

import (
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the slice of the S3 client the store uses.
// *s3.Client satisfies it; tests substitute a mock.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store publishes files as objects in an S3 bucket.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(context.Background())
//	store := publish.NewS3Store(s3.NewFromConfig(cfg), "my-bucket",
//	    publish.WithS3Prefix("comments/"),
//	)
type S3Store struct {
	client       S3API
	bucket       string
	prefix       string
	cacheControl string
}

// S3Option configures an S3Store.
type S3Option func(*S3Store)

// WithS3Prefix sets a key prefix for published objects.
func WithS3Prefix(prefix string) S3Option {
	return func(s *S3Store) {
		s.prefix = prefix
	}
}

// WithS3CacheControl sets the Cache-Control header stored with each object.
func WithS3CacheControl(value string) S3Option {
	return func(s *S3Store) {
		s.cacheControl = value
	}
}

// NewS3Store creates an S3 publish destination.
func NewS3Store(client S3API, bucket string, opts ...S3Option) *S3Store {
	s := &S3Store{
		client: client,
		bucket: bucket,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put uploads body as an object under the configured prefix.
func (s *S3Store) Put(ctx context.Context, path string, contentType string, body io.Reader) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(path)),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if s.cacheControl != "" {
		input.CacheControl = aws.String(s.cacheControl)
	}

	_, err := s.client.PutObject(ctx, input)
	return err
}

func (s *S3Store) key(path string) string {
	return s.prefix + strings.TrimPrefix(path, "/")
}
