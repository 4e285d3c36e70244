package resource

import (
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectAPI is the subset of *s3.Client used by S3Source.
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// S3Source reads resources from an S3 bucket. Resource paths map to object
// keys below prefix, so "templates/my-card.html" is read from
// "<prefix>templates/my-card.html".
//
// Example usage:
//
//	client := s3.New(s3.Options{Region: "eu-west-1", Credentials: creds})
//	src := resource.NewS3Source(client, "components", "site/")
//	cache := resource.NewCache(src)
type S3Source struct {
	client  ObjectAPI
	bucket  string
	prefix  string
	timeout time.Duration
}

// NewS3Source creates a new S3-backed resource source.
//
// Parameters:
//   - client: *s3.Client from aws-sdk-go-v2 (or anything implementing ObjectAPI)
//   - bucket: S3 bucket name
//   - prefix: Key prefix for resources (e.g., "site/")
func NewS3Source(client ObjectAPI, bucket, prefix string) *S3Source {
	return &S3Source{
		client:  client,
		bucket:  bucket,
		prefix:  prefix,
		timeout: 10 * time.Second,
	}
}

// WithTimeout sets the per-request timeout.
func (s *S3Source) WithTimeout(d time.Duration) *S3Source {
	s.timeout = d
	return s
}

// Key returns the object key for a resource path.
func (s *S3Source) Key(name string) string {
	name = strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(name, "\\", "/")), "/")
	return s.prefix + name
}

// ReadFile implements Source.
func (s *S3Source) ReadFile(name string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.Key(name)),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

// Exists implements Source.
func (s *S3Source) Exists(name string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.Key(name)),
	})
	return err == nil
}
