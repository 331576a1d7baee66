// Package storage implements the image host collaborator on top of an
// S3-compatible object store. Uploaded images are publicly readable; the
// store hands back the public URL that ends up on restaurant and menu records.
package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/quickplate/food-ordering-api/internal/api/metrics"
	"github.com/quickplate/food-ordering-api/internal/core/ports"
)

// Config captures the settings for the image bucket.
type Config struct {
	Bucket        string
	Region        string
	Endpoint      string // optional, for S3-compatible providers
	AccessKeyID   string
	SecretKey     string
	PublicBaseURL string // optional, defaults to the virtual-hosted AWS URL
}

// S3ImageStore implements ports.ImageStore.
type S3ImageStore struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

func NewS3ImageStore(cfg Config) *S3ImageStore {
	opts := s3.Options{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	base := cfg.PublicBaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3ImageStore{
		client:        s3.New(opts),
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(base, "/"),
	}
}

// Upload stores the image under a fresh key and returns its public URL. The
// caller's ctx bounds the call; a cancelled upload leaves nothing referenced.
func (s *S3ImageStore) Upload(ctx context.Context, img ports.ImageUpload) (string, error) {
	key := objectKey(img.Filename)

	start := time.Now()
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        img.Body,
		ContentType: aws.String(contentType(img)),
	})
	metrics.ImageUploadDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("put object %q: %w", key, err)
	}

	return s.publicBaseURL + "/" + key, nil
}

// objectKey derives a collision-free key, keeping the original extension so
// browsers infer the type from the URL.
func objectKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return "images/" + uuid.NewString() + ext
}

func contentType(img ports.ImageUpload) string {
	if img.ContentType != "" {
		return img.ContentType
	}
	return "application/octet-stream"
}
