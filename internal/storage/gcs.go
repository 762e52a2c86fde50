package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type GCSStore struct {
	client *gcs.Client
	bucket string
}

// NewGCSStore uses Application Default Credentials unless opts say otherwise.
func NewGCSStore(ctx context.Context, bucket string, opts ...option.ClientOption) (*GCSStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcs bucket is not configured")
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud storage client: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

func (s *GCSStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (Object, error) {
	if strings.TrimSpace(key) == "" {
		return Object{}, ErrEmptyKey
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	wc := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	wc.ContentType = contentType
	written, err := io.Copy(wc, r)
	if err != nil {
		// cancelling before Close discards the partial upload
		cancel()
		_ = wc.Close()
		return Object{}, fmt.Errorf("failed to write data to object: %w", err)
	}
	if err := wc.Close(); err != nil {
		return Object{}, fmt.Errorf("failed to close object writer: %w", err)
	}
	return Object{
		Key:         key,
		URL:         fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, key),
		ContentType: contentType,
		Size:        written,
	}, nil
}

func (s *GCSStore) PresignedURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	return s.client.Bucket(s.bucket).SignedURL(key, &gcs.SignedURLOptions{
		Method:  "GET",
		Expires: time.Now().Add(ttl),
		Scheme:  gcs.SigningSchemeV4,
	})
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
