package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/foodgram/backend/config"
)

// ImageStore persists decoded image blobs and returns a public URL.
type ImageStore interface {
	Save(ctx context.Context, img *DecodedImage) (string, error)
}

// LocalImageStore writes images under a media directory served as static
// files by the API server.
type LocalImageStore struct {
	dir     string
	baseURL string
}

var _ ImageStore = (*LocalImageStore)(nil)

func NewLocalImageStore(dir, baseURL string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &LocalImageStore{dir: dir, baseURL: baseURL}, nil
}

func (s *LocalImageStore) Save(ctx context.Context, img *DecodedImage) (string, error) {
	// uuid prefix keeps the original "photo.<ext>" name without collisions
	name := fmt.Sprintf("%s_%s", uuid.New().String(), img.Name)
	if err := os.WriteFile(filepath.Join(s.dir, name), img.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return fmt.Sprintf("%s/media/%s", s.baseURL, name), nil
}

// S3ImageStore uploads images to an S3 bucket with public-read objects.
type S3ImageStore struct {
	s3cfg *config.S3Config
}

var _ ImageStore = (*S3ImageStore)(nil)

func NewS3ImageStore(s3cfg *config.S3Config) *S3ImageStore {
	return &S3ImageStore{s3cfg: s3cfg}
}

func (s *S3ImageStore) Save(ctx context.Context, img *DecodedImage) (string, error) {
	key := fmt.Sprintf("recipe-images/%s_%s", uuid.New().String(), img.Name)

	_, err := s.s3cfg.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3cfg.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(img.Data),
		ContentType: aws.String(img.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3cfg.BucketName, key), nil
}
