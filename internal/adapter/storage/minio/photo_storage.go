package minio

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/Abdulsamad25/apartment-rentals/internal/app/config"
	"github.com/Abdulsamad25/apartment-rentals/internal/platform/logger"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// PhotoStorage stores apartment photos in a MinIO bucket and returns a
// public URL for the catalog record.
type PhotoStorage struct {
	client *minio.Client
	bucket string
	log    logger.Logger
}

func NewPhotoStorage(cfg config.MinIOConfig, log logger.Logger) (*PhotoStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for %s: %w", cfg.Endpoint, err)
	}

	err = client.MakeBucket(context.Background(), cfg.Bucket, minio.MakeBucketOptions{})
	if err != nil {
		exists, errExists := client.BucketExists(context.Background(), cfg.Bucket)
		if errExists != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &PhotoStorage{client: client, bucket: cfg.Bucket, log: log}, nil
}

func (s *PhotoStorage) Upload(ctx context.Context, originalFileName string, data []byte) (string, error) {
	ext := filepath.Ext(originalFileName)
	objectKey := fmt.Sprintf("photos/%s%s", uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		s.log.Errorf("PhotoStorage.Upload: PutObject failed for %s: %v", objectKey, err)
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectKey, s.bucket, err)
	}

	url := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey)
	s.log.Infof("PhotoStorage.Upload: uploaded %s (%d bytes)", url, len(data))
	return url, nil
}
