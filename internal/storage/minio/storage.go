package minio

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/aliskhannn/image-compressor/internal/model"
	"github.com/aliskhannn/image-compressor/internal/storage"
)

// Storage serves images from an S3-compatible bucket using MinIO.
// It implements the same shape as the local filesystem store.
type Storage struct {
	client     *minio.Client
	bucketName string
}

// NewStorage creates a Storage connected to the specified MinIO server.
// If the bucket does not exist, it will be created automatically.
func NewStorage(ctx context.Context, endpoint, accessKey, secretKey, bucketName string, useSSL bool) (*Storage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &Storage{
		client:     client,
		bucketName: bucketName,
	}, nil
}

// List returns every image object in the bucket with its size in whole
// kilobytes. Objects without an image extension are skipped.
func (s *Storage) List(ctx context.Context) ([]model.ImageInfo, error) {
	var infos []model.ImageInfo

	for obj := range s.client.ListObjects(ctx, s.bucketName, minio.ListObjectsOptions{}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list bucket %s: %w", s.bucketName, obj.Err)
		}

		if !storage.IsImageName(obj.Key) {
			continue
		}

		infos = append(infos, model.ImageInfo{
			Name:   obj.Key,
			SizeKB: obj.Size / 1024,
		})
	}

	return infos, nil
}

// Load reads the named object into memory. Missing objects map to
// storage.ErrImageNotFound so callers can translate them to a 404.
func (s *Storage) Load(ctx context.Context, name string) ([]byte, error) {
	if err := storage.ValidateName(name); err != nil {
		return nil, err
	}

	obj, err := s.client.GetObject(ctx, s.bucketName, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to load object %s: %w", name, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, storage.ErrImageNotFound
		}

		return nil, fmt.Errorf("failed to read object %s: %w", name, err)
	}

	return data, nil
}
