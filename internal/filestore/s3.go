package filestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Config carries the connection settings for the object store backend.
type S3Config struct {
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// S3 stores files in a MinIO-compatible object store. Objects are written
// publicly readable under the recipes prefix, so FileURL can address them
// directly on the store.
type S3 struct {
	client *minio.Client
	bucket string
	host   string
}

var _ FileStore = (*S3)(nil)

func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("checking bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("creating bucket: %w", err)
		}
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return &S3{
		client: client,
		bucket: cfg.Bucket,
		host:   fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket),
	}, nil
}

func (s *S3) WriteRecipeImage(ctx context.Context, recipeID int64, suffix string, data []byte) (string, int, error) {
	objectName := recipeImagePath(recipeID, suffix)
	contentType := mime.TypeByExtension(suffix)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	info, err := s.client.PutObject(ctx, s.bucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", 0, fmt.Errorf("putting object: %w", err)
	}
	return objectName, int(info.Size), nil
}

func (s *S3) DeleteURLPath(ctx context.Context, urlpath string) error {
	objectName := trimURLPathPrefix(urlpath, "")
	if objectName == "" {
		return errors.New("empty object name")
	}
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("removing object: %w", err)
	}
	return nil
}

func (s *S3) FileURL(urlpath string) string {
	return joinURL(s.host, urlpath)
}
