package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"library-backend/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

// MinIOStorage is the cover blob store. Object names are flat: "<title><ext>".
type MinIOStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
	maxSize   int64
	images    *ImageProcessor
}

func NewMinIOStorage(ctx context.Context, cfg config.MinIOConfig, maxSize int64) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		log.Info().Str("bucket", cfg.Bucket).Msg("created cover bucket")
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = client.EndpointURL().String()
	}

	return &MinIOStorage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		maxSize:   maxSize,
		images:    NewImageProcessor(maxSize),
	}, nil
}

func (s *MinIOStorage) objectURL(name string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, url.PathEscape(name))
}

// Upload validates file and stores it as baseName + extension.
func (s *MinIOStorage) Upload(ctx context.Context, file *File, baseName string) (string, error) {
	data, err := s.read(file)
	if err != nil {
		return "", err
	}
	return s.put(ctx, data, file.Extension(), baseName)
}

func (s *MinIOStorage) read(file *File) ([]byte, error) {
	if err := ValidateFile(file, s.maxSize); err != nil {
		return nil, err
	}
	data, _, err := s.images.Inspect(file.Content)
	return data, err
}

func (s *MinIOStorage) put(ctx context.Context, data []byte, ext, baseName string) (string, error) {
	name := ObjectName(baseName, ext)
	_, err := s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentTypeFor(ext)})
	if err != nil {
		return "", fmt.Errorf("failed to upload to minio: %w", err)
	}
	return s.objectURL(name), nil
}

// Copy duplicates the blob behind srcURL as newName, keeping its extension.
// The source object is left in place.
func (s *MinIOStorage) Copy(ctx context.Context, srcURL, newName string) (string, error) {
	srcName, err := ObjectNameFromURL(srcURL)
	if err != nil {
		return "", err
	}

	name := ObjectName(newName, path.Ext(srcName))
	if name == srcName {
		return s.objectURL(name), nil
	}

	_, err = s.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: s.bucket, Object: name},
		minio.CopySrcOptions{Bucket: s.bucket, Object: srcName},
	)
	if err != nil {
		return "", fmt.Errorf("failed to copy object: %w", err)
	}
	return s.objectURL(name), nil
}

// Remove deletes the blob a cover URL points at.
func (s *MinIOStorage) Remove(ctx context.Context, blobURL string) error {
	name, err := ObjectNameFromURL(blobURL)
	if err != nil {
		return err
	}
	return s.Delete(ctx, name)
}

// Delete removes an object by name. Missing objects are not an error.
func (s *MinIOStorage) Delete(ctx context.Context, name string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", name, err)
	}
	return nil
}

// ListAll returns every object name in the bucket.
func (s *MinIOStorage) ListAll(ctx context.Context) ([]string, error) {
	var names []string
	for object := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", object.Err)
		}
		names = append(names, object.Key)
	}
	return names, nil
}

// URLFor is the public URL an object name is served under.
func (s *MinIOStorage) URLFor(name string) string {
	return s.objectURL(name)
}
