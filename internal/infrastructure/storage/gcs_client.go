package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"cloud.google.com/go/storage"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"rugstore/internal/domain/service"
	"rugstore/pkg/logger"
)

type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
	log        logger.Logger
}

func NewCloudStorageClient(ctx context.Context, bucketName string, log logger.Logger, opts ...option.ClientOption) (*CloudStorageClient, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
		log:        log.With("component", "storage", "bucket", bucketName),
	}, nil
}

// EnsureCORS lets the admin and storefront origins read uploaded images. An
// existing CORS configuration is left alone.
func (c *CloudStorageClient) EnsureCORS(ctx context.Context, origins []string) error {
	bucket := c.client.Bucket(c.bucketName)

	bucketAttrs, err := bucket.Attrs(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bucket attributes: %w", err)
	}
	if len(bucketAttrs.CORS) > 0 {
		return nil
	}

	_, err = bucket.Update(ctx, storage.BucketAttrsToUpdate{
		CORS: []storage.CORS{{
			MaxAge:          time.Hour,
			Methods:         []string{"GET", "HEAD"},
			Origins:         origins,
			ResponseHeaders: []string{"Content-Type"},
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to update bucket CORS: %w", err)
	}
	c.log.Info("bucket CORS configured", "origins", origins)
	return nil
}

func (c *CloudStorageClient) Upload(ctx context.Context, folder, filename, contentType string, content io.Reader) (service.StoredFile, error) {
	ref := ObjectName(folder, filename, contentType, time.Now())

	wc := c.client.Bucket(c.bucketName).Object(ref).NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = "public, max-age=31536000, immutable"

	if _, err := io.Copy(wc, content); err != nil {
		_ = wc.Close()
		return service.StoredFile{}, fmt.Errorf("failed to copy file to GCS: %w", err)
	}
	if err := wc.Close(); err != nil {
		return service.StoredFile{}, fmt.Errorf("failed to close writer: %w", err)
	}

	c.log.Debug("object uploaded", "ref", ref, "contentType", contentType)
	return service.StoredFile{URL: c.URL(ref), Ref: ref}, nil
}

func (c *CloudStorageClient) URL(ref string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketName, ref)
}

// Delete removes the object at ref. A missing object is not an error.
func (c *CloudStorageClient) Delete(ctx context.Context, ref string) error {
	err := c.client.Bucket(c.bucketName).Object(ref).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}

// ObjectName builds a collision-free object path keeping a recognizable
// stem of the original filename.
func ObjectName(folder, filename, contentType string, now time.Time) string {
	ext := path.Ext(filename)
	if m := mimetype.Lookup(contentType); m != nil && m.Extension() != "" {
		ext = m.Extension()
	}
	if ext == "" {
		ext = ".bin"
	}
	return fmt.Sprintf("%s/%s-%s%s", path.Clean(folder), now.UTC().Format("20060102150405"), uuid.NewString(), ext)
}
