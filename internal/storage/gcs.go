package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"cropcast/internal/logger"
)

// GCSClient handles Google Cloud Storage operations
type GCSClient struct {
	client *storage.Client
	bucket string
}

// NewGCSClient creates a new GCS client
func NewGCSClient(ctx context.Context, bucketName string) (*GCSClient, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("GCS bucket name is required")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSClient{
		client: client,
		bucket: bucketName,
	}, nil
}

// Close closes the GCS client
func (g *GCSClient) Close() error {
	return g.client.Close()
}

// CreateDir is a no-op for GCS, which has no real directories.
// Object paths imply their own hierarchy.
func (g *GCSClient) CreateDir(ctx context.Context, dirPath string) error {
	return nil
}

// StoreFile uploads a file to GCS at the given object path
func (g *GCSClient) StoreFile(ctx context.Context, filePath string, fileData []byte) error {
	logger.Debugw("Storing file to GCS", "bucket", g.bucket, "path", filePath)

	obj := g.client.Bucket(g.bucket).Object(filePath)

	writer := obj.NewWriter(ctx)
	writer.ContentType = GetContentType(filePath)
	writer.CacheControl = "public, max-age=3600"
	writer.Metadata = map[string]string{
		"uploaded-at": time.Now().UTC().Format(time.RFC3339),
	}

	if _, err := writer.Write(fileData); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write file to GCS: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize GCS file upload: %w", err)
	}

	return nil
}

// GetFile retrieves a file from GCS
func (g *GCSClient) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	obj := g.client.Bucket(g.bucket).Object(filePath)

	reader, err := obj.NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for file %s: %w", filePath, err)
	}
	defer reader.Close()

	fileData, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return fileData, nil
}

// ListDir lists objects under a prefix. Non-recursive listings use a
// delimiter so immediate sub-prefixes come back as entries of their own.
func (g *GCSClient) ListDir(ctx context.Context, dirPath string, recursive bool) ([]string, error) {
	prefix := strings.TrimSuffix(dirPath, "/")
	if prefix != "" {
		prefix += "/"
	}

	query := &storage.Query{Prefix: prefix}
	if !recursive {
		query.Delimiter = "/"
	}

	it := g.client.Bucket(g.bucket).Objects(ctx, query)

	var entries []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects under %s: %w", prefix, err)
		}

		if attrs.Prefix != "" {
			entries = append(entries, strings.TrimSuffix(attrs.Prefix, "/"))
			continue
		}
		entries = append(entries, attrs.Name)
	}

	return entries, nil
}

// FileExists checks whether an object exists in the bucket
func (g *GCSClient) FileExists(ctx context.Context, filePath string) (bool, error) {
	obj := g.client.Bucket(g.bucket).Object(filePath)

	_, err := obj.Attrs(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check object %s: %w", filePath, err)
	}
	return true, nil
}
