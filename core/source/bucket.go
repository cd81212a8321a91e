package source

import (
	"context"
	"fmt"
	"io"
	"path"

	"proc-loader/core/storage"

	"github.com/minio/minio-go/v7"
)

// Bucket reads resources from an S3/MinIO bucket, optionally below a key prefix.
type Bucket struct {
	client storage.Client
	bucket string
	prefix string
}

// NewBucket creates a bucket-backed source.
func NewBucket(client storage.Client, bucket, prefix string) *Bucket {
	return &Bucket{client: client, bucket: bucket, prefix: cleanName(prefix)}
}

// Key returns the object key a resource name maps to.
func (b *Bucket) Key(name string) string {
	return path.Join(b.prefix, cleanName(name))
}

// Fetch satisfies [Source].
func (b *Bucket) Fetch(ctx context.Context, name string) ([]byte, error) {
	key := b.Key(name)
	obj, err := b.client.GetObject(ctx, b.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, b.translate(key, err)
	}
	defer obj.Close()

	// The object is read lazily, so a missing key may only surface here.
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, b.translate(key, err)
	}
	return data, nil
}

// Check verifies that the configured bucket is reachable.
func (b *Bucket) Check(ctx context.Context) error {
	exists, err := b.client.BucketExists(ctx, b.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", b.bucket)
	}
	return nil
}

func (b *Bucket) translate(key string, err error) error {
	if storage.IsNotFound(err) {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, b.bucket, key)
	}
	return fmt.Errorf("failed to get object %s/%s: %w", b.bucket, key, err)
}
