package minio

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config interface {
	GetEndpoint() string
	GetAccessKey() string
	GetSecretKey() string
	GetBucket() string
	IsSecure() bool
}

// Client reads dataset workbooks from a single bucket.
type Client struct {
	client *minio.Client
	bucket string
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	endpoint := strings.TrimPrefix(cfg.GetEndpoint(), "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	mc, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetAccessKey(), cfg.GetSecretKey(), ""),
		Secure: cfg.IsSecure(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := mc.BucketExists(ctx, cfg.GetBucket())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MinIO server: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q does not exist", cfg.GetBucket())
	}

	return &Client{client: mc, bucket: cfg.GetBucket()}, nil
}

func (c *Client) Bucket() string {
	return c.bucket
}

// GetObject returns the object body. Stat is called first so a missing key
// fails here instead of on the first Read.
func (c *Client) GetObject(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := c.client.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s/%s: %w", c.bucket, key, err)
	}
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, fmt.Errorf("stat object %s/%s: %w", c.bucket, key, err)
	}
	return obj, nil
}
