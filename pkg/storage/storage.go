// Package storage holds tfgrant's cached advisor responses and
// exported artifacts (policies, reports) behind a pluggable blob
// interface, local filesystem by default and S3 for shared caches.
package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// ErrNotFound is returned by Get for keys with no stored value.
var ErrNotFound = errors.New("storage: key not found")

// BlobStore is the backend contract for caches and artifact export.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
}

// FromURL picks a backend from a target string: "s3://bucket/prefix"
// for S3, anything else is a local directory path.
func FromURL(target string, cfg aws.Config) BlobStore {
	if rest, ok := strings.CutPrefix(target, "s3://"); ok {
		bucket, prefix, _ := strings.Cut(rest, "/")
		return NewS3Store(cfg, bucket, prefix)
	}
	return NewLocalStore(target)
}
