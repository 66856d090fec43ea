package storage

import (
	"context"
	"io"
	"time"
)

// Package storage contains the blob store port for S3-compatible object
// stores. Implementations must avoid using local disk and rely on streaming
// I/O only.

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and
// the implementation will buffer/chunk as supported by the backend.
// ContentType and Metadata are optional.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is a reusable, S3-compatible blob store port, safe for concurrent
// use across operations. The upload orchestrator probes Ready before writing
// so a blob outage can be turned into a degraded upload (lenient mode) or a
// hard failure (strict mode).
type Storage interface {
	// Ready reports whether the backing bucket is reachable. It never returns
	// an error: any probe failure reads as not ready.
	Ready(ctx context.Context) bool
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
