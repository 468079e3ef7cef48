// Package storage archives raw NOMIS sync payloads in an S3-compatible object store.
// Implementations stream content and never touch local disk.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes, or -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is an S3-compatible object storage client.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited download URL for the object.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// ArchiveKey is the object key of a NOMIS payload received at the given instant.
func ArchiveKey(incidentID int64, at time.Time) string {
	return fmt.Sprintf("nomis/%d/%s.json", incidentID, at.UTC().Format("20060102T150405.000000000Z"))
}

// Archive stores a raw NOMIS incident payload under ArchiveKey.
func Archive(ctx context.Context, st Storage, incidentID int64, at time.Time, payload []byte) (ObjectInfo, error) {
	key := ArchiveKey(incidentID, at)
	info, err := st.Put(ctx, key, bytes.NewReader(payload), PutObjectOptions{
		Size:        int64(len(payload)),
		ContentType: "application/json",
		Metadata:    map[string]string{"incident-id": fmt.Sprint(incidentID)},
	})
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("archive %s: %w", key, err)
	}
	return info, nil
}
