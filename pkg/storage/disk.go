// Package storage stores uploaded media, chiefly product images. Two
// drivers ship out of the box:
//   - "local" — local filesystem (default)
//   - "s3"    — S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Quick start:
//
//	storage.Connect()
//	storage.Put(ctx, "products/p1.jpg", file)
//	url := storage.URL("products/p1.jpg")
package storage

import (
	"context"
	"io"
)

// Disk is the media driver interface.
type Disk interface {
	// Put writes from r to path, creating parents as needed.
	Put(ctx context.Context, path string, r io.Reader) error

	// Get returns a ReadCloser for the file. Caller must close it.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) bool

	// Delete removes a file. Removing an absent file is not an error.
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for path.
	URL(path string) string

	// Files lists the files directly under prefix.
	Files(ctx context.Context, prefix string) ([]string, error)
}
