// Package storage keeps generated report documents and uploaded pictures.
package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"time"
)

var (
	ErrNotFound    = errors.New("object not found")
	ErrInvalidName = errors.New("invalid object name")
)

// Info describes one stored object.
type Info struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// Store is a flat namespace of named blobs.
type Store interface {
	Put(ctx context.Context, name string, r io.Reader) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Stat(ctx context.Context, name string) (Info, error)
	List(ctx context.Context) ([]Info, error)
}

// UseGCS reports whether the process runs against Google Cloud: either
// USE_GCS is set, or Cloud Run / service account credentials are present.
func UseGCS(forced bool) bool {
	return forced ||
		os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" ||
		os.Getenv("K_SERVICE") != ""
}

// New returns the GCS store in production and a local directory otherwise.
func New(ctx context.Context, useGCS bool, bucket, dir string) (Store, error) {
	if UseGCS(useGCS) {
		if bucket == "" {
			return nil, errors.New("GCS_BUCKET is required when GCS storage is enabled")
		}
		return NewGCS(ctx, bucket)
	}
	return NewLocal(dir)
}
