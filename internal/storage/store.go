// Package storage persists rendered report files.
package storage

import (
	"context"
	"fmt"
)

// Store writes an object under key and returns where it landed.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Options selects and configures an archive backend.
type Options struct {
	Backend string
	Path    string
	Region  string
	Bucket  string
	Prefix  string
}

// Open builds the Store named by opts.Backend ("fs" or "s3").
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", "fs":
		return NewFileStore(opts.Path)
	case "s3":
		return NewS3Store(ctx, opts.Region, opts.Bucket, opts.Prefix)
	}
	return nil, fmt.Errorf("storage: unknown backend %q", opts.Backend)
}
