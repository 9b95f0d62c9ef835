package ports

import (
	"context"
	"io"
)

// AssetRef describes a stored media asset.
type AssetRef struct {
	Key         string
	Filename    string
	ContentType string
	Size        int64
}

// MediaStore persists uploaded media blobs (audio, cover images) under
// opaque keys and streams them back for playback.
type MediaStore interface {
	Put(ctx context.Context, key, filename, contentType string, r io.Reader) (*AssetRef, error)
	// Open returns the asset stream; the caller must close it.
	Open(ctx context.Context, key string) (*AssetRef, io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// PurgeTask asks the background purge workers to delete a stored asset.
// Reason is recorded in logs and metrics, not interpreted.
type PurgeTask struct {
	AssetKey string
	Reason   string
}
