package mongo

import (
	"context"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/soundstash/media-catalog/internal/core/domain"
	"github.com/soundstash/media-catalog/internal/core/ports"
)

const mediaBucket = "media"

// MediaStore keeps uploaded audio and cover blobs in a GridFS bucket, keyed
// by the opaque asset key the catalog assigns at upload time. Using the same
// MongoDB deployment as the catalog keeps the media host a single moving part.
type MediaStore struct {
	bucket *gridfs.Bucket
}

func NewMediaStore(db *mongo.Database) (*MediaStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(mediaBucket))
	if err != nil {
		return nil, fmt.Errorf("gridfs bucket: %w", err)
	}
	return &MediaStore{bucket: bucket}, nil
}

type mediaMeta struct {
	ContentType string `bson:"content_type"`
}

func (s *MediaStore) Put(ctx context.Context, key, filename, contentType string, r io.Reader) (*ports.AssetRef, error) {
	opts := options.GridFSUpload().SetMetadata(mediaMeta{ContentType: contentType})

	// GridFS file _id is the asset key; filename is kept for operators
	// browsing the bucket.
	us, err := s.bucket.OpenUploadStreamWithID(key, filename, opts)
	if err != nil {
		return nil, fmt.Errorf("open upload stream: %w", err)
	}

	size, err := io.Copy(us, r)
	if cerr := us.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("write media %s: %w", key, err)
	}

	return &ports.AssetRef{
		Key:         key,
		Filename:    filename,
		ContentType: contentType,
		Size:        size,
	}, nil
}

func (s *MediaStore) Open(ctx context.Context, key string) (*ports.AssetRef, io.ReadCloser, error) {
	ds, err := s.bucket.OpenDownloadStream(key)
	if err != nil {
		if err == gridfs.ErrFileNotFound {
			return nil, nil, domain.ErrAssetNotFound
		}
		return nil, nil, fmt.Errorf("open media %s: %w", key, err)
	}

	file := ds.GetFile()
	ref := &ports.AssetRef{
		Key:      key,
		Filename: file.Name,
		Size:     file.Length,
	}
	if file.Metadata != nil {
		var meta mediaMeta
		if err := bson.Unmarshal(file.Metadata, &meta); err == nil {
			ref.ContentType = meta.ContentType
		}
	}
	return ref, ds, nil
}

func (s *MediaStore) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(key); err != nil {
		if err == gridfs.ErrFileNotFound {
			return domain.ErrAssetNotFound
		}
		return fmt.Errorf("delete media %s: %w", key, err)
	}
	return nil
}
