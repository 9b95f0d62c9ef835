package ports

import (
	"context"
	"io"

	"github.com/soundstash/media-catalog/internal/core/domain"
)

// UploadInput carries one uploaded file from the transport layer.
type UploadInput struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// AddSongInput carries all data needed to add a song to the catalog.
type AddSongInput struct {
	Name     string
	Artist   string
	AlbumID  string
	Duration string
	Audio    UploadInput
	Image    UploadInput
}

// AddAlbumInput carries all data needed to add an album.
type AddAlbumInput struct {
	Name    string
	Artist  string
	BgColor string
	Image   UploadInput
}

// PlaylistActor identifies who is performing a playlist mutation; ownership
// checks are enforced against it.
type PlaylistActor struct {
	SubjectID string
	Role      string
}

// CatalogService defines the catalog use cases. All mutations assume the
// middleware chain has already authenticated (and, for admin operations,
// authorized) the caller.
type CatalogService interface {
	AddSong(ctx context.Context, input AddSongInput) (*domain.Song, error)
	ListSongs(ctx context.Context) ([]*domain.Song, error)
	RemoveSong(ctx context.Context, id string) error

	AddAlbum(ctx context.Context, input AddAlbumInput) (*domain.Album, error)
	ListAlbums(ctx context.Context) ([]*domain.Album, error)
	RemoveAlbum(ctx context.Context, id string) error

	CreatePlaylist(ctx context.Context, actor PlaylistActor, name string) (*domain.Playlist, error)
	ListPlaylists(ctx context.Context, actor PlaylistActor) ([]*domain.Playlist, error)
	AddPlaylistSong(ctx context.Context, actor PlaylistActor, playlistID, songID string) error
	RemovePlaylist(ctx context.Context, actor PlaylistActor, playlistID string) error
}

// MediaPurger accepts asynchronous deletion work for stored media assets.
type MediaPurger interface {
	Enqueue(task PurgeTask)
}
