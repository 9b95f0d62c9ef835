package ports

import (
	"context"

	"github.com/soundstash/media-catalog/internal/core/domain"
)

// SongRepository defines persistence operations for songs.
type SongRepository interface {
	Insert(ctx context.Context, song *domain.Song) (*domain.Song, error)
	FindByID(ctx context.Context, id string) (*domain.Song, error)
	List(ctx context.Context) ([]*domain.Song, error)
	Delete(ctx context.Context, id string) error
}

// AlbumRepository defines persistence operations for albums.
type AlbumRepository interface {
	Insert(ctx context.Context, album *domain.Album) (*domain.Album, error)
	FindByID(ctx context.Context, id string) (*domain.Album, error)
	List(ctx context.Context) ([]*domain.Album, error)
	Delete(ctx context.Context, id string) error
}

// PlaylistRepository defines persistence operations for playlists.
type PlaylistRepository interface {
	Insert(ctx context.Context, playlist *domain.Playlist) (*domain.Playlist, error)
	FindByID(ctx context.Context, id string) (*domain.Playlist, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Playlist, error)
	AddSong(ctx context.Context, playlistID, songID string) error
	Delete(ctx context.Context, id string) error
}
