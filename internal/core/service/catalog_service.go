package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/soundstash/media-catalog/internal/core/domain"
	"github.com/soundstash/media-catalog/internal/core/ports"
)

// CatalogService implements song, album and playlist use cases. Media blobs
// go through the media store synchronously on upload; deletions are handed
// to the purger so a slow storage backend never blocks the request.
type CatalogService struct {
	songs     ports.SongRepository
	albums    ports.AlbumRepository
	playlists ports.PlaylistRepository
	media     ports.MediaStore
	purger    ports.MediaPurger
	logger    zerolog.Logger
}

func NewCatalogService(
	songs ports.SongRepository,
	albums ports.AlbumRepository,
	playlists ports.PlaylistRepository,
	media ports.MediaStore,
	purger ports.MediaPurger,
	logger zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		songs:     songs,
		albums:    albums,
		playlists: playlists,
		media:     media,
		purger:    purger,
		logger:    logger,
	}
}

// storeUpload writes one uploaded file under a fresh key and returns the
// reference the catalog keeps.
func (s *CatalogService) storeUpload(ctx context.Context, in ports.UploadInput) (domain.MediaRef, error) {
	key := uuid.NewString()
	if _, err := s.media.Put(ctx, key, in.Filename, in.ContentType, in.Content); err != nil {
		return domain.MediaRef{}, fmt.Errorf("store upload: %w", err)
	}
	return domain.MediaRef{Key: key, URL: "/api/media/" + key}, nil
}

func (s *CatalogService) AddSong(ctx context.Context, input ports.AddSongInput) (*domain.Song, error) {
	audio, err := s.storeUpload(ctx, input.Audio)
	if err != nil {
		return nil, err
	}
	image, err := s.storeUpload(ctx, input.Image)
	if err != nil {
		// Audio already landed; undo it so a half-uploaded song never exists.
		s.purger.Enqueue(ports.PurgeTask{AssetKey: audio.Key, Reason: "upload_rollback"})
		return nil, err
	}

	song := &domain.Song{
		Name:      strings.TrimSpace(input.Name),
		Artist:    strings.TrimSpace(input.Artist),
		AlbumID:   input.AlbumID,
		Duration:  input.Duration,
		Audio:     audio,
		Image:     image,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.songs.Insert(ctx, song)
	if err != nil {
		s.purger.Enqueue(ports.PurgeTask{AssetKey: audio.Key, Reason: "upload_rollback"})
		s.purger.Enqueue(ports.PurgeTask{AssetKey: image.Key, Reason: "upload_rollback"})
		return nil, err
	}

	s.logger.Info().Str("song_id", created.ID).Str("name", created.Name).Msg("song added")
	return created, nil
}

func (s *CatalogService) ListSongs(ctx context.Context) ([]*domain.Song, error) {
	return s.songs.List(ctx)
}

// RemoveSong deletes the catalog entry first, then schedules its media for
// purge. The ordering matters: once the document is gone no new reads can
// reach the assets, so a purge failure leaves at worst an orphan blob.
func (s *CatalogService) RemoveSong(ctx context.Context, id string) error {
	song, err := s.songs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.songs.Delete(ctx, id); err != nil {
		return err
	}

	s.purger.Enqueue(ports.PurgeTask{AssetKey: song.Audio.Key, Reason: "song_removed"})
	s.purger.Enqueue(ports.PurgeTask{AssetKey: song.Image.Key, Reason: "song_removed"})

	s.logger.Info().Str("song_id", id).Msg("song removed")
	return nil
}

func (s *CatalogService) AddAlbum(ctx context.Context, input ports.AddAlbumInput) (*domain.Album, error) {
	image, err := s.storeUpload(ctx, input.Image)
	if err != nil {
		return nil, err
	}

	album := &domain.Album{
		Name:      strings.TrimSpace(input.Name),
		Artist:    strings.TrimSpace(input.Artist),
		BgColor:   input.BgColor,
		Image:     image,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.albums.Insert(ctx, album)
	if err != nil {
		s.purger.Enqueue(ports.PurgeTask{AssetKey: image.Key, Reason: "upload_rollback"})
		return nil, err
	}

	s.logger.Info().Str("album_id", created.ID).Str("name", created.Name).Msg("album added")
	return created, nil
}

func (s *CatalogService) ListAlbums(ctx context.Context) ([]*domain.Album, error) {
	return s.albums.List(ctx)
}

func (s *CatalogService) RemoveAlbum(ctx context.Context, id string) error {
	album, err := s.albums.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.albums.Delete(ctx, id); err != nil {
		return err
	}

	s.purger.Enqueue(ports.PurgeTask{AssetKey: album.Image.Key, Reason: "album_removed"})

	s.logger.Info().Str("album_id", id).Msg("album removed")
	return nil
}

func (s *CatalogService) CreatePlaylist(ctx context.Context, actor ports.PlaylistActor, name string) (*domain.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("playlist name required")
	}

	now := time.Now().UTC()
	playlist := &domain.Playlist{
		Name:      name,
		OwnerID:   actor.SubjectID,
		SongIDs:   []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.playlists.Insert(ctx, playlist)
}

func (s *CatalogService) ListPlaylists(ctx context.Context, actor ports.PlaylistActor) ([]*domain.Playlist, error) {
	return s.playlists.ListByOwner(ctx, actor.SubjectID)
}

func (s *CatalogService) AddPlaylistSong(ctx context.Context, actor ports.PlaylistActor, playlistID, songID string) error {
	playlist, err := s.playlists.FindByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if !playlist.CanModify(actor.SubjectID, actor.Role) {
		return domain.ErrForbidden
	}
	if _, err := s.songs.FindByID(ctx, songID); err != nil {
		return err
	}
	return s.playlists.AddSong(ctx, playlistID, songID)
}

func (s *CatalogService) RemovePlaylist(ctx context.Context, actor ports.PlaylistActor, playlistID string) error {
	playlist, err := s.playlists.FindByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if !playlist.CanModify(actor.SubjectID, actor.Role) {
		return domain.ErrForbidden
	}
	return s.playlists.Delete(ctx, playlistID)
}
