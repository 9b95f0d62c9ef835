package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/soundstash/media-catalog/internal/core/domain"
)

const (
	songsCollection     = "songs"
	albumsCollection    = "albums"
	playlistsCollection = "playlists"
)

// SongRepository persists songs.
type SongRepository struct {
	coll *mongo.Collection
}

func NewSongRepository(db *mongo.Database) *SongRepository {
	return &SongRepository{coll: db.Collection(songsCollection)}
}

func (r *SongRepository) Insert(ctx context.Context, song *domain.Song) (*domain.Song, error) {
	doc := bson.M{
		"name":       song.Name,
		"artist":     song.Artist,
		"album_id":   song.AlbumID,
		"duration":   song.Duration,
		"audio":      song.Audio,
		"image":      song.Image,
		"created_at": song.CreatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert song: %w", err)
	}

	created := *song
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *SongRepository) FindByID(ctx context.Context, id string) (*domain.Song, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSongNotFound
	}

	var raw struct {
		ID          primitive.ObjectID `bson:"_id"`
		domain.Song `bson:",inline"`
	}
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&raw); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrSongNotFound
		}
		return nil, fmt.Errorf("find song: %w", err)
	}
	song := raw.Song
	song.ID = raw.ID.Hex()
	return &song, nil
}

func (r *SongRepository) List(ctx context.Context) ([]*domain.Song, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	defer cur.Close(ctx)

	songs := []*domain.Song{}
	for cur.Next(ctx) {
		var raw struct {
			ID          primitive.ObjectID `bson:"_id"`
			domain.Song `bson:",inline"`
		}
		if err := cur.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode song: %w", err)
		}
		song := raw.Song
		song.ID = raw.ID.Hex()
		songs = append(songs, &song)
	}
	return songs, cur.Err()
}

func (r *SongRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrSongNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete song: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSongNotFound
	}
	return nil
}

// AlbumRepository persists albums.
type AlbumRepository struct {
	coll *mongo.Collection
}

func NewAlbumRepository(db *mongo.Database) *AlbumRepository {
	return &AlbumRepository{coll: db.Collection(albumsCollection)}
}

func (r *AlbumRepository) Insert(ctx context.Context, album *domain.Album) (*domain.Album, error) {
	doc := bson.M{
		"name":       album.Name,
		"artist":     album.Artist,
		"bg_color":   album.BgColor,
		"image":      album.Image,
		"created_at": album.CreatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert album: %w", err)
	}

	created := *album
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *AlbumRepository) FindByID(ctx context.Context, id string) (*domain.Album, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAlbumNotFound
	}

	var raw struct {
		ID          primitive.ObjectID `bson:"_id"`
		domain.Album `bson:",inline"`
	}
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&raw); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAlbumNotFound
		}
		return nil, fmt.Errorf("find album: %w", err)
	}
	album := raw.Album
	album.ID = raw.ID.Hex()
	return &album, nil
}

func (r *AlbumRepository) List(ctx context.Context) ([]*domain.Album, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	defer cur.Close(ctx)

	albums := []*domain.Album{}
	for cur.Next(ctx) {
		var raw struct {
			ID           primitive.ObjectID `bson:"_id"`
			domain.Album `bson:",inline"`
		}
		if err := cur.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode album: %w", err)
		}
		album := raw.Album
		album.ID = raw.ID.Hex()
		albums = append(albums, &album)
	}
	return albums, cur.Err()
}

func (r *AlbumRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAlbumNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete album: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAlbumNotFound
	}
	return nil
}

// PlaylistRepository persists playlists.
type PlaylistRepository struct {
	coll *mongo.Collection
}

func NewPlaylistRepository(db *mongo.Database) *PlaylistRepository {
	return &PlaylistRepository{coll: db.Collection(playlistsCollection)}
}

func (r *PlaylistRepository) Insert(ctx context.Context, playlist *domain.Playlist) (*domain.Playlist, error) {
	doc := bson.M{
		"name":       playlist.Name,
		"owner_id":   playlist.OwnerID,
		"song_ids":   playlist.SongIDs,
		"created_at": playlist.CreatedAt,
		"updated_at": playlist.UpdatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert playlist: %w", err)
	}

	created := *playlist
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *PlaylistRepository) FindByID(ctx context.Context, id string) (*domain.Playlist, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPlaylistNotFound
	}

	var raw struct {
		ID          primitive.ObjectID `bson:"_id"`
		domain.Playlist `bson:",inline"`
	}
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&raw); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("find playlist: %w", err)
	}
	playlist := raw.Playlist
	playlist.ID = raw.ID.Hex()
	return &playlist, nil
}

func (r *PlaylistRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Playlist, error) {
	cur, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID}, options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer cur.Close(ctx)

	playlists := []*domain.Playlist{}
	for cur.Next(ctx) {
		var raw struct {
			ID              primitive.ObjectID `bson:"_id"`
			domain.Playlist `bson:",inline"`
		}
		if err := cur.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode playlist: %w", err)
		}
		playlist := raw.Playlist
		playlist.ID = raw.ID.Hex()
		playlists = append(playlists, &playlist)
	}
	return playlists, cur.Err()
}

func (r *PlaylistRepository) AddSong(ctx context.Context, playlistID, songID string) error {
	oid, err := primitive.ObjectIDFromHex(playlistID)
	if err != nil {
		return domain.ErrPlaylistNotFound
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$addToSet":    bson.M{"song_ids": songID},
			"$currentDate": bson.M{"updated_at": true},
		},
	)
	if err != nil {
		return fmt.Errorf("add playlist song: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPlaylistNotFound
	}
	return nil
}

func (r *PlaylistRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPlaylistNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPlaylistNotFound
	}
	return nil
}
