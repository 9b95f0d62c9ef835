package domain

import (
	"errors"
	"time"
)

var (
	ErrSongNotFound     = errors.New("song not found")
	ErrAlbumNotFound    = errors.New("album not found")
	ErrPlaylistNotFound = errors.New("playlist not found")
	ErrAssetNotFound    = errors.New("media asset not found")
)

// MediaRef points at a stored media asset. Key is the storage key assigned at
// upload; URL is the public streaming path derived from it.
type MediaRef struct {
	Key string `json:"key" bson:"key"`
	URL string `json:"url" bson:"url"`
}

// Song is a single catalog track.
type Song struct {
	ID        string    `json:"id" bson:"-"`
	Name      string    `json:"name" bson:"name"`
	Artist    string    `json:"artist" bson:"artist"`
	AlbumID   string    `json:"album_id,omitempty" bson:"album_id,omitempty"`
	Duration  string    `json:"duration" bson:"duration"`
	Audio     MediaRef  `json:"audio" bson:"audio"`
	Image     MediaRef  `json:"image" bson:"image"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Album groups songs under a shared cover.
type Album struct {
	ID        string    `json:"id" bson:"-"`
	Name      string    `json:"name" bson:"name"`
	Artist    string    `json:"artist" bson:"artist"`
	BgColor   string    `json:"bg_color,omitempty" bson:"bg_color,omitempty"`
	Image     MediaRef  `json:"image" bson:"image"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Playlist is a user-owned ordered collection of song IDs.
type Playlist struct {
	ID        string    `json:"id" bson:"-"`
	Name      string    `json:"name" bson:"name"`
	OwnerID   string    `json:"owner_id" bson:"owner_id"`
	SongIDs   []string  `json:"song_ids" bson:"song_ids"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// CanModify reports whether the given subject may mutate the playlist.
// Owners and admins may; everyone else may not.
func (p *Playlist) CanModify(subjectID, role string) bool {
	return p.OwnerID == subjectID || role == RoleAdmin
}
