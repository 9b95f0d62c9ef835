package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/soundstash/media-catalog/internal/core/domain"
)

// envelope is the wire contract shared by every endpoint: successes carry
// data, failures carry a message, never both.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, envelope{Success: true, Data: data})
}

// --- Auth request / response types ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type revokeRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// sessionData is the payload of login/register responses.
type sessionData struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// profileData is the payload of the profile response.
type profileData struct {
	User *domain.User `json:"user"`
}

// --- Catalog request / response types ---
//
// Song and album creation are multipart (metadata fields + file parts), so
// their inputs are read straight off the form rather than bound here.

type removeRequest struct {
	ID string `json:"id" validate:"required"`
}

type createPlaylistRequest struct {
	Name string `json:"name" validate:"required"`
}

type addPlaylistSongRequest struct {
	PlaylistID string `json:"playlist_id" validate:"required"`
	SongID     string `json:"song_id"     validate:"required"`
}

type songListData struct {
	Songs []*domain.Song `json:"songs"`
}

type albumListData struct {
	Albums []*domain.Album `json:"albums"`
}

type playlistListData struct {
	Playlists []*domain.Playlist `json:"playlists"`
}
