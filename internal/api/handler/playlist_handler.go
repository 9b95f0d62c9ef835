package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/soundstash/media-catalog/internal/api/metrics"
	"github.com/soundstash/media-catalog/internal/core/ports"
)

// PlaylistHandler handles HTTP requests for playlist operations. All routes
// require authentication; ownership checks happen in the service.
type PlaylistHandler struct {
	service ports.CatalogService
}

func NewPlaylistHandler(service ports.CatalogService) *PlaylistHandler {
	return &PlaylistHandler{service: service}
}

func playlistActor(c echo.Context) (ports.PlaylistActor, error) {
	subjectID, role, err := ctxActor(c)
	if err != nil {
		return ports.PlaylistActor{}, err
	}
	return ports.PlaylistActor{SubjectID: subjectID, Role: role}, nil
}

// Create handles POST /api/playlist/create.
//
// @Summary      Create a playlist
// @Tags         playlists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPlaylistRequest  true  "Playlist name"
// @Success      201   {object}  envelope
// @Failure      401   {object}  envelope
// @Router       /api/playlist/create [post]
func (h *PlaylistHandler) Create(c echo.Context) error {
	actor, err := playlistActor(c)
	if err != nil {
		return err
	}

	var req createPlaylistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	playlist, err := h.service.CreatePlaylist(c.Request().Context(), actor, req.Name)
	if err != nil {
		return err
	}

	metrics.CatalogMutationsTotal.WithLabelValues("playlist", "add").Inc()
	return respond(c, http.StatusCreated, map[string]any{"playlist": playlist})
}

// List handles GET /api/playlist/list — the caller's own playlists.
//
// @Summary      List own playlists
// @Tags         playlists
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Router       /api/playlist/list [get]
func (h *PlaylistHandler) List(c echo.Context) error {
	actor, err := playlistActor(c)
	if err != nil {
		return err
	}

	playlists, err := h.service.ListPlaylists(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, playlistListData{Playlists: playlists})
}

// AddSong handles POST /api/playlist/add-song.
//
// @Summary      Add a song to a playlist
// @Tags         playlists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addPlaylistSongRequest  true  "Playlist and song ids"
// @Success      200   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      403   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /api/playlist/add-song [post]
func (h *PlaylistHandler) AddSong(c echo.Context) error {
	actor, err := playlistActor(c)
	if err != nil {
		return err
	}

	var req addPlaylistSongRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.AddPlaylistSong(c.Request().Context(), actor, req.PlaylistID, req.SongID); err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]string{"playlist_id": req.PlaylistID, "song_id": req.SongID})
}

// Remove handles POST /api/playlist/remove.
//
// @Summary      Remove a playlist
// @Tags         playlists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      removeRequest  true  "Playlist id"
// @Success      200   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      403   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /api/playlist/remove [post]
func (h *PlaylistHandler) Remove(c echo.Context) error {
	actor, err := playlistActor(c)
	if err != nil {
		return err
	}

	var req removeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.RemovePlaylist(c.Request().Context(), actor, req.ID); err != nil {
		return err
	}

	metrics.CatalogMutationsTotal.WithLabelValues("playlist", "remove").Inc()
	return respond(c, http.StatusOK, map[string]string{"id": req.ID})
}
