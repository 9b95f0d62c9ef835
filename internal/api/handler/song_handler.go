package handler

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/soundstash/media-catalog/internal/api/metrics"
	"github.com/soundstash/media-catalog/internal/core/ports"
)

// SongHandler handles HTTP requests for song catalog operations.
type SongHandler struct {
	service ports.CatalogService
}

func NewSongHandler(service ports.CatalogService) *SongHandler {
	return &SongHandler{service: service}
}

// openFormFile opens one multipart file part and adapts it to UploadInput.
// The returned closer must be closed after the service call.
func openFormFile(c echo.Context, field string) (ports.UploadInput, multipart.File, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return ports.UploadInput{}, nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s file is required", field))
	}
	f, err := fh.Open()
	if err != nil {
		return ports.UploadInput{}, nil, fmt.Errorf("open %s upload: %w", field, err)
	}
	return ports.UploadInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     f,
	}, f, nil
}

// Add handles POST /api/song/add (admin only, multipart).
//
// @Summary      Add a song
// @Tags         songs
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name      formData  string  true   "Song name"
// @Param        artist    formData  string  true   "Artist"
// @Param        album     formData  string  false  "Album id"
// @Param        duration  formData  string  false  "Duration (m:ss)"
// @Param        audio     formData  file    true   "Audio file"
// @Param        image     formData  file    true   "Cover image"
// @Success      201  {object}  envelope
// @Failure      400  {object}  envelope
// @Failure      401  {object}  envelope
// @Failure      403  {object}  envelope
// @Router       /api/song/add [post]
func (h *SongHandler) Add(c echo.Context) error {
	name := c.FormValue("name")
	artist := c.FormValue("artist")
	if name == "" || artist == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and artist are required")
	}

	audio, audioFile, err := openFormFile(c, "audio")
	if err != nil {
		return err
	}
	defer audioFile.Close()

	image, imageFile, err := openFormFile(c, "image")
	if err != nil {
		return err
	}
	defer imageFile.Close()

	song, err := h.service.AddSong(c.Request().Context(), ports.AddSongInput{
		Name:     name,
		Artist:   artist,
		AlbumID:  c.FormValue("album"),
		Duration: c.FormValue("duration"),
		Audio:    audio,
		Image:    image,
	})
	if err != nil {
		return err
	}

	metrics.CatalogMutationsTotal.WithLabelValues("song", "add").Inc()
	return respond(c, http.StatusCreated, map[string]any{"song": song})
}

// List handles GET /api/song/list (public).
//
// @Summary      List songs
// @Tags         songs
// @Produce      json
// @Success      200  {object}  envelope
// @Router       /api/song/list [get]
func (h *SongHandler) List(c echo.Context) error {
	songs, err := h.service.ListSongs(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, songListData{Songs: songs})
}

// Remove handles POST /api/song/remove (admin only).
//
// @Summary      Remove a song
// @Tags         songs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      removeRequest  true  "Song id"
// @Success      200   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      403   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /api/song/remove [post]
func (h *SongHandler) Remove(c echo.Context) error {
	var req removeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.RemoveSong(c.Request().Context(), req.ID); err != nil {
		return err
	}

	metrics.CatalogMutationsTotal.WithLabelValues("song", "remove").Inc()
	return respond(c, http.StatusOK, map[string]string{"id": req.ID})
}
