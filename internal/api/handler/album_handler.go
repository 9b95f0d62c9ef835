package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/soundstash/media-catalog/internal/api/metrics"
	"github.com/soundstash/media-catalog/internal/core/ports"
)

// AlbumHandler handles HTTP requests for album catalog operations.
type AlbumHandler struct {
	service ports.CatalogService
}

func NewAlbumHandler(service ports.CatalogService) *AlbumHandler {
	return &AlbumHandler{service: service}
}

// Add handles POST /api/album/add (admin only, multipart).
//
// @Summary      Add an album
// @Tags         albums
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name      formData  string  true   "Album name"
// @Param        artist    formData  string  true   "Artist"
// @Param        bg_color  formData  string  false  "Accent color"
// @Param        image     formData  file    true   "Cover image"
// @Success      201  {object}  envelope
// @Failure      400  {object}  envelope
// @Failure      401  {object}  envelope
// @Failure      403  {object}  envelope
// @Router       /api/album/add [post]
func (h *AlbumHandler) Add(c echo.Context) error {
	name := c.FormValue("name")
	artist := c.FormValue("artist")
	if name == "" || artist == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and artist are required")
	}

	image, imageFile, err := openFormFile(c, "image")
	if err != nil {
		return err
	}
	defer imageFile.Close()

	album, err := h.service.AddAlbum(c.Request().Context(), ports.AddAlbumInput{
		Name:    name,
		Artist:  artist,
		BgColor: c.FormValue("bg_color"),
		Image:   image,
	})
	if err != nil {
		return err
	}

	metrics.CatalogMutationsTotal.WithLabelValues("album", "add").Inc()
	return respond(c, http.StatusCreated, map[string]any{"album": album})
}

// List handles GET /api/album/list (public).
//
// @Summary      List albums
// @Tags         albums
// @Produce      json
// @Success      200  {object}  envelope
// @Router       /api/album/list [get]
func (h *AlbumHandler) List(c echo.Context) error {
	albums, err := h.service.ListAlbums(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, albumListData{Albums: albums})
}

// Remove handles POST /api/album/remove (admin only).
//
// @Summary      Remove an album
// @Tags         albums
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      removeRequest  true  "Album id"
// @Success      200   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      403   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /api/album/remove [post]
func (h *AlbumHandler) Remove(c echo.Context) error {
	var req removeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.RemoveAlbum(c.Request().Context(), req.ID); err != nil {
		return err
	}

	metrics.CatalogMutationsTotal.WithLabelValues("album", "remove").Inc()
	return respond(c, http.StatusOK, map[string]string{"id": req.ID})
}
