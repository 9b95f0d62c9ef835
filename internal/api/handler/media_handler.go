package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/soundstash/media-catalog/internal/core/ports"
)

// MediaHandler streams stored media assets.
type MediaHandler struct {
	store ports.MediaStore
}

func NewMediaHandler(store ports.MediaStore) *MediaHandler {
	return &MediaHandler{store: store}
}

// Get handles GET /api/media/:key (public — catalog playback is not gated).
//
// @Summary      Stream a media asset
// @Tags         media
// @Produce      octet-stream
// @Param        key  path  string  true  "Asset key"
// @Success      200
// @Failure      404  {object}  envelope
// @Router       /api/media/{key} [get]
func (h *MediaHandler) Get(c echo.Context) error {
	key := c.Param("key")

	ref, rc, err := h.store.Open(c.Request().Context(), key)
	if err != nil {
		return err
	}
	defer rc.Close()

	contentType := ref.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return c.Stream(http.StatusOK, contentType, rc)
}
