package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/soundstash/media-catalog/internal/api/middleware"
	"github.com/soundstash/media-catalog/internal/core/domain"
)

// ctxActor extracts the identity injected by the Auth middleware and
// fast-fails before any service call: a missing subject id or role means the
// middleware never ran on this route, which is a wiring bug, so the request
// is denied rather than processed with partial trust.
func ctxActor(c echo.Context) (subjectID, role string, err error) {
	subjectID, _ = c.Get(middleware.CtxUserID).(string)
	role, _ = c.Get(middleware.CtxRole).(string)
	if subjectID == "" || role == "" {
		return "", "", domain.ErrUnauthenticated
	}
	return subjectID, role, nil
}
