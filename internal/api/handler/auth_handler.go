package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/soundstash/media-catalog/internal/api/metrics"
	"github.com/soundstash/media-catalog/internal/core/ports"
)

// AuthHandler handles registration, login, profile and revocation.
type AuthHandler struct {
	authService ports.AuthService
	denylist    ports.TokenDenylist // nil when revocation is disabled
}

func NewAuthHandler(authService ports.AuthService, denylist ports.TokenDenylist) *AuthHandler {
	return &AuthHandler{authService: authService, denylist: denylist}
}

// Register creates a new user account and logs it in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      409   {object}  envelope
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, sessionData{User: user, Token: token})
}

// Login verifies credentials and returns the identity plus a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return respond(c, http.StatusOK, sessionData{User: user, Token: token})
}

// Profile returns the identity behind the presented bearer token.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Router       /api/auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	subjectID, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Profile(c.Request().Context(), subjectID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, profileData{User: user})
}

// Revoke denylists every token minted for a subject before now. Admin only;
// available only when a denylist backend is configured.
//
// @Summary      Revoke a user's outstanding tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      revokeRequest  true  "Subject to revoke"
// @Success      200   {object}  envelope
// @Failure      403   {object}  envelope
// @Failure      503   {object}  envelope
// @Router       /api/auth/revoke [post]
func (h *AuthHandler) Revoke(c echo.Context) error {
	if h.denylist == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "revocation not configured")
	}

	var req revokeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.denylist.Revoke(c.Request().Context(), req.UserID, time.Now().UTC()); err != nil {
		return err
	}

	return respond(c, http.StatusOK, map[string]string{"user_id": req.UserID})
}
