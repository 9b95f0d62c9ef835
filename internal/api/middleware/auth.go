package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/soundstash/media-catalog/internal/api/metrics"
	"github.com/soundstash/media-catalog/internal/core/domain"
	"github.com/soundstash/media-catalog/internal/core/ports"
)

// Context keys set by Auth for downstream handlers and middleware.
const (
	CtxUserID   = "user_id"
	CtxRole     = "role"
	CtxIssuedAt = "issued_at"
)

// Auth validates the bearer token and injects the verified claims into the
// echo context. It never touches the user store: authorization downstream is
// derived entirely from the token's signed claims. Failures surface as domain
// sentinels; the central error handler renders them as 401 envelopes.
//
// denylist is optional; pass nil to rely on expiry alone.
func Auth(tokens ports.TokenService, denylist ports.TokenDenylist) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return domain.ErrUnauthenticated
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenVerificationsTotal.WithLabelValues("malformed").Inc()
				return fmt.Errorf("authorization header is not a bearer token: %w", domain.ErrTokenMalformed)
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					metrics.TokenVerificationsTotal.WithLabelValues("expired").Inc()
				} else {
					metrics.TokenVerificationsTotal.WithLabelValues("malformed").Inc()
				}
				return err
			}

			if denylist != nil {
				revoked, err := denylist.IsRevoked(c.Request().Context(), claims.SubjectID, claims.IssuedAt)
				if err != nil {
					// Revocation is a hardening layer; fail closed.
					return fmt.Errorf("revocation check: %w", domain.ErrUnauthenticated)
				}
				if revoked {
					metrics.TokenVerificationsTotal.WithLabelValues("revoked").Inc()
					return domain.ErrTokenRevoked
				}
			}

			metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
			c.Set(CtxUserID, claims.SubjectID)
			c.Set(CtxRole, claims.Role)
			c.Set(CtxIssuedAt, claims.IssuedAt)

			return next(c)
		}
	}
}
