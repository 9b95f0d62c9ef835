package ports

import (
	"context"
	"time"

	"github.com/soundstash/media-catalog/internal/core/domain"
)

// TokenService mints and verifies signed bearer tokens. Verification is
// stateless: it depends only on the token contents, the signing secret and
// the clock.
type TokenService interface {
	// Mint produces a signed token embedding the user's id and role. The
	// role claim reflects the role at mint time; a later role change does
	// not alter tokens already issued.
	Mint(user *domain.User) (string, error)

	// Verify returns the embedded claims, domain.ErrTokenExpired when the
	// token is past its window, or domain.ErrTokenMalformed when it cannot
	// be parsed or its signature does not match.
	Verify(token string) (domain.TokenClaims, error)
}

// TokenDenylist is an optional revocation check consulted after signature
// verification. Tokens issued before a subject's revoked-after mark are
// rejected. Absence of a denylist means expiry is the only termination
// mechanism besides client-side logout.
type TokenDenylist interface {
	Revoke(ctx context.Context, subjectID string, at time.Time) error
	IsRevoked(ctx context.Context, subjectID string, issuedAt time.Time) (bool, error)
}
