package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/soundstash/media-catalog/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// TokenService issues and verifies HS256-signed session tokens.
//
// The TTL is the only bound on how long a stolen token, a logged-out session
// or a stale role claim stays usable — there is no server-side session state.
// Operators configuring it trade convenience against that exposure window.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// sessionClaims is the wire shape of the token payload: registered claims
// plus the private role claim.
type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Mint signs a token carrying the user's id and role. Pure computation plus
// a signature; no storage write.
func (s *TokenService) Mint(user *domain.User) (string, error) {
	now := s.now().UTC()
	claims := sessionClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses and validates a token, returning its embedded claims.
// Signature and parse failures win: they collapse to ErrTokenMalformed even
// when the token is also past its window. Only a well-signed, well-formed
// token past exp yields ErrTokenExpired.
func (s *TokenService) Verify(token string) (domain.TokenClaims, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.TokenClaims{}, domain.ErrTokenExpired
		}
		return domain.TokenClaims{}, domain.ErrTokenMalformed
	}
	if !parsed.Valid {
		return domain.TokenClaims{}, domain.ErrTokenMalformed
	}

	out := domain.TokenClaims{
		SubjectID: claims.Subject,
		Role:      claims.Role,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if out.SubjectID == "" || !domain.ValidRole(out.Role) {
		return domain.TokenClaims{}, domain.ErrTokenMalformed
	}
	return out, nil
}
