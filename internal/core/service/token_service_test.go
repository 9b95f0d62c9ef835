package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/soundstash/media-catalog/internal/core/domain"
)

func TestTokenService_MintVerify_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	user := &domain.User{ID: "user_1", Role: domain.RoleAdmin}
	token, err := svc.Mint(user)
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.SubjectID != "user_1" {
		t.Fatalf("unexpected subject: %q", claims.SubjectID)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %q", claims.Role)
	}
	if claims.IssuedAt.IsZero() {
		t.Fatalf("expected issued-at to be set")
	}
}

func TestTokenService_Verify_Expired(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	minted := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return minted }

	token, err := svc.Mint(&domain.User{ID: "user_1", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}

	svc.now = func() time.Time { return minted.Add(2 * time.Hour) }
	if _, err := svc.Verify(token); err != domain.ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	minter := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := minter.Mint(&domain.User{ID: "user_1", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}

	if _, err := verifier.Verify(token); err != domain.ErrTokenMalformed {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

// A forged token never earns the softer expiry error, even when it is also
// past its window: the signature failure wins.
func TestTokenService_Verify_ExpiredWithWrongSecretIsMalformed(t *testing.T) {
	minter := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	minted := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	minter.now = func() time.Time { return minted }
	verifier.now = func() time.Time { return minted.Add(2 * time.Hour) }

	token, err := minter.Mint(&domain.User{ID: "user_1", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}

	if _, err := verifier.Verify(token); err != domain.ErrTokenMalformed {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestTokenService_Verify_Garbage(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(token); err != domain.ErrTokenMalformed {
			t.Fatalf("token %q: expected ErrTokenMalformed, got %v", token, err)
		}
	}
}

func TestTokenService_Verify_RejectsUnexpectedAlgorithm(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	// alg=none with an empty signature must never validate.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":  "user_1",
		"role": domain.RoleAdmin,
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Verify(token); err != domain.ErrTokenMalformed {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestTokenService_Verify_RejectsMissingSubjectOrRole(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	cases := map[string]jwt.MapClaims{
		"no subject":   {"role": domain.RoleUser},
		"no role":      {"sub": "user_1"},
		"unknown role": {"sub": "user_1", "role": "superuser"},
	}
	for name, claims := range cases {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		if err != nil {
			t.Fatalf("%s: sign token: %v", name, err)
		}
		if _, err := svc.Verify(token); err != domain.ErrTokenMalformed {
			t.Fatalf("%s: expected ErrTokenMalformed, got %v", name, err)
		}
	}
}

func TestTokenService_Mint_RoleFrozenAtMintTime(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	user := &domain.User{ID: "user_1", Role: domain.RoleUser}
	token, err := svc.Mint(user)
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}

	// Promoting the user afterwards must not alter the issued token.
	user.Role = domain.RoleAdmin

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.Role != domain.RoleUser {
		t.Fatalf("expected role %q frozen in token, got %q", domain.RoleUser, claims.Role)
	}
}
