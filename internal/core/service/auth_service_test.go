package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/soundstash/media-catalog/internal/core/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by email
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = "user_" + strconv.Itoa(r.nextID)
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) SetRole(_ context.Context, email, role string) error {
	u, ok := r.users[email]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func newTestAuthService() (*AuthService, *stubUserRepo) {
	repo := newStubUserRepo()
	return NewAuthService(repo, NewTokenService("secret", time.Hour)), repo
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _ := newTestAuthService()

	token, user, err := svc.Register(context.Background(), "Alice", "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.ID == "" {
		t.Fatalf("expected persisted user, got %+v", user)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role %q on registration, got %q", domain.RoleUser, user.Role)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_NormalizesEmail(t *testing.T) {
	svc, repo := newTestAuthService()

	if _, _, err := svc.Register(context.Background(), "Bob", "  Bob@Example.COM ", "pass123"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, ok := repo.users["bob@example.com"]; !ok {
		t.Fatalf("expected email stored lowercased and trimmed, have %v", repo.users)
	}

	// Login with a differently cased variant reaches the same account.
	if _, _, err := svc.Login(context.Background(), "BOB@example.com", "pass123"); err != nil {
		t.Fatalf("login with cased email failed: %v", err)
	}
}

// Role escalation reaches the account through the same normalized email the
// registration stored, no matter how the operator typed the address.
func TestSetRole_NormalizedEmailReachesAccount(t *testing.T) {
	svc, repo := newTestAuthService()

	if _, _, err := svc.Register(context.Background(), "Eve", "eve@example.com", "pass123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := repo.SetRole(context.Background(), domain.NormalizeEmail("  Eve@Example.COM "), domain.RoleAdmin); err != nil {
		t.Fatalf("SetRole with mixed-case email failed: %v", err)
	}

	_, user, err := svc.Login(context.Background(), "eve@example.com", "pass123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("expected promoted role, got %q", user.Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _ := newTestAuthService()

	cases := []struct{ name, email, password string }{
		{"", "x@example.com", "pass"},
		{"X", "", "pass"},
		{"X", "x@example.com", "   "},
	}
	for _, tc := range cases {
		if _, _, err := svc.Register(context.Background(), tc.name, tc.email, tc.password); err != domain.ErrInvalidCredentials {
			t.Fatalf("%+v: expected ErrInvalidCredentials, got %v", tc, err)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _ := newTestAuthService()

	if _, _, err := svc.Register(context.Background(), "Carol", "carol@example.com", "pass123"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "Carol2", "carol@example.com", "other"); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _ := newTestAuthService()

	if _, _, err := svc.Register(context.Background(), "Dave", "dave@example.com", "s3cret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "dave@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Email != "dave@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _ := newTestAuthService()

	_, _, _ = svc.Register(context.Background(), "Erin", "erin@example.com", "goodpass")
	if _, _, err := svc.Login(context.Background(), "erin@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailIndistinguishable(t *testing.T) {
	svc, _ := newTestAuthService()

	_, _, _ = svc.Register(context.Background(), "Frank", "frank@example.com", "goodpass")

	_, _, unknownErr := svc.Login(context.Background(), "ghost@example.com", "whatever")
	_, _, wrongErr := svc.Login(context.Background(), "frank@example.com", "badpass")

	if unknownErr != domain.ErrInvalidCredentials {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if wrongErr != unknownErr {
		t.Fatalf("unknown email and wrong password must be indistinguishable: %v vs %v", unknownErr, wrongErr)
	}
}

func TestAuthService_Profile(t *testing.T) {
	svc, _ := newTestAuthService()

	_, created, err := svc.Register(context.Background(), "Grace", "grace@example.com", "pass123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, err := svc.Profile(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if user.Email != "grace@example.com" {
		t.Fatalf("unexpected profile: %+v", user)
	}

	if _, err := svc.Profile(context.Background(), "missing"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
