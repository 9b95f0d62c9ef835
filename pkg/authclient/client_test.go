package authclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/soundstash/media-catalog/pkg/session"
)

func newMemClient(baseURL string) *Client {
	return NewClient(baseURL, session.NewStore(session.NewMemStorage()))
}

func loginOK(w http.ResponseWriter) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"data": map[string]any{
			"user":  map[string]any{"id": "user_1", "name": "Alice", "email": "alice@example.com", "role": "user"},
			"token": "token123",
		},
	})
}

func TestClient_Login_SavesSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds["email"] != "alice@example.com" || creds["password"] != "secret" {
			t.Fatalf("unexpected credentials: %v", creds)
		}
		loginOK(w)
	}))
	defer srv.Close()

	client := newMemClient(srv.URL)
	identity, err := client.Login(context.Background(), "alice@example.com", "secret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if identity.ID != "user_1" {
		t.Fatalf("unexpected identity: %+v", identity)
	}

	sess, ok := client.Store().Load()
	if !ok || sess.Token != "token123" {
		t.Fatalf("expected session persisted, got %+v ok=%v", sess, ok)
	}
}

func TestClient_Login_InvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "invalid credentials"})
	}))
	defer srv.Close()

	client := newMemClient(srv.URL)
	if _, err := client.Login(context.Background(), "alice@example.com", "bad"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, ok := client.Store().Load(); ok {
		t.Fatalf("failed login must not persist a session")
	}
}

func TestClient_Login_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := newMemClient(srv.URL)
	if _, err := client.Login(context.Background(), "a@example.com", "p"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestClient_Profile_AttachesBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token123" {
			t.Fatalf("unexpected authorization header: %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"user": map[string]any{"id": "user_1", "email": "alice@example.com", "role": "admin"},
			},
		})
	}))
	defer srv.Close()

	client := newMemClient(srv.URL)
	if err := client.Store().Save(&session.Identity{ID: "user_1", Email: "alice@example.com", Role: "user"}, "token123"); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	identity, err := client.Profile(context.Background())
	if err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}
	if identity.Role != "admin" {
		t.Fatalf("expected server truth, got %+v", identity)
	}
}

func TestClient_Profile_NoSession(t *testing.T) {
	client := newMemClient("http://unused.invalid")
	if _, err := client.Profile(context.Background()); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized without a session, got %v", err)
	}
}

func TestClient_Profile_StatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "nope"})
		}))

		client := newMemClient(srv.URL)
		_ = client.Store().Save(&session.Identity{ID: "user_1", Email: "a@example.com", Role: "user"}, "token123")

		if _, err := client.Profile(context.Background()); !errors.Is(err, tc.want) {
			t.Fatalf("status %d: expected %v, got %v", tc.status, tc.want, err)
		}
		srv.Close()
	}
}

func TestClient_Logout_ClearsLocalSession(t *testing.T) {
	client := newMemClient("http://unused.invalid")
	_ = client.Store().Save(&session.Identity{ID: "user_1", Email: "a@example.com", Role: "user"}, "token123")

	if err := client.Logout(); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if _, ok := client.Store().Load(); ok {
		t.Fatalf("expected session cleared after logout")
	}
}
