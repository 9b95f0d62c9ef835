package authclient

import (
	"context"
	"errors"
	"sync"
	"time"
)

// State is the route guard's lifecycle state for one mount.
type State int

const (
	StateVerifying State = iota
	StateAuthorized
	StateUnauthorized
)

func (s State) String() string {
	switch s {
	case StateVerifying:
		return "verifying"
	case StateAuthorized:
		return "authorized"
	case StateUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

const defaultVerifyTimeout = 5 * time.Second

// Guard gates navigation on the client. Every Check is a fresh mount: it
// starts at Verifying, short-circuits on local session state when it can,
// and otherwise re-verifies against the server.
//
// Overlapping Checks are not cancelled; instead the last-started Check is
// the only one allowed to publish its outcome, so a slow stale success can
// never overwrite a newer failure.
type Guard struct {
	client  *Client
	timeout time.Duration

	mu    sync.Mutex
	gen   uint64
	state State
}

func NewGuard(client *Client, timeout time.Duration) *Guard {
	if timeout <= 0 {
		timeout = defaultVerifyTimeout
	}
	return &Guard{client: client, timeout: timeout, state: StateVerifying}
}

// State returns the most recently published guard state.
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Check runs the state machine once for requiredRole and returns the
// terminal state: StateAuthorized renders the gated content,
// StateUnauthorized redirects to the login surface.
func (g *Guard) Check(ctx context.Context, requiredRole string) State {
	g.mu.Lock()
	g.gen++
	myGen := g.gen
	g.state = StateVerifying
	g.mu.Unlock()

	result := g.verify(ctx, requiredRole)

	g.mu.Lock()
	if g.gen == myGen {
		g.state = result
	}
	g.mu.Unlock()
	return result
}

func (g *Guard) verify(ctx context.Context, requiredRole string) State {
	sess, ok := g.client.Store().Load()
	if !ok || sess.Token == "" {
		return StateUnauthorized
	}

	// Fast path: the cached identity already carries the role. Advisory
	// only — every server request still re-validates the token.
	if sess.Identity != nil && roleSatisfies(sess.Identity.Role, requiredRole) {
		return StateAuthorized
	}

	verifyCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	identity, err := g.client.Profile(verifyCtx)
	if err != nil {
		// Wrong role leaves the session alone: the user is authenticated,
		// just not privileged. Everything else forces re-authentication.
		if !errors.Is(err, ErrForbidden) {
			_ = g.client.Store().Clear()
		}
		return StateUnauthorized
	}

	if !roleSatisfies(identity.Role, requiredRole) {
		return StateUnauthorized
	}

	// Refresh the cached identity so the next mount takes the fast path.
	_ = g.client.Store().Save(identity, sess.Token)
	return StateAuthorized
}

// roleSatisfies reports whether a held role meets a required one. Admin
// satisfies every requirement; anything else must match exactly.
func roleSatisfies(have, want string) bool {
	if want == "" {
		return have != ""
	}
	return have == want || have == "admin"
}
