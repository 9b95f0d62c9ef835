package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist provides token revocation backed by Redis: each revoked subject
// maps to a revoked-after unix timestamp, and any token issued at or before
// that mark is rejected. Entries expire after the token TTL — beyond that
// every affected token has expired on its own anyway.
// Key format: revoked:<subject_id>
type Denylist struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDenylist creates a Denylist wrapping the given Redis client. ttl should
// equal the token lifetime.
func NewDenylist(client *redis.Client, ttl time.Duration) *Denylist {
	return &Denylist{client: client, ttl: ttl}
}

// Revoke marks every token of the subject minted at or before at as invalid.
func (d *Denylist) Revoke(ctx context.Context, subjectID string, at time.Time) error {
	if err := d.client.Set(ctx, d.key(subjectID), at.Unix(), d.ttl).Err(); err != nil {
		return fmt.Errorf("denylist revoke: %w", err)
	}
	return nil
}

// IsRevoked reports whether a token issued at issuedAt for the subject has
// been revoked.
func (d *Denylist) IsRevoked(ctx context.Context, subjectID string, issuedAt time.Time) (bool, error) {
	val, err := d.client.Get(ctx, d.key(subjectID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}

	revokedAfter, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return false, fmt.Errorf("denylist parse %q: %w", val, err)
	}
	return issuedAt.Unix() <= revokedAfter, nil
}

func (d *Denylist) key(subjectID string) string {
	return "revoked:" + subjectID
}
