package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// revocationTTL outlives the longest token lifetime so a revocation marker is
// always present while any affected token could still be valid.
const revocationTTL = 8 * 24 * time.Hour

// RevokeUserTokens marks every token issued to the user before now as invalid.
// Best-effort: without Redis the marker is simply not written.
func RevokeUserTokens(ctx context.Context, userID uint, now time.Time) error {
	if client == nil {
		return nil
	}
	return client.Set(ctx, RevokedUserKey(userID), now.Unix(), revocationTTL).Err()
}

// TokensRevokedSince returns the revocation cutoff for the user, if any.
// Fail-open: Redis errors report no revocation.
func TokensRevokedSince(ctx context.Context, userID uint) (time.Time, bool) {
	if client == nil {
		return time.Time{}, false
	}
	s, err := client.Get(ctx, RevokedUserKey(userID)).Result()
	if err == redis.Nil || err != nil {
		return time.Time{}, false
	}
	unix, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(unix, 0), true
}
