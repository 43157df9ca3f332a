package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix        = "user:%d"
	PostsListKey         = "posts:list"
	ChallengesListKey    = "challenges:list"
	LeaderboardKey       = "users:leaderboard"
	RevokedUserKeyPrefix = "revoked_user:%d"
)

const (
	UserTTL        = 5 * time.Minute
	PostsListTTL   = 1 * time.Minute
	ChallengesTTL  = 10 * time.Minute
	LeaderboardTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func RevokedUserKey(userID uint) string {
	return fmt.Sprintf(RevokedUserKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePostsList(ctx context.Context) {
	Invalidate(ctx, PostsListKey)
}

func InvalidateChallengesList(ctx context.Context) {
	Invalidate(ctx, ChallengesListKey)
}

func InvalidateLeaderboard(ctx context.Context) {
	Invalidate(ctx, LeaderboardKey)
}
