package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedUser struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

func setupMiniredis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
}

func TestAside_MissThenHit(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedUser) func() error {
		return func() error {
			fetches++
			dest.ID = 7
			dest.Email = "alice@example.com"
			return nil
		}
	}

	var first cachedUser
	require.NoError(t, Aside(ctx, UserKey(7), &first, UserTTL, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "alice@example.com", first.Email)

	// Second read comes from cache; fetch must not run again.
	var second cachedUser
	require.NoError(t, Aside(ctx, UserKey(7), &second, UserTTL, fetch(&second)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, first, second)
}

func TestAside_FetchErrorNotCached(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	var dest cachedUser
	err := Aside(ctx, "user:99", &dest, time.Minute, func() error {
		return errors.New("db down")
	})
	assert.Error(t, err)

	found, err := GetJSON(ctx, "user:99", &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAside_NoClientFallsThrough(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	fetches := 0
	var dest cachedUser
	for i := 0; i < 2; i++ {
		require.NoError(t, Aside(ctx, UserKey(1), &dest, UserTTL, func() error {
			fetches++
			return nil
		}))
	}
	// Without Redis every call goes to the source.
	assert.Equal(t, 2, fetches)
}

func TestInvalidate(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostsListKey, []int{1, 2}, PostsListTTL))
	InvalidatePostsList(ctx)

	var out []int
	found, err := GetJSON(ctx, PostsListKey, &out)
	require.NoError(t, err)
	assert.False(t, found)
}
