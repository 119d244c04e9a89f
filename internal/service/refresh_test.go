package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"cart-api/internal/cache"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func restoreRefreshGlobals() {
	randRead = rand.Read
	jsonMarshal = json.Marshal
	jsonUnmarshal = json.Unmarshal
}

func TestIssueRefreshToken(t *testing.T) {
	t.Cleanup(restoreRefreshGlobals)
	ctx := context.Background()
	c := &cache.FakeCache{}

	randRead = func([]byte) (int, error) { return 0, errors.New("rand") }
	_, err := IssueRefreshToken(ctx, c, 1, "alice", time.Second)
	require.Error(t, err)

	randRead = rand.Read
	jsonMarshal = func(any) ([]byte, error) { return nil, errors.New("json") }
	_, err = IssueRefreshToken(ctx, c, 1, "alice", time.Second)
	require.Error(t, err)

	jsonMarshal = json.Marshal
	c.SetFn = func(context.Context, string, any, time.Duration) *redis.StatusCmd {
		return redis.NewStatusResult("", errors.New("set"))
	}
	_, err = IssueRefreshToken(ctx, c, 1, "alice", time.Second)
	require.Error(t, err)

	var storedKey string
	var storedVal []byte
	var storedTTL time.Duration
	c.SetFn = func(_ context.Context, key string, val any, ttl time.Duration) *redis.StatusCmd {
		storedKey = key
		storedVal = val.([]byte)
		storedTTL = ttl
		return redis.NewStatusResult("OK", nil)
	}
	tok, err := IssueRefreshToken(ctx, c, 1, "alice", time.Second)
	require.NoError(t, err)
	require.Equal(t, refreshTokenPrefix+tok, storedKey)
	require.Equal(t, time.Second, storedTTL)
	decoded, _ := base64.RawURLEncoding.DecodeString(tok)
	require.Len(t, decoded, 32)
	var d RefreshTokenData
	require.NoError(t, json.Unmarshal(storedVal, &d))
	require.Equal(t, 1, d.UserID)
	require.Equal(t, "alice", d.Username)
}

func TestValidateRefreshToken(t *testing.T) {
	t.Cleanup(restoreRefreshGlobals)
	ctx := context.Background()
	c := &cache.FakeCache{}

	c.GetFn = func(context.Context, string) *redis.StringCmd {
		return redis.NewStringResult("", redis.Nil)
	}
	_, err := ValidateRefreshToken(ctx, c, "tok")
	require.Error(t, err)

	c.GetFn = func(context.Context, string) *redis.StringCmd {
		return redis.NewStringResult("", errors.New("get"))
	}
	_, err = ValidateRefreshToken(ctx, c, "tok")
	require.Error(t, err)

	c.GetFn = func(context.Context, string) *redis.StringCmd {
		return redis.NewStringResult("bad", nil)
	}
	jsonUnmarshal = func([]byte, any) error { return errors.New("unmarshal") }
	_, err = ValidateRefreshToken(ctx, c, "tok")
	require.Error(t, err)

	jsonUnmarshal = json.Unmarshal
	dataBytes, _ := json.Marshal(RefreshTokenData{UserID: 2, Username: "bob"})
	c.GetFn = func(context.Context, string) *redis.StringCmd {
		return redis.NewStringResult(string(dataBytes), nil)
	}
	data, err := ValidateRefreshToken(ctx, c, "tok")
	require.NoError(t, err)
	require.Equal(t, 2, data.UserID)
	require.Equal(t, "bob", data.Username)
}

func TestRevokeRefreshToken(t *testing.T) {
	ctx := context.Background()
	c := &cache.FakeCache{}

	var deletedKey string
	c.DelFn = func(_ context.Context, keys ...string) *redis.IntCmd {
		deletedKey = keys[0]
		return redis.NewIntResult(1, nil)
	}
	require.NoError(t, RevokeRefreshToken(ctx, c, "tok"))
	require.Equal(t, refreshTokenPrefix+"tok", deletedKey)

	c.DelFn = func(context.Context, ...string) *redis.IntCmd {
		return redis.NewIntResult(0, errors.New("del"))
	}
	require.Error(t, RevokeRefreshToken(ctx, c, "tok"))
}
