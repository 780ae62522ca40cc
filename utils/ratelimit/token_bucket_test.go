package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenBucketDisabled(t *testing.T) {
	assert.Nil(t, NewTokenBucket(0, 3))
	assert.Nil(t, NewTokenBucket(-1, 3))
}

func TestAllowN(t *testing.T) {
	now := time.Unix(1000, 0)
	tb := NewTokenBucket(1, 2)
	tb.now = func() time.Time { return now }
	tb.lastUpdate = now

	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())

	now = now.Add(time.Second)
	assert.True(t, tb.Allow())
	assert.False(t, tb.AllowN(2))
}

func TestRefillCapsAtCapacity(t *testing.T) {
	now := time.Unix(1000, 0)
	tb := NewTokenBucket(10, 3)
	tb.now = func() time.Time { return now }
	tb.lastUpdate = now

	now = now.Add(time.Hour)
	assert.True(t, tb.AllowN(3))
	assert.False(t, tb.Allow())
}

func TestWaitCanceled(t *testing.T) {
	tb := NewTokenBucket(0.001, 1)
	require.True(t, tb.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := tb.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWaitAcquires(t *testing.T) {
	tb := NewTokenBucket(100, 1)
	require.NoError(t, tb.Wait(context.Background()))
	require.NoError(t, tb.Wait(context.Background()))
}

func TestNilBucketNeverBlocks(t *testing.T) {
	var tb *TokenBucket
	assert.True(t, tb.Allow())
	assert.NoError(t, tb.Wait(context.Background()))
}
