package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllow_BurstThenDeny(t *testing.T) {
	krl := New(1, 2)

	assert.True(t, krl.Allow("key"))
	assert.True(t, krl.Allow("key"))
	assert.False(t, krl.Allow("key"))
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	krl := New(1, 1)

	assert.True(t, krl.Allow("a"))
	assert.False(t, krl.Allow("a"))
	assert.True(t, krl.Allow("b"))
}

func TestWait_RespectsContext(t *testing.T) {
	krl := New(0.001, 1)
	require.NoError(t, krl.Wait(context.Background(), "key"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := krl.Wait(ctx, "key")
	assert.Error(t, err)
}
