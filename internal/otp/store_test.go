package otp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStore_PutAndConsume(t *testing.T) {
	store := NewStore(10 * time.Minute)

	store.Put("alice", "123456")

	require.False(t, store.Consume("alice", "000000"))
	require.True(t, store.Consume("alice", "123456"))

	// Consumed codes are single use.
	require.False(t, store.Consume("alice", "123456"))
}

func TestStore_PutReplacesPreviousCode(t *testing.T) {
	store := NewStore(10 * time.Minute)

	store.Put("alice", "111111")
	store.Put("alice", "222222")

	require.False(t, store.Consume("alice", "111111"))
	require.True(t, store.Consume("alice", "222222"))
}

func TestStore_ExpiredCodeFails(t *testing.T) {
	store := NewStore(10 * time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }

	store.Put("alice", "123456")

	now = now.Add(11 * time.Minute)
	require.False(t, store.Consume("alice", "123456"))
}

func TestStore_Sweep(t *testing.T) {
	store := NewStore(10 * time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }

	store.Put("alice", "111111")
	store.Put("bob", "222222")
	require.Equal(t, 2, store.Len())

	now = now.Add(11 * time.Minute)
	store.Put("carol", "333333")

	store.Sweep()
	require.Equal(t, 1, store.Len())
	require.True(t, store.Consume("carol", "333333"))
}
