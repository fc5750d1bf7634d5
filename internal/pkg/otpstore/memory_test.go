package otpstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	key := Key{AssignmentID: 7, ApproverID: 9}

	entry, err := s.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Nil(t, entry)

	require.NoError(t, s.Put(context.Background(), key, Entry{
		Code:      "428519",
		ExpiresAt: time.Now().Add(time.Minute),
	}))

	entry, err = s.Get(context.Background(), key)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "428519", entry.Code)
}

func TestMemoryStorePutReplaces(t *testing.T) {
	s := NewMemoryStore()
	key := Key{AssignmentID: 7, ApproverID: 9}
	expires := time.Now().Add(time.Minute)

	require.NoError(t, s.Put(context.Background(), key, Entry{Code: "111111", ExpiresAt: expires}))
	require.NoError(t, s.Put(context.Background(), key, Entry{Code: "222222", ExpiresAt: expires}))

	entry, err := s.Get(context.Background(), key)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "222222", entry.Code)
}

func TestMemoryStoreExpiresLazily(t *testing.T) {
	s := NewMemoryStore()
	key := Key{AssignmentID: 7, ApproverID: 9}

	current := time.Date(2026, 4, 23, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	require.NoError(t, s.Put(context.Background(), key, Entry{
		Code:      "428519",
		ExpiresAt: current.Add(10 * time.Minute),
	}))

	current = current.Add(5 * time.Minute)
	entry, err := s.Get(context.Background(), key)
	require.NoError(t, err)
	assert.NotNil(t, entry)

	current = current.Add(6 * time.Minute)
	entry, err = s.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Nil(t, entry)

	// The expired entry was dropped on read, not merely hidden.
	s.mu.Lock()
	_, held := s.entries[key]
	s.mu.Unlock()
	assert.False(t, held)
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	key := Key{AssignmentID: 7, ApproverID: 9}

	require.NoError(t, s.Put(context.Background(), key, Entry{
		Code:      "428519",
		ExpiresAt: time.Now().Add(time.Minute),
	}))
	require.NoError(t, s.Delete(context.Background(), key))

	entry, err := s.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Nil(t, entry)

	// Deleting an absent key is a no-op.
	assert.NoError(t, s.Delete(context.Background(), key))
}

func TestKeysAreScopedPerApprover(t *testing.T) {
	s := NewMemoryStore()
	expires := time.Now().Add(time.Minute)

	require.NoError(t, s.Put(context.Background(), Key{AssignmentID: 7, ApproverID: 9}, Entry{Code: "111111", ExpiresAt: expires}))
	require.NoError(t, s.Put(context.Background(), Key{AssignmentID: 7, ApproverID: 12}, Entry{Code: "222222", ExpiresAt: expires}))

	entry, err := s.Get(context.Background(), Key{AssignmentID: 7, ApproverID: 9})
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "111111", entry.Code)
}
