package otpstore

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps pending codes in process memory. Expiry is lazy: entries
// past their TTL are dropped when read, not by a background timer.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[Key]Entry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[Key]Entry),
		now:     time.Now,
	}
}

// Put stores the entry, replacing any previous code for the same key.
func (s *MemoryStore) Put(_ context.Context, key Key, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry
	return nil
}

// Get returns the live entry for the key, or nil if absent or expired.
// An expired entry is removed on read.
func (s *MemoryStore) Get(_ context.Context, key Key) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	if entry.Expired(s.now()) {
		delete(s.entries, key)
		return nil, nil
	}
	return &entry, nil
}

// Delete removes the entry for the key if present.
func (s *MemoryStore) Delete(_ context.Context, key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
