package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
)

// MemoryCacheService provides single-process in-memory caching. Entries are
// valid while now - storedAt < ttl; expired entries are evicted lazily on
// the next read, never by a background sweep.
type MemoryCacheService struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// NewMemoryCacheService creates an in-memory cache service.
func NewMemoryCacheService() *MemoryCacheService {
	return NewMemoryCacheServiceWithClock(time.Now)
}

// NewMemoryCacheServiceWithClock creates an in-memory cache service with an
// injected clock so tests can control entry expiry.
func NewMemoryCacheServiceWithClock(now func() time.Time) *MemoryCacheService {
	return &MemoryCacheService{
		entries: make(map[string]memoryEntry),
		now:     now,
	}
}

// Set stores a value with an expiration time. A non-positive expiration
// stores the value without expiry.
func (m *MemoryCacheService) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	entry := memoryEntry{payload: payload}
	if expiration > 0 {
		entry.expiresAt = m.now().Add(expiration)
	}

	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}

// Get retrieves a value. Expired entries are deleted on read.
func (m *MemoryCacheService) Get(ctx context.Context, key string, dest any) error {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if ok && entry.expired(m.now()) {
		m.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have renewed it.
		if current, still := m.entries[key]; still && current.expired(m.now()) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		ok = false
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return json.Unmarshal(entry.payload, dest)
}

// Delete removes a key.
func (m *MemoryCacheService) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// DeletePattern removes all keys matching a glob-style pattern ('*' matches
// any run of characters).
func (m *MemoryCacheService) DeletePattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	for key := range m.entries {
		if matchPattern(key, pattern) {
			delete(m.entries, key)
		}
	}
	m.mu.Unlock()
	return nil
}

// FlushAll removes every key.
func (m *MemoryCacheService) FlushAll(ctx context.Context) error {
	m.mu.Lock()
	m.entries = make(map[string]memoryEntry)
	m.mu.Unlock()
	return nil
}

// Exists checks if a non-expired key exists.
func (m *MemoryCacheService) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok || entry.expired(m.now()) {
		return false, nil
	}
	return true, nil
}

// Close is a no-op for the in-memory backend.
func (m *MemoryCacheService) Close() error {
	return nil
}

// HealthCheck always succeeds for the in-memory backend.
func (m *MemoryCacheService) HealthCheck(ctx context.Context) error {
	return nil
}

// matchPattern implements the subset of glob matching the cache needs:
// literal segments separated by '*'. Segments must appear in order, with the
// first and last anchored when the pattern does not start or end with '*'.
func matchPattern(key, pattern string) bool {
	if !strings.Contains(pattern, "*") {
		return key == pattern
	}
	segments := strings.Split(pattern, "*")
	remaining := key
	for i, segment := range segments {
		if segment == "" {
			continue
		}
		idx := strings.Index(remaining, segment)
		if idx < 0 {
			return false
		}
		if i == 0 && !strings.HasPrefix(key, segment) {
			return false
		}
		if i == len(segments)-1 && !strings.HasSuffix(remaining, segment) {
			return false
		}
		remaining = remaining[idx+len(segment):]
	}
	return true
}
