package identity

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	b, ok := m.data[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return b, nil
}

func (m *memCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

type countingDirectory struct {
	calls int
	users []User
	err   error
}

func (d *countingDirectory) ListUsers(context.Context) ([]User, error) {
	d.calls++
	return d.users, d.err
}

func TestCachedDirectory_HitsUpstreamOnce(t *testing.T) {
	upstream := &countingDirectory{users: []User{{FirstName: "Velma", LastName: "Dinkley", Email: "velma@example.com"}}}
	cache := newMemCache()
	dir := NewCachedDirectory(upstream, cache, time.Minute, nil)

	for i := 0; i < 3; i++ {
		users, err := dir.ListUsers(context.Background())
		require.NoError(t, err)
		assert.Equal(t, upstream.users, users)
	}
	assert.Equal(t, 1, upstream.calls)
	assert.Equal(t, time.Minute, cache.ttls[usersCacheKey])
}

func TestCachedDirectory_CacheFailureFallsThrough(t *testing.T) {
	upstream := &countingDirectory{users: []User{{FirstName: "Shaggy"}}}
	cache := newMemCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	dir := NewCachedDirectory(upstream, cache, time.Minute, nil)

	users, err := dir.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, upstream.users, users)

	_, err = dir.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.calls)
}

func TestCachedDirectory_UpstreamErrorNotCached(t *testing.T) {
	upstream := &countingDirectory{err: errors.New("503")}
	cache := newMemCache()
	dir := NewCachedDirectory(upstream, cache, time.Minute, nil)

	_, err := dir.ListUsers(context.Background())
	require.Error(t, err)
	assert.Empty(t, cache.data)
}

func TestCachedDirectory_CorruptEntryRefetched(t *testing.T) {
	upstream := &countingDirectory{users: []User{{FirstName: "Scooby"}}}
	cache := newMemCache()
	cache.data[usersCacheKey] = []byte("not json")
	dir := NewCachedDirectory(upstream, cache, time.Minute, nil)

	users, err := dir.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, upstream.users, users)
	assert.Equal(t, 1, upstream.calls)
}
