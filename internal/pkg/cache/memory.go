package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

const (
	defaultMaxEntries      = 10000
	defaultCleanupInterval = time.Minute
)

// memoryStore is an in-process LRU store with TTL expiry. Expired entries are
// dropped lazily on Get and swept by a background janitor.
type memoryStore struct {
	maxEntries int

	mu       sync.Mutex
	items    map[string]*list.Element
	eviction *list.List

	stopCh   chan struct{}
	stopOnce sync.Once
}

type memoryEntry struct {
	key       string
	value     []byte
	expiresAt time.Time
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// NewMemoryStore creates an in-process store holding at most maxEntries
// entries (0 uses a default cap).
func NewMemoryStore(maxEntries int) Store {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}

	s := &memoryStore{
		maxEntries: maxEntries,
		items:      make(map[string]*list.Element),
		eviction:   list.New(),
		stopCh:     make(chan struct{}),
	}

	go s.janitor()

	return s
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.items[key]
	if !ok {
		return nil, ErrCacheMiss
	}

	entry := elem.Value.(*memoryEntry)
	if entry.expired(time.Now()) {
		s.removeElement(elem)
		return nil, ErrCacheMiss
	}

	s.eviction.MoveToFront(elem)

	value := make([]byte, len(entry.value))
	copy(value, entry.value)
	return value, nil
}

func (s *memoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.items[key]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.value = stored
		entry.expiresAt = expiresAt
		s.eviction.MoveToFront(elem)
		return nil
	}

	elem := s.eviction.PushFront(&memoryEntry{key: key, value: stored, expiresAt: expiresAt})
	s.items[key] = elem

	for len(s.items) > s.maxEntries {
		oldest := s.eviction.Back()
		if oldest == nil {
			break
		}
		s.removeElement(oldest)
	}

	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.items[key]; ok {
		s.removeElement(elem)
	}
	return nil
}

func (s *memoryStore) Close() error {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
	return nil
}

// removeElement must be called with s.mu held.
func (s *memoryStore) removeElement(elem *list.Element) {
	entry := elem.Value.(*memoryEntry)
	delete(s.items, entry.key)
	s.eviction.Remove(elem)
}

func (s *memoryStore) janitor() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *memoryStore) sweep() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for elem := s.eviction.Back(); elem != nil; {
		prev := elem.Prev()
		if elem.Value.(*memoryEntry).expired(now) {
			s.removeElement(elem)
		}
		elem = prev
	}
}
