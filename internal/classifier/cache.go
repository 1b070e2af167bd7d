package classifier

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultMaxAge is the eviction age for cached models.
const DefaultMaxAge = time.Hour

// cacheEntry is one live model: weights, vocabulary, config and the last
// time a caller used it.
type cacheEntry struct {
	net      *network
	vocab    Vocabulary
	config   Config
	lastUsed time.Time
}

// ModelCache holds loaded classifier state keyed by model id so predict
// calls do not reload from persistent storage. It is constructed
// explicitly and injected; eviction is driven by the caller through
// EvictExpired, the cache runs no timers of its own.
type ModelCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	logger  *zap.Logger
	now     func() time.Time
}

// NewModelCache creates an empty cache.
func NewModelCache(logger *zap.Logger) *ModelCache {
	return &ModelCache{
		entries: make(map[string]*cacheEntry),
		logger:  logger,
		now:     time.Now,
	}
}

// Get returns the live entry for an id, if present. Get does not refresh
// the last-used time; callers that act on the entry follow up with Touch.
func (m *ModelCache) Get(id string) (*cacheEntry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[id]
	return entry, ok
}

// Put inserts or replaces the entry for an id with a fully constructed
// state and stamps it as just used.
func (m *ModelCache) Put(id string, net *network, vocab Vocabulary, config Config) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[id] = &cacheEntry{
		net:      net,
		vocab:    vocab,
		config:   config,
		lastUsed: m.now(),
	}
}

// Touch refreshes an entry's last-used time.
func (m *ModelCache) Touch(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.entries[id]; ok {
		entry.lastUsed = m.now()
	}
}

// Evict removes an entry and releases its model resources.
func (m *ModelCache) Evict(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.entries[id]; ok {
		entry.net.Release()
		delete(m.entries, id)
		m.logger.Debug("Evicted cached model", zap.String("model_id", id))
	}
}

// EvictExpired removes every entry unused for longer than maxAge and
// releases its model resources. It returns the number of evicted entries.
func (m *ModelCache) EvictExpired(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	evicted := 0
	for id, entry := range m.entries {
		if now.Sub(entry.lastUsed) > maxAge {
			entry.net.Release()
			delete(m.entries, id)
			evicted++
		}
	}
	if evicted > 0 {
		m.logger.Debug("Evicted expired cached models", zap.Int("count", evicted))
	}
	return evicted
}

// Len reports how many models are live.
func (m *ModelCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
