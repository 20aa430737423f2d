// Package ml provides caching for classifier predictions.
package ml

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
)

// CacheKey represents a unique key for caching predictions
type CacheKey struct {
	GameID         uuid.UUID
	ModelVersion   string
	FeatureVersion string
}

// String returns string representation of cache key
func (k CacheKey) String() string {
	return fmt.Sprintf("%s:%s:%s", k.GameID, k.ModelVersion, k.FeatureVersion)
}

// PredictionCache provides in-memory caching for classifier predictions
type PredictionCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	maxSize   int
	mu        sync.RWMutex
	hitCount  uint64
	missCount uint64
}

// NewPredictionCache creates a new prediction cache
func NewPredictionCache(ttl time.Duration, maxSize int) *PredictionCache {
	return &PredictionCache{
		cache:   cache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get retrieves a cached probability. The second return reports a hit.
func (pc *PredictionCache) Get(key CacheKey) (float64, bool) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if result, found := pc.cache.Get(key.String()); found {
		if probability, ok := result.(float64); ok {
			pc.hitCount++
			pc.updateMetrics()
			return probability, true
		}
	}

	pc.missCount++
	pc.updateMetrics()
	return 0, false
}

// Set stores a probability in cache
func (pc *PredictionCache) Set(key CacheKey, probability float64) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.cache.ItemCount() >= pc.maxSize {
		pc.cache.DeleteExpired()
	}

	pc.cache.Set(key.String(), probability, pc.ttl)
}

// Clear flushes the entire cache
func (pc *PredictionCache) Clear() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.cache.Flush()
	pc.hitCount = 0
	pc.missCount = 0
}

// Stats returns cache statistics
func (pc *PredictionCache) Stats() (hits, misses uint64, ratio float64) {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	hits = pc.hitCount
	misses = pc.missCount
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of items in cache
func (pc *PredictionCache) ItemCount() int {
	return pc.cache.ItemCount()
}

func (pc *PredictionCache) updateMetrics() {
	total := pc.hitCount + pc.missCount
	if total > 0 {
		ClassifierCacheHitRatio.Set(float64(pc.hitCount) / float64(total))
	}
}
