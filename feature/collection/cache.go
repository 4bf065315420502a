package collection

import (
	"context"
	"sync"
	"time"

	"library-doctor/core/metrics"
	"library-doctor/feature/collection/models"

	"golang.org/x/sync/singleflight"
)

// documentCache holds the last decoded document for a limited time.
// Concurrent misses share one load.
type documentCache struct {
	mu    sync.RWMutex
	doc   *models.Document
	built time.Time
	ttl   time.Duration
	gen   uint64 // bumped by invalidate; a load started under an older generation is not stored
	sf    singleflight.Group
}

const documentKey = "document"

func newDocumentCache(ttl time.Duration) *documentCache {
	return &documentCache{ttl: ttl}
}

// fresh reports whether the cached document can be served. The caller holds mu.
func (c *documentCache) fresh() bool {
	if c.doc == nil || c.ttl == 0 {
		return false
	}
	return time.Since(c.built) <= c.ttl
}

// get returns the cached document or loads a new one.
func (c *documentCache) get(ctx context.Context, load func(context.Context) (*models.Document, error)) (*models.Document, error) {
	c.mu.RLock()
	if c.fresh() {
		doc := c.doc
		c.mu.RUnlock()
		metrics.DocumentCacheHitsTotal.Inc()
		return doc, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(documentKey, func() (interface{}, error) {
		// Double-check after acquiring the singleflight slot
		c.mu.RLock()
		if c.fresh() {
			doc := c.doc
			c.mu.RUnlock()
			return doc, nil
		}
		gen := c.gen
		c.mu.RUnlock()

		doc, err := load(ctx)
		metrics.DocumentLoadsTotal.WithLabelValues(metrics.Status(err)).Inc()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.gen == gen {
			c.doc = doc
			c.built = time.Now()
		}
		c.mu.Unlock()
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.Document), nil
}

// invalidate drops the cached document. A load already in flight is neither
// stored nor shared with later callers.
func (c *documentCache) invalidate() {
	c.mu.Lock()
	c.doc = nil
	c.gen++
	c.mu.Unlock()
	c.sf.Forget(documentKey)
}
