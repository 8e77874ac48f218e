// Showlens - TV Show Popularity & Viewer Demographics Analytics
// Copyright 2026 Dana V. (showlens)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showlens/showlens

// Package cache provides the TTL response cache for chart payloads.
//
// Keys are derived from the canonicalized filter selection, so a cache hit
// serves a complete previously-computed chart payload. Only whole view
// outputs are cached, never partial aggregates; a miss always triggers a
// full recomputation. The backing dataset is static for the process
// lifetime, so expiry exists purely to bound memory, not for correctness.
package cache

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// Entry is one cached payload with its expiry.
type Entry struct {
	Data      interface{}
	ExpiresAt time.Time
}

// Cache is a thread-safe in-memory TTL cache.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration

	statsMu   sync.Mutex
	hits      int64
	misses    int64
	evictions int64
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	TotalKeys int64
}

// New creates a cache whose entries expire after ttl. A background
// goroutine sweeps expired entries every five minutes for the lifetime of
// the process.
func New(ttl time.Duration) *Cache {
	c := &Cache{
		entries: make(map[string]Entry),
		ttl:     ttl,
	}
	go c.cleanupLoop()
	return c
}

// Get retrieves a value by key. Expired entries are removed on access and
// reported as misses.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.record(func(s *Cache) { s.misses++ })
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		c.record(func(s *Cache) { s.misses++; s.evictions++ })
		return nil, false
	}

	c.record(func(s *Cache) { s.hits++ })
	return entry.Data, true
}

// Set stores a value with the cache's default TTL, overwriting any
// existing entry for the key.
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	c.entries[key] = Entry{
		Data:      value,
		ExpiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Delete removes one entry. No-op for absent keys.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	c.record(func(s *Cache) { s.evictions++ })
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	n := int64(len(c.entries))
	c.entries = make(map[string]Entry)
	c.mu.Unlock()
	c.record(func(s *Cache) { s.evictions += n })
}

// GetStats returns a snapshot of the cache counters.
func (c *Cache) GetStats() Stats {
	c.mu.RLock()
	total := int64(len(c.entries))
	c.mu.RUnlock()

	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		TotalKeys: total,
	}
}

func (c *Cache) record(f func(*Cache)) {
	c.statsMu.Lock()
	f(c)
	c.statsMu.Unlock()
}

// cleanupLoop sweeps expired entries periodically.
func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		c.mu.Lock()
		var evicted int64
		for key, entry := range c.entries {
			if now.After(entry.ExpiresAt) {
				delete(c.entries, key)
				evicted++
			}
		}
		c.mu.Unlock()
		if evicted > 0 {
			c.record(func(s *Cache) { s.evictions += evicted })
		}
	}
}

// GenerateKey builds a deterministic cache key from an endpoint name and
// the filter parameters. Multi-value parameters must be pre-sorted by the
// caller or passed as slices, which are sorted here, so that equivalent
// selections share a key.
func GenerateKey(endpoint string, params map[string]interface{}) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(endpoint)
	for _, k := range keys {
		v := params[k]
		if ss, ok := v.([]string); ok {
			sorted := make([]string, len(ss))
			copy(sorted, ss)
			sort.Strings(sorted)
			v = sorted
		}
		encoded, err := json.Marshal(v)
		if err != nil {
			encoded = []byte(fmt.Sprintf("%v", v))
		}
		b.WriteString("|")
		b.WriteString(k)
		b.WriteString("=")
		b.Write(encoded)
	}

	sum := sha256.Sum256([]byte(b.String()))
	return fmt.Sprintf("%s:%x", endpoint, sum[:8])
}
