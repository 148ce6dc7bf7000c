package server

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

const renderCacheTTL = 15 * time.Minute

// renderCache keeps encoded drawings keyed by a hash of everything that went into them.
type renderCache struct {
	cache *ristretto.Cache[string, []byte]
}

func newRenderCache(maxMB int) (*renderCache, error) {
	if maxMB <= 0 {
		maxMB = 64
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: 10000,
		MaxCost:     int64(maxMB) * 1024 * 1024,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("creating render cache: %w", err)
	}
	return &renderCache{cache: cache}, nil
}

func cacheKey(kind string, body []byte, params ...any) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%v|", kind, params)
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

func (c *renderCache) get(key string) ([]byte, bool) {
	c.cache.Wait()
	return c.cache.Get(key)
}

func (c *renderCache) set(key string, data []byte) {
	if len(data) == 0 {
		return
	}
	c.cache.SetWithTTL(key, data, int64(len(data)), renderCacheTTL)
	c.cache.Wait()
}

func (c *renderCache) close() {
	c.cache.Close()
}
