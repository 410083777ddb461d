package compiler

import (
	"context"
	"fmt"

	"smartctx/internal/domain"
)

// TokenCeiling is the per-depth token estimate at which a depth scan stops
// computing further depths.
const TokenCeiling = 50000

// DepthCacheStore memoizes per-depth compiled stats keyed by context key
// and depth-0 fingerprint. It lives outside the context aggregate so its
// lifetime and invalidation are observable on their own.
//
// The store assumes a single logical caller per context at a time, like
// the engine itself.
type DepthCacheStore struct {
	entries map[string]*domain.DepthCache
}

// NewDepthCacheStore creates an empty store.
func NewDepthCacheStore() *DepthCacheStore {
	return &DepthCacheStore{entries: make(map[string]*domain.DepthCache)}
}

// Get returns the cached per-depth array for a context when its stored
// fingerprint matches and it covers depths 0..maxDepth. A mismatch on
// either discards the stale entry.
func (s *DepthCacheStore) Get(contextKey string, fingerprint, maxDepth int) (*domain.DepthCache, bool) {
	cache, ok := s.entries[contextKey]
	if !ok {
		return nil, false
	}
	if cache.Fingerprint != fingerprint || len(cache.Depths) != maxDepth+1 {
		delete(s.entries, contextKey)
		return nil, false
	}
	return cache, true
}

// Put stores a freshly computed per-depth array.
func (s *DepthCacheStore) Put(contextKey string, cache *domain.DepthCache) {
	s.entries[contextKey] = cache
}

// Invalidate drops a context's cached scan.
func (s *DepthCacheStore) Invalidate(contextKey string) {
	delete(s.entries, contextKey)
}

// DepthScan compiles the context at depths 0..maxDepth and returns the
// per-depth stats. Depth 0 is always recomputed; its token estimate is the
// fingerprint deciding whether the cached array can be reused. On a
// recompute, once a depth's token estimate exceeds TokenCeiling the
// remaining depths are recorded as not-calculated placeholders.
func (e *Engine) DepthScan(ctx context.Context, sc *domain.SmartContext, store *DepthCacheStore, maxDepth int) (*domain.DepthCache, error) {
	depth0, err := e.Compile(ctx, sc, Options{LinkDepth: 0, IncludeInlinks: sc.Settings.IncludeInlinks})
	if err != nil {
		return nil, err
	}
	fingerprint := domain.TokenEstimate(depth0.Stats.CharCount)

	if cache, ok := store.Get(sc.Key, fingerprint, maxDepth); ok {
		return cache, nil
	}

	cache := &domain.DepthCache{Fingerprint: fingerprint}
	cache.Depths = append(cache.Depths, depthInfo(0, depth0.Stats))

	ceilingHit := false
	for depth := 1; depth <= maxDepth; depth++ {
		if ceilingHit {
			cache.Depths = append(cache.Depths, domain.DepthInfo{
				Depth: depth,
				Label: fmt.Sprintf("Depth %d (not calculated)", depth),
			})
			continue
		}

		result, err := e.Compile(ctx, sc, Options{LinkDepth: depth, IncludeInlinks: sc.Settings.IncludeInlinks})
		if err != nil {
			return nil, err
		}
		info := depthInfo(depth, result.Stats)
		cache.Depths = append(cache.Depths, info)
		if info.Tokens > TokenCeiling {
			ceilingHit = true
		}
	}

	store.Put(sc.Key, cache)
	return cache, nil
}

func depthInfo(depth int, stats domain.CompileStats) domain.DepthInfo {
	tokens := domain.TokenEstimate(stats.CharCount)
	return domain.DepthInfo{
		Depth:      depth,
		Label:      fmt.Sprintf("Depth %d (%d items, %d links, ~%d tokens)", depth, stats.ItemCount, stats.LinkCount, tokens),
		Tokens:     tokens,
		Stats:      stats,
		Calculated: true,
	}
}
